package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"attendance-tracker/internal/model"

	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	accounts map[string]*model.Account
	present  map[string][]time.Time
	checkIns map[string][]model.DayCheckIn
	holidays []model.Holiday
}

func (f *fakeStore) FindAccountByEmail(_ context.Context, email string) (*model.Account, error) {
	return f.accounts[email], nil
}

func (f *fakeStore) PresentDates(_ context.Context, email string, _, _ time.Time) ([]time.Time, error) {
	return f.present[email], nil
}

func (f *fakeStore) EarliestCheckIns(_ context.Context, email string, _, _ time.Time) ([]model.DayCheckIn, error) {
	return f.checkIns[email], nil
}

func (f *fakeStore) DistinctEmails(_ context.Context, _, _ time.Time, filter string) ([]string, error) {
	var emails []string
	for email := range f.present {
		if filter == "" || strings.Contains(email, filter) {
			emails = append(emails, email)
		}
	}
	return emails, nil
}

func (f *fakeStore) ListHolidays(_ context.Context, _, _ time.Time) ([]model.Holiday, error) {
	return f.holidays, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkingDays(t *testing.T) {
	// May 2024 has 23 weekdays; 2024-05-01 as a holiday leaves 22.
	first, last := MonthBounds(2024, time.May)
	holidays := map[time.Time]struct{}{day(2024, time.May, 1): {}}

	days := WorkingDays(first, last, holidays)
	assert.Len(t, days, 22)
	for _, d := range days {
		assert.NotEqual(t, time.Saturday, d.Weekday())
		assert.NotEqual(t, time.Sunday, d.Weekday())
		assert.NotEqual(t, day(2024, time.May, 1), d)
	}
}

func TestDefaulters(t *testing.T) {
	store := &fakeStore{
		accounts: map[string]*model.Account{
			"a@x.com": {ID: 1, Username: "alice", Email: "a@x.com"},
		},
		present: map[string][]time.Time{
			// 3 present weekdays
			"a@x.com": {day(2024, time.May, 2), day(2024, time.May, 3), day(2024, time.May, 6)},
			// 1 present weekday plus a Saturday that must not count
			"b@y.com": {day(2024, time.May, 2), day(2024, time.May, 4)},
			// plenty present, not a defaulter at threshold 2
			"c@z.com": {day(2024, time.May, 2), day(2024, time.May, 3), day(2024, time.May, 6), day(2024, time.May, 7)},
		},
	}

	svc := NewService(store, 12)

	threshold := 2
	defaulters, err := svc.Defaulters(context.Background(), 2024, time.May, "", &threshold)
	assert.NoError(t, err)

	if assert.Len(t, defaulters, 1) {
		d := defaulters[0]
		assert.Equal(t, "b@y.com", d.Email)
		assert.Equal(t, "b", d.Name) // no account, local part
		assert.Equal(t, 1, d.PresentDays)
		assert.Equal(t, 23, d.TotalDays)
	}
}

func TestDefaultersUsesConfiguredThresholdAndSorts(t *testing.T) {
	store := &fakeStore{
		accounts: map[string]*model.Account{
			"a@x.com": {ID: 1, Username: "alice", Email: "a@x.com"},
		},
		present: map[string][]time.Time{
			"a@x.com": {day(2024, time.May, 2), day(2024, time.May, 3)},
			"b@y.com": {day(2024, time.May, 2)},
		},
	}

	svc := NewService(store, 12)

	defaulters, err := svc.Defaulters(context.Background(), 2024, time.May, "", nil)
	assert.NoError(t, err)

	if assert.Len(t, defaulters, 2) {
		// lowest percentage first
		assert.Equal(t, "b@y.com", defaulters[0].Email)
		assert.Equal(t, "alice", defaulters[1].Name)
		assert.Less(t, defaulters[0].Percentage, defaulters[1].Percentage)
	}
}

func TestDefaultersEmailFilter(t *testing.T) {
	store := &fakeStore{
		present: map[string][]time.Time{
			"a@x.com": {day(2024, time.May, 2)},
			"b@y.com": {day(2024, time.May, 2)},
		},
	}

	svc := NewService(store, 12)

	defaulters, err := svc.Defaulters(context.Background(), 2024, time.May, "y.com", nil)
	assert.NoError(t, err)
	if assert.Len(t, defaulters, 1) {
		assert.Equal(t, "b@y.com", defaulters[0].Email)
	}
}

func TestSummary(t *testing.T) {
	store := &fakeStore{
		checkIns: map[string][]model.DayCheckIn{
			"a@x.com": {
				{Date: day(2024, time.May, 2), CheckIn: model.NewTimeOfDay(8, 55, 0)},
				{Date: day(2024, time.May, 3), CheckIn: model.NewTimeOfDay(9, 10, 0)},
			},
		},
		holidays: []model.Holiday{
			{ID: 1, Date: day(2024, time.May, 1), Name: "May Day", Type: model.HolidayPublic},
		},
	}

	svc := NewService(store, 12)

	summary, err := svc.Summary(context.Background(), " A@X.com ", 2024, time.May)
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", summary.Email)
	assert.Equal(t, 2, summary.PresentDays)
	assert.Equal(t, 22, summary.WorkingDays)
	assert.Len(t, summary.Days, 2)
}
