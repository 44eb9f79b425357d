// Package report builds aggregate attendance views over persisted records:
// the monthly defaulter list and per-employee presence summaries. It returns
// structured data only; rendering belongs to callers.
package report

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"attendance-tracker/internal/model"
)

// Store is the slice of the repository the reports read from.
type Store interface {
	FindAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	PresentDates(ctx context.Context, email string, from, to time.Time) ([]time.Time, error)
	EarliestCheckIns(ctx context.Context, email string, from, to time.Time) ([]model.DayCheckIn, error)
	DistinctEmails(ctx context.Context, from, to time.Time, filter string) ([]string, error)
	ListHolidays(ctx context.Context, from, to time.Time) ([]model.Holiday, error)
}

type Service struct {
	store     Store
	threshold int
}

// NewService wires the report store with the configured present-day
// threshold. Callers may override the threshold per request.
func NewService(store Store, thresholdDays int) *Service {
	return &Service{store: store, threshold: thresholdDays}
}

type Defaulter struct {
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	PresentDays int     `json:"present_days"`
	TotalDays   int     `json:"total_days"`
	Percentage  float64 `json:"percentage"`
}

type MonthlySummary struct {
	Email       string             `json:"email"`
	Year        int                `json:"year"`
	Month       time.Month         `json:"month"`
	PresentDays int                `json:"present_days"`
	WorkingDays int                `json:"working_days"`
	Days        []model.DayCheckIn `json:"days"`
}

// MonthBounds returns the first and last day of a month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// WorkingDays walks the range and keeps weekdays that are not holidays.
func WorkingDays(first, last time.Time, holidays map[time.Time]struct{}) []time.Time {
	var days []time.Time
	for cur := first; !cur.After(last); cur = cur.AddDate(0, 0, 1) {
		if cur.Weekday() == time.Saturday || cur.Weekday() == time.Sunday {
			continue
		}
		if _, isHoliday := holidays[cur]; isHoliday {
			continue
		}
		days = append(days, cur)
	}
	return days
}

// Defaulters lists every employee whose present working days in the month
// fall below the threshold. Employees without a registered account are
// included; their name falls back to the email's local part.
func (s *Service) Defaulters(ctx context.Context, year int, month time.Month, emailFilter string, thresholdOverride *int) ([]Defaulter, error) {
	threshold := s.threshold
	if thresholdOverride != nil && *thresholdOverride >= 0 {
		threshold = *thresholdOverride
	}

	first, last := MonthBounds(year, month)

	holidays, err := s.holidaySet(ctx, first, last)
	if err != nil {
		return nil, err
	}
	working := WorkingDays(first, last, holidays)
	totalDays := len(working)
	if totalDays == 0 {
		totalDays = 1
	}
	workingSet := make(map[time.Time]struct{}, len(working))
	for _, d := range working {
		workingSet[d] = struct{}{}
	}

	emails, err := s.store.DistinctEmails(ctx, first, last, emailFilter)
	if err != nil {
		return nil, err
	}

	var defaulters []Defaulter
	for _, email := range emails {
		dates, err := s.store.PresentDates(ctx, email, first, last)
		if err != nil {
			return nil, err
		}

		presentDays := 0
		for _, d := range dates {
			if _, ok := workingSet[normalizeDay(d)]; ok {
				presentDays++
			}
		}
		if presentDays >= threshold {
			continue
		}

		defaulters = append(defaulters, Defaulter{
			Email:       email,
			Name:        s.displayName(ctx, email),
			PresentDays: presentDays,
			TotalDays:   totalDays,
			Percentage:  percentage(presentDays, totalDays),
		})
	}

	sort.Slice(defaulters, func(i, j int) bool {
		if defaulters[i].Percentage != defaulters[j].Percentage {
			return defaulters[i].Percentage < defaulters[j].Percentage
		}
		return strings.ToLower(defaulters[i].Name) < strings.ToLower(defaulters[j].Name)
	})

	return defaulters, nil
}

// Summary reports one employee's month: each present date with its earliest
// check-in, plus present and working-day counts.
func (s *Service) Summary(ctx context.Context, email string, year int, month time.Month) (*MonthlySummary, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	first, last := MonthBounds(year, month)

	holidays, err := s.holidaySet(ctx, first, last)
	if err != nil {
		return nil, err
	}

	days, err := s.store.EarliestCheckIns(ctx, email, first, last)
	if err != nil {
		return nil, err
	}

	return &MonthlySummary{
		Email:       email,
		Year:        year,
		Month:       month,
		PresentDays: len(days),
		WorkingDays: len(WorkingDays(first, last, holidays)),
		Days:        days,
	}, nil
}

func (s *Service) holidaySet(ctx context.Context, first, last time.Time) (map[time.Time]struct{}, error) {
	holidays, err := s.store.ListHolidays(ctx, first, last)
	if err != nil {
		return nil, err
	}
	set := make(map[time.Time]struct{}, len(holidays))
	for _, h := range holidays {
		set[normalizeDay(h.Date)] = struct{}{}
	}
	return set, nil
}

func (s *Service) displayName(ctx context.Context, email string) string {
	if account, err := s.store.FindAccountByEmail(ctx, email); err == nil && account != nil && account.Username != "" {
		return account.Username
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func percentage(part, total int) float64 {
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

func normalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
