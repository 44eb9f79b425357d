package ingest

import (
	"testing"
	"time"

	"attendance-tracker/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdentity(t *testing.T) {
	id, ok := NormalizeIdentity("  A.Person@Example.COM ")
	assert.True(t, ok)
	assert.Equal(t, "a.person@example.com", id)

	_, ok = NormalizeIdentity("   ")
	assert.False(t, ok)
}

func TestParseDateDayFirst(t *testing.T) {
	// 03/04/2024 is the 3rd of April, not the 4th of March.
	d, ok := ParseDate("03/04/2024")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC), d)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"01/05/2024", time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), true},
		{"2024-05-01", time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), true},
		{"7/8/2023", time.Date(2023, time.August, 7, 0, 0, 0, 0, time.UTC), true},
		{"15 Jan 2024", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), true},
		{"01/05/2024 09:30", time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"not a date", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseTimeFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want model.TimeOfDay
	}{
		{"time only with seconds", "08:55:30", model.NewTimeOfDay(8, 55, 30)},
		{"time only no seconds", "9:15", model.NewTimeOfDay(9, 15, 0)},
		{"day-first datetime", "01/05/2024 09:00:00", model.NewTimeOfDay(9, 0, 0)},
		{"day-first datetime no seconds", "01/05/2024 09:00", model.NewTimeOfDay(9, 0, 0)},
		{"month-first datetime fallback", "04/25/2024 09:30:00", model.NewTimeOfDay(9, 30, 0)},
		{"iso datetime", "2024-05-01 07:45:10", model.NewTimeOfDay(7, 45, 10)},
		{"nbsp padding", " 09:10:00 ", model.NewTimeOfDay(9, 10, 0)},
		{"bare date parses to midnight", "01/05/2024", model.NewTimeOfDay(0, 0, 0)},
		{"bare iso date parses to midnight", "2024-05-01", model.NewTimeOfDay(0, 0, 0)},
		{"spreadsheet serial half day", "45000.5", model.NewTimeOfDay(12, 0, 0)},
		{"spreadsheet serial quarter day", "45000.25", model.NewTimeOfDay(6, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTime(tt.in)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimeFailure(t *testing.T) {
	for _, in := range []string{"", "   ", "bad", "-1.5", "25:99"} {
		t.Run(in, func(t *testing.T) {
			_, ok := ParseTime(in)
			assert.False(t, ok)
		})
	}
}

func TestSerialDateTime(t *testing.T) {
	// Serial 45000.5 is 2023-03-15 noon off the 1899-12-30 epoch.
	got := SerialDateTime(45000.5)
	assert.Equal(t, time.Date(2023, time.March, 15, 12, 0, 0, 0, time.UTC), got)
}
