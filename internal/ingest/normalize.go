package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"attendance-tracker/internal/model"
)

// serialEpoch is the spreadsheet serial-number epoch: serial 1 is
// 1899-12-31, fractional days encode time-of-day.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Dates are parsed day-first: 03/04/2024 is the 3rd of April.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2006-01-02",
	"2 Jan 2006",
	"2-Jan-2006",
	"2 January 2006",
}

// Day-first date-time layouts tried by the generic step of the time chain.
var dayFirstDateTimeLayouts = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
}

// NormalizeIdentity canonicalizes an email-like cell: trim then lowercase.
// An empty result means the row has no usable identity.
func NormalizeIdentity(raw string) (string, bool) {
	id := strings.ToLower(strings.TrimSpace(raw))
	if id == "" {
		return "", false
	}
	return id, true
}

// ParseDate parses a date cell day-first and truncates any time component.
func ParseDate(raw string) (time.Time, bool) {
	s := cleanCell(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnight(t), true
		}
	}
	for _, layout := range dayFirstDateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnight(t), true
		}
	}
	return time.Time{}, false
}

// ParseTime runs the cascading strategy chain over a check-in cell. Each step
// is tried only when everything before it produced nothing:
//
//  1. generic day-first date-time parse, keeping the clock component; a bare
//     date with no clock at all parses to midnight
//  2. day/month/year HH:MM:SS
//  3. month/day/year HH:MM:SS (catches sheets exported month-first, whose
//     values fail the day-first step on days > 12)
//  4. bare HH:MM:SS, then HH:MM
//  5. numeric spreadsheet serial, fractional day = time-of-day
func ParseTime(raw string) (model.TimeOfDay, bool) {
	s := cleanCell(raw)
	if s == "" {
		return model.TimeOfDay{}, false
	}

	for _, layout := range dayFirstDateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.ClockOf(t), true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.ClockOf(t), true
		}
	}
	if t, err := time.Parse("02/01/2006 15:04:05", s); err == nil {
		return model.ClockOf(t), true
	}
	if t, err := time.Parse("01/02/2006 15:04:05", s); err == nil {
		return model.ClockOf(t), true
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return model.ClockOf(t), true
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 0 {
		return serialClock(serial), true
	}

	return model.TimeOfDay{}, false
}

// SerialDateTime expands a spreadsheet serial into a full date-time off the
// 1899-12-30 epoch.
func SerialDateTime(serial float64) time.Time {
	days := math.Floor(serial)
	secs := int(math.Round((serial - days) * 86400))
	return serialEpoch.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second)
}

// serialClock keeps only the time-of-day component of the serial. Rounding
// to whole seconds inside SerialDateTime absorbs float representation error,
// so .5 is exactly 12:00:00.
func serialClock(serial float64) model.TimeOfDay {
	return model.ClockOf(SerialDateTime(serial))
}

// cleanCell swaps non-breaking spaces for ordinary ones and trims. Exported
// sheets frequently pad cells with NBSP.
func cleanCell(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, " ", " "))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
