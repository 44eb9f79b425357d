package ingest

import (
	"strings"

	"attendance-tracker/pkg/errors"
)

// Columns names the headers resolved for the three required fields.
type Columns struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Email string `json:"email"`
}

// timeCandidates are exact header names tried first for the check-in column,
// in priority order.
var timeCandidates = []string{"in time", "in_time", "intime", "check in time", "check-in", "check_in"}

// ResolveColumns inspects the (already lowercased, trimmed) header names and
// picks the ones carrying date, check-in time and email. Each field is an
// ordered rule chain; the first rule producing a header wins. When any field
// stays unresolved the whole resolution fails, naming the missing labels.
func ResolveColumns(headers []string) (Columns, error) {
	cols := Columns{
		Date:  resolveDate(headers),
		Time:  resolveTime(headers),
		Email: resolveEmail(headers),
	}

	var missing []string
	if cols.Date == "" {
		missing = append(missing, "Date")
	}
	if cols.Time == "" {
		missing = append(missing, "Time")
	}
	if cols.Email == "" {
		missing = append(missing, "Email")
	}
	if len(missing) > 0 {
		return Columns{}, errors.NewMissingColumnsError(missing...)
	}

	return cols, nil
}

func resolveDate(headers []string) string {
	if exact(headers, "date") {
		return "date"
	}
	// "report date" and "month-end date" style headers are deliberately
	// skipped; they describe the sheet, not the attendance day.
	return first(headers, func(h string) bool {
		return strings.Contains(h, "date") &&
			!strings.Contains(h, "month") &&
			!strings.Contains(h, "report")
	})
}

func resolveTime(headers []string) string {
	for _, candidate := range timeCandidates {
		if exact(headers, candidate) {
			return candidate
		}
	}
	if exact(headers, "time") {
		return "time"
	}
	// Anything checkout-flavoured must not win.
	return first(headers, func(h string) bool {
		return strings.Contains(h, "time") &&
			!strings.Contains(h, "out") &&
			!strings.Contains(h, "logout")
	})
}

func resolveEmail(headers []string) string {
	return first(headers, func(h string) bool {
		return strings.Contains(h, "email")
	})
}

func exact(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}

func first(headers []string, match func(string) bool) string {
	for _, h := range headers {
		if match(h) {
			return h
		}
	}
	return ""
}
