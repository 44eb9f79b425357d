package model

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time with second precision, detached from any
// date. It is the canonical representation of a check-in time.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

func NewTimeOfDay(h, m, s int) TimeOfDay {
	return TimeOfDay{Hour: h, Minute: m, Second: s}
}

// ClockOf extracts the time-of-day component of t.
func ClockOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// ParseClock parses "HH:MM:SS" or "HH:MM", the formats MySQL TIME columns
// come back as.
func ParseClock(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockOf(t), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid clock value %q", s)
}

func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.Seconds() < o.Seconds()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}
