package model

import "time"

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "P"
	StatusAbsent  AttendanceStatus = "A"
)

// DeriveStatus implements the presence rule: a record is Present exactly when
// it carries a check-in time.
func DeriveStatus(checkIn *TimeOfDay) AttendanceStatus {
	if checkIn != nil {
		return StatusPresent
	}
	return StatusAbsent
}

// AttendanceRecord is one employee-day. Uniquely keyed by
// (EmployeeEmail, Date); AccountID is a best-effort link to a registered
// account and may stay nil forever.
type AttendanceRecord struct {
	ID            int64            `json:"id" db:"id"`
	AccountID     *int64           `json:"account_id,omitempty" db:"account_id"`
	EmployeeEmail string           `json:"employee_email" db:"employee_email"`
	Date          time.Time        `json:"date" db:"date"`
	CheckInTime   *TimeOfDay       `json:"check_in_time,omitempty" db:"check_in_time"`
	Status        AttendanceStatus `json:"status" db:"status"`
}

// Account is a registered user that attendance rows may be linked to.
type Account struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
}

type HolidayType string

const (
	HolidayPublic     HolidayType = "PUBLIC"
	HolidayRestricted HolidayType = "RESTRICTED"
)

type Holiday struct {
	ID   int64       `json:"id" db:"id"`
	Date time.Time   `json:"date" db:"date"`
	Name string      `json:"name" db:"name"`
	Type HolidayType `json:"holiday_type" db:"holiday_type"`
}

// DayCheckIn pairs a date with the earliest recorded check-in on that date.
type DayCheckIn struct {
	Date    time.Time `json:"date"`
	CheckIn TimeOfDay `json:"check_in"`
}
