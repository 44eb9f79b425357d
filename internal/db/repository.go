package db

import (
	"context"
	"database/sql"
	"time"

	"attendance-tracker/internal/model"
	"attendance-tracker/pkg/errors"
)

const dateLayout = "2006-01-02"

type Repository interface {
	FindAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	UpsertAttendance(ctx context.Context, rec model.AttendanceRecord) (created bool, err error)
	GetFile(ctx context.Context, fileID int64) (*model.File, error)
	UpdateFileStatus(ctx context.Context, fileID int64, status model.FileStatus, errorMessage *string) error
	PresentDates(ctx context.Context, email string, from, to time.Time) ([]time.Time, error)
	EarliestCheckIns(ctx context.Context, email string, from, to time.Time) ([]model.DayCheckIn, error)
	DistinctEmails(ctx context.Context, from, to time.Time, filter string) ([]string, error)
	ListHolidays(ctx context.Context, from, to time.Time) ([]model.Holiday, error)
	ClearAttendance(ctx context.Context) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT id, username, email FROM accounts WHERE LOWER(email) = ? LIMIT 1`

	var account model.Account
	err := r.db.QueryRowContext(ctx, query, email).Scan(&account.ID, &account.Username, &account.Email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &account, nil
}

// UpsertAttendance writes one employee-day as a single statement against the
// unique (employee_email, date) key, so concurrent uploads of the same key
// serialize inside MySQL. Affected rows distinguishes insert (1) from update
// (2, or 0 when the stored values already match).
func (r *repository) UpsertAttendance(ctx context.Context, rec model.AttendanceRecord) (bool, error) {
	query := `INSERT INTO attendance (account_id, employee_email, date, check_in_time, status)
			  VALUES (?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
				  account_id = VALUES(account_id),
				  check_in_time = VALUES(check_in_time),
				  status = VALUES(status)`

	var checkIn interface{}
	if rec.CheckInTime != nil {
		checkIn = rec.CheckInTime.String()
	}

	result, err := r.db.ExecContext(ctx, query,
		rec.AccountID, rec.EmployeeEmail, rec.Date.Format(dateLayout), checkIn, string(rec.Status))
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *repository) GetFile(ctx context.Context, fileID int64) (*model.File, error) {
	query := `SELECT id, object_key, status, error_message, created_at, updated_at FROM files WHERE id = ?`

	var file model.File
	err := r.db.QueryRowContext(ctx, query, fileID).Scan(
		&file.ID, &file.ObjectKey, &file.Status,
		&file.ErrorMessage, &file.CreatedAt, &file.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &file, nil
}

func (r *repository) UpdateFileStatus(ctx context.Context, fileID int64, status model.FileStatus, errorMessage *string) error {
	query := `UPDATE files SET status = ?, error_message = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, status, errorMessage, fileID)
	return err
}

func (r *repository) PresentDates(ctx context.Context, email string, from, to time.Time) ([]time.Time, error) {
	query := `SELECT DISTINCT date FROM attendance
			  WHERE employee_email = ? AND date BETWEEN ? AND ? AND check_in_time IS NOT NULL
			  ORDER BY date`

	rows, err := r.db.QueryContext(ctx, query, email, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}

func (r *repository) EarliestCheckIns(ctx context.Context, email string, from, to time.Time) ([]model.DayCheckIn, error) {
	query := `SELECT date, MIN(check_in_time) FROM attendance
			  WHERE employee_email = ? AND date BETWEEN ? AND ? AND check_in_time IS NOT NULL
			  GROUP BY date ORDER BY date`

	rows, err := r.db.QueryContext(ctx, query, email, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkIns []model.DayCheckIn
	for rows.Next() {
		var d time.Time
		var raw []byte
		if err := rows.Scan(&d, &raw); err != nil {
			return nil, err
		}
		clock, err := model.ParseClock(string(raw))
		if err != nil {
			return nil, err
		}
		checkIns = append(checkIns, model.DayCheckIn{Date: d, CheckIn: clock})
	}

	return checkIns, rows.Err()
}

func (r *repository) DistinctEmails(ctx context.Context, from, to time.Time, filter string) ([]string, error) {
	query := `SELECT DISTINCT employee_email FROM attendance
			  WHERE date BETWEEN ? AND ? AND employee_email <> ''`
	args := []interface{}{from.Format(dateLayout), to.Format(dateLayout)}
	if filter != "" {
		query += ` AND employee_email LIKE ?`
		args = append(args, "%"+filter+"%")
	}
	query += ` ORDER BY employee_email`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}

	return emails, rows.Err()
}

func (r *repository) ListHolidays(ctx context.Context, from, to time.Time) ([]model.Holiday, error) {
	query := `SELECT id, date, name, holiday_type FROM holidays WHERE date BETWEEN ? AND ? ORDER BY date`

	rows, err := r.db.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []model.Holiday
	for rows.Next() {
		var h model.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.Type); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}

func (r *repository) ClearAttendance(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM attendance`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
