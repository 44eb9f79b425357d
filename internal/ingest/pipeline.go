package ingest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"attendance-tracker/internal/logger"
	"attendance-tracker/internal/model"
	"attendance-tracker/internal/table"

	"github.com/rs/zerolog"
)

// Store is the persistence surface the pipeline writes through. Implemented
// by the MySQL repository; tests inject fakes.
type Store interface {
	FindAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	UpsertAttendance(ctx context.Context, rec model.AttendanceRecord) (created bool, err error)
}

// Diagnostics summarizes one pipeline run. Returned to the caller and logged,
// never persisted.
type Diagnostics struct {
	Columns              Columns `json:"resolved_columns"`
	TotalRows            int     `json:"total_rows"`
	DistinctPairsAnyTime int     `json:"distinct_pairs_any_time"`
	UnparseableTimeRows  int     `json:"unparseable_time_rows"`
	ProcessedGroups      int     `json:"processed_groups"`
	Created              int     `json:"created"`
	Updated              int     `json:"updated"`
}

type Pipeline struct {
	store Store
	log   zerolog.Logger
}

func NewPipeline(store Store) *Pipeline {
	return &Pipeline{
		store: store,
		log:   logger.Get(),
	}
}

type groupKey struct {
	email string
	date  time.Time
}

// Run takes a loaded table through column resolution, per-row normalization
// and earliest-check-in aggregation, then upserts one record per
// (email, date) group. Fatal failures (unresolvable columns) return only the
// error; per-row parse failures just feed the counters.
func (p *Pipeline) Run(ctx context.Context, tbl *table.Table) (*Diagnostics, error) {
	cols, err := ResolveColumns(tbl.Headers)
	if err != nil {
		return nil, err
	}

	diag := &Diagnostics{
		Columns:   cols,
		TotalRows: len(tbl.Rows),
	}

	pairsAnyTime := make(map[groupKey]struct{})
	earliest := make(map[groupKey]model.TimeOfDay)

	for _, row := range tbl.Rows {
		email, emailOK := NormalizeIdentity(tbl.Cell(row, cols.Email))
		day, dateOK := ParseDate(tbl.Cell(row, cols.Date))
		clock, timeOK := ParseTime(tbl.Cell(row, cols.Time))

		if !timeOK {
			diag.UnparseableTimeRows++
		}
		if !emailOK || !dateOK {
			continue
		}

		key := groupKey{email: email, date: day}
		pairsAnyTime[key] = struct{}{}

		// A row without a check-in time cannot make anyone Present.
		if !timeOK {
			continue
		}
		if current, seen := earliest[key]; !seen || clock.Before(current) {
			earliest[key] = clock
		}
	}
	diag.DistinctPairsAnyTime = len(pairsAnyTime)

	keys := make([]groupKey, 0, len(earliest))
	for key := range earliest {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].email != keys[j].email {
			return keys[i].email < keys[j].email
		}
		return keys[i].date.Before(keys[j].date)
	})

	for _, key := range keys {
		clock := earliest[key]

		var accountID *int64
		account, err := p.store.FindAccountByEmail(ctx, key.email)
		if err != nil {
			// Best effort: a failed lookup never blocks the record.
			p.log.Debug().Err(err).Str("email", key.email).Msg("Account lookup failed")
		} else if account != nil {
			accountID = &account.ID
		}

		created, err := p.store.UpsertAttendance(ctx, model.AttendanceRecord{
			AccountID:     accountID,
			EmployeeEmail: key.email,
			Date:          key.date,
			CheckInTime:   &clock,
			Status:        model.DeriveStatus(&clock),
		})
		if err != nil {
			return nil, fmt.Errorf("upsert %s/%s: %w", key.email, key.date.Format("2006-01-02"), err)
		}

		diag.ProcessedGroups++
		if created {
			diag.Created++
		} else {
			diag.Updated++
		}
	}

	return diag, nil
}
