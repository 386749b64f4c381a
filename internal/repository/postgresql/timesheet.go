package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/rotahr/payroll-backend-go/internal/domain/payroll"
	"github.com/rotahr/payroll-backend-go/internal/domain/timesheet"
	"github.com/rotahr/payroll-backend-go/internal/pkg/clock"
	"github.com/rotahr/payroll-backend-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.Source {
	return &timesheetRepository{db: db}
}

// FetchEntries loads the logged work windows for one employee over a
// period. Rows falling on a company bank holiday come back flagged with
// the holiday's id; pay rates on unflagged rows are placeholders that
// the caller re-derives from the employee's rate profiles.
func (r *timesheetRepository) FetchEntries(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]payroll.AttendanceEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.shift_id, t.start_date, t.start_time, t.end_date, t.end_time,
		       t.pay_rate, t.note, b.id
		FROM timesheet_entries t
		LEFT JOIN bank_holidays b
		       ON b.company_id = t.company_id AND b.date = t.start_date
		WHERE t.employee_id = $1 AND t.company_id = $2
		  AND t.start_date >= $3 AND t.start_date <= $4
		ORDER BY t.start_date, t.start_time
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timesheet entries: %w", err)
	}
	defer rows.Close()

	var entries []payroll.AttendanceEntry
	for rows.Next() {
		var e payroll.AttendanceEntry
		var startTime, endTime string
		if err := rows.Scan(
			&e.ShiftID, &e.StartDate, &startTime, &e.EndDate, &endTime,
			&e.PayRate, &e.Note, &e.BankHolidayID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan timesheet entry: %w", err)
		}
		e.StartTime = clock.Parse(startTime)
		e.EndTime = clock.Parse(endTime)
		e.BankHoliday = e.BankHolidayID != nil
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timesheet entries: %w", err)
	}
	return entries, nil
}
