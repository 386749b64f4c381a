package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rotahr/payroll-backend-go/internal/domain/payroll"
	"github.com/rotahr/payroll-backend-go/internal/pkg/clock"
	"github.com/rotahr/payroll-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	created := record
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO payroll_records (id, company_id, employee_id, from_date, to_date, total_minutes, total_amount, status)
			VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`
		if err := tx.QueryRow(ctx, query,
			record.CompanyID, record.EmployeeID, record.FromDate, record.ToDate,
			record.TotalMinutes, record.TotalAmount, record.Status,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
			return fmt.Errorf("failed to create payroll record: %w", err)
		}

		return insertEntries(ctx, tx, created.ID, created.Entries)
	})
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	return created, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, from_date, to_date, total_minutes, total_amount, status, created_at, updated_at
		FROM payroll_records
		WHERE id = $1 AND company_id = $2
	`

	var record payroll.PayrollRecord
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&record.ID, &record.CompanyID, &record.EmployeeID, &record.FromDate, &record.ToDate,
		&record.TotalMinutes, &record.TotalAmount, &record.Status, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	if record.Entries, err = r.entriesFor(ctx, record.ID); err != nil {
		return payroll.PayrollRecord{}, err
	}
	return record, nil
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, fromDate, toDate string, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, from_date, to_date, total_minutes, total_amount, status, created_at, updated_at
		FROM payroll_records
		WHERE employee_id = $1 AND from_date = $2 AND to_date = $3 AND company_id = $4
	`

	var record payroll.PayrollRecord
	err := q.QueryRow(ctx, query, employeeID, fromDate, toDate, companyID).Scan(
		&record.ID, &record.CompanyID, &record.EmployeeID, &record.FromDate, &record.ToDate,
		&record.TotalMinutes, &record.TotalAmount, &record.Status, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record by period: %w", err)
	}
	return record, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter, companyID string) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE company_id = $1"
	args := []interface{}{companyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		where += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM payroll_records " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT id, company_id, employee_id, from_date, to_date, total_minutes, total_amount, status, created_at, updated_at
		FROM payroll_records
		%s
		ORDER BY from_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		var record payroll.PayrollRecord
		if err := rows.Scan(
			&record.ID, &record.CompanyID, &record.EmployeeID, &record.FromDate, &record.ToDate,
			&record.TotalMinutes, &record.TotalAmount, &record.Status, &record.CreatedAt, &record.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll records: %w", err)
	}
	return records, totalCount, nil
}

// ReplaceEntries swaps the attendance list and both totals in one
// transaction. The totals update compare-and-sets on status so a record
// that left pending between the caller's check and this commit fails
// with ErrRecordLocked instead of being overwritten.
func (r *payrollRepository) ReplaceEntries(ctx context.Context, id string, companyID string, entries []payroll.AttendanceEntry, totals payroll.Totals) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE payroll_records
			SET total_minutes = $1, total_amount = $2, updated_at = NOW()
			WHERE id = $3 AND company_id = $4 AND status = 'pending'
		`, totals.Minutes, totals.Amount, id, companyID)
		if err != nil {
			return fmt.Errorf("failed to update payroll totals: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return r.lockedOrMissing(ctx, tx, id, companyID)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM attendance_entries WHERE payroll_record_id = $1`, id); err != nil {
			return fmt.Errorf("failed to clear attendance entries: %w", err)
		}
		return insertEntries(ctx, tx, id, entries)
	})
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, companyID string, target payroll.PayrollStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payroll_records
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND status = 'pending'
	`, target, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to update payroll status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.lockedOrMissing(ctx, q, id, companyID)
	}
	return nil
}

// lockedOrMissing distinguishes a CAS miss caused by a non-pending
// record from one caused by a record that does not exist.
func (r *payrollRepository) lockedOrMissing(ctx context.Context, q database.Querier, id string, companyID string) error {
	var status payroll.PayrollStatus
	err := q.QueryRow(ctx, `SELECT status FROM payroll_records WHERE id = $1 AND company_id = $2`, id, companyID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.ErrPayrollRecordNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check payroll record status: %w", err)
	}
	return payroll.ErrRecordLocked
}

func insertEntries(ctx context.Context, tx pgx.Tx, recordID string, entries []payroll.AttendanceEntry) error {
	query := `
		INSERT INTO attendance_entries (
			id, payroll_record_id, shift_id, start_date, start_time, end_date, end_time,
			pay_rate, note, bank_holiday, bank_holiday_id, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for i, e := range entries {
		if _, err := tx.Exec(ctx, query,
			e.ID, recordID, e.ShiftID, e.StartDate, e.StartTime.String(), e.EndDate, e.EndTime.String(),
			e.PayRate, e.Note, e.BankHoliday, e.BankHolidayID, i,
		); err != nil {
			return fmt.Errorf("failed to insert attendance entry: %w", err)
		}
	}
	return nil
}

func (r *payrollRepository) entriesFor(ctx context.Context, recordID string) ([]payroll.AttendanceEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, shift_id, start_date, start_time, end_date, end_time,
		       pay_rate, note, bank_holiday, bank_holiday_id
		FROM attendance_entries
		WHERE payroll_record_id = $1
		ORDER BY position
	`
	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance entries: %w", err)
	}
	defer rows.Close()

	var entries []payroll.AttendanceEntry
	for rows.Next() {
		var e payroll.AttendanceEntry
		var startTime, endTime string
		if err := rows.Scan(
			&e.ID, &e.ShiftID, &e.StartDate, &startTime, &e.EndDate, &endTime,
			&e.PayRate, &e.Note, &e.BankHoliday, &e.BankHolidayID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		e.StartTime = clock.Parse(startTime)
		e.EndTime = clock.Parse(endTime)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance entries: %w", err)
	}
	return entries, nil
}
