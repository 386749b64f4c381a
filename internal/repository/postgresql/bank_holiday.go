package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotahr/payroll-backend-go/internal/domain/holiday"
	"github.com/rotahr/payroll-backend-go/internal/pkg/database"
)

type bankHolidayRepository struct {
	db *database.DB
}

func NewBankHolidayRepository(db *database.DB) holiday.BankHolidayRepository {
	return &bankHolidayRepository{db: db}
}

func (r *bankHolidayRepository) Create(ctx context.Context, h holiday.BankHoliday) (holiday.BankHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO bank_holidays (id, company_id, title, date)
		VALUES (gen_random_uuid(), $1, $2, $3)
		RETURNING id, company_id, title, date, created_at, updated_at
	`

	var created holiday.BankHoliday
	err := q.QueryRow(ctx, query, h.CompanyID, h.Title, h.Date).Scan(
		&created.ID, &created.CompanyID, &created.Title, &created.Date, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_bank_holiday_company_date") {
			return holiday.BankHoliday{}, holiday.ErrHolidayExists
		}
		return holiday.BankHoliday{}, fmt.Errorf("failed to create bank holiday: %w", err)
	}
	return created, nil
}

func (r *bankHolidayRepository) GetByID(ctx context.Context, id string, companyID string) (holiday.BankHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, title, date, created_at, updated_at
		FROM bank_holidays
		WHERE id = $1 AND company_id = $2
	`

	var h holiday.BankHoliday
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&h.ID, &h.CompanyID, &h.Title, &h.Date, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.BankHoliday{}, holiday.ErrHolidayNotFound
		}
		return holiday.BankHoliday{}, fmt.Errorf("failed to get bank holiday: %w", err)
	}
	return h, nil
}

func (r *bankHolidayRepository) ListByYear(ctx context.Context, companyID string, year int) ([]holiday.BankHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, title, date, created_at, updated_at
		FROM bank_holidays
		WHERE company_id = $1 AND EXTRACT(YEAR FROM date) = $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, companyID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.BankHoliday
	for rows.Next() {
		var h holiday.BankHoliday
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.Title, &h.Date, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bank holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bank holidays: %w", err)
	}
	return holidays, nil
}

func (r *bankHolidayRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM bank_holidays WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete bank holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
