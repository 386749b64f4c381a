package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rotahr/payroll-backend-go/internal/domain/rateprofile"
	"github.com/rotahr/payroll-backend-go/internal/pkg/clock"
	"github.com/rotahr/payroll-backend-go/internal/pkg/database"
	"github.com/rotahr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type rateProfileRepository struct {
	db *database.DB
}

func NewRateProfileRepository(db *database.DB) rateprofile.RateProfileRepository {
	return &rateProfileRepository{db: db}
}

// ratesToJSON flattens the weekly rate table to a weekday-name keyed
// JSON object for the jsonb column.
func ratesToJSON(rates rateprofile.WeeklyRateTable) ([]byte, error) {
	out := make(map[string]decimal.Decimal, len(rates))
	for day, rate := range rates {
		out[day.String()] = rate
	}
	return json.Marshal(out)
}

func ratesFromJSON(raw []byte) (rateprofile.WeeklyRateTable, error) {
	var flat map[string]decimal.Decimal
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("failed to decode weekly rates: %w", err)
	}
	table := make(rateprofile.WeeklyRateTable, len(flat))
	for name, rate := range flat {
		if day, ok := validator.ParseWeekday(name); ok {
			table[day] = rate
		}
	}
	return table, nil
}

func (r *rateProfileRepository) Create(ctx context.Context, profile rateprofile.RateProfile) (rateprofile.RateProfile, error) {
	created := profile
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		rates, err := ratesToJSON(profile.Rates)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO rate_profiles (id, company_id, employee_id, name, rates)
			VALUES (gen_random_uuid(), $1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`
		if err := tx.QueryRow(ctx, query,
			profile.CompanyID, profile.EmployeeID, profile.Name, rates,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
			return fmt.Errorf("failed to create rate profile: %w", err)
		}

		shiftQuery := `
			INSERT INTO shift_templates (id, rate_profile_id, name, start_clock, end_clock)
			VALUES (gen_random_uuid(), $1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`
		for i := range profile.Shifts {
			s := &created.Shifts[i]
			s.RateProfileID = created.ID
			if err := tx.QueryRow(ctx, shiftQuery,
				created.ID, s.Name, s.StartClock.String(), s.EndClock.String(),
			).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
				return fmt.Errorf("failed to create shift template: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return rateprofile.RateProfile{}, err
	}
	return created, nil
}

func (r *rateProfileRepository) GetByID(ctx context.Context, id string, companyID string) (rateprofile.RateProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, name, rates, created_at, updated_at
		FROM rate_profiles
		WHERE id = $1 AND company_id = $2
	`

	var p rateprofile.RateProfile
	var rawRates []byte
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.CompanyID, &p.EmployeeID, &p.Name, &rawRates, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rateprofile.RateProfile{}, rateprofile.ErrRateProfileNotFound
		}
		return rateprofile.RateProfile{}, fmt.Errorf("failed to get rate profile: %w", err)
	}

	if p.Rates, err = ratesFromJSON(rawRates); err != nil {
		return rateprofile.RateProfile{}, err
	}
	if p.Shifts, err = r.shiftsFor(ctx, []string{p.ID}); err != nil {
		return rateprofile.RateProfile{}, err
	}
	return p, nil
}

func (r *rateProfileRepository) GetByEmployeeID(ctx context.Context, employeeID string, companyID string) ([]rateprofile.RateProfile, error) {
	query := `
		SELECT id, company_id, employee_id, name, rates, created_at, updated_at
		FROM rate_profiles
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY created_at
	`
	return r.queryProfiles(ctx, query, employeeID, companyID)
}

func (r *rateProfileRepository) List(ctx context.Context, companyID string) ([]rateprofile.RateProfile, error) {
	query := `
		SELECT id, company_id, employee_id, name, rates, created_at, updated_at
		FROM rate_profiles
		WHERE company_id = $1
		ORDER BY created_at
	`
	return r.queryProfiles(ctx, query, companyID)
}

func (r *rateProfileRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	// shift_templates rows go with the profile via ON DELETE CASCADE
	tag, err := q.Exec(ctx, `DELETE FROM rate_profiles WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete rate profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return rateprofile.ErrRateProfileNotFound
	}
	return nil
}

func (r *rateProfileRepository) queryProfiles(ctx context.Context, query string, args ...interface{}) ([]rateprofile.RateProfile, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate profiles: %w", err)
	}
	defer rows.Close()

	var profiles []rateprofile.RateProfile
	var ids []string
	for rows.Next() {
		var p rateprofile.RateProfile
		var rawRates []byte
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.EmployeeID, &p.Name, &rawRates, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rate profile: %w", err)
		}
		if p.Rates, err = ratesFromJSON(rawRates); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rate profiles: %w", err)
	}

	if len(profiles) == 0 {
		return profiles, nil
	}

	shifts, err := r.shiftsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	byProfile := make(map[string][]rateprofile.ShiftTemplate)
	for _, s := range shifts {
		byProfile[s.RateProfileID] = append(byProfile[s.RateProfileID], s)
	}
	for i := range profiles {
		profiles[i].Shifts = byProfile[profiles[i].ID]
	}
	return profiles, nil
}

func (r *rateProfileRepository) shiftsFor(ctx context.Context, profileIDs []string) ([]rateprofile.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, rate_profile_id, name, start_clock, end_clock, created_at, updated_at
		FROM shift_templates
		WHERE rate_profile_id = ANY($1)
		ORDER BY name
	`
	rows, err := q.Query(ctx, query, profileIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}
	defer rows.Close()

	var shifts []rateprofile.ShiftTemplate
	for rows.Next() {
		var s rateprofile.ShiftTemplate
		var startClock, endClock string
		if err := rows.Scan(&s.ID, &s.RateProfileID, &s.Name, &startClock, &endClock, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		s.StartClock = clock.Parse(startClock)
		s.EndClock = clock.Parse(endClock)
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift templates: %w", err)
	}
	return shifts, nil
}
