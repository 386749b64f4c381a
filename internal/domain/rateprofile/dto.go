package rateprofile

import (
	"time"

	"github.com/rotahr/payroll-backend-go/internal/pkg/clock"
	"github.com/rotahr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateShiftTemplateRequest struct {
	Name       string `json:"name"`
	StartClock string `json:"start_clock"`
	EndClock   string `json:"end_clock"`
}

type CreateRateProfileRequest struct {
	EmployeeID string                       `json:"employee_id"`
	Name       string                       `json:"name"`
	Shifts     []CreateShiftTemplateRequest `json:"shifts"`
	Rates      map[string]decimal.Decimal   `json:"rates"` // weekday name -> hourly rate
}

func (r *CreateRateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	for i, s := range r.Shifts {
		field := "shifts[" + validator.Itoa(i) + "]"
		if validator.IsEmpty(s.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".name",
				Message: "name is required",
			})
		}
		if !clock.IsValid(s.StartClock) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".start_clock",
				Message: "start_clock must be in HH:mm format",
			})
		}
		if !clock.IsValid(s.EndClock) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".end_clock",
				Message: "end_clock must be in HH:mm format",
			})
		}
	}

	for day, rate := range r.Rates {
		if !validator.IsValidWeekday(day) {
			errs = append(errs, validator.ValidationError{
				Field:   "rates." + day,
				Message: "unknown weekday name",
			})
			continue
		}
		if rate.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "rates." + day,
				Message: "rate must be non-negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity converts the request to a RateProfile. Validate must have
// passed; clock strings are parsed tolerantly at this point.
func (r *CreateRateProfileRequest) ToEntity(companyID string) RateProfile {
	profile := RateProfile{
		EmployeeID: r.EmployeeID,
		CompanyID:  companyID,
		Name:       r.Name,
		Rates:      make(WeeklyRateTable, len(r.Rates)),
	}
	for _, s := range r.Shifts {
		profile.Shifts = append(profile.Shifts, ShiftTemplate{
			Name:       s.Name,
			StartClock: clock.Parse(s.StartClock),
			EndClock:   clock.Parse(s.EndClock),
		})
	}
	for day, rate := range r.Rates {
		if weekday, ok := validator.ParseWeekday(day); ok {
			profile.Rates[weekday] = rate
		}
	}
	return profile
}

type ShiftTemplateResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	StartClock string `json:"start_clock"`
	EndClock   string `json:"end_clock"`
}

type RateProfileResponse struct {
	ID         string                     `json:"id"`
	EmployeeID string                     `json:"employee_id"`
	CompanyID  string                     `json:"company_id"`
	Name       string                     `json:"name"`
	Shifts     []ShiftTemplateResponse    `json:"shifts"`
	Rates      map[string]decimal.Decimal `json:"rates"`
	CreatedAt  string                     `json:"created_at"`
	UpdatedAt  string                     `json:"updated_at"`
}

// ToResponse maps an entity to its transport shape; weekday keys cross
// the boundary as English day names, clock times as HH:mm.
func ToResponse(p RateProfile) RateProfileResponse {
	resp := RateProfileResponse{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		CompanyID:  p.CompanyID,
		Name:       p.Name,
		Shifts:     make([]ShiftTemplateResponse, 0, len(p.Shifts)),
		Rates:      make(map[string]decimal.Decimal, len(p.Rates)),
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
	}
	for _, s := range p.Shifts {
		resp.Shifts = append(resp.Shifts, ShiftTemplateResponse{
			ID:         s.ID,
			Name:       s.Name,
			StartClock: s.StartClock.String(),
			EndClock:   s.EndClock.String(),
		})
	}
	for day, rate := range p.Rates {
		resp.Rates[day.String()] = rate
	}
	return resp
}
