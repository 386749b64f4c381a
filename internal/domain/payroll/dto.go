package payroll

import (
	"time"

	"github.com/rotahr/payroll-backend-go/internal/pkg/clock"
	"github.com/rotahr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== ATTENDANCE ENTRY DTOs ==========

// AttendanceEntryRequest is the loose wire shape of one attendance row.
// Clock times are HH:mm strings and may be missing or malformed; they
// normalize to 00:00 when converted, so one bad row degrades instead of
// failing the whole payload.
type AttendanceEntryRequest struct {
	ID            *string         `json:"id,omitempty"`
	ShiftID       *string         `json:"shift_id,omitempty"`
	StartDate     string          `json:"start_date"`
	StartTime     string          `json:"start_time"`
	EndDate       string          `json:"end_date"`
	EndTime       string          `json:"end_time"`
	PayRate       decimal.Decimal `json:"pay_rate"`
	Note          string          `json:"note,omitempty"`
	BankHoliday   bool            `json:"bank_holiday"`
	BankHolidayID *string         `json:"bank_holiday_id,omitempty"`
}

func (r *AttendanceEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if r.PayRate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_rate",
			Message: "pay_rate must be non-negative",
		})
	}
	if r.BankHolidayID != nil && !r.BankHoliday {
		errs = append(errs, validator.ValidationError{
			Field:   "bank_holiday_id",
			Message: "bank_holiday_id requires bank_holiday to be true",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity converts the wire shape to the domain entity. Dates must have
// validated; clock strings go through the tolerant parser.
func (r *AttendanceEntryRequest) ToEntity() AttendanceEntry {
	startDate, _ := time.Parse(time.DateOnly, r.StartDate)
	endDate, _ := time.Parse(time.DateOnly, r.EndDate)

	entry := AttendanceEntry{
		ShiftID:       r.ShiftID,
		StartDate:     startDate,
		StartTime:     clock.Parse(r.StartTime),
		EndDate:       endDate,
		EndTime:       clock.Parse(r.EndTime),
		PayRate:       r.PayRate,
		Note:          r.Note,
		BankHoliday:   r.BankHoliday,
		BankHolidayID: r.BankHolidayID,
	}
	if r.ID != nil {
		entry.ID = *r.ID
	}
	return entry
}

type AttendanceEntryResponse struct {
	ID             string          `json:"id"`
	ShiftID        *string         `json:"shift_id,omitempty"`
	StartDate      string          `json:"start_date"`
	StartTime      string          `json:"start_time"`
	EndDate        string          `json:"end_date"`
	EndTime        string          `json:"end_time"`
	PayRate        decimal.Decimal `json:"pay_rate"`
	Note           string          `json:"note,omitempty"`
	BankHoliday    bool            `json:"bank_holiday"`
	BankHolidayID  *string         `json:"bank_holiday_id,omitempty"`
	WorkedMinutes  int             `json:"worked_minutes"`
	LineAmount     decimal.Decimal `json:"line_amount"`
}

// ========== PAYROLL RECORD DTOs ==========

type GeneratePayrollRequest struct {
	EmployeeID string `json:"employee_id"`
	FromDate   string `json:"from_date"`
	ToDate     string `json:"to_date"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	from, fromOK := validator.IsValidDate(r.FromDate)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must be in YYYY-MM-DD format",
		})
	}
	to, toOK := validator.IsValidDate(r.ToDate)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must be in YYYY-MM-DD format",
		})
	}
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must not be before from_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePayrollRecordRequest struct {
	ID      string                   `json:"-"`
	Entries []AttendanceEntryRequest `json:"attendance_list"`
}

func (r *UpdatePayrollRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	for i := range r.Entries {
		if err := r.Entries[i].Validate(); err != nil {
			if entryErrs, ok := err.(validator.ValidationErrors); ok {
				for _, e := range entryErrs {
					errs = append(errs, validator.ValidationError{
						Field:   "attendance_list[" + validator.Itoa(i) + "]." + e.Field,
						Message: e.Message,
					})
				}
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRecordResponse struct {
	ID           string                    `json:"id"`
	EmployeeID   string                    `json:"employee_id"`
	EmployeeName string                    `json:"employee_name,omitempty"`
	CompanyID    string                    `json:"company_id"`
	FromDate     string                    `json:"from_date"`
	ToDate       string                    `json:"to_date"`
	Entries      []AttendanceEntryResponse `json:"attendance_list"`
	TotalMinutes int                       `json:"total_hour"`
	TotalAmount  decimal.Decimal           `json:"total_amount"`
	Status       string                    `json:"status"`
	CreatedAt    string                    `json:"created_at"`
	UpdatedAt    string                    `json:"updated_at"`
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

func (l ListPayrollRecordResponse) TotalPages() int {
	if l.Limit <= 0 {
		return 0
	}
	return int((l.TotalCount + int64(l.Limit) - 1) / int64(l.Limit))
}

type PayrollFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, PayrollStatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, approved, rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
