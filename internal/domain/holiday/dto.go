package holiday

import (
	"time"

	"github.com/rotahr/payroll-backend-go/internal/pkg/validator"
)

type CreateBankHolidayRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"` // YYYY-MM-DD
}

func (r *CreateBankHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BankHolidayResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Year      int    `json:"year"`
}

func ToResponse(h BankHoliday) BankHolidayResponse {
	return BankHolidayResponse{
		ID:        h.ID,
		CompanyID: h.CompanyID,
		Title:     h.Title,
		Date:      h.Date.Format(time.DateOnly),
		Year:      h.Year(),
	}
}
