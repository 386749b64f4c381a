package holiday

import "time"

// BankHoliday is a company-scoped public holiday for one calendar year.
// It is consulted only when an attendance entry is flagged as a bank
// holiday; the flagged entry carries a manually chosen pay rate.
type BankHoliday struct {
	ID        string
	CompanyID string
	Title     string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Year returns the calendar year the holiday belongs to.
func (h BankHoliday) Year() int {
	return h.Date.Year()
}
