package holiday

import "context"

type BankHolidayRepository interface {
	Create(ctx context.Context, holiday BankHoliday) (BankHoliday, error)
	GetByID(ctx context.Context, id string, companyID string) (BankHoliday, error)
	ListByYear(ctx context.Context, companyID string, year int) ([]BankHoliday, error)
	Delete(ctx context.Context, id string, companyID string) error
}
