package holiday

import "context"

type BankHolidayService interface {
	Create(ctx context.Context, req CreateBankHolidayRequest) (BankHolidayResponse, error)
	ListByYear(ctx context.Context, year int) ([]BankHolidayResponse, error)
	Delete(ctx context.Context, id string) error
}
