package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rotahr/payroll-backend-go/internal/domain/holiday"
	"github.com/rotahr/payroll-backend-go/internal/pkg/database"
)

type BankHolidayServiceImpl struct {
	db   *database.DB
	repo holiday.BankHolidayRepository
}

func NewBankHolidayService(db *database.DB, repo holiday.BankHolidayRepository) holiday.BankHolidayService {
	return &BankHolidayServiceImpl{db: db, repo: repo}
}

func companyFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

func (s *BankHolidayServiceImpl) Create(ctx context.Context, req holiday.CreateBankHolidayRequest) (holiday.BankHolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.BankHolidayResponse{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return holiday.BankHolidayResponse{}, err
	}

	date, _ := time.Parse(time.DateOnly, req.Date)
	created, err := s.repo.Create(ctx, holiday.BankHoliday{
		CompanyID: companyID,
		Title:     req.Title,
		Date:      date,
	})
	if err != nil {
		return holiday.BankHolidayResponse{}, err
	}

	return holiday.ToResponse(created), nil
}

func (s *BankHolidayServiceImpl) ListByYear(ctx context.Context, year int) ([]holiday.BankHolidayResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return nil, err
	}

	holidays, err := s.repo.ListByYear(ctx, companyID, year)
	if err != nil {
		return nil, err
	}

	result := make([]holiday.BankHolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		result = append(result, holiday.ToResponse(h))
	}
	return result, nil
}

func (s *BankHolidayServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, id, companyID)
}
