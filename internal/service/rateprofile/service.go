package rateprofile

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rotahr/payroll-backend-go/internal/domain/rateprofile"
	"github.com/rotahr/payroll-backend-go/internal/pkg/database"
)

type RateProfileServiceImpl struct {
	db   *database.DB
	repo rateprofile.RateProfileRepository
}

func NewRateProfileService(db *database.DB, repo rateprofile.RateProfileRepository) rateprofile.RateProfileService {
	return &RateProfileServiceImpl{db: db, repo: repo}
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

func (s *RateProfileServiceImpl) Create(ctx context.Context, req rateprofile.CreateRateProfileRequest) (rateprofile.RateProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return rateprofile.RateProfileResponse{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return rateprofile.RateProfileResponse{}, err
	}

	created, err := s.repo.Create(ctx, req.ToEntity(companyID))
	if err != nil {
		return rateprofile.RateProfileResponse{}, err
	}

	return rateprofile.ToResponse(created), nil
}

func (s *RateProfileServiceImpl) GetByID(ctx context.Context, id string) (rateprofile.RateProfileResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return rateprofile.RateProfileResponse{}, err
	}

	profile, err := s.repo.GetByID(ctx, id, companyID)
	if err != nil {
		return rateprofile.RateProfileResponse{}, err
	}

	return rateprofile.ToResponse(profile), nil
}

func (s *RateProfileServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]rateprofile.RateProfileResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return nil, err
	}

	profiles, err := s.repo.GetByEmployeeID(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]rateprofile.RateProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		result = append(result, rateprofile.ToResponse(p))
	}
	return result, nil
}

func (s *RateProfileServiceImpl) List(ctx context.Context) ([]rateprofile.RateProfileResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return nil, err
	}

	profiles, err := s.repo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]rateprofile.RateProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		result = append(result, rateprofile.ToResponse(p))
	}
	return result, nil
}

func (s *RateProfileServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, id, companyID)
}
