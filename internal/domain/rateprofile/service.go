package rateprofile

import "context"

type RateProfileService interface {
	Create(ctx context.Context, req CreateRateProfileRequest) (RateProfileResponse, error)
	GetByID(ctx context.Context, id string) (RateProfileResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]RateProfileResponse, error)
	List(ctx context.Context) ([]RateProfileResponse, error)
	Delete(ctx context.Context, id string) error
}
