package rateprofile

import "context"

// RateProfileRepository defines data access for rate profiles and their
// shift templates. All methods take companyID to prevent cross-company
// data access.
type RateProfileRepository interface {
	// Create inserts a profile together with its shift templates and
	// weekly rate table.
	Create(ctx context.Context, profile RateProfile) (RateProfile, error)

	// GetByID retrieves a profile, shifts and rates included.
	GetByID(ctx context.Context, id string, companyID string) (RateProfile, error)

	// GetByEmployeeID retrieves every profile owned by an employee.
	// Feeds the shift index built per aggregation.
	GetByEmployeeID(ctx context.Context, employeeID string, companyID string) ([]RateProfile, error)

	// List retrieves all profiles for a company.
	List(ctx context.Context, companyID string) ([]RateProfile, error)

	// Delete removes a profile and its shift templates.
	Delete(ctx context.Context, id string, companyID string) error
}
