package payroll

import "context"

// PayrollRepository defines data access for payroll records. Writes that
// depend on the lifecycle must compare-and-set on status so that a
// record approved by a concurrent writer fails the commit instead of
// being silently overwritten.
type PayrollRepository interface {
	// Create inserts a record with its attendance entries and totals.
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)

	// GetByID retrieves a record including its attendance entries.
	GetByID(ctx context.Context, id string, companyID string) (PayrollRecord, error)

	// GetByEmployeePeriod finds an existing record for an employee and
	// exact period window. Used to prevent duplicate generation.
	GetByEmployeePeriod(ctx context.Context, employeeID string, fromDate, toDate string, companyID string) (PayrollRecord, error)

	// List retrieves records matching the filter with pagination.
	List(ctx context.Context, filter PayrollFilter, companyID string) ([]PayrollRecord, int64, error)

	// ReplaceEntries atomically swaps the attendance entries and both
	// totals of a pending record. Returns ErrRecordLocked if the record
	// is no longer pending at commit time.
	ReplaceEntries(ctx context.Context, id string, companyID string, entries []AttendanceEntry, totals Totals) error

	// UpdateStatus transitions a pending record to the target status.
	// Returns ErrRecordLocked if the record already left pending.
	UpdateStatus(ctx context.Context, id string, companyID string, target PayrollStatus) error
}
