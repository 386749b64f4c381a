package payroll

import "context"

type PayrollService interface {
	// Generate creates a pending record for an employee and period,
	// sourcing entries from the timesheet collaborator.
	Generate(ctx context.Context, req GeneratePayrollRequest) (PayrollRecordResponse, error)

	GetRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)

	// UpdateRecord replaces the attendance list of a pending record and
	// recomputes both totals as one unit.
	UpdateRecord(ctx context.Context, req UpdatePayrollRecordRequest) (PayrollRecordResponse, error)

	// Regenerate discards the current entries of a pending record,
	// refetches them from the timesheet collaborator and re-aggregates.
	Regenerate(ctx context.Context, id string) (PayrollRecordResponse, error)

	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}
