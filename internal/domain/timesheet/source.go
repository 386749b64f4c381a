package timesheet

import (
	"context"
	"time"

	"github.com/rotahr/payroll-backend-go/internal/domain/payroll"
)

// Source is the external timesheet/rota collaborator that owns logged
// attendance data. Payroll generation and regeneration pull a fresh
// entry list through it; the payroll core never reads attendance rows
// directly.
type Source interface {
	// FetchEntries returns the logged attendance windows for an employee
	// within [from, to], ordered by start date.
	FetchEntries(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]payroll.AttendanceEntry, error)
}
