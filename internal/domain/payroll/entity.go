package payroll

import (
	"time"

	"github.com/rotahr/payroll-backend-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
)

// AttendanceEntry is one logged actual-worked window, optionally tied to
// a shift template. Dates are calendar dates, times are day-independent
// clock times; an end time earlier than the start time means the window
// crosses midnight.
type AttendanceEntry struct {
	ID            string
	ShiftID       *string
	StartDate     time.Time
	StartTime     clock.Time
	EndDate       time.Time
	EndTime       clock.Time
	PayRate       decimal.Decimal
	Note          string
	BankHoliday   bool
	BankHolidayID *string
}

// Window returns the entry's logged clock window.
func (e AttendanceEntry) Window() clock.Window {
	return clock.Window{Start: e.StartTime, End: e.EndTime}
}

// Weekday returns the weekday of the entry's start date, the key used
// for weekly rate table lookup.
func (e AttendanceEntry) Weekday() time.Weekday {
	return e.StartDate.Weekday()
}

// PayrollStatus is the lifecycle state of a payroll record.
type PayrollStatus string

const (
	// PayrollStatusPending is the initial, mutable state.
	PayrollStatusPending PayrollStatus = "pending"
	// PayrollStatusApproved is terminal: entries and totals are frozen.
	PayrollStatusApproved PayrollStatus = "approved"
	// PayrollStatusRejected is terminal for editing, but distinct from
	// approved for reporting: rejection does not assert the figures are
	// correct.
	PayrollStatusRejected PayrollStatus = "rejected"
)

var PayrollStatusValues = []string{
	string(PayrollStatusPending),
	string(PayrollStatusApproved),
	string(PayrollStatusRejected),
}

// Editable reports whether a record in this state may still have its
// entries and totals changed.
func (s PayrollStatus) Editable() bool {
	return s == PayrollStatusPending
}

// CanTransitionTo reports whether the lifecycle permits moving to the
// target state. Only pending records move; there is no un-approve.
func (s PayrollStatus) CanTransitionTo(target PayrollStatus) bool {
	if s != PayrollStatusPending {
		return false
	}
	return target == PayrollStatusApproved || target == PayrollStatusRejected
}

// Totals is the result of one aggregation pass. Minutes and amount are
// always produced and written together, never independently.
type Totals struct {
	Minutes int
	Amount  decimal.Decimal
}

// PayrollRecord holds the aggregated, lifecycle-gated figures for one
// employee over one pay period.
type PayrollRecord struct {
	ID           string
	EmployeeID   string
	CompanyID    string
	FromDate     time.Time
	ToDate       time.Time
	Entries      []AttendanceEntry
	TotalMinutes int
	TotalAmount  decimal.Decimal
	Status       PayrollStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName *string
}

// EnsureEditable returns ErrRecordLocked unless the record is pending.
// Mutation paths check this at the boundary, before touching anything.
func (r PayrollRecord) EnsureEditable() error {
	if !r.Status.Editable() {
		return ErrRecordLocked
	}
	return nil
}
