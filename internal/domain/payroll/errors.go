package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	// ErrRecordLocked is returned when a mutation targets a record that
	// left the pending state. Checked before any change is applied.
	ErrRecordLocked         = errors.New("payroll record is locked")
	ErrInvalidTransition    = errors.New("invalid payroll status transition")
	ErrRegenerateNotPending = errors.New("regenerate requires a pending payroll record")
	ErrInvalidPeriod        = errors.New("invalid payroll period")
)
