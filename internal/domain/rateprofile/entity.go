package rateprofile

import (
	"time"

	"github.com/rotahr/payroll-backend-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
)

// ShiftTemplate is a named, day-independent clock-time window an employee
// can be scheduled against. EndClock numerically earlier than StartClock
// means the shift crosses midnight.
type ShiftTemplate struct {
	ID            string
	RateProfileID string
	Name          string
	StartClock    clock.Time
	EndClock      clock.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Window returns the template's clock window.
func (s ShiftTemplate) Window() clock.Window {
	return clock.Window{Start: s.StartClock, End: s.EndClock}
}

// WeeklyRateTable maps a weekday to an hourly rate.
type WeeklyRateTable map[time.Weekday]decimal.Decimal

// RateFor looks up the hourly rate for a weekday. A missing weekday
// resolves to zero: the entry contributes a zero-cost line the preparer
// can spot, rather than an error that aborts the run.
func (t WeeklyRateTable) RateFor(day time.Weekday) decimal.Decimal {
	if rate, ok := t[day]; ok {
		return rate
	}
	return decimal.Zero
}

// RateProfile groups an employee's shift templates with the weekly rate
// table that prices them. An employee may own several profiles; shift
// template IDs are unique across all profiles of one employee, so a
// shift ID identifies its owning profile.
type RateProfile struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Name       string
	Shifts     []ShiftTemplate
	Rates      WeeklyRateTable
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OwnsShift reports whether the profile contains the given shift template.
func (p RateProfile) OwnsShift(shiftID string) bool {
	for _, s := range p.Shifts {
		if s.ID == shiftID {
			return true
		}
	}
	return false
}
