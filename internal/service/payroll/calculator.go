package payroll

import (
	"github.com/rotahr/payroll-backend-go/internal/domain/payroll"
	"github.com/rotahr/payroll-backend-go/internal/domain/rateprofile"
	"github.com/rotahr/payroll-backend-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
)

// Calculator computes worked minutes and pay for attendance entries.
// It holds no state and performs no I/O: the same inputs always produce
// the same totals.
type Calculator struct {
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

var minutesPerHour = decimal.NewFromInt(60)

// ProfileIndex maps a shift template ID to its owning rate profile and
// template. Built once per aggregation so the "no owner found" path is
// an explicit branch instead of a repeated scan over every profile.
type ProfileIndex struct {
	byShift map[string]indexedShift
}

type indexedShift struct {
	profile *rateprofile.RateProfile
	shift   *rateprofile.ShiftTemplate
}

// NewProfileIndex indexes every shift template in the given profiles.
// Shift IDs are unique across one employee's profiles, so the index is
// collision-free for a single employee's aggregation.
func NewProfileIndex(profiles []rateprofile.RateProfile) ProfileIndex {
	idx := ProfileIndex{byShift: make(map[string]indexedShift)}
	for i := range profiles {
		p := &profiles[i]
		for j := range p.Shifts {
			idx.byShift[p.Shifts[j].ID] = indexedShift{profile: p, shift: &p.Shifts[j]}
		}
	}
	return idx
}

// Shift returns the template for a shift ID, or nil when the reference
// is absent or dangling.
func (idx ProfileIndex) Shift(shiftID *string) *rateprofile.ShiftTemplate {
	if shiftID == nil {
		return nil
	}
	if entry, ok := idx.byShift[*shiftID]; ok {
		return entry.shift
	}
	return nil
}

// Profile returns the rate profile owning a shift ID, or nil when no
// profile owns it.
func (idx ProfileIndex) Profile(shiftID *string) *rateprofile.RateProfile {
	if shiftID == nil {
		return nil
	}
	if entry, ok := idx.byShift[*shiftID]; ok {
		return entry.profile
	}
	return nil
}

// OverlapMinutes computes how many minutes of the entry's logged window
// fall within the shift template's window.
//
// With no template the plain elapsed duration of the logged window is
// returned, wraparound included. With a template, both windows are
// normalized independently to offsets from an arbitrary day-zero
// midnight and the intersection is taken at three relative alignments:
// the shift as computed, the shift pushed forward one day, and the
// attendance pushed forward one day. Normalizing each wrapped window on
// its own can leave the two a day apart even when they describe the
// same night, so a single intersection would miss the true overlap; the
// maximum over the three alignments cannot.
func (c *Calculator) OverlapMinutes(entry payroll.AttendanceEntry, shift *rateprofile.ShiftTemplate) int {
	attStart, attEnd := entry.Window().Normalized()
	if shift == nil {
		return attEnd - attStart
	}

	shiftStart, shiftEnd := shift.Window().Normalized()

	best := 0
	offsets := [3]struct{ shift, att int }{
		{0, 0},
		{clock.MinutesPerDay, 0},
		{0, clock.MinutesPerDay},
	}
	for _, off := range offsets {
		lo := max(attStart+off.att, shiftStart+off.shift)
		hi := min(attEnd+off.att, shiftEnd+off.shift)
		if hi-lo > best {
			best = hi - lo
		}
	}
	return best
}

// ResolveRate determines the hourly rate for one entry.
//
// A bank-holiday entry keeps its manually chosen rate untouched.
// Otherwise the owning profile's weekly rate table is consulted by the
// weekday of the entry's start date; a missing weekday resolves to zero
// so the line surfaces as zero-cost instead of erroring. When no
// profile owns the entry's shift reference (or there is none), the
// stored rate passes through unchanged: without shift context there is
// nothing to derive a rate from.
func (c *Calculator) ResolveRate(entry payroll.AttendanceEntry, idx ProfileIndex) decimal.Decimal {
	if entry.BankHoliday {
		return entry.PayRate
	}

	profile := idx.Profile(entry.ShiftID)
	if profile == nil {
		return entry.PayRate
	}

	return profile.Rates.RateFor(entry.Weekday())
}

// Aggregate reduces an attendance list to its totals. For each entry the
// worked minutes come from OverlapMinutes against the entry's shift
// template and the rate from ResolveRate; the line amount is
// minutes/60 × rate in decimal arithmetic. Both totals are produced
// together and the reduction is idempotent.
func (c *Calculator) Aggregate(entries []payroll.AttendanceEntry, idx ProfileIndex) payroll.Totals {
	totals := payroll.Totals{Amount: decimal.Zero}
	for _, entry := range entries {
		minutes := c.OverlapMinutes(entry, idx.Shift(entry.ShiftID))
		rate := c.ResolveRate(entry, idx)

		totals.Minutes += minutes
		totals.Amount = totals.Amount.Add(c.lineAmount(minutes, rate))
	}
	return totals
}

// lineAmount prices worked minutes at an hourly rate.
func (c *Calculator) lineAmount(minutes int, rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour).Mul(rate)
}

// ResolveEntryRates rewrites each entry's stored pay rate from the rate
// resolver. Bank-holiday overrides pass through ResolveRate unchanged,
// so a manual rate survives this refresh. Run whenever an entry's shift
// reference changes or an attendance list is (re)ingested.
func (c *Calculator) ResolveEntryRates(entries []payroll.AttendanceEntry, idx ProfileIndex) []payroll.AttendanceEntry {
	resolved := make([]payroll.AttendanceEntry, len(entries))
	for i, entry := range entries {
		entry.PayRate = c.ResolveRate(entry, idx)
		resolved[i] = entry
	}
	return resolved
}

// ApplyBankHolidayToggle is the explicit transition behind the
// bank-holiday checkbox. Turning it on stores the operator-supplied
// override rate and holiday reference; turning it off clears both and
// re-derives the rate from the weekly table.
func (c *Calculator) ApplyBankHolidayToggle(entry payroll.AttendanceEntry, on bool, holidayID *string, overrideRate decimal.Decimal, idx ProfileIndex) payroll.AttendanceEntry {
	if on {
		entry.BankHoliday = true
		entry.BankHolidayID = holidayID
		entry.PayRate = overrideRate
		return entry
	}

	entry.BankHoliday = false
	entry.BankHolidayID = nil
	entry.PayRate = c.ResolveRate(entry, idx)
	return entry
}
