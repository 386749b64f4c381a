package holiday

import "errors"

var (
	ErrHolidayNotFound = errors.New("bank holiday not found")
	ErrHolidayExists   = errors.New("bank holiday already exists on this date")
)
