package rateprofile

import "errors"

var (
	ErrRateProfileNotFound = errors.New("rate profile not found")
	ErrShiftNameExists     = errors.New("shift template name already exists in this profile")
	ErrEmployeeNotFound    = errors.New("employee not found")
)
