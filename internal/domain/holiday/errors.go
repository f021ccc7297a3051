package holiday

import "errors"

var (
	ErrInvalidHolidayDate = errors.New("invalid holiday date")
	ErrMissingHolidayName = errors.New("holiday name is required")
	ErrDuplicateHoliday   = errors.New("duplicate holiday date")
)
