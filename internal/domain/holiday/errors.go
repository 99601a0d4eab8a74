package holiday

import "errors"

var ErrHolidayNotFound = errors.New("Holiday not found")
