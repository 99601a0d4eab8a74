package holiday

import "time"

// Holiday is company calendar reference data. Soft-deleted via IsActive so
// past calendars stay intact.
type Holiday struct {
	ID          string
	Name        string
	HolidayDate time.Time
	Type        *string // National / Optional / Company
	IsHalfDay   bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
