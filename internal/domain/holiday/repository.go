package holiday

import "context"

// HolidayRepository - interface for the holidays table
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, id string) (Holiday, error)
	// GetByYear returns active holidays in the given calendar year, ordered
	// by date.
	GetByYear(ctx context.Context, year int) ([]Holiday, error)
	Update(ctx context.Context, req UpdateHolidayRequest) error
	// Deactivate soft-deletes the holiday.
	Deactivate(ctx context.Context, id string) error
}
