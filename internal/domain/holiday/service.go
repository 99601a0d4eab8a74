package holiday

import "context"

type HolidayService interface {
	Create(ctx context.Context, req CreateHolidayRequest) (Holiday, error)
	// ListByYear returns the year's active holidays together with the
	// summary counters.
	ListByYear(ctx context.Context, year int) (ListHolidaysResponse, error)
	Update(ctx context.Context, req UpdateHolidayRequest) error
	Delete(ctx context.Context, id string) error
}
