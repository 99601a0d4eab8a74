package holiday

import (
	"time"

	"github.com/squad-internal/hr-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Name        string  `json:"name"`
	HolidayDate string  `json:"holiday_date"`
	Type        *string `json:"type,omitempty"`
	IsHalfDay   bool    `json:"is_half_day"`
}

func (r CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name is required"})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name must be at most 100 characters"})
	}
	if _, ok := validator.IsValidDate(r.HolidayDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "holiday_date", Message: "Date must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateHolidayRequest struct {
	ID          string     `json:"-"`
	Name        *string    `json:"name,omitempty"`
	HolidayDate *time.Time `json:"holiday_date,omitempty"`
	Type        *string    `json:"type,omitempty"`
	IsHalfDay   *bool      `json:"is_half_day,omitempty"`
}

// YearSummary mirrors the counters shown above the holiday list.
type YearSummary struct {
	Year     int `json:"year"`
	Total    int `json:"total"`
	National int `json:"national"`
	Optional int `json:"optional"`
	Upcoming int `json:"upcoming"`
}

type ListHolidaysResponse struct {
	Summary  YearSummary `json:"summary"`
	Holidays []Holiday   `json:"holidays"`
}
