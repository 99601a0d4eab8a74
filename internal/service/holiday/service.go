package holiday

import (
	"context"
	"strings"
	"time"

	"github.com/squad-internal/hr-backend-go/internal/domain/holiday"
	"github.com/squad-internal/hr-backend-go/internal/pkg/validator"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
}

func NewHolidayService(holidayRepository holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{HolidayRepository: holidayRepository}
}

// Create implements holiday.HolidayService.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.Holiday, error) {
	if err := req.Validate(); err != nil {
		return holiday.Holiday{}, err
	}

	date, _ := validator.IsValidDate(req.HolidayDate)
	return s.HolidayRepository.Create(ctx, holiday.Holiday{
		Name:        req.Name,
		HolidayDate: date,
		Type:        req.Type,
		IsHalfDay:   req.IsHalfDay,
	})
}

// ListByYear implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListByYear(ctx context.Context, year int) (holiday.ListHolidaysResponse, error) {
	holidays, err := s.HolidayRepository.GetByYear(ctx, year)
	if err != nil {
		return holiday.ListHolidaysResponse{}, err
	}

	summary := holiday.YearSummary{Year: year, Total: len(holidays)}
	today := time.Now()
	for _, h := range holidays {
		if h.Type != nil {
			switch strings.ToLower(*h.Type) {
			case "national":
				summary.National++
			case "optional":
				summary.Optional++
			}
		}
		if h.HolidayDate.After(today) {
			summary.Upcoming++
		}
	}

	return holiday.ListHolidaysResponse{Summary: summary, Holidays: holidays}, nil
}

// Update implements holiday.HolidayService.
func (s *HolidayServiceImpl) Update(ctx context.Context, req holiday.UpdateHolidayRequest) error {
	if req.Name != nil && validator.IsEmpty(*req.Name) {
		return validator.ValidationErrors{{Field: "name", Message: "Name is required"}}
	}
	return s.HolidayRepository.Update(ctx, req)
}

// Delete implements holiday.HolidayService.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	return s.HolidayRepository.Deactivate(ctx, id)
}
