package dashboard

import (
	"context"
	"time"

	"github.com/squad-internal/hr-backend-go/internal/domain/dashboard"
	"github.com/squad-internal/hr-backend-go/internal/domain/employee"
	"github.com/squad-internal/hr-backend-go/internal/domain/holiday"
	"github.com/squad-internal/hr-backend-go/internal/domain/leave"
	"github.com/squad-internal/hr-backend-go/internal/domain/user"
)

type DashboardServiceImpl struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	holiday.HolidayRepository
}

func NewDashboardService(
	leaveRepository leave.LeaveRequestRepository,
	employeeRepository employee.EmployeeRepository,
	holidayRepository holiday.HolidayRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		LeaveRequestRepository: leaveRepository,
		EmployeeRepository:     employeeRepository,
		HolidayRepository:      holidayRepository,
	}
}

// GetOverview implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetOverview(ctx context.Context, userID string, role user.Role) (dashboard.Overview, error) {
	var overview dashboard.Overview
	today := time.Now()

	onLeave, err := s.LeaveRequestRepository.GetApprovedOnDate(ctx, today)
	if err != nil {
		return dashboard.Overview{}, err
	}
	overview.OnLeaveToday = make([]leave.LeaveRequestResponse, 0, len(onLeave))
	for _, request := range onLeave {
		overview.OnLeaveToday = append(overview.OnLeaveToday, leave.ToResponse(request))
	}

	holidays, err := s.HolidayRepository.GetByYear(ctx, today.Year())
	if err != nil {
		return dashboard.Overview{}, err
	}
	overview.UpcomingHolidays = []holiday.Holiday{}
	for _, h := range holidays {
		if h.HolidayDate.After(today) {
			overview.UpcomingHolidays = append(overview.UpcomingHolidays, h)
		}
	}

	// An admin without an employee row (pure approver account) simply has
	// empty personal counters.
	if emp, err := s.EmployeeRepository.GetActiveByUserID(ctx, userID); err == nil {
		counts, err := s.LeaveRequestRepository.CountByStatus(ctx, emp.ID)
		if err != nil {
			return dashboard.Overview{}, err
		}
		overview.MyLeave = counts
	}

	if role == user.RoleAdmin {
		pending, err := s.LeaveRequestRepository.GetPending(ctx)
		if err != nil {
			return dashboard.Overview{}, err
		}
		overview.PendingApprovals = len(pending)

		employees, err := s.EmployeeRepository.ListActive(ctx)
		if err != nil {
			return dashboard.Overview{}, err
		}
		overview.ActiveEmployees = len(employees)
	}

	return overview, nil
}
