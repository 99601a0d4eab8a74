package dashboard

import (
	"context"

	"github.com/squad-internal/hr-backend-go/internal/domain/holiday"
	"github.com/squad-internal/hr-backend-go/internal/domain/leave"
	"github.com/squad-internal/hr-backend-go/internal/domain/user"
)

// Overview is the landing page payload. Admin-only counters are zero for
// employees; the frontend hides them.
type Overview struct {
	OnLeaveToday     []leave.LeaveRequestResponse `json:"on_leave_today"`
	UpcomingHolidays []holiday.Holiday            `json:"upcoming_holidays"`
	MyLeave          leave.StatusCounts           `json:"my_leave"`
	PendingApprovals int                          `json:"pending_approvals"`
	ActiveEmployees  int                          `json:"active_employees"`
}

type DashboardService interface {
	GetOverview(ctx context.Context, userID string, role user.Role) (Overview, error)
}
