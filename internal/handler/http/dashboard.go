package http

import (
	"net/http"

	"github.com/squad-internal/hr-backend-go/internal/domain/dashboard"
	"github.com/squad-internal/hr-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetOverview(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// GetOverview implements DashboardHandler.
func (d *DashboardHandlerImpl) GetOverview(w http.ResponseWriter, r *http.Request) {
	p, err := principalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	overview, err := d.dashboardService.GetOverview(r.Context(), p.UserID, p.Role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}
