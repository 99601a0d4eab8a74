package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/squad-internal/hr-backend-go/internal/domain/leave"
	"github.com/squad-internal/hr-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetPendingApprovals(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	GetBlockedDates(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	p, err := principalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := l.leaveService.Submit(r.Context(), p.UserID, p.Role, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Leave request submitted successfully"
	if result.NotificationWarning != nil {
		message = *result.NotificationWarning
	}
	response.Created(w, message, result)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	p, err := principalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := l.leaveService.GetMyRequests(r.Context(), p.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetPendingApprovals implements LeaveHandler.
func (l *LeaveHandlerImpl) GetPendingApprovals(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.GetPendingApprovals(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

func (l *LeaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	p, err := principalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	var result leave.LeaveRequestResponse
	var message string
	if approve {
		result, err = l.leaveService.Approve(r.Context(), p.UserID, requestID)
		message = "Leave request approved successfully"
	} else {
		result, err = l.leaveService.Reject(r.Context(), p.UserID, requestID)
		message = "Leave request rejected successfully"
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.NotificationWarning != nil {
		message = *result.NotificationWarning
	}
	response.SuccessWithMessage(w, message, result)
}

// ApproveRequest implements LeaveHandler. Also reachable via the GET deep
// link in the approver email.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	l.decide(w, r, true)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	l.decide(w, r, false)
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	p, err := principalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	result, err := l.leaveService.Cancel(r.Context(), p.UserID, p.Role, requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Leave request cancelled successfully"
	if result.NotificationWarning != nil {
		message = *result.NotificationWarning
	}
	response.SuccessWithMessage(w, message, result)
}

// GetBlockedDates implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBlockedDates(w http.ResponseWriter, r *http.Request) {
	p, err := principalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	dates, err := l.leaveService.GetBlockedDates(r.Context(), p.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	formatted := make([]string, 0, len(dates))
	for _, day := range dates {
		formatted = append(formatted, day.Format("2006-01-02"))
	}
	response.Success(w, formatted)
}

// GetSummary implements LeaveHandler.
func (l *LeaveHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	p, err := principalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	counts, err := l.leaveService.GetSummary(r.Context(), p.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, counts)
}
