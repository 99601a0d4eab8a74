package leave

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/squad-internal/hr-backend-go/internal/domain/employee"
	"github.com/squad-internal/hr-backend-go/internal/domain/leave"
	"github.com/squad-internal/hr-backend-go/internal/domain/user"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	user.UserRepository
	tx       leave.TxManager
	notifier leave.Notifier
}

func NewLeaveService(
	leaveRepository leave.LeaveRequestRepository,
	employeeRepository employee.EmployeeRepository,
	userRepository user.UserRepository,
	txManager leave.TxManager,
	notifier leave.Notifier,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRepository,
		EmployeeRepository:     employeeRepository,
		UserRepository:         userRepository,
		tx:                     txManager,
		notifier:               notifier,
	}
}

func (s *LeaveServiceImpl) notification(request leave.LeaveRequest, emp employee.Employee) leave.Notification {
	n := leave.Notification{
		RequestID:    request.ID,
		EmployeeName: emp.FullName(),
		FromDate:     request.FromDate,
		ToDate:       request.ToDate,
		LeaveType:    request.LeaveType,
		AppliedOn:    request.AppliedOn,
	}
	if emp.Email != nil {
		n.EmployeeEmail = *emp.Email
	}
	if request.Reason != nil {
		n.Reason = *request.Reason
	}
	return n
}

// Submit implements leave.LeaveService.
//
// Validation runs in a fixed order: date range first, then employee lookup,
// then the overlap scan. The overlap check and the insert share one
// transaction so two concurrent submissions cannot both pass the scan.
func (s *LeaveServiceImpl) Submit(ctx context.Context, userID string, role user.Role, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	fromDate, _ := time.Parse("2006-01-02", req.FromDate)
	toDate, _ := time.Parse("2006-01-02", req.ToDate)
	if toDate.Before(fromDate) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	emp, err := s.EmployeeRepository.GetActiveByUserID(ctx, userID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request := leave.LeaveRequest{
		EmployeeID: emp.ID,
		FromDate:   leave.TruncateToDate(fromDate),
		ToDate:     leave.TruncateToDate(toDate),
		LeaveType:  req.LeaveType,
		Reason:     req.Reason,
		Status:     leave.LeaveRequestStatusPending,
	}

	// Admins applying for themselves need no approver.
	selfApproved := role == user.RoleAdmin
	if selfApproved {
		now := time.Now()
		request.Status = leave.LeaveRequestStatusApproved
		request.DecidedBy = &userID
		request.DecidedAt = &now
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		blocking, err := s.LeaveRequestRepository.GetBlocking(txCtx, emp.ID)
		if err != nil {
			return fmt.Errorf("failed to load blocking requests: %w", err)
		}
		wanted := request.Range()
		for _, existing := range blocking {
			if wanted.Overlaps(existing.Range()) {
				return leave.ErrOverlappingLeave
			}
		}

		request, err = s.LeaveRequestRepository.Create(txCtx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	name := emp.FullName()
	request.EmployeeName = &name
	response := leave.ToResponse(request)

	// A self-approved request has no approver waiting on it.
	if !selfApproved {
		if warn := s.notifyApplied(ctx, request, emp); warn != nil {
			response.NotificationWarning = warn
		}
	}

	return response, nil
}

func (s *LeaveServiceImpl) notifyApplied(ctx context.Context, request leave.LeaveRequest, emp employee.Employee) *string {
	admin, err := s.UserRepository.GetAdmin(ctx)
	if err == nil {
		err = s.notifier.LeaveApplied(ctx, admin.Email, s.notification(request, emp))
	}
	if err != nil {
		warn := "Request saved, but the approver could not be notified by email"
		return &warn
	}
	return nil
}

func (s *LeaveServiceImpl) decide(ctx context.Context, approverUserID string, requestID string, approved bool) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	// Approve and reject act on pending requests only; a second click on a
	// stale email link must not flip an already-settled request.
	if request.Status.IsTerminal() {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	status := leave.LeaveRequestStatusRejected
	if approved {
		status = leave.LeaveRequestStatusApproved
	}

	if err := s.LeaveRequestRepository.UpdateStatus(ctx, requestID, status, &approverUserID); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	now := time.Now()
	request.Status = status
	request.DecidedBy = &approverUserID
	request.DecidedAt = &now
	response := leave.ToResponse(request)

	emp, err := s.EmployeeRepository.GetByID(ctx, request.EmployeeID)
	if err == nil && emp.Email != nil {
		err = s.notifier.LeaveDecided(ctx, *emp.Email, s.notification(request, emp), approved)
	}
	if err != nil {
		warn := "Decision saved, but the employee could not be notified by email"
		response.NotificationWarning = &warn
	}

	return response, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, approverUserID string, requestID string) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, approverUserID, requestID, true)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, approverUserID string, requestID string) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, approverUserID, requestID, false)
}

// Cancel implements leave.LeaveService.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, userID string, role user.Role, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetActiveByUserID(ctx, userID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	// Employees can only withdraw their own requests. A foreign id is
	// reported as not found rather than forbidden, to avoid confirming the
	// request exists.
	if request.EmployeeID != emp.ID && role != user.RoleAdmin {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}

	if request.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrOnlyPendingCancellable
	}

	if err := s.LeaveRequestRepository.UpdateStatus(ctx, requestID, leave.LeaveRequestStatusCancelled, nil); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request.Status = leave.LeaveRequestStatusCancelled
	response := leave.ToResponse(request)

	admin, err := s.UserRepository.GetAdmin(ctx)
	if err == nil {
		err = s.notifier.LeaveCancelled(ctx, admin.Email, s.notification(request, emp))
	}
	if err != nil {
		warn := "Request cancelled, but the approver could not be notified by email"
		response.NotificationWarning = &warn
	}

	return response, nil
}

// GetMyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyRequests(ctx context.Context, userID string) ([]leave.LeaveRequestResponse, error) {
	emp, err := s.EmployeeRepository.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	requests, err := s.LeaveRequestRepository.GetByEmployeeID(ctx, emp.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.ToResponse(request))
	}
	return responses, nil
}

// GetPendingApprovals implements leave.LeaveService.
func (s *LeaveServiceImpl) GetPendingApprovals(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.GetPending(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.ToResponse(request))
	}
	return responses, nil
}

// GetBlockedDates implements leave.LeaveService.
func (s *LeaveServiceImpl) GetBlockedDates(ctx context.Context, userID string) ([]time.Time, error) {
	emp, err := s.EmployeeRepository.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	blocking, err := s.LeaveRequestRepository.GetBlocking(ctx, emp.ID)
	if err != nil {
		return nil, err
	}

	seen := map[time.Time]struct{}{}
	var dates []time.Time
	for _, request := range blocking {
		for _, day := range leave.ExpandDates(request.FromDate, request.ToDate) {
			if _, ok := seen[day]; ok {
				continue
			}
			seen[day] = struct{}{}
			dates = append(dates, day)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	return dates, nil
}

// GetSummary implements leave.LeaveService.
func (s *LeaveServiceImpl) GetSummary(ctx context.Context, userID string) (leave.StatusCounts, error) {
	emp, err := s.EmployeeRepository.GetActiveByUserID(ctx, userID)
	if err != nil {
		return leave.StatusCounts{}, err
	}
	return s.LeaveRequestRepository.CountByStatus(ctx, emp.ID)
}
