package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/squad-internal/hr-backend-go/internal/domain/employee"
	"github.com/squad-internal/hr-backend-go/internal/domain/leave"
	"github.com/squad-internal/hr-backend-go/internal/domain/user"
	"github.com/squad-internal/hr-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRepo struct {
	createFn            func(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error)
	getByIDFn           func(ctx context.Context, id string) (leave.LeaveRequest, error)
	getByEmployeeIDFn   func(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error)
	getBlockingFn       func(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error)
	getPendingFn        func(ctx context.Context) ([]leave.LeaveRequest, error)
	getApprovedOnDateFn func(ctx context.Context, day time.Time) ([]leave.LeaveRequest, error)
	updateStatusFn      func(ctx context.Context, id string, status leave.LeaveRequestStatus, decidedBy *string) error
	countByStatusFn     func(ctx context.Context, employeeID string) (leave.StatusCounts, error)
}

func (f *fakeLeaveRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	if f.createFn == nil {
		request.ID = uuid.NewString()
		request.AppliedOn = time.Now()
		return request, nil
	}
	return f.createFn(ctx, request)
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	if f.getByIDFn == nil {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeLeaveRepo) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	if f.getByEmployeeIDFn == nil {
		return nil, nil
	}
	return f.getByEmployeeIDFn(ctx, employeeID)
}

func (f *fakeLeaveRepo) GetBlocking(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	if f.getBlockingFn == nil {
		return nil, nil
	}
	return f.getBlockingFn(ctx, employeeID)
}

func (f *fakeLeaveRepo) GetPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	if f.getPendingFn == nil {
		return nil, nil
	}
	return f.getPendingFn(ctx)
}

func (f *fakeLeaveRepo) GetApprovedOnDate(ctx context.Context, day time.Time) ([]leave.LeaveRequest, error) {
	if f.getApprovedOnDateFn == nil {
		return nil, nil
	}
	return f.getApprovedOnDateFn(ctx, day)
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, decidedBy *string) error {
	if f.updateStatusFn == nil {
		return nil
	}
	return f.updateStatusFn(ctx, id, status, decidedBy)
}

func (f *fakeLeaveRepo) CountByStatus(ctx context.Context, employeeID string) (leave.StatusCounts, error) {
	if f.countByStatusFn == nil {
		return leave.StatusCounts{}, nil
	}
	return f.countByStatusFn(ctx, employeeID)
}

type fakeEmployeeRepo struct {
	getActiveByUserIDFn func(ctx context.Context, userID string) (employee.Employee, error)
	getByIDFn           func(ctx context.Context, id string) (employee.Employee, error)
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if f.getByIDFn == nil {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeEmployeeRepo) GetActiveByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	if f.getActiveByUserIDFn == nil {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.getActiveByUserIDFn(ctx, userID)
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) Deactivate(ctx context.Context, id string) error {
	return nil
}

type fakeUserRepo struct {
	getAdminFn func(ctx context.Context) (user.User, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	return newUser, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetAdmin(ctx context.Context) (user.User, error) {
	if f.getAdminFn == nil {
		return user.User{ID: "admin-id", Email: "admin@squadinternal.com", Role: user.RoleAdmin}, nil
	}
	return f.getAdminFn(ctx)
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	return user.User{}, nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	return nil
}

// fakeTxManager runs fn directly; transactional behavior itself is covered
// by the repository integration tests.
type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	appliedCalls   int
	decidedCalls   int
	cancelledCalls int
	lastTo         string
	lastApproved   bool
	err            error
}

func (f *fakeNotifier) LeaveApplied(ctx context.Context, to string, n leave.Notification) error {
	f.appliedCalls++
	f.lastTo = to
	return f.err
}

func (f *fakeNotifier) LeaveDecided(ctx context.Context, to string, n leave.Notification, approved bool) error {
	f.decidedCalls++
	f.lastTo = to
	f.lastApproved = approved
	return f.err
}

func (f *fakeNotifier) LeaveCancelled(ctx context.Context, to string, n leave.Notification) error {
	f.cancelledCalls++
	f.lastTo = to
	return f.err
}

func testEmployee(userID string) employee.Employee {
	email := "jane.doe@squadinternal.com"
	return employee.Employee{
		ID:        uuid.NewString(),
		UserID:    userID,
		FirstName: "Jane",
		LastName:  "Doe",
		IsActive:  true,
		Email:     &email,
	}
}

func newService(leaveRepo *fakeLeaveRepo, empRepo *fakeEmployeeRepo, userRepo *fakeUserRepo, notifier *fakeNotifier) leave.LeaveService {
	return NewLeaveService(leaveRepo, empRepo, userRepo, fakeTxManager{}, notifier)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	emp := testEmployee(userID)

	empRepo := &fakeEmployeeRepo{
		getActiveByUserIDFn: func(ctx context.Context, id string) (employee.Employee, error) {
			if id == userID {
				return emp, nil
			}
			return employee.Employee{}, employee.ErrEmployeeNotFound
		},
	}

	validReq := leave.CreateLeaveRequestRequest{
		FromDate:  "2026-09-07",
		ToDate:    "2026-09-11",
		LeaveType: "Annual",
	}

	t.Run("success lands in pending and notifies the approver", func(t *testing.T) {
		var created leave.LeaveRequest
		leaveRepo := &fakeLeaveRepo{
			createFn: func(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
				request.ID = uuid.NewString()
				request.AppliedOn = time.Now()
				created = request
				return request, nil
			},
		}
		notifier := &fakeNotifier{}
		svc := newService(leaveRepo, empRepo, &fakeUserRepo{}, notifier)

		result, err := svc.Submit(ctx, userID, user.RoleEmployee, validReq)

		require.NoError(t, err)
		assert.Equal(t, string(leave.LeaveRequestStatusPending), result.Status)
		assert.Equal(t, emp.ID, created.EmployeeID)
		assert.Equal(t, 5, result.Days)
		assert.Nil(t, result.NotificationWarning)
		assert.Equal(t, 1, notifier.appliedCalls)
		assert.Equal(t, "admin@squadinternal.com", notifier.lastTo)
	})

	t.Run("admin self-apply is auto approved without notification", func(t *testing.T) {
		leaveRepo := &fakeLeaveRepo{}
		notifier := &fakeNotifier{}
		svc := newService(leaveRepo, empRepo, &fakeUserRepo{}, notifier)

		result, err := svc.Submit(ctx, userID, user.RoleAdmin, validReq)

		require.NoError(t, err)
		assert.Equal(t, string(leave.LeaveRequestStatusApproved), result.Status)
		require.NotNil(t, result.DecidedBy)
		assert.Equal(t, userID, *result.DecidedBy)
		assert.NotNil(t, result.DecidedAt)
		assert.Equal(t, 0, notifier.appliedCalls)
	})

	t.Run("to date before from date is rejected before any lookup", func(t *testing.T) {
		lookedUp := false
		leaveRepo := &fakeLeaveRepo{
			getBlockingFn: func(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
				lookedUp = true
				return nil, nil
			},
		}
		svc := newService(leaveRepo, empRepo, &fakeUserRepo{}, &fakeNotifier{})

		_, err := svc.Submit(ctx, userID, user.RoleEmployee, leave.CreateLeaveRequestRequest{
			FromDate:  "2026-09-11",
			ToDate:    "2026-09-07",
			LeaveType: "Annual",
		})

		assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
		assert.False(t, lookedUp)
	})

	t.Run("malformed dates fail validation", func(t *testing.T) {
		svc := newService(&fakeLeaveRepo{}, empRepo, &fakeUserRepo{}, &fakeNotifier{})

		_, err := svc.Submit(ctx, userID, user.RoleEmployee, leave.CreateLeaveRequestRequest{
			FromDate:  "07-09-2026",
			ToDate:    "2026-09-11",
			LeaveType: "Annual",
		})

		var validationErrs validator.ValidationErrors
		assert.ErrorAs(t, err, &validationErrs)
	})

	t.Run("unknown user cannot submit", func(t *testing.T) {
		svc := newService(&fakeLeaveRepo{}, &fakeEmployeeRepo{}, &fakeUserRepo{}, &fakeNotifier{})

		_, err := svc.Submit(ctx, uuid.NewString(), user.RoleEmployee, validReq)

		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("overlap with a pending request is rejected and nothing is written", func(t *testing.T) {
		createCalled := false
		leaveRepo := &fakeLeaveRepo{
			getBlockingFn: func(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
				return []leave.LeaveRequest{{
					ID:         uuid.NewString(),
					EmployeeID: emp.ID,
					FromDate:   time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
					ToDate:     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
					Status:     leave.LeaveRequestStatusPending,
				}}, nil
			},
			createFn: func(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
				createCalled = true
				return request, nil
			},
		}
		notifier := &fakeNotifier{}
		svc := newService(leaveRepo, empRepo, &fakeUserRepo{}, notifier)

		_, err := svc.Submit(ctx, userID, user.RoleEmployee, validReq)

		assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
		assert.False(t, createCalled)
		assert.Equal(t, 0, notifier.appliedCalls)
	})

	t.Run("request adjacent to an existing one goes through", func(t *testing.T) {
		leaveRepo := &fakeLeaveRepo{
			getBlockingFn: func(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
				return []leave.LeaveRequest{{
					ID:         uuid.NewString(),
					EmployeeID: emp.ID,
					FromDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
					ToDate:     time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC),
					Status:     leave.LeaveRequestStatusApproved,
				}}, nil
			},
		}
		svc := newService(leaveRepo, empRepo, &fakeUserRepo{}, &fakeNotifier{})

		_, err := svc.Submit(ctx, userID, user.RoleEmployee, validReq)

		assert.NoError(t, err)
	})

	t.Run("rejected history does not block the dates", func(t *testing.T) {
		// GetBlocking already filters to pending/approved; an empty result
		// means previously rejected requests on the same dates are invisible.
		leaveRepo := &fakeLeaveRepo{
			getBlockingFn: func(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
				return nil, nil
			},
		}
		svc := newService(leaveRepo, empRepo, &fakeUserRepo{}, &fakeNotifier{})

		_, err := svc.Submit(ctx, userID, user.RoleEmployee, validReq)

		assert.NoError(t, err)
	})

	t.Run("notification failure surfaces as a warning, not an error", func(t *testing.T) {
		notifier := &fakeNotifier{err: errors.New("smtp: connection refused")}
		svc := newService(&fakeLeaveRepo{}, empRepo, &fakeUserRepo{}, notifier)

		result, err := svc.Submit(ctx, userID, user.RoleEmployee, validReq)

		require.NoError(t, err)
		assert.Equal(t, string(leave.LeaveRequestStatusPending), result.Status)
		assert.NotNil(t, result.NotificationWarning)
	})
}

func TestDecide(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.NewString()
	emp := testEmployee(uuid.NewString())

	pendingRequest := leave.LeaveRequest{
		ID:         uuid.NewString(),
		EmployeeID: emp.ID,
		FromDate:   time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		ToDate:     time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
		LeaveType:  "Annual",
		Status:     leave.LeaveRequestStatusPending,
		AppliedOn:  time.Now(),
	}

	empRepo := &fakeEmployeeRepo{
		getByIDFn: func(ctx context.Context, id string) (employee.Employee, error) {
			return emp, nil
		},
	}

	t.Run("approve moves pending to approved and notifies the employee", func(t *testing.T) {
		var gotStatus leave.LeaveRequestStatus
		var gotDecidedBy *string
		leaveRepo := &fakeLeaveRepo{
			getByIDFn: func(ctx context.Context, id string) (leave.LeaveRequest, error) {
				return pendingRequest, nil
			},
			updateStatusFn: func(ctx context.Context, id string, status leave.LeaveRequestStatus, decidedBy *string) error {
				gotStatus = status
				gotDecidedBy = decidedBy
				return nil
			},
		}
		notifier := &fakeNotifier{}
		svc := newService(leaveRepo, empRepo, &fakeUserRepo{}, notifier)

		result, err := svc.Approve(ctx, adminID, pendingRequest.ID)

		require.NoError(t, err)
		assert.Equal(t, leave.LeaveRequestStatusApproved, gotStatus)
		require.NotNil(t, gotDecidedBy)
		assert.Equal(t, adminID, *gotDecidedBy)
		assert.Equal(t, string(leave.LeaveRequestStatusApproved), result.Status)
		assert.Equal(t, 1, notifier.decidedCalls)
		assert.True(t, notifier.lastApproved)
		assert.Equal(t, "jane.doe@squadinternal.com", notifier.lastTo)
	})

	t.Run("reject notifies with the rejection template", func(t *testing.T) {
		leaveRepo := &fakeLeaveRepo{
			getByIDFn: func(ctx context.Context, id string) (leave.LeaveRequest, error) {
				return pendingRequest, nil
			},
		}
		notifier := &fakeNotifier{}
		svc := newService(leaveRepo, empRepo, &fakeUserRepo{}, notifier)

		result, err := svc.Reject(ctx, adminID, pendingRequest.ID)

		require.NoError(t, err)
		assert.Equal(t, string(leave.LeaveRequestStatusRejected), result.Status)
		assert.Equal(t, 1, notifier.decidedCalls)
		assert.False(t, notifier.lastApproved)
	})

	t.Run("deciding a settled request is a conflict and writes nothing", func(t *testing.T) {
		for _, status := range []leave.LeaveRequestStatus{
			leave.LeaveRequestStatusApproved,
			leave.LeaveRequestStatusRejected,
			leave.LeaveRequestStatusCancelled,
		} {
			settled := pendingRequest
			settled.Status = status

			updateCalled := false
			leaveRepo := &fakeLeaveRepo{
				getByIDFn: func(ctx context.Context, id string) (leave.LeaveRequest, error) {
					return settled, nil
				},
				updateStatusFn: func(ctx context.Context, id string, status leave.LeaveRequestStatus, decidedBy *string) error {
					updateCalled = true
					return nil
				},
			}
			svc := newService(leaveRepo, empRepo, &fakeUserRepo{}, &fakeNotifier{})

			_, err := svc.Approve(ctx, adminID, settled.ID)

			assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed, "status %s", status)
			assert.False(t, updateCalled, "status %s", status)
		}
	})

	t.Run("unknown request id is not found", func(t *testing.T) {
		svc := newService(&fakeLeaveRepo{}, empRepo, &fakeUserRepo{}, &fakeNotifier{})

		_, err := svc.Approve(ctx, adminID, uuid.NewString())

		assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	emp := testEmployee(userID)

	empRepo := &fakeEmployeeRepo{
		getActiveByUserIDFn: func(ctx context.Context, id string) (employee.Employee, error) {
			return emp, nil
		},
	}

	pendingRequest := leave.LeaveRequest{
		ID:         uuid.NewString(),
		EmployeeID: emp.ID,
		FromDate:   time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		ToDate:     time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
		Status:     leave.LeaveRequestStatusPending,
	}

	t.Run("own pending request can be withdrawn", func(t *testing.T) {
		var gotStatus leave.LeaveRequestStatus
		leaveRepo := &fakeLeaveRepo{
			getByIDFn: func(ctx context.Context, id string) (leave.LeaveRequest, error) {
				return pendingRequest, nil
			},
			updateStatusFn: func(ctx context.Context, id string, status leave.LeaveRequestStatus, decidedBy *string) error {
				gotStatus = status
				assert.Nil(t, decidedBy)
				return nil
			},
		}
		notifier := &fakeNotifier{}
		svc := newService(leaveRepo, empRepo, &fakeUserRepo{}, notifier)

		result, err := svc.Cancel(ctx, userID, user.RoleEmployee, pendingRequest.ID)

		require.NoError(t, err)
		assert.Equal(t, leave.LeaveRequestStatusCancelled, gotStatus)
		assert.Equal(t, string(leave.LeaveRequestStatusCancelled), result.Status)
		assert.Equal(t, 1, notifier.cancelledCalls)
	})

	t.Run("settled requests cannot be cancelled", func(t *testing.T) {
		for _, status := range []leave.LeaveRequestStatus{
			leave.LeaveRequestStatusApproved,
			leave.LeaveRequestStatusRejected,
			leave.LeaveRequestStatusCancelled,
		} {
			settled := pendingRequest
			settled.Status = status

			leaveRepo := &fakeLeaveRepo{
				getByIDFn: func(ctx context.Context, id string) (leave.LeaveRequest, error) {
					return settled, nil
				},
			}
			svc := newService(leaveRepo, empRepo, &fakeUserRepo{}, &fakeNotifier{})

			_, err := svc.Cancel(ctx, userID, user.RoleEmployee, settled.ID)

			assert.ErrorIs(t, err, leave.ErrOnlyPendingCancellable, "status %s", status)
		}
	})

	t.Run("someone else's request reads as not found", func(t *testing.T) {
		foreign := pendingRequest
		foreign.EmployeeID = uuid.NewString()

		leaveRepo := &fakeLeaveRepo{
			getByIDFn: func(ctx context.Context, id string) (leave.LeaveRequest, error) {
				return foreign, nil
			},
		}
		svc := newService(leaveRepo, empRepo, &fakeUserRepo{}, &fakeNotifier{})

		_, err := svc.Cancel(ctx, userID, user.RoleEmployee, foreign.ID)

		assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	})
}

func TestGetBlockedDates(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	emp := testEmployee(userID)

	empRepo := &fakeEmployeeRepo{
		getActiveByUserIDFn: func(ctx context.Context, id string) (employee.Employee, error) {
			return emp, nil
		},
	}

	leaveRepo := &fakeLeaveRepo{
		getBlockingFn: func(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
			return []leave.LeaveRequest{
				{
					FromDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
					ToDate:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
					Status:   leave.LeaveRequestStatusApproved,
				},
				{
					// Overlapping date sets collapse into one
					FromDate: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
					ToDate:   time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
					Status:   leave.LeaveRequestStatusPending,
				},
			}, nil
		},
	}
	svc := newService(leaveRepo, empRepo, &fakeUserRepo{}, &fakeNotifier{})

	dates, err := svc.GetBlockedDates(ctx, userID)

	require.NoError(t, err)
	require.Len(t, dates, 5)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), dates[4])
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i].After(dates[i-1]))
	}
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	emp := testEmployee(userID)

	empRepo := &fakeEmployeeRepo{
		getActiveByUserIDFn: func(ctx context.Context, id string) (employee.Employee, error) {
			return emp, nil
		},
	}
	leaveRepo := &fakeLeaveRepo{
		countByStatusFn: func(ctx context.Context, employeeID string) (leave.StatusCounts, error) {
			assert.Equal(t, emp.ID, employeeID)
			return leave.StatusCounts{Total: 7, Pending: 2, Approved: 4, Rejected: 1}, nil
		},
	}
	svc := newService(leaveRepo, empRepo, &fakeUserRepo{}, &fakeNotifier{})

	counts, err := svc.GetSummary(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 7, counts.Total)
	assert.Equal(t, 2, counts.Pending)
	assert.Equal(t, 4, counts.Approved)
	assert.Equal(t, 1, counts.Rejected)
}
