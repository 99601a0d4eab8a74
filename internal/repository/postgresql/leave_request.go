package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/squad-internal/hr-backend-go/internal/domain/leave"
	"github.com/squad-internal/hr-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `lr.id, lr.employee_id, lr.from_date, lr.to_date, lr.leave_type, lr.reason,
			   lr.status, lr.applied_on, lr.decided_by, lr.decided_at, lr.created_at, lr.updated_at,
			   e.first_name || ' ' || e.last_name AS employee_name`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.FromDate,
		&lr.ToDate,
		&lr.LeaveType,
		&lr.Reason,
		&lr.Status,
		&lr.AppliedOn,
		&lr.DecidedBy,
		&lr.DecidedAt,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) queryMany(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, from_date, to_date, leave_type, reason,
			status, applied_on, decided_by, decided_at,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			$6, NOW(), $7, $8,
			NOW(), NOW()
		) RETURNING id, applied_on, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.FromDate, request.ToDate, request.LeaveType, request.Reason,
		request.Status, request.DecidedBy, request.DecidedAt,
	).Scan(&request.ID, &request.AppliedOn, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		INNER JOIN employees e ON lr.employee_id = e.id
		WHERE lr.id = $1
	`
	return scanLeaveRequest(q.QueryRow(ctx, query, id))
}

// GetByEmployeeID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		INNER JOIN employees e ON lr.employee_id = e.id
		WHERE lr.employee_id = $1
		ORDER BY lr.applied_on DESC
	`
	return r.queryMany(ctx, query, employeeID)
}

// GetBlocking implements leave.LeaveRequestRepository. Pending and approved
// requests hold their dates; rejected and cancelled ones do not.
func (r *leaveRequestRepositoryImpl) GetBlocking(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		INNER JOIN employees e ON lr.employee_id = e.id
		WHERE lr.employee_id = $1 AND lr.status IN ('pending', 'approved')
		ORDER BY lr.from_date
	`
	return r.queryMany(ctx, query, employeeID)
}

// GetPending implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		INNER JOIN employees e ON lr.employee_id = e.id
		WHERE lr.status = 'pending'
		ORDER BY lr.applied_on
	`
	return r.queryMany(ctx, query)
}

// GetApprovedOnDate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetApprovedOnDate(ctx context.Context, day time.Time) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		INNER JOIN employees e ON lr.employee_id = e.id
		WHERE lr.status = 'approved' AND lr.from_date <= $1 AND lr.to_date >= $1
		ORDER BY e.first_name, e.last_name
	`
	return r.queryMany(ctx, query, leave.TruncateToDate(day))
}

// UpdateStatus implements leave.LeaveRequestRepository. decided_at is stamped
// only for approve/reject; a cancellation clears nothing because nothing was
// decided.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, decidedBy *string) error {
	q := GetQuerier(ctx, r.db)

	var query string
	var args []interface{}
	if decidedBy != nil {
		query = `
			UPDATE leave_requests
			SET status = $1, decided_by = $2, decided_at = NOW(), updated_at = NOW()
			WHERE id = $3
		`
		args = []interface{}{status, *decidedBy, id}
	} else {
		query = `
			UPDATE leave_requests
			SET status = $1, updated_at = NOW()
			WHERE id = $2
		`
		args = []interface{}{status, id}
	}

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// CountByStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CountByStatus(ctx context.Context, employeeID string) (leave.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM leave_requests
		WHERE employee_id = $1
	`

	var counts leave.StatusCounts
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&counts.Total,
		&counts.Pending,
		&counts.Approved,
		&counts.Rejected,
	)
	if err != nil {
		return leave.StatusCounts{}, err
	}
	return counts, nil
}
