package postgresql

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/squad-internal/hr-backend-go/internal/domain/employee"
	"github.com/squad-internal/hr-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `e.id, e.user_id, e.first_name, e.last_name, e.gender, e.date_of_birth, e.date_of_joining,
			   e.salary, e.is_active, e.is_deleted, e.added_by, e.reporting_to_user_id, e.created_at, e.updated_at,
			   u.email`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.FirstName,
		&e.LastName,
		&e.Gender,
		&e.DateOfBirth,
		&e.DateOfJoining,
		&e.Salary,
		&e.IsActive,
		&e.IsDeleted,
		&e.AddedBy,
		&e.ReportingToUserID,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, user_id, first_name, last_name, gender, date_of_birth, date_of_joining,
			salary, is_active, is_deleted, added_by, reporting_to_user_id,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6,
			$7, TRUE, FALSE, $8, $9,
			NOW(), NOW()
		) RETURNING id, is_active, is_deleted, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.UserID, emp.FirstName, emp.LastName, emp.Gender, emp.DateOfBirth, emp.DateOfJoining,
		emp.Salary, emp.AddedBy, emp.ReportingToUserID,
	).Scan(&emp.ID, &emp.IsActive, &emp.IsDeleted, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		return employee.Employee{}, err
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		INNER JOIN users u ON e.user_id = u.id
		WHERE e.id = $1 AND e.is_deleted = FALSE
	`
	return scanEmployee(q.QueryRow(ctx, query, id))
}

// GetActiveByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetActiveByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		INNER JOIN users u ON e.user_id = u.id
		WHERE e.user_id = $1 AND e.is_active = TRUE AND e.is_deleted = FALSE
	`
	return scanEmployee(q.QueryRow(ctx, query, userID))
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		INNER JOIN users u ON e.user_id = u.id
		WHERE e.is_active = TRUE AND e.is_deleted = FALSE
		ORDER BY e.first_name, e.last_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository. Only the fields present in
// the request are written.
func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, column+" = $"+strconv.Itoa(argPos))
		args = append(args, value)
		argPos++
	}

	if req.FirstName != nil {
		addSet("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		addSet("last_name", *req.LastName)
	}
	if req.Gender != nil {
		addSet("gender", *req.Gender)
	}
	if req.DateOfBirth != nil {
		addSet("date_of_birth", *req.DateOfBirth)
	}
	if req.DateOfJoining != nil {
		addSet("date_of_joining", *req.DateOfJoining)
	}
	if req.Salary != nil {
		addSet("salary", *req.Salary)
	}
	if req.ReportingToUserID != nil {
		addSet("reporting_to_user_id", *req.ReportingToUserID)
	}

	query := `UPDATE employees SET ` + strings.Join(setClauses, ", ") +
		` WHERE id = $` + strconv.Itoa(argPos) + ` AND is_deleted = FALSE`
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Deactivate implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET is_active = FALSE, is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

