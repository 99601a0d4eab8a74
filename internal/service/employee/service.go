package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/squad-internal/hr-backend-go/internal/domain/employee"
	"github.com/squad-internal/hr-backend-go/internal/domain/leave"
	"github.com/squad-internal/hr-backend-go/internal/domain/user"
	"github.com/squad-internal/hr-backend-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	user.UserRepository
	tx leave.TxManager
}

func NewEmployeeService(
	employeeRepository employee.EmployeeRepository,
	userRepository user.UserRepository,
	txManager leave.TxManager,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepository,
		UserRepository:     userRepository,
		tx:                 txManager,
	}
}

func toResponse(e employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:            e.ID,
		FullName:      e.FullName(),
		Email:         e.Email,
		Gender:        e.Gender,
		DateOfBirth:   e.DateOfBirth,
		DateOfJoining: e.DateOfJoining,
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
	}
	if e.Salary != nil {
		salary := e.Salary.StringFixed(2)
		resp.Salary = &salary
	}
	return resp
}

// Create implements employee.EmployeeService. The user row and the employee
// row land in one transaction; a half-provisioned account would otherwise be
// able to log in with no employee behind it.
func (s *EmployeeServiceImpl) Create(ctx context.Context, addedByUserID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	exists, err := s.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	emp := employee.Employee{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Gender:            req.Gender,
		AddedBy:           &addedByUserID,
		ReportingToUserID: req.ReportingToUserID,
	}
	if req.DateOfBirth != nil {
		if parsed, ok := validator.IsValidDate(*req.DateOfBirth); ok {
			emp.DateOfBirth = &parsed
		}
	}
	if req.DateOfJoining != nil {
		if parsed, ok := validator.IsValidDate(*req.DateOfJoining); ok {
			emp.DateOfJoining = &parsed
		}
	} else {
		now := time.Now()
		emp.DateOfJoining = &now
	}
	if req.Salary != nil {
		salary, err := decimal.NewFromString(*req.Salary)
		if err != nil {
			return employee.EmployeeResponse{}, validator.ValidationErrors{{Field: "salary", Message: "Salary must be a valid number"}}
		}
		emp.Salary = &salary
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		newUser, err := s.UserRepository.Create(txCtx, user.User{
			Email:        req.Email,
			PasswordHash: &passwordHash,
			Name:         req.FirstName + " " + req.LastName,
			Role:         user.RoleEmployee,
			IsActive:     true,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		emp.UserID = newUser.ID
		emp, err = s.EmployeeRepository.Create(txCtx, emp)
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp.Email = &req.Email
	return toResponse(emp), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toResponse(emp))
	}
	return responses, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	if req.Salary != nil {
		if _, err := decimal.NewFromString(*req.Salary); err != nil {
			return validator.ValidationErrors{{Field: "salary", Message: "Salary must be a valid number"}}
		}
	}
	return s.EmployeeRepository.Update(ctx, req)
}

// Deactivate implements employee.EmployeeService. The login is disabled in
// the same transaction so a deactivated employee cannot keep a live session
// past token expiry.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.EmployeeRepository.Deactivate(txCtx, emp.ID); err != nil {
			return err
		}
		return s.UserRepository.SetActive(txCtx, emp.UserID, false)
	})
}
