package employee

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/squad-internal/hr-backend-go/internal/domain/employee"
	"github.com/squad-internal/hr-backend-go/internal/domain/user"
	"github.com/squad-internal/hr-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeEmployeeRepo struct {
	createFn     func(ctx context.Context, emp employee.Employee) (employee.Employee, error)
	getByIDFn    func(ctx context.Context, id string) (employee.Employee, error)
	deactivateFn func(ctx context.Context, id string) error
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	if f.createFn == nil {
		emp.ID = uuid.NewString()
		emp.IsActive = true
		return emp, nil
	}
	return f.createFn(ctx, emp)
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if f.getByIDFn == nil {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeEmployeeRepo) GetActiveByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) Deactivate(ctx context.Context, id string) error {
	if f.deactivateFn == nil {
		return nil
	}
	return f.deactivateFn(ctx, id)
}

type fakeUserRepo struct {
	createFn        func(ctx context.Context, newUser user.User) (user.User, error)
	existsByEmailFn func(ctx context.Context, email string) (bool, error)
	setActiveFn     func(ctx context.Context, id string, active bool) error
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	if f.createFn == nil {
		newUser.ID = uuid.NewString()
		return newUser, nil
	}
	return f.createFn(ctx, newUser)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetAdmin(ctx context.Context) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if f.existsByEmailFn == nil {
		return false, nil
	}
	return f.existsByEmailFn(ctx, email)
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	return user.User{}, nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	if f.setActiveFn == nil {
		return nil
	}
	return f.setActiveFn(ctx, id, active)
}

type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.NewString()

	salary := "55000.00"
	validReq := employee.CreateEmployeeRequest{
		Email:     "new.hire@squadinternal.com",
		Password:  "changeme123",
		FirstName: "New",
		LastName:  "Hire",
		Salary:    &salary,
	}

	t.Run("provisions user and employee together", func(t *testing.T) {
		var createdUser user.User
		userRepo := &fakeUserRepo{
			createFn: func(ctx context.Context, newUser user.User) (user.User, error) {
				newUser.ID = uuid.NewString()
				createdUser = newUser
				return newUser, nil
			},
		}
		var createdEmployee employee.Employee
		empRepo := &fakeEmployeeRepo{
			createFn: func(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
				emp.ID = uuid.NewString()
				emp.IsActive = true
				createdEmployee = emp
				return emp, nil
			},
		}
		svc := NewEmployeeService(empRepo, userRepo, fakeTxManager{})

		result, err := svc.Create(ctx, adminID, validReq)

		require.NoError(t, err)
		assert.Equal(t, "New Hire", result.FullName)
		assert.Equal(t, user.RoleEmployee, createdUser.Role)
		assert.True(t, createdUser.IsActive)
		require.NotNil(t, createdUser.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*createdUser.PasswordHash), []byte("changeme123")))
		assert.Equal(t, createdUser.ID, createdEmployee.UserID)
		require.NotNil(t, createdEmployee.AddedBy)
		assert.Equal(t, adminID, *createdEmployee.AddedBy)
		require.NotNil(t, createdEmployee.Salary)
		assert.Equal(t, "55000", createdEmployee.Salary.String())
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		userRepo := &fakeUserRepo{
			existsByEmailFn: func(ctx context.Context, email string) (bool, error) {
				return true, nil
			},
		}
		svc := NewEmployeeService(&fakeEmployeeRepo{}, userRepo, fakeTxManager{})

		_, err := svc.Create(ctx, adminID, validReq)

		assert.ErrorIs(t, err, employee.ErrEmailExists)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		svc := NewEmployeeService(&fakeEmployeeRepo{}, &fakeUserRepo{}, fakeTxManager{})

		req := validReq
		req.Password = "short"
		_, err := svc.Create(ctx, adminID, req)

		var validationErrs validator.ValidationErrors
		assert.ErrorAs(t, err, &validationErrs)
	})

	t.Run("non-numeric salary is rejected", func(t *testing.T) {
		svc := NewEmployeeService(&fakeEmployeeRepo{}, &fakeUserRepo{}, fakeTxManager{})

		bad := "a lot"
		req := validReq
		req.Salary = &bad
		_, err := svc.Create(ctx, adminID, req)

		var validationErrs validator.ValidationErrors
		assert.ErrorAs(t, err, &validationErrs)
	})
}

func TestDeactivateEmployee(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	employeeID := uuid.NewString()

	t.Run("disables the login alongside the employee row", func(t *testing.T) {
		deactivated := false
		empRepo := &fakeEmployeeRepo{
			getByIDFn: func(ctx context.Context, id string) (employee.Employee, error) {
				return employee.Employee{ID: employeeID, UserID: userID, IsActive: true}, nil
			},
			deactivateFn: func(ctx context.Context, id string) error {
				assert.Equal(t, employeeID, id)
				deactivated = true
				return nil
			},
		}
		loginDisabled := false
		userRepo := &fakeUserRepo{
			setActiveFn: func(ctx context.Context, id string, active bool) error {
				assert.Equal(t, userID, id)
				assert.False(t, active)
				loginDisabled = true
				return nil
			},
		}
		svc := NewEmployeeService(empRepo, userRepo, fakeTxManager{})

		err := svc.Deactivate(ctx, employeeID)

		require.NoError(t, err)
		assert.True(t, deactivated)
		assert.True(t, loginDisabled)
	})

	t.Run("unknown employee is not found", func(t *testing.T) {
		svc := NewEmployeeService(&fakeEmployeeRepo{}, &fakeUserRepo{}, fakeTxManager{})

		err := svc.Deactivate(ctx, uuid.NewString())

		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}
