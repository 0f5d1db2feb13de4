package repositories

import (
	"context"
	"time"

	"loanintake-backend/internal/adapters/persistence/models"
	"loanintake-backend/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByCredentials looks up the single active user matching all four
	// identity factors. DOB is compared on the calendar day.
	GetByCredentials(ctx context.Context, email, phone string, dob time.Time, role domain.Role) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	// ListEmployees returns all active accounts with role employee.
	ListEmployees(ctx context.Context) ([]*models.User, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// ClientRepository defines client repository interface
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id uint) (*models.Client, error)
	// GetByIDForEmployee scopes the lookup to clients owned by the given
	// employee. A non-owned id behaves exactly like a missing one.
	GetByIDForEmployee(ctx context.Context, id, employeeID uint) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	List(ctx context.Context, offset, limit int) ([]*models.Client, int64, error)
	ListByEmployee(ctx context.Context, employeeID uint, offset, limit int) ([]*models.Client, int64, error)
}

// ClientDetailsRepository defines the sensitive details repository interface
type ClientDetailsRepository interface {
	Create(ctx context.Context, details *models.EmployeeClientDetails) error
	GetByClientID(ctx context.Context, clientID uint) (*models.EmployeeClientDetails, error)
	Update(ctx context.Context, details *models.EmployeeClientDetails) error
}
