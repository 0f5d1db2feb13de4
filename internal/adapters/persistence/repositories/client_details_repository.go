package repositories

import (
	"context"

	"loanintake-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// clientDetailsRepository implements ClientDetailsRepository interface
type clientDetailsRepository struct {
	db *gorm.DB
}

// NewClientDetailsRepository creates a new client details repository
func NewClientDetailsRepository(db *gorm.DB) ClientDetailsRepository {
	return &clientDetailsRepository{db: db}
}

// Create creates a details record for a client
func (r *clientDetailsRepository) Create(ctx context.Context, details *models.EmployeeClientDetails) error {
	return r.db.WithContext(ctx).Create(details).Error
}

// GetByClientID gets the details record for a client
func (r *clientDetailsRepository) GetByClientID(ctx context.Context, clientID uint) (*models.EmployeeClientDetails, error) {
	var details models.EmployeeClientDetails
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&details).Error
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// Update updates a details record
func (r *clientDetailsRepository) Update(ctx context.Context, details *models.EmployeeClientDetails) error {
	return r.db.WithContext(ctx).Save(details).Error
}
