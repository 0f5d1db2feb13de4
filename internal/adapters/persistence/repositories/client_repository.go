package repositories

import (
	"context"

	"loanintake-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// clientRepository implements ClientRepository interface
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// Create creates a new client
func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// GetByID gets a client by ID
func (r *clientRepository) GetByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Preload("AssignedEmployee").
		First(&client, id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetByIDForEmployee gets a client by ID scoped to its assigned employee
func (r *clientRepository) GetByIDForEmployee(ctx context.Context, id, employeeID uint) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("assigned_employee_id = ?", employeeID).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// Update updates a client
func (r *clientRepository) Update(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// List lists all clients with pagination
func (r *clientRepository) List(ctx context.Context, offset, limit int) ([]*models.Client, int64, error) {
	var clients []*models.Client
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Client{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&clients).Error

	return clients, total, err
}

// ListByEmployee lists clients assigned to an employee with pagination
func (r *clientRepository) ListByEmployee(ctx context.Context, employeeID uint, offset, limit int) ([]*models.Client, int64, error) {
	var clients []*models.Client
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("assigned_employee_id = ?", employeeID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("assigned_employee_id = ?", employeeID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&clients).Error

	return clients, total, err
}
