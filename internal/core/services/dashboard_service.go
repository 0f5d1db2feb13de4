package services

import (
	"context"

	"loanintake-backend/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService handles the manager overview aggregates
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ManagerDashboardData represents the manager overview
type ManagerDashboardData struct {
	// User statistics
	TotalUsers     int64 `json:"total_users"`
	TotalEmployees int64 `json:"total_employees"`
	TotalManagers  int64 `json:"total_managers"`

	// Client statistics
	TotalClients              int64 `json:"total_clients"`
	DirectClients             int64 `json:"direct_clients"`
	EmployeeRegisteredClients int64 `json:"employee_registered_clients"`
	PendingClients            int64 `json:"pending_clients"`
	ApprovedClients           int64 `json:"approved_clients"`
	RejectedClients           int64 `json:"rejected_clients"`
	UnassignedClients         int64 `json:"unassigned_clients"`

	// Per-employee caseload
	EmployeeLoads []EmployeeCaseload `json:"employee_loads"`
}

// EmployeeCaseload represents one employee's client load
type EmployeeCaseload struct {
	EmployeeID   uint   `json:"employee_id"`
	Username     string `json:"username"`
	TotalClients int64  `json:"total_clients"`
	Pending      int64  `json:"pending"`
	Approved     int64  `json:"approved"`
	Rejected     int64  `json:"rejected"`
}

// GetManagerDashboard returns the manager overview
func (s *DashboardService) GetManagerDashboard(ctx context.Context) (*ManagerDashboardData, error) {
	data := &ManagerDashboardData{}

	// User counts by role
	s.db.WithContext(ctx).Table("users").Where("deleted_at IS NULL").Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", domain.RoleEmployee).Count(&data.TotalEmployees)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", domain.RoleManager).Count(&data.TotalManagers)

	// Client counts by type and status
	s.db.WithContext(ctx).Table("clients").Count(&data.TotalClients)
	s.db.WithContext(ctx).Table("clients").Where("client_type = ?", domain.ClientTypeDirect).Count(&data.DirectClients)
	s.db.WithContext(ctx).Table("clients").Where("client_type = ?", domain.ClientTypeEmployeeRegistered).Count(&data.EmployeeRegisteredClients)
	s.db.WithContext(ctx).Table("clients").Where("approval_status = ?", domain.ApprovalPending).Count(&data.PendingClients)
	s.db.WithContext(ctx).Table("clients").Where("approval_status = ?", domain.ApprovalApproved).Count(&data.ApprovedClients)
	s.db.WithContext(ctx).Table("clients").Where("approval_status = ?", domain.ApprovalRejected).Count(&data.RejectedClients)
	s.db.WithContext(ctx).Table("clients").Where("assigned_employee_id IS NULL").Count(&data.UnassignedClients)

	// Per-employee caseload
	err := s.db.WithContext(ctx).
		Table("users").
		Select(`users.id AS employee_id,
			users.username,
			COUNT(clients.id) AS total_clients,
			SUM(CASE WHEN clients.approval_status = 'pending' THEN 1 ELSE 0 END) AS pending,
			SUM(CASE WHEN clients.approval_status = 'approved' THEN 1 ELSE 0 END) AS approved,
			SUM(CASE WHEN clients.approval_status = 'rejected' THEN 1 ELSE 0 END) AS rejected`).
		Joins("LEFT JOIN clients ON clients.assigned_employee_id = users.id").
		Where("users.role = ? AND users.deleted_at IS NULL", domain.RoleEmployee).
		Group("users.id, users.username").
		Order("total_clients DESC").
		Scan(&data.EmployeeLoads).Error
	if err != nil {
		return nil, err
	}

	return data, nil
}
