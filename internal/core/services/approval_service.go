package services

import (
	"context"
	"errors"
	"log"

	"loanintake-backend/internal/adapters/persistence/models"
	"loanintake-backend/internal/adapters/persistence/repositories"
	"loanintake-backend/internal/core/domain"
)

// Approval service errors
var (
	ErrNotEmployeeRegistered   = errors.New("only employee-registered clients can be sent for approval")
	ErrInvalidStatusTransition = errors.New("invalid approval status transition")
)

// The sensitive detail fields that must be present before a client can be
// submitted for approval
var approvalRequiredFields = []string{
	"cibil_score",
	"aadhaar_front",
	"aadhaar_back",
	"cibil_report",
	"pan_card",
}

// ApprovalService handles the submit-for-approval workflow and the
// manager-side approve/reject transitions
type ApprovalService struct {
	clientRepo  repositories.ClientRepository
	detailsRepo repositories.ClientDetailsRepository
	userRepo    repositories.UserRepository
}

// NewApprovalService creates a new approval service
func NewApprovalService(
	clientRepo repositories.ClientRepository,
	detailsRepo repositories.ClientDetailsRepository,
	userRepo repositories.UserRepository,
) *ApprovalService {
	return &ApprovalService{
		clientRepo:  clientRepo,
		detailsRepo: detailsRepo,
		userRepo:    userRepo,
	}
}

// ClientSummary is the client half of the manager-facing approval summary
type ClientSummary struct {
	ClientID      uint                  `json:"client_id"`
	ClientName    string                `json:"client_name"`
	ContactNumber string                `json:"contact_number"`
	Email         string                `json:"email"`
	Address       string                `json:"address"`
	LoanAmount    float64               `json:"loan_amount"`
	LoanPurpose   string                `json:"loan_purpose"`
	Status        domain.ApprovalStatus `json:"status"`
}

// EmployeeSummary is the submitting-employee half of the approval summary
type EmployeeSummary struct {
	EmployeeID   uint        `json:"employee_id"`
	EmployeeName string      `json:"employee_name"`
	Email        string      `json:"email"`
	PhoneNumber  string      `json:"phone_number"`
	Role         domain.Role `json:"role"`
}

// ApprovalSummary is returned to the submitting employee and forwarded to
// the manager
type ApprovalSummary struct {
	Client   ClientSummary   `json:"client_details"`
	Employee EmployeeSummary `json:"employee_details"`
}

// SubmitForApproval validates completeness of a client's sensitive details
// and (re-)asserts pending status. Only the owning employee may submit, and
// only for employee-registered clients.
func (s *ApprovalService) SubmitForApproval(ctx context.Context, clientID, employeeID uint) (*ApprovalSummary, error) {
	client, err := s.clientRepo.GetByIDForEmployee(ctx, clientID, employeeID)
	if err != nil {
		return nil, ErrClientNotFound
	}

	if client.ClientType != domain.ClientTypeEmployeeRegistered {
		return nil, ErrNotEmployeeRegistered
	}

	details, err := s.detailsRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, ErrDetailsNotFound
	}

	if missing := missingDetailFields(details); len(missing) > 0 {
		return nil, &domain.CompletenessError{Missing: missing}
	}

	// Re-submission is idempotent: pending -> pending
	client.ApprovalStatus = domain.ApprovalPending
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	employee, err := s.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	log.Printf("✅ Client %d sent for approval by employee %s", client.ID, employee.Username)

	return &ApprovalSummary{
		Client: ClientSummary{
			ClientID:      client.ID,
			ClientName:    client.Name,
			ContactNumber: client.ContactNumber,
			Email:         client.Gmail,
			Address:       client.CurrentAddress,
			LoanAmount:    client.ExpectedLoanAmount,
			LoanPurpose:   client.LoanPurpose,
			Status:        client.ApprovalStatus,
		},
		Employee: EmployeeSummary{
			EmployeeID:   employee.ID,
			EmployeeName: employee.Username,
			Email:        employee.Email,
			PhoneNumber:  employee.PhoneNumber,
			Role:         employee.Role,
		},
	}, nil
}

// Approve moves a pending client to approved (manager only)
func (s *ApprovalService) Approve(ctx context.Context, clientID uint) (*models.Client, error) {
	return s.transition(ctx, clientID, domain.ApprovalApproved)
}

// Reject moves a pending client to rejected (manager only)
func (s *ApprovalService) Reject(ctx context.Context, clientID uint) (*models.Client, error) {
	return s.transition(ctx, clientID, domain.ApprovalRejected)
}

func (s *ApprovalService) transition(ctx context.Context, clientID uint, next domain.ApprovalStatus) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, ErrClientNotFound
	}

	if !client.ApprovalStatus.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition
	}

	client.ApprovalStatus = next
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	log.Printf("✅ Client %d approval status: %s", client.ID, client.ApprovalStatus)
	return client, nil
}

// missingDetailFields collects every absent required field, not just the
// first, so the caller can fix them in one pass
func missingDetailFields(details *models.EmployeeClientDetails) []string {
	var missing []string
	for _, field := range approvalRequiredFields {
		switch field {
		case "cibil_score":
			if details.CibilScore == 0 {
				missing = append(missing, field)
			}
		case "aadhaar_front":
			if details.AadhaarFront == "" {
				missing = append(missing, field)
			}
		case "aadhaar_back":
			if details.AadhaarBack == "" {
				missing = append(missing, field)
			}
		case "cibil_report":
			if details.CibilReport == "" {
				missing = append(missing, field)
			}
		case "pan_card":
			if details.PanCard == "" {
				missing = append(missing, field)
			}
		}
	}
	return missing
}
