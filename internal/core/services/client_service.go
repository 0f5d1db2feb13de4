package services

import (
	"context"
	"errors"
	"log"

	"loanintake-backend/internal/adapters/persistence/models"
	"loanintake-backend/internal/adapters/persistence/repositories"
	"loanintake-backend/internal/core/domain"

	"gorm.io/gorm"
)

// Client service errors
var (
	ErrClientNotFound    = errors.New("client not found or unauthorized")
	ErrDetailsNotFound   = errors.New("client details not found")
	ErrInvalidClientType = errors.New("invalid client type")
	ErrNotAnEmployee     = errors.New("assigned user is not an employee")
	ErrDuplicateClient   = errors.New("client with this contact number or gmail already exists")
)

// ClientService handles client application business logic
type ClientService struct {
	clientRepo  repositories.ClientRepository
	detailsRepo repositories.ClientDetailsRepository
	userRepo    repositories.UserRepository
	assignment  *AssignmentPolicy
}

// NewClientService creates a new client service
func NewClientService(
	clientRepo repositories.ClientRepository,
	detailsRepo repositories.ClientDetailsRepository,
	userRepo repositories.UserRepository,
	assignment *AssignmentPolicy,
) *ClientService {
	return &ClientService{
		clientRepo:  clientRepo,
		detailsRepo: detailsRepo,
		userRepo:    userRepo,
		assignment:  assignment,
	}
}

// CreateClientInput represents the full client application payload
type CreateClientInput struct {
	Name               string  `json:"name"`
	ContactNumber      string  `json:"contact_number"`
	AlternativeNumber  string  `json:"alternative_number,omitempty"`
	FatherName         string  `json:"father_name"`
	MotherName         string  `json:"mother_name"`
	Qualifications     string  `json:"qualifications"`
	MarriedStatus      bool    `json:"married_status"`
	CurrentAddress     string  `json:"current_address"`
	Landmark           string  `json:"landmark"`
	YearsAtAddress     int     `json:"years_at_address"`
	Gmail              string  `json:"gmail"`
	OfficeName         string  `json:"office_name"`
	OfficeAddress      string  `json:"office_address"`
	Designation        string  `json:"designation"`
	Department         string  `json:"department"`
	CurrentExperience  int     `json:"current_experience"`
	OverallExperience  int     `json:"overall_experience"`
	ReferenceName1     string  `json:"reference_name_1"`
	ReferenceNumber1   string  `json:"reference_number_1"`
	ReferenceName2     string  `json:"reference_name_2"`
	ReferenceNumber2   string  `json:"reference_number_2"`
	ExpectedLoanAmount float64 `json:"expected_loan_amount"`
	LoanPurpose        string  `json:"loan_purpose"`
	ClientType         string  `json:"client_type,omitempty"`
	AssignedEmployeeID *uint   `json:"assigned_employee,omitempty"`
}

func (in *CreateClientInput) toModel() *models.Client {
	client := &models.Client{
		Name:               in.Name,
		ContactNumber:      in.ContactNumber,
		FatherName:         in.FatherName,
		MotherName:         in.MotherName,
		Qualifications:     in.Qualifications,
		MarriedStatus:      in.MarriedStatus,
		CurrentAddress:     in.CurrentAddress,
		Landmark:           in.Landmark,
		YearsAtAddress:     in.YearsAtAddress,
		Gmail:              NormalizeEmail(in.Gmail),
		OfficeName:         in.OfficeName,
		OfficeAddress:      in.OfficeAddress,
		Designation:        in.Designation,
		Department:         in.Department,
		CurrentExperience:  in.CurrentExperience,
		OverallExperience:  in.OverallExperience,
		ReferenceName1:     in.ReferenceName1,
		ReferenceNumber1:   in.ReferenceNumber1,
		ReferenceName2:     in.ReferenceName2,
		ReferenceNumber2:   in.ReferenceNumber2,
		ExpectedLoanAmount: in.ExpectedLoanAmount,
		LoanPurpose:        in.LoanPurpose,
		ApprovalStatus:     domain.ApprovalPending,
	}
	if in.AlternativeNumber != "" {
		alt := in.AlternativeNumber
		client.AlternativeNumber = &alt
	}
	return client
}

// Create creates a client through the authenticated generic path.
// Employee-registered records are owned by the caller; direct records are
// stored as submitted (an explicit assignee must be an employee).
func (s *ClientService) Create(ctx context.Context, input *CreateClientInput, callerID uint) (*models.Client, error) {
	clientType, err := domain.ParseClientType(input.ClientType)
	if err != nil {
		return nil, ErrInvalidClientType
	}

	client := input.toModel()
	client.ClientType = clientType

	switch clientType {
	case domain.ClientTypeEmployeeRegistered:
		client.AssignedEmployeeID = &callerID
	case domain.ClientTypeDirect:
		if input.AssignedEmployeeID != nil {
			if err := s.validateEmployee(ctx, *input.AssignedEmployeeID); err != nil {
				return nil, err
			}
			client.AssignedEmployeeID = input.AssignedEmployeeID
		}
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateClient
		}
		return nil, err
	}
	return client, nil
}

// CreateForEmployee creates an employee-registered client owned by the caller.
// Type and owner are forced server-side regardless of the payload.
func (s *ClientService) CreateForEmployee(ctx context.Context, input *CreateClientInput, employeeID uint) (*models.Client, error) {
	client := input.toModel()
	client.ClientType = domain.ClientTypeEmployeeRegistered
	client.AssignedEmployeeID = &employeeID

	if err := s.clientRepo.Create(ctx, client); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateClient
		}
		return nil, err
	}

	log.Printf("✅ Employee %d registered client: %s", employeeID, client.Name)
	return client, nil
}

// Apply creates a direct client through the public application path and
// auto-assigns an employee via the assignment policy
func (s *ClientService) Apply(ctx context.Context, input *CreateClientInput) (*models.Client, *models.User, error) {
	employee, err := s.assignment.PickEmployee(ctx)
	if err != nil {
		return nil, nil, err
	}

	client := input.toModel()
	client.ClientType = domain.ClientTypeDirect
	if employee != nil {
		client.AssignedEmployeeID = &employee.ID
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrDuplicateClient
		}
		return nil, nil, err
	}

	if employee != nil {
		log.Printf("✅ Application %d auto-assigned to employee %s", client.ID, employee.Username)
	} else {
		log.Printf("⚠️ Application %d created unassigned: no employees registered", client.ID)
	}

	return client, employee, nil
}

// List lists all clients with pagination (any authenticated caller)
func (s *ClientService) List(ctx context.Context, offset, limit int) ([]*models.Client, int64, error) {
	return s.clientRepo.List(ctx, offset, limit)
}

// ListByEmployee lists the clients owned by an employee
func (s *ClientService) ListByEmployee(ctx context.Context, employeeID uint, offset, limit int) ([]*models.Client, int64, error) {
	return s.clientRepo.ListByEmployee(ctx, employeeID, offset, limit)
}

// GetForEmployee gets a client owned by the given employee. A non-owned id
// is reported as not found, never as forbidden.
func (s *ClientService) GetForEmployee(ctx context.Context, id, employeeID uint) (*models.Client, error) {
	client, err := s.clientRepo.GetByIDForEmployee(ctx, id, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// GetByID gets any client (manager access)
func (s *ClientService) GetByID(ctx context.Context, id uint) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// UpdateClientInput represents a partial client update. Nil fields are left
// untouched. Approval status is never updatable here; it moves only through
// the approval workflow.
type UpdateClientInput struct {
	Name               *string  `json:"name"`
	ContactNumber      *string  `json:"contact_number"`
	AlternativeNumber  *string  `json:"alternative_number"`
	FatherName         *string  `json:"father_name"`
	MotherName         *string  `json:"mother_name"`
	Qualifications     *string  `json:"qualifications"`
	MarriedStatus      *bool    `json:"married_status"`
	CurrentAddress     *string  `json:"current_address"`
	Landmark           *string  `json:"landmark"`
	YearsAtAddress     *int     `json:"years_at_address"`
	Gmail              *string  `json:"gmail"`
	OfficeName         *string  `json:"office_name"`
	OfficeAddress      *string  `json:"office_address"`
	Designation        *string  `json:"designation"`
	Department         *string  `json:"department"`
	CurrentExperience  *int     `json:"current_experience"`
	OverallExperience  *int     `json:"overall_experience"`
	ReferenceName1     *string  `json:"reference_name_1"`
	ReferenceNumber1   *string  `json:"reference_number_1"`
	ReferenceName2     *string  `json:"reference_name_2"`
	ReferenceNumber2   *string  `json:"reference_number_2"`
	ExpectedLoanAmount *float64 `json:"expected_loan_amount"`
	LoanPurpose        *string  `json:"loan_purpose"`
	AssignedEmployeeID *uint    `json:"assigned_employee"`
}

// UpdateForEmployee partially updates a client owned by the employee.
// Reassignment is not available on this path.
func (s *ClientService) UpdateForEmployee(ctx context.Context, id, employeeID uint, input *UpdateClientInput) (*models.Client, error) {
	client, err := s.GetForEmployee(ctx, id, employeeID)
	if err != nil {
		return nil, err
	}

	applyClientUpdate(client, input)

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// UpdateByManager partially updates any client, including reassignment to a
// different employee
func (s *ClientService) UpdateByManager(ctx context.Context, id uint, input *UpdateClientInput) (*models.Client, error) {
	client, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.AssignedEmployeeID != nil {
		if err := s.validateEmployee(ctx, *input.AssignedEmployeeID); err != nil {
			return nil, err
		}
		client.AssignedEmployeeID = input.AssignedEmployeeID
	}

	applyClientUpdate(client, input)

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// DetailsInput represents the sensitive details payload filled by employees
type DetailsInput struct {
	CibilScore       int    `json:"cibil_score"`
	AadhaarFront     string `json:"aadhaar_front"`
	AadhaarBack      string `json:"aadhaar_back"`
	CibilReport      string `json:"cibil_report"`
	PanCard          string `json:"pan_card"`
	GasBill          string `json:"gas_bill"`
	ReferenceNumber1 string `json:"reference_number_1"`
	ReferenceNumber2 string `json:"reference_number_2"`
}

// GetDetails gets the sensitive details of a client. Employees see only
// their own clients' details; managers see any.
func (s *ClientService) GetDetails(ctx context.Context, clientID, callerID uint, callerRole domain.Role) (*models.EmployeeClientDetails, error) {
	if _, err := s.getScoped(ctx, clientID, callerID, callerRole); err != nil {
		return nil, err
	}

	details, err := s.detailsRepo.GetByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDetailsNotFound
		}
		return nil, err
	}
	return details, nil
}

// UpsertDetails creates or updates the sensitive details record of a client.
// filled_by is recorded only for employee callers.
func (s *ClientService) UpsertDetails(ctx context.Context, clientID uint, input *DetailsInput, callerID uint, callerRole domain.Role) (*models.EmployeeClientDetails, error) {
	if _, err := s.getScoped(ctx, clientID, callerID, callerRole); err != nil {
		return nil, err
	}

	details, err := s.detailsRepo.GetByClientID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		details = &models.EmployeeClientDetails{ClientID: clientID}
	}

	details.CibilScore = input.CibilScore
	details.AadhaarFront = input.AadhaarFront
	details.AadhaarBack = input.AadhaarBack
	details.CibilReport = input.CibilReport
	details.PanCard = input.PanCard
	details.GasBill = input.GasBill
	details.ReferenceNumber1 = input.ReferenceNumber1
	details.ReferenceNumber2 = input.ReferenceNumber2

	if callerRole == domain.RoleEmployee {
		details.FilledByID = &callerID
	}

	if details.ID == 0 {
		err = s.detailsRepo.Create(ctx, details)
	} else {
		err = s.detailsRepo.Update(ctx, details)
	}
	if err != nil {
		return nil, err
	}
	return details, nil
}

// getScoped resolves a client with ownership filtering applied for employees
func (s *ClientService) getScoped(ctx context.Context, clientID, callerID uint, callerRole domain.Role) (*models.Client, error) {
	switch callerRole {
	case domain.RoleManager:
		return s.GetByID(ctx, clientID)
	case domain.RoleEmployee:
		return s.GetForEmployee(ctx, clientID, callerID)
	default:
		return nil, ErrClientNotFound
	}
}

// validateEmployee checks the referenced user exists and has role employee.
// Lookup failures other than a missing row are propagated as-is.
func (s *ClientService) validateEmployee(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAnEmployee
		}
		return err
	}
	if user.Role != domain.RoleEmployee {
		return ErrNotAnEmployee
	}
	return nil
}

func applyClientUpdate(client *models.Client, input *UpdateClientInput) {
	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.ContactNumber != nil {
		client.ContactNumber = *input.ContactNumber
	}
	if input.AlternativeNumber != nil {
		client.AlternativeNumber = input.AlternativeNumber
	}
	if input.FatherName != nil {
		client.FatherName = *input.FatherName
	}
	if input.MotherName != nil {
		client.MotherName = *input.MotherName
	}
	if input.Qualifications != nil {
		client.Qualifications = *input.Qualifications
	}
	if input.MarriedStatus != nil {
		client.MarriedStatus = *input.MarriedStatus
	}
	if input.CurrentAddress != nil {
		client.CurrentAddress = *input.CurrentAddress
	}
	if input.Landmark != nil {
		client.Landmark = *input.Landmark
	}
	if input.YearsAtAddress != nil {
		client.YearsAtAddress = *input.YearsAtAddress
	}
	if input.Gmail != nil {
		client.Gmail = NormalizeEmail(*input.Gmail)
	}
	if input.OfficeName != nil {
		client.OfficeName = *input.OfficeName
	}
	if input.OfficeAddress != nil {
		client.OfficeAddress = *input.OfficeAddress
	}
	if input.Designation != nil {
		client.Designation = *input.Designation
	}
	if input.Department != nil {
		client.Department = *input.Department
	}
	if input.CurrentExperience != nil {
		client.CurrentExperience = *input.CurrentExperience
	}
	if input.OverallExperience != nil {
		client.OverallExperience = *input.OverallExperience
	}
	if input.ReferenceName1 != nil {
		client.ReferenceName1 = *input.ReferenceName1
	}
	if input.ReferenceNumber1 != nil {
		client.ReferenceNumber1 = *input.ReferenceNumber1
	}
	if input.ReferenceName2 != nil {
		client.ReferenceName2 = *input.ReferenceName2
	}
	if input.ReferenceNumber2 != nil {
		client.ReferenceNumber2 = *input.ReferenceNumber2
	}
	if input.ExpectedLoanAmount != nil {
		client.ExpectedLoanAmount = *input.ExpectedLoanAmount
	}
	if input.LoanPurpose != nil {
		client.LoanPurpose = *input.LoanPurpose
	}
}
