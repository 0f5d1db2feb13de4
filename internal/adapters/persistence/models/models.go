package models

import (
	"time"

	"loanintake-backend/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Identity
// ============================================================

// User represents users table (employees and managers)
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"uniqueIndex;size:255;not null" json:"username"`
	Email       string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PhoneNumber string         `gorm:"uniqueIndex;size:15;not null" json:"phone_number"`
	DOB         time.Time      `gorm:"type:date" json:"dob"`
	Role        domain.Role    `gorm:"size:10;default:'employee'" json:"role"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	IsStaff     bool           `gorm:"default:false" json:"is_staff"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID          uint        `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	PhoneNumber string      `json:"phone_number"`
	DOB         string      `json:"dob"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		DOB:         u.DOB.Format("2006-01-02"),
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Client applications
// ============================================================

// Client represents clients table (direct and employee-registered loan applications)
type Client struct {
	ID                 uint                  `gorm:"primaryKey" json:"id"`
	Name               string                `gorm:"size:255;not null" json:"name"`
	ContactNumber      string                `gorm:"uniqueIndex;size:15;not null" json:"contact_number"`
	AlternativeNumber  *string               `gorm:"size:15" json:"alternative_number"`
	FatherName         string                `gorm:"size:255" json:"father_name"`
	MotherName         string                `gorm:"size:255" json:"mother_name"`
	Qualifications     string                `gorm:"size:255" json:"qualifications"`
	MarriedStatus      bool                  `gorm:"default:false" json:"married_status"`
	CurrentAddress     string                `gorm:"type:text" json:"current_address"`
	Landmark           string                `gorm:"size:255" json:"landmark"`
	YearsAtAddress     int                   `json:"years_at_address"`
	Gmail              string                `gorm:"uniqueIndex;size:100;not null" json:"gmail"`
	OfficeName         string                `gorm:"size:255" json:"office_name"`
	OfficeAddress      string                `gorm:"type:text" json:"office_address"`
	Designation        string                `gorm:"size:255" json:"designation"`
	Department         string                `gorm:"size:255" json:"department"`
	CurrentExperience  int                   `json:"current_experience"`
	OverallExperience  int                   `json:"overall_experience"`
	ReferenceName1     string                `gorm:"size:255" json:"reference_name_1"`
	ReferenceNumber1   string                `gorm:"size:15" json:"reference_number_1"`
	ReferenceName2     string                `gorm:"size:255" json:"reference_name_2"`
	ReferenceNumber2   string                `gorm:"size:15" json:"reference_number_2"`
	ExpectedLoanAmount float64               `gorm:"type:decimal(10,2)" json:"expected_loan_amount"`
	LoanPurpose        string                `gorm:"type:text" json:"loan_purpose"`
	ClientType         domain.ClientType     `gorm:"size:20;default:'direct'" json:"client_type"`
	ApprovalStatus     domain.ApprovalStatus `gorm:"size:10;default:'pending'" json:"approval_status"`
	AssignedEmployeeID *uint                 `gorm:"index" json:"assigned_employee_id"`
	CreatedAt          time.Time             `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	AssignedEmployee *User `gorm:"foreignKey:AssignedEmployeeID;constraint:OnDelete:SET NULL" json:"assigned_employee,omitempty"`
}

func (Client) TableName() string {
	return "clients"
}

// ClientResponse DTO
type ClientResponse struct {
	ID                 uint                  `json:"id"`
	Name               string                `json:"name"`
	ContactNumber      string                `json:"contact_number"`
	AlternativeNumber  *string               `json:"alternative_number"`
	FatherName         string                `json:"father_name"`
	MotherName         string                `json:"mother_name"`
	Qualifications     string                `json:"qualifications"`
	MarriedStatus      bool                  `json:"married_status"`
	CurrentAddress     string                `json:"current_address"`
	Landmark           string                `json:"landmark"`
	YearsAtAddress     int                   `json:"years_at_address"`
	Gmail              string                `json:"gmail"`
	OfficeName         string                `json:"office_name"`
	OfficeAddress      string                `json:"office_address"`
	Designation        string                `json:"designation"`
	Department         string                `json:"department"`
	CurrentExperience  int                   `json:"current_experience"`
	OverallExperience  int                   `json:"overall_experience"`
	ReferenceName1     string                `json:"reference_name_1"`
	ReferenceNumber1   string                `json:"reference_number_1"`
	ReferenceName2     string                `json:"reference_name_2"`
	ReferenceNumber2   string                `json:"reference_number_2"`
	ExpectedLoanAmount float64               `json:"expected_loan_amount"`
	LoanPurpose        string                `json:"loan_purpose"`
	ClientType         domain.ClientType     `json:"client_type"`
	ApprovalStatus     domain.ApprovalStatus `json:"approval_status"`
	AssignedEmployee   *uint                 `json:"assigned_employee"`
	CreatedAt          time.Time             `json:"created_at"`
}

func (c *Client) ToResponse() *ClientResponse {
	return &ClientResponse{
		ID:                 c.ID,
		Name:               c.Name,
		ContactNumber:      c.ContactNumber,
		AlternativeNumber:  c.AlternativeNumber,
		FatherName:         c.FatherName,
		MotherName:         c.MotherName,
		Qualifications:     c.Qualifications,
		MarriedStatus:      c.MarriedStatus,
		CurrentAddress:     c.CurrentAddress,
		Landmark:           c.Landmark,
		YearsAtAddress:     c.YearsAtAddress,
		Gmail:              c.Gmail,
		OfficeName:         c.OfficeName,
		OfficeAddress:      c.OfficeAddress,
		Designation:        c.Designation,
		Department:         c.Department,
		CurrentExperience:  c.CurrentExperience,
		OverallExperience:  c.OverallExperience,
		ReferenceName1:     c.ReferenceName1,
		ReferenceNumber1:   c.ReferenceNumber1,
		ReferenceName2:     c.ReferenceName2,
		ReferenceNumber2:   c.ReferenceNumber2,
		ExpectedLoanAmount: c.ExpectedLoanAmount,
		LoanPurpose:        c.LoanPurpose,
		ClientType:         c.ClientType,
		ApprovalStatus:     c.ApprovalStatus,
		AssignedEmployee:   c.AssignedEmployeeID,
		CreatedAt:          c.CreatedAt,
	}
}

// EmployeeClientDetails represents employee_client_details table.
// Sensitive one-to-one extension of a client, filled by employees only.
type EmployeeClientDetails struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ClientID         uint      `gorm:"uniqueIndex;not null" json:"client_id"`
	CibilScore       int       `json:"cibil_score"`
	AadhaarFront     string    `gorm:"size:255" json:"aadhaar_front"`
	AadhaarBack      string    `gorm:"size:255" json:"aadhaar_back"`
	CibilReport      string    `gorm:"size:255" json:"cibil_report"`
	PanCard          string    `gorm:"size:255" json:"pan_card"`
	GasBill          string    `gorm:"size:255" json:"gas_bill"`
	ReferenceNumber1 string    `gorm:"size:15" json:"reference_number_1"`
	ReferenceNumber2 string    `gorm:"size:15" json:"reference_number_2"`
	FilledByID       *uint     `gorm:"index" json:"filled_by"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Client   *Client `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	FilledBy *User   `gorm:"foreignKey:FilledByID;constraint:OnDelete:SET NULL" json:"-"`
}

func (EmployeeClientDetails) TableName() string {
	return "employee_client_details"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Client{},
		&EmployeeClientDetails{},
	)
}
