package domain

import "fmt"

// Role is the closed set of account roles.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// ParseRole parses a role string. Empty input falls back to employee,
// the registration default.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleEmployee:
		return RoleEmployee, nil
	case RoleManager:
		return RoleManager, nil
	case "":
		return RoleEmployee, nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// ClientType distinguishes public applications from employee-registered ones.
type ClientType string

const (
	ClientTypeDirect             ClientType = "direct"
	ClientTypeEmployeeRegistered ClientType = "employee_registered"
)

// ParseClientType parses a client type string. Empty input defaults to direct.
func ParseClientType(s string) (ClientType, error) {
	switch ClientType(s) {
	case ClientTypeDirect:
		return ClientTypeDirect, nil
	case ClientTypeEmployeeRegistered:
		return ClientTypeEmployeeRegistered, nil
	case "":
		return ClientTypeDirect, nil
	default:
		return "", fmt.Errorf("unknown client type: %q", s)
	}
}

func (t ClientType) Valid() bool {
	switch t {
	case ClientTypeDirect, ClientTypeEmployeeRegistered:
		return true
	default:
		return false
	}
}

func (t ClientType) String() string {
	return string(t)
}

// ApprovalStatus is the workflow marker on a client application.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	default:
		return false
	}
}

func (s ApprovalStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether the status may move to next.
// Pending may move to any status (pending->pending is re-submission);
// approved and rejected are terminal.
func (s ApprovalStatus) CanTransitionTo(next ApprovalStatus) bool {
	switch s {
	case ApprovalPending:
		return next.Valid()
	case ApprovalApproved, ApprovalRejected:
		return false
	default:
		return false
	}
}
