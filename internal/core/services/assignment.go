package services

import (
	"context"
	"math/rand"
	"time"

	"loanintake-backend/internal/adapters/persistence/models"
	"loanintake-backend/internal/adapters/persistence/repositories"
)

// AssignmentPolicy decides which employee owns a new public application.
// Selection is uniform random over the active employees at submission time;
// there is no load-balancing history, and the employee list read and the
// client insert are not transactionally linked.
type AssignmentPolicy struct {
	userRepo repositories.UserRepository
	pick     func(n int) int
}

// NewAssignmentPolicy creates an assignment policy with a time-seeded source
func NewAssignmentPolicy(userRepo repositories.UserRepository) *AssignmentPolicy {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &AssignmentPolicy{
		userRepo: userRepo,
		pick:     rng.Intn,
	}
}

// NewAssignmentPolicyWithPicker creates a policy with an injected pick
// function, used by tests for deterministic selection
func NewAssignmentPolicyWithPicker(userRepo repositories.UserRepository, pick func(n int) int) *AssignmentPolicy {
	return &AssignmentPolicy{
		userRepo: userRepo,
		pick:     pick,
	}
}

// PickEmployee returns a uniformly random active employee, or nil when no
// employee exists (the application is then created unassigned)
func (p *AssignmentPolicy) PickEmployee(ctx context.Context) (*models.User, error) {
	employees, err := p.userRepo.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, nil
	}
	return employees[p.pick(len(employees))], nil
}
