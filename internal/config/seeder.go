package config

import (
	"fmt"
	"log"
	"time"

	"loanintake-backend/internal/adapters/persistence/models"
	"loanintake-backend/internal/core/domain"
	"loanintake-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedSuperuser(); err != nil {
		log.Printf("⚠️ Superuser seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedSuperuser seeds the bootstrap manager account from SEED_SUPERUSER_* env.
func (s *Seeder) seedSuperuser() error {
	seed := s.cfg.Superuser
	if seed.Email == "" || seed.Phone == "" || seed.Password == "" {
		return fmt.Errorf("SEED_SUPERUSER_EMAIL, SEED_SUPERUSER_PHONE and SEED_SUPERUSER_PASSWORD must be set")
	}

	// Skip if a manager already exists
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", domain.RoleManager).Count(&count)
	if count > 0 {
		return nil
	}

	return s.createSuperuser(seed)
}

// createSuperuser persists the bootstrap account
func (s *Seeder) createSuperuser(seed SuperuserConfig) error {
	superuser, err := buildSuperuser(seed)
	if err != nil {
		return err
	}

	if err := s.db.Create(superuser).Error; err != nil {
		return err
	}

	log.Printf("✅ Superuser created: %s (role: %s)", superuser.Username, superuser.Role)
	return nil
}

// buildSuperuser assembles the bootstrap account. The role is always
// manager; the seed data cannot downgrade it.
func buildSuperuser(seed SuperuserConfig) (*models.User, error) {
	hashedPassword, err := password.Hash(seed.Password)
	if err != nil {
		return nil, err
	}

	dob, err := time.Parse("2006-01-02", seed.DOB)
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_SUPERUSER_DOB (use YYYY-MM-DD): %w", err)
	}

	return &models.User{
		Username:    seed.Username,
		Email:       seed.Email,
		PhoneNumber: seed.Phone,
		DOB:         dob,
		Role:        domain.RoleManager,
		Password:    hashedPassword,
		IsActive:    true,
		IsStaff:     true,
	}, nil
}
