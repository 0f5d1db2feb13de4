package services

import (
	"context"
	"log"

	"loanintake-backend/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs scheduled maintenance jobs
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	return &CronService{
		cron:             cron.New(),
		refreshTokenRepo: repositories.NewRefreshTokenRepository(db),
	}
}

// Start registers jobs and starts the scheduler.
// Expired refresh tokens are purged daily at 02:00.
func (s *CronService) Start() {
	_, err := s.cron.AddFunc("0 2 * * *", s.purgeExpiredTokens)
	if err != nil {
		log.Printf("❌ Failed to register token cleanup job: %v", err)
		return
	}

	s.cron.Start()
	log.Println("✅ Cron service started (token cleanup daily at 02:00)")
}

// Stop stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 Cron service stopped")
}

func (s *CronService) purgeExpiredTokens() {
	deleted, err := s.refreshTokenRepo.DeleteExpired(context.Background())
	if err != nil {
		log.Printf("❌ Token cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("✅ Token cleanup removed %d expired refresh tokens", deleted)
	}
}
