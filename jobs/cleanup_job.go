package jobs

import (
	"log"
	"time"

	"frontline-rating-server/database"
	"frontline-rating-server/models"
)

// CleanupJob clears expired password reset tokens so stale links cannot be replayed
type CleanupJob struct {
	stopChan chan bool
}

// NewCleanupJob creates a new cleanup job
func NewCleanupJob() *CleanupJob {
	return &CleanupJob{
		stopChan: make(chan bool),
	}
}

// Start begins the cleanup job
func (j *CleanupJob) Start() {
	go j.run()
	log.Println("🚀 Token cleanup job started")
}

// Stop stops the cleanup job
func (j *CleanupJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Token cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.clearExpiredResetTokens()
		case <-j.stopChan:
			return
		}
	}
}

// clearExpiredResetTokens nulls out reset tokens past their expiry
func (j *CleanupJob) clearExpiredResetTokens() {
	result := database.DB.Model(&models.User{}).
		Where("reset_token IS NOT NULL AND reset_token_expiry <= ?", time.Now()).
		Updates(map[string]interface{}{
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})

	if result.Error != nil {
		log.Printf("❌ Error clearing expired reset tokens: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("🧹 Cleared %d expired password reset tokens", result.RowsAffected)
	}
}
