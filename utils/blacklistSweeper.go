package utils

import (
	"log"
	"time"

	"lms/database"
	"lms/models"

	"github.com/robfig/cron/v3"
)

// BlacklistRetention matches the token lifetime: once a token has
// expired on its own, keeping its blacklist row buys nothing.
const BlacklistRetention = 24 * time.Hour

// SweepExpiredBlacklistTokens removes blacklist rows older than the
// retention window and returns how many were deleted.
func SweepExpiredBlacklistTokens() int64 {
	cutoff := time.Now().Add(-BlacklistRetention)

	result := database.Database.Db.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&models.BlacklistToken{})
	if result.Error != nil {
		log.Printf("[BLACKLIST-SWEEP] Error deleting expired tokens: %v", result.Error)
		return 0
	}

	if result.RowsAffected > 0 {
		log.Printf("[BLACKLIST-SWEEP] Removed %d expired tokens", result.RowsAffected)
	}
	return result.RowsAffected
}

// StartBlacklistSweeper runs the sweep hourly. The SQL store has no TTL
// index, so expiry is an explicit background job.
func StartBlacklistSweeper() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", func() {
		SweepExpiredBlacklistTokens()
	}); err != nil {
		log.Fatalf("Failed to schedule blacklist sweeper: %v", err)
	}

	c.Start()
	log.Println("Blacklist sweeper scheduled (hourly)")
	return c
}
