package utils

import (
	"log"
	"time"

	"offersense/config"
	"offersense/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartRetentionScheduler runs the cleanup jobs: expired verification rows
// hourly, old offer payload logs daily.
func StartRetentionScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", func() { PurgeExpiredVerifications(db) }); err != nil {
		log.Fatalf("Failed to schedule verification cleanup: %v", err)
	}
	if _, err := c.AddFunc("@daily", func() { PurgeOldOfferLogs(db) }); err != nil {
		log.Fatalf("Failed to schedule offer log cleanup: %v", err)
	}

	c.Start()
	return c
}

// PurgeExpiredVerifications drops verification rows past their expiry.
func PurgeExpiredVerifications(db *gorm.DB) {
	res := db.Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&models.Verification{})
	if res.Error != nil {
		log.Printf("Verification cleanup failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Purged %d expired verification rows", res.RowsAffected)
	}
}

// PurgeOldOfferLogs drops offer payload logs older than the retention
// window.
func PurgeOldOfferLogs(db *gorm.DB) {
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.OfferLogRetention)
	res := db.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&models.OfferLog{})
	if res.Error != nil {
		log.Printf("Offer log cleanup failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Purged %d offer log rows", res.RowsAffected)
	}
}
