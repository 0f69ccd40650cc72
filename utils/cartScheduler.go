package utils

import (
	"log"
	"time"

	"academy/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeCartScheduler starts the daily sweep of abandoned cart items.
// Cart lines are only ever removed by a completed payment, so items a user
// walked away from would otherwise accumulate forever.
func InitializeCartScheduler(db *gorm.DB, ttlDays int) *cron.Cron {
	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		SweepStaleCartItems(db, ttlDays)
	})

	c.Start()
	log.Printf("[CART-SCHEDULER] Started - sweeping cart items older than %d days, daily at 3 AM", ttlDays)
	return c
}

// SweepStaleCartItems deletes cart items older than the TTL
func SweepStaleCartItems(db *gorm.DB, ttlDays int) {
	cutoff := time.Now().AddDate(0, 0, -ttlDays)

	result := db.Unscoped().Where("created_at < ?", cutoff).Delete(&models.CartItem{})
	if result.Error != nil {
		log.Printf("[CART-SCHEDULER] Error sweeping stale cart items: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[CART-SCHEDULER] Removed %d stale cart items", result.RowsAffected)
	}
}
