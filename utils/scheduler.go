package utils

import (
	"certportal/database"
	"certportal/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sweepExpiredResetTokens clears forgot-password tokens past their expiry.
func sweepExpiredResetTokens() {
	db := database.Database.Db
	now := time.Now()

	result := db.Model(&models.User{}).
		Where("forgot_password_token <> '' AND forgot_password_token_expiry < ?", now).
		Updates(map[string]interface{}{
			"forgot_password_token":        "",
			"forgot_password_token_expiry": nil,
		})
	if result.Error != nil {
		logScheduler("Error sweeping expired reset tokens: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logScheduler("Cleared expired reset tokens")
	}
}

// sendPendingDigests emails each admin the pending-request count for their department.
func sendPendingDigests() {
	db := database.Database.Db

	var admins []models.User
	if err := db.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		logScheduler("Error fetching admins for digest: " + err.Error())
		return
	}

	for _, admin := range admins {
		var pendingCount int64
		err := db.Model(&models.CertificateRequest{}).
			Joins("JOIN users ON users.id = certificate_requests.student_id").
			Where("certificate_requests.status = ? AND users.department = ?", models.StatusPending, admin.Department).
			Count(&pendingCount).Error
		if err != nil {
			logScheduler("Error counting pending requests for " + admin.Department + ": " + err.Error())
			continue
		}

		if pendingCount > 0 {
			SendPendingDigestEmail(admin.Email, admin.Name, admin.Department, pendingCount)
		}
	}
}

// InitializeSchedulers wires the recurring jobs and starts the cron runner.
func InitializeSchedulers() *cron.Cron {
	c := cron.New()

	// Hourly: clear expired password-reset tokens
	if _, err := c.AddFunc("@hourly", sweepExpiredResetTokens); err != nil {
		logScheduler("Failed to schedule reset-token sweep: " + err.Error())
	}

	// Daily 08:00: pending-request digest to department admins
	if _, err := c.AddFunc("0 8 * * *", sendPendingDigests); err != nil {
		logScheduler("Failed to schedule pending digest: " + err.Error())
	}

	c.Start()
	logScheduler("Schedulers initialized")
	return c
}
