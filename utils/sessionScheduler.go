package utils

import (
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"

	"educonnect/database"
	"educonnect/models"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SESSION-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sendSessionReminders emails everyone booked into a session that starts
// within the next 24 hours. Each session is reminded once.
func sendSessionReminders() {
	db := database.Database.Db
	cutoff := time.Now().UTC().Add(24 * time.Hour)

	var sessions []models.Session
	if err := db.Where("status = ? AND reminder_sent = ? AND is_deleted = ? AND start_time > ? AND start_time <= ?",
		models.SessionScheduled, false, false, time.Now().UTC(), cutoff).
		Find(&sessions).Error; err != nil {
		logScheduler("Error fetching upcoming sessions: " + err.Error())
		return
	}

	for _, session := range sessions {
		var bookings []models.SessionBooking
		if err := db.Where("session_id = ? AND is_deleted = ?", session.ID, false).
			Find(&bookings).Error; err != nil {
			logScheduler("Error fetching bookings for session " + session.Title + ": " + err.Error())
			continue
		}

		startTime := session.StartTime.Format("2006-01-02 15:04")
		for _, booking := range bookings {
			var user models.User
			if err := db.Select("name, email").First(&user, booking.UserID).Error; err == nil && user.Email != "" {
				SendSessionReminderEmail(user.Email, user.Name, session.Title, startTime)
			}
		}

		if err := db.Model(&session).Update("reminder_sent", true).Error; err != nil {
			logScheduler("Error marking reminder sent for session " + session.Title + ": " + err.Error())
			continue
		}
		logScheduler("Reminders sent for session '" + session.Title + "'")
	}
}

// completePastSessions moves SCHEDULED sessions whose end time has passed to
// COMPLETED.
func completePastSessions() {
	db := database.Database.Db

	result := db.Model(&models.Session{}).
		Where("status = ? AND is_deleted = ? AND end_time <= ?",
			models.SessionScheduled, false, time.Now().UTC()).
		Update("status", models.SessionCompleted)
	if result.Error != nil {
		logScheduler("Error completing past sessions: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logScheduler("Marked past sessions COMPLETED")
	}
}

// dailySessionSummary logs how many sessions run today, for ops visibility
func dailySessionSummary() {
	db := database.Database.Db
	dayStart := now.New(time.Now().UTC()).BeginningOfDay()
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int64
	if err := db.Model(&models.Session{}).
		Where("status = ? AND is_deleted = ? AND start_time >= ? AND start_time < ?",
			models.SessionScheduled, false, dayStart, dayEnd).
		Count(&count).Error; err != nil {
		logScheduler("Error counting today's sessions: " + err.Error())
		return
	}
	logScheduler("Sessions scheduled today: " + time.Now().UTC().Format("2006-01-02"))
	log.Printf("[SESSION-SCHEDULER] %d session(s) on the calendar", count)
}

// InitializeSessionScheduler wires the recurring session jobs
func InitializeSessionScheduler() *cron.Cron {
	c := cron.New()

	// Reminders and cleanup every 15 minutes
	c.AddFunc("*/15 * * * *", func() {
		sendSessionReminders()
		completePastSessions()
	})

	// Daily summary at 06:00 UTC
	c.AddFunc("0 6 * * *", func() {
		dailySessionSummary()
	})

	c.Start()
	logScheduler("Session scheduler initialized")
	return c
}
