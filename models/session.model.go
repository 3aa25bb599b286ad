package models

import (
	"time"

	"gorm.io/gorm"
)

// Session is a tutor-scheduled live booking for a course. Start and end are
// absolute UTC instants and are immutable once the row exists; rescheduling
// is modelled as cancel + recreate.
type Session struct {
	gorm.Model
	TutorID      uint      `json:"tutor_id" gorm:"index;not null"`
	CourseID     uint      `json:"course_id" gorm:"index;not null"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	SessionType  string    `json:"session_type" gorm:"default:'LECTURE'"` // LECTURE, OFFICE_HOURS, REVIEW, WORKSHOP
	StartTime    time.Time `json:"start_time" gorm:"index;not null"`
	EndTime      time.Time `json:"end_time" gorm:"not null"`
	MeetingURL   string    `json:"meeting_url"`
	MaxAttendees int       `json:"max_attendees" gorm:"default:20"`
	Attendees    int       `json:"attendees" gorm:"default:0"`
	Status       string    `json:"status" gorm:"default:'SCHEDULED'"` // SCHEDULED, CANCELLED, COMPLETED
	ReminderSent bool      `json:"reminder_sent" gorm:"default:false"`
	IsDeleted    bool      `gorm:"default:false"`
}

// Session status values.
const (
	SessionScheduled = "SCHEDULED"
	SessionCancelled = "CANCELLED"
	SessionCompleted = "COMPLETED"
)

// SessionBooking records one student's seat in a session. Unique per
// (session, user) pair.
type SessionBooking struct {
	gorm.Model
	SessionID uint `json:"session_id" gorm:"index;not null"`
	UserID    uint `json:"user_id" gorm:"index;not null"`
	IsDeleted bool `gorm:"default:false"`
}
