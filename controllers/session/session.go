package sessionController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm/clause"

	"educonnect/database"
	"educonnect/middleware"
	"educonnect/models"
	courseModels "educonnect/models/course"
	"educonnect/scheduling"
	"educonnect/utils"
)

// SessionPayload is the validated body for scheduling a session. Day,
// StartMin and EndMin are filled by the validator from Date/StartTime/EndTime.
type SessionPayload struct {
	CourseID     uint   `json:"course_id" validate:"required"`
	Title        string `json:"title" validate:"required,min=2,max=200"`
	Description  string `json:"description" validate:"max=5000"`
	SessionType  string `json:"session_type" validate:"omitempty,oneof=LECTURE OFFICE_HOURS REVIEW WORKSHOP"`
	Date         string `json:"date" validate:"required"`
	StartTime    string `json:"start_time" validate:"required"`
	EndTime      string `json:"end_time" validate:"required"`
	MaxAttendees int    `json:"max_attendees" validate:"gte=1,lte=500"`

	Day      time.Time `json:"-"`
	StartMin int       `json:"-"`
	EndMin   int       `json:"-"`
}

// ScheduleSession creates a session after the conflict pre-flight. The
// pre-flight check over freshly fetched sessions is advisory; the overlap
// query inside the insert transaction is what actually prevents a
// double-booking when two proposals race.
func ScheduleSession(c *fiber.Ctx) error {
	tutorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedScheduleSession").(*SessionPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.TutorID != tutorID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	// No sessions on past dates
	today := now.New(time.Now().UTC()).BeginningOfDay()
	if reqData.Day.Before(today) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot schedule a session in the past!", nil)
	}

	// Pre-flight conflict check against the tutor's current schedule
	var existing []models.Session
	if err := database.Database.Db.Where("tutor_id = ? AND status = ? AND is_deleted = ?",
		tutorID, models.SessionScheduled, false).
		Order("start_time asc").Find(&existing).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to schedule session!", nil)
	}

	result, err := scheduling.CheckConflict(existing, reqData.Day, reqData.StartMin, reqData.EndMin)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Session end time must be after start time!", nil)
	}
	if result.Conflict {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Session conflicts with an existing booking!", fiber.Map{
			"conflicting_session": result.Session,
		})
	}

	start := scheduling.At(reqData.Day, reqData.StartMin)
	end := scheduling.At(reqData.Day, reqData.EndMin)

	session := models.Session{
		TutorID:      tutorID,
		CourseID:     reqData.CourseID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		StartTime:    start,
		EndTime:      end,
		MaxAttendees: reqData.MaxAttendees,
		Status:       models.SessionScheduled,
	}
	if reqData.SessionType != "" {
		session.SessionType = reqData.SessionType
	}

	// Meeting room is provisioned best-effort; a session without a link is
	// still valid and the link can be attached later.
	if url, err := utils.ProvisionMeetingRoom(session.Title); err != nil {
		log.Printf("[SESSION] Meeting room provisioning failed: %v", err)
	} else {
		session.MeetingURL = url
	}

	// Authoritative re-check inside the transaction: the pre-flight result
	// may be stale by the time we insert. The per-tutor advisory lock
	// serializes concurrent proposals so two of them cannot both pass the
	// count and both insert.
	tx := database.Database.Db.Begin()
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", tutorID).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to schedule session!", nil)
	}
	var overlapping int64
	if err := tx.Model(&models.Session{}).
		Where("tutor_id = ? AND status = ? AND is_deleted = ?", tutorID, models.SessionScheduled, false).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&overlapping).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to schedule session!", nil)
	}
	if overlapping > 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Session conflicts with an existing booking!", nil)
	}
	if err := tx.Create(&session).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to schedule session!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Session scheduled successfully!", session)
}

// GetTutorSessions lists the caller's own sessions
func GetTutorSessions(c *fiber.Ctx) error {
	tutorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var sessions []models.Session
	if err := database.Database.Db.Where("tutor_id = ? AND is_deleted = ?", tutorID, false).
		Order("start_time asc").Find(&sessions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sessions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sessions fetched successfully!", sessions)
}

// GetCourseSessions lists upcoming sessions of a course for enrolled students
func GetCourseSessions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var sessions []models.Session
	if err := database.Database.Db.Where("course_id = ? AND status = ? AND is_deleted = ? AND start_time > ?",
		courseID, models.SessionScheduled, false, time.Now().UTC()).
		Order("start_time asc").Find(&sessions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sessions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sessions fetched successfully!", sessions)
}

// CancelSession cancels a scheduled session. Times are immutable, so
// rescheduling is cancel + schedule a fresh one.
func CancelSession(c *fiber.Ctx) error {
	tutorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sessionID := c.Locals("sessionID").(int)

	var session models.Session
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sessionID, false).
		First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}
	if session.TutorID != tutorID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this session!", nil)
	}
	if session.Status != models.SessionScheduled {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only scheduled sessions can be cancelled!", nil)
	}

	if err := database.Database.Db.Model(&session).
		Update("status", models.SessionCancelled).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session cancelled successfully!", session)
}

// BookSession reserves a seat for an enrolled student. Capacity is enforced
// under a row lock so concurrent bookings cannot oversell the session.
func BookSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sessionID := c.Locals("sessionID").(int)

	tx := database.Database.Db.Begin()

	var session models.Session
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND is_deleted = ?", sessionID, false).First(&session).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	if session.Status != models.SessionScheduled {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Session is not open for booking!", nil)
	}
	if session.StartTime.Before(time.Now().UTC()) {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Session has already started!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		userID, session.CourseID, false).First(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var existingBooking models.SessionBooking
	if err := tx.Where("session_id = ? AND user_id = ? AND is_deleted = ?",
		sessionID, userID, false).First(&existingBooking).Error; err == nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already booked this session!", nil)
	}

	if session.Attendees >= session.MaxAttendees {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Session is full!", nil)
	}

	booking := models.SessionBooking{
		SessionID: uint(sessionID),
		UserID:    userID,
	}
	if err := tx.Create(&booking).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to book session!", nil)
	}
	if err := tx.Model(&session).Update("attendees", session.Attendees+1).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to book session!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session booked successfully!", fiber.Map{
		"booking": booking,
		"session": session,
	})
}
