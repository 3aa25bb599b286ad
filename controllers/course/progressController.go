package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"educonnect/database"
	"educonnect/middleware"
	courseModels "educonnect/models/course"
	"educonnect/progress"
)

// runEnrollmentCommand is the single write path for progress mutations.
// It locks the enrollment row, rebuilds the tracker from the stored document
// and the live course outline, applies one command, and persists the new
// snapshot, all inside one transaction, so commands for the same enrollment
// are applied sequentially. A rejected command leaves the row untouched.
//
// On failure the error envelope has already been written and ok is false;
// on success the caller writes its own envelope from the returned snapshot.
func runEnrollmentCommand(c *fiber.Ctx, userID uint, courseID int, cmd func(*progress.Tracker) error) (courseModels.Enrollment, progress.Document, bool) {
	var enrollment courseModels.Enrollment
	var snapshot progress.Document

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?",
		courseID, false, true).First(&course).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
		return enrollment, snapshot, false
	}

	tx := database.Database.Db.Begin()
	if tx.Error != nil {
		middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		return enrollment, snapshot, false
	}

	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
		} else {
			middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
		return enrollment, snapshot, false
	}

	// DROPPED and SUSPENDED enrollments reject all progress commands.
	if enrollment.Status == progress.StatusDropped || enrollment.Status == progress.StatusSuspended {
		tx.Rollback()
		middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enrollment is not active!", nil)
		return enrollment, snapshot, false
	}

	outline, err := courseModels.LoadOutline(tx, uint(courseID))
	if err != nil {
		tx.Rollback()
		log.Printf("Error loading course outline for course %d: %v", courseID, err)
		middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		return enrollment, snapshot, false
	}

	doc, err := enrollment.Document()
	if err != nil {
		tx.Rollback()
		log.Printf("Error decoding progress document for enrollment %d: %v", enrollment.ID, err)
		middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		return enrollment, snapshot, false
	}

	tracker := progress.New(outline, doc)
	if err := cmd(tracker); err != nil {
		tx.Rollback()
		progressErrorResponse(c, err)
		return enrollment, snapshot, false
	}

	snapshot = tracker.Snapshot()
	if err := enrollment.ApplyDocument(snapshot, outline.TotalSections()); err != nil {
		tx.Rollback()
		log.Printf("Error encoding progress document for enrollment %d: %v", enrollment.ID, err)
		middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		return enrollment, snapshot, false
	}

	if err := tx.Save(&enrollment).Error; err != nil {
		tx.Rollback()
		middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		return enrollment, snapshot, false
	}
	tx.Commit()

	return enrollment, snapshot, true
}

// progressErrorResponse maps tracker errors to HTTP statuses
func progressErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, progress.ErrInvalidReference):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module, section or quiz not found in this course!", nil)
	case errors.Is(err, progress.ErrAlreadyCompleted):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already completed!", nil)
	case errors.Is(err, progress.ErrMalformedAnswer):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answer references an invalid question or option!", nil)
	default:
		log.Printf("Unexpected progress error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}
}

// RecordActivity is the viewing heartbeat: it accumulates time spent on a
// section without touching completion.
func RecordActivity(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedActivity").(*struct {
		ModuleID  uint  `json:"module_id" validate:"required"`
		SectionID uint  `json:"section_id" validate:"required"`
		Seconds   int64 `json:"seconds" validate:"gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	enrollment, snapshot, ok := runEnrollmentCommand(c, userID, courseID, func(t *progress.Tracker) error {
		return t.RecordActivity(reqData.ModuleID, reqData.SectionID, reqData.Seconds)
	})
	if !ok {
		return nil
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Activity recorded successfully!", fiber.Map{
		"enrollment": enrollment,
		"progress":   snapshot,
	})
}

// CompleteSection marks one section done and cascades the recomputation
func CompleteSection(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCompleteSection").(*struct {
		ModuleID  uint   `json:"module_id" validate:"required"`
		SectionID uint   `json:"section_id" validate:"required"`
		Note      string `json:"note" validate:"max=2000"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	enrollment, snapshot, ok := runEnrollmentCommand(c, userID, courseID, func(t *progress.Tracker) error {
		return t.CompleteSection(reqData.ModuleID, reqData.SectionID, reqData.Note)
	})
	if !ok {
		return nil
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section marked as completed successfully!", fiber.Map{
		"enrollment": enrollment,
		"progress":   snapshot,
	})
}

// GetProgress returns the full progress snapshot for the caller's enrollment
func GetProgress(c *fiber.Ctx) error {
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

	doc, err := enrollment.Document()
	if err != nil {
		log.Printf("Error decoding progress document for enrollment %d: %v", enrollment.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"progress":   doc,
	})
}
