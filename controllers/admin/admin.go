package adminController

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"educonnect/database"
	"educonnect/middleware"
	"educonnect/models"
	courseModels "educonnect/models/course"
	"educonnect/progress"
	"educonnect/utils"
)

// AdminSuspendEnrollment puts an enrollment into SUSPENDED as a moderation
// action. A suspended enrollment rejects all progress commands until
// reinstated.
func AdminSuspendEnrollment(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrollmentID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.Status == progress.StatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot suspend a completed enrollment!", nil)
	}
	if enrollment.Status == progress.StatusSuspended {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment is already suspended!", nil)
	}

	doc, err := enrollment.Document()
	if err != nil {
		log.Printf("Error decoding progress document for enrollment %d: %v", enrollment.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to suspend enrollment!", nil)
	}
	doc.Status = progress.StatusSuspended
	if err := enrollment.ApplyDocument(*doc, enrollment.TotalSections); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to suspend enrollment!", nil)
	}

	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to suspend enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment suspended successfully!", enrollment)
}

// AdminReinstateEnrollment lifts a suspension. The status falls back to what
// the progress document implies.
func AdminReinstateEnrollment(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrollmentID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.Status != progress.StatusSuspended {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment is not suspended!", nil)
	}

	doc, err := enrollment.Document()
	if err != nil {
		log.Printf("Error decoding progress document for enrollment %d: %v", enrollment.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reinstate enrollment!", nil)
	}
	if doc.CompletedSections() > 0 {
		doc.Status = progress.StatusInProgress
	} else {
		doc.Status = progress.StatusEnrolled
	}
	if err := enrollment.ApplyDocument(*doc, enrollment.TotalSections); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reinstate enrollment!", nil)
	}

	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reinstate enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment reinstated successfully!", enrollment)
}

// AdminGetPendingCertificates lists certificate requests awaiting review
func AdminGetPendingCertificates(c *fiber.Ctx) error {
	var requests []courseModels.CertificateRequest
	if err := database.Database.Db.Where("status = ? AND is_deleted = ?", "PENDING", false).
		Order("requested_at asc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificate requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending certificate requests fetched successfully!", requests)
}

// AdminApproveCertificate approves a pending request, issues the certificate
// and flips the issuance flag in the progress document. Issuance is refused
// unless the enrollment is completed and eligible.
func AdminApproveCertificate(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	requestID := c.Locals("requestID").(int)

	var request courseModels.CertificateRequest
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", requestID, false).
		First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}
	if request.Status != "PENDING" {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate request is not pending!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", request.EnrollmentID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	outline, err := courseModels.LoadOutline(database.Database.Db, enrollment.CourseID)
	if err != nil {
		log.Printf("Error loading course outline for course %d: %v", enrollment.CourseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve certificate!", nil)
	}
	doc, err := enrollment.Document()
	if err != nil {
		log.Printf("Error decoding progress document for enrollment %d: %v", enrollment.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve certificate!", nil)
	}

	tracker := progress.New(outline, doc)
	if err := tracker.MarkCertificateIssued(); err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment is not eligible for certification!", nil)
	}
	if err := enrollment.ApplyDocument(tracker.Snapshot(), outline.TotalSections()); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve certificate!", nil)
	}

	certificate := courseModels.Certificate{
		UserID:            request.UserID,
		CourseID:          request.CourseID,
		CertificateNumber: fmt.Sprintf("EDU-%s", strings.ToUpper(uuid.NewString()[:8])),
		IssuedAt:          time.Now(),
	}

	now := time.Now()
	tx := database.Database.Db.Begin()
	if err := tx.Create(&certificate).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve certificate!", nil)
	}
	if err := tx.Model(&request).Updates(map[string]interface{}{
		"status": "APPROVED", "reviewed_at": &now, "reviewed_by": &adminID,
	}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve certificate!", nil)
	}
	if err := tx.Save(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve certificate!", nil)
	}
	tx.Commit()

	var user models.User
	if err := database.Database.Db.Where("id = ?", request.UserID).First(&user).Error; err == nil {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", request.CourseID).First(&course)
		go utils.SendCertificateIssuedEmail(user.Email, user.Name, course.Title, certificate.CertificateNumber)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate approved and issued successfully!", certificate)
}

// AdminRejectCertificate rejects a pending request with a reason
func AdminRejectCertificate(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	requestID := c.Locals("requestID").(int)

	reqData, ok := c.Locals("validatedRejectCertificate").(*struct {
		Reason string `json:"reason" validate:"required,min=3,max=1000"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var request courseModels.CertificateRequest
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", requestID, false).
		First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}
	if request.Status != "PENDING" {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate request is not pending!", nil)
	}

	now := time.Now()
	if err := database.Database.Db.Model(&request).Updates(map[string]interface{}{
		"status": "REJECTED", "reviewed_at": &now, "reviewed_by": &adminID,
		"rejection_reason": reqData.Reason,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate request rejected successfully!", request)
}

// AdminBlockUser blocks a user account from logging in
func AdminBlockUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(int)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).
		First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("is_blocked", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to block user!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User blocked successfully!", user)
}

// AdminUnblockUser lifts a block
func AdminUnblockUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(int)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).
		First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("is_blocked", false).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unblock user!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User unblocked successfully!", user)
}

// AdminDashboardStats returns platform-wide counts for the admin dashboard
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalStudents, totalTutors, totalCourses, publishedCourses int64
	var totalEnrollments, completedEnrollments, upcomingSessions, issuedCertificates int64

	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleStudent, false).Count(&totalStudents)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleTutor, false).Count(&totalTutors)
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&publishedCourses)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("status = ? AND is_deleted = ?", progress.StatusCompleted, false).Count(&completedEnrollments)
	db.Model(&models.Session{}).Where("status = ? AND is_deleted = ? AND start_time > ?",
		models.SessionScheduled, false, time.Now().UTC()).Count(&upcomingSessions)
	db.Model(&courseModels.Certificate{}).Where("is_deleted = ?", false).Count(&issuedCertificates)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_students":        totalStudents,
		"total_tutors":          totalTutors,
		"total_courses":         totalCourses,
		"published_courses":     publishedCourses,
		"total_enrollments":     totalEnrollments,
		"completed_enrollments": completedEnrollments,
		"upcoming_sessions":     upcomingSessions,
		"issued_certificates":   issuedCertificates,
	})
}
