package adminRoutes

import (
	adminController "educonnect/controllers/admin"
	"educonnect/middleware"
	"educonnect/models"
	adminValidator "educonnect/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up moderation and certificate review routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	// Enrollment moderation
	adminGroup.Patch("/enrollment/:enrollmentId/suspend", adminValidator.EnrollmentID(), adminController.AdminSuspendEnrollment)
	adminGroup.Patch("/enrollment/:enrollmentId/reinstate", adminValidator.EnrollmentID(), adminController.AdminReinstateEnrollment)

	// Certificate review
	adminGroup.Get("/certificates/pending", adminController.AdminGetPendingCertificates)
	adminGroup.Post("/certificate/:requestId/approve", adminValidator.RequestID(), adminController.AdminApproveCertificate)
	adminGroup.Post("/certificate/:requestId/reject", adminValidator.RequestID(), adminValidator.RejectCertificate(), adminController.AdminRejectCertificate)

	// User moderation
	adminGroup.Patch("/user/:userId/block", adminValidator.UserID(), adminController.AdminBlockUser)
	adminGroup.Patch("/user/:userId/unblock", adminValidator.UserID(), adminController.AdminUnblockUser)

	// Dashboard
	adminGroup.Get("/dashboard/stats", adminController.AdminDashboardStats)
}
