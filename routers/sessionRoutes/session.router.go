package sessionRoutes

import (
	sessionController "educonnect/controllers/session"
	"educonnect/middleware"
	"educonnect/models"
	courseValidator "educonnect/validators/course"
	sessionValidator "educonnect/validators/session"

	"github.com/gofiber/fiber/v2"
)

// SetupSessionRoutes sets up live session scheduling and booking routes
func SetupSessionRoutes(app *fiber.App) {
	sessionGroup := app.Group("/session", middleware.JWTMiddleware)

	// Tutor side
	sessionGroup.Post("/schedule", middleware.RequireRole(models.RoleTutor), sessionValidator.ScheduleSession(), sessionController.ScheduleSession)
	sessionGroup.Get("/list", middleware.RequireRole(models.RoleTutor), sessionController.GetTutorSessions)
	sessionGroup.Patch("/:sessionId/cancel", middleware.RequireRole(models.RoleTutor), sessionValidator.SessionID(), sessionController.CancelSession)

	// Student side
	sessionGroup.Get("/course/:courseId", courseValidator.CourseID(), sessionController.GetCourseSessions)
	sessionGroup.Post("/:sessionId/book", sessionValidator.SessionID(), sessionController.BookSession)
}
