package courseRoutes

import (
	controllers "educonnect/controllers/course"
	"educonnect/middleware"
	validators "educonnect/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the student-facing catalog, enrollment and
// progress routes.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog
	courseGroup.Get("/list", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:courseId", validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Get("/:courseId/reviews", validators.CourseID(), controllers.GetCourseReviews)

	// Enrollment
	courseGroup.Post("/:courseId/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)
	courseGroup.Delete("/:courseId/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.DropEnrollment)

	enrollmentGroup := app.Group("/enrollment")
	enrollmentGroup.Get("/list", middleware.JWTMiddleware, validators.EnrollmentList(), controllers.GetEnrollments)

	// Progress tracking
	courseGroup.Get("/:courseId/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetProgress)
	courseGroup.Post("/:courseId/progress/activity", middleware.JWTMiddleware, validators.CourseID(), validators.RecordActivity(), controllers.RecordActivity)
	courseGroup.Post("/:courseId/progress/complete", middleware.JWTMiddleware, validators.CourseID(), validators.CompleteSection(), controllers.CompleteSection)
	courseGroup.Post("/:courseId/quiz/attempt", middleware.JWTMiddleware, validators.CourseID(), validators.SubmitQuiz(), controllers.SubmitQuizAttempt)

	// Reviews
	courseGroup.Post("/:courseId/review", middleware.JWTMiddleware, validators.CourseID(), validators.CreateReview(), controllers.CreateReview)

	// Certificates
	courseGroup.Post("/:courseId/certificate/request", middleware.JWTMiddleware, validators.CourseID(), controllers.RequestCertificate)

	certificateGroup := app.Group("/certificate")
	certificateGroup.Get("/list", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
