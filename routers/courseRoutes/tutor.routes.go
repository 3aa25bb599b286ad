package courseRoutes

import (
	controllers "educonnect/controllers/course"
	"educonnect/middleware"
	"educonnect/models"
	validators "educonnect/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupTutorCourseRoutes sets up course authoring routes for tutors
func SetupTutorCourseRoutes(app *fiber.App) {
	tutorGroup := app.Group("/tutor/course", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTutor))

	// Course CRUD
	tutorGroup.Post("/create", validators.CreateCourse(), controllers.TutorCreateCourse)
	tutorGroup.Get("/list", controllers.TutorListCourses)
	tutorGroup.Put("/:courseId", validators.CourseID(), validators.UpdateCourse(), controllers.TutorUpdateCourse)
	tutorGroup.Post("/:courseId/publish", validators.CourseID(), controllers.TutorPublishCourse)
	tutorGroup.Get("/:courseId/enrollments", validators.CourseID(), controllers.TutorCourseEnrollments)

	// Module management
	tutorGroup.Post("/:courseId/module", validators.CourseID(), validators.CreateModule(), controllers.TutorCreateModule)
	tutorGroup.Delete("/:courseId/module/:moduleId", validators.CourseID(), validators.ModuleID(), controllers.TutorDeleteModule)

	// Section and quiz content
	tutorGroup.Post("/:courseId/module/:moduleId/section", validators.CourseID(), validators.ModuleID(), validators.CreateSection(), controllers.TutorCreateSection)
	tutorGroup.Post("/:courseId/section/:sectionId/question", validators.CourseID(), validators.SectionID(), validators.AddQuestion(), controllers.TutorAddQuizQuestion)
}
