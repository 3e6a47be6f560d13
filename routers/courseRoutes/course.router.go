package courseRoutes

import (
	courseControllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course routes
func SetupCourseRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	// Public reads
	apiGroup.Get("/all-courses", courseControllers.GetAllCourses)
	apiGroup.Get("/course/:courseId", courseValidators.CourseID(), courseControllers.GetCourseDetails)

	// Authoring (teachers only)
	apiGroup.Post("/create-course",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleTeacher),
		courseControllers.CreateCourse)
	apiGroup.Put("/course/:courseId",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleTeacher),
		courseValidators.CourseID(),
		courseControllers.UpdateCourse)
	apiGroup.Get("/teacher/my-courses",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleTeacher),
		courseControllers.GetMyCourses)

	// Assignment submissions (students only)
	apiGroup.Post("/course/:courseId/module/:moduleId/video/:videoId/submission",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleStudent),
		courseValidators.CourseID(),
		courseValidators.ModuleID(),
		courseValidators.VideoID(),
		courseControllers.SubmitAssignment)
}
