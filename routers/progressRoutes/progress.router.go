package progressRoutes

import (
	progressControllers "lms/controllers/progress"
	"lms/middleware"
	courseValidators "lms/validators/course"
	progressValidators "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
)

func SetupProgressRoutes(app *fiber.App) {
	progressGroup := app.Group("/api/progress", middleware.JWTMiddleware)

	progressGroup.Post("/update", progressValidators.UpdateProgress(), progressControllers.UpdateProgress)
	progressGroup.Get("/:courseId", courseValidators.CourseID(), progressControllers.GetCourseProgress)
}
