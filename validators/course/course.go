package courseValidator

import (
	"strconv"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// paramID parses a numeric route parameter into locals under localKey.
func paramID(param, localKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(param))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
		}
		c.Locals(localKey, uint(id))
		return c.Next()
	}
}

func CourseID() fiber.Handler {
	return paramID("courseId", "courseID")
}

func ModuleID() fiber.Handler {
	return paramID("moduleId", "moduleID")
}

func VideoID() fiber.Handler {
	return paramID("videoId", "videoID")
}
