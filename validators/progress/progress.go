package progressValidator

import (
	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// UpdateProgressRequest uses pointers for the numeric fields so that a
// legitimate zero is distinguishable from a missing field.
type UpdateProgressRequest struct {
	CourseID       *uint    `json:"courseId" validate:"required"`
	VideoID        *uint    `json:"videoId" validate:"required"`
	WatchedSeconds *float64 `json:"watchedSeconds" validate:"required"`
	VideoDuration  *float64 `json:"videoDuration" validate:"required"`
	Completed      *bool    `json:"completed"`
}

// UpdateProgress validator middleware
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Missing required field!"
			}
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing required fields", errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
