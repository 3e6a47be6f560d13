package progressController

import (
	"errors"
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	progressValidator "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UpdateProgress clamps and upserts the caller's watch position for one
// video. Keyed on (user, course, video); calling it again with the same
// arguments is a no-op overwrite.
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*progressValidator.UpdateProgressRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Clamp before storing; a client bug must not persist a watch
	// position past the end of the video.
	watched := *reqData.WatchedSeconds
	if watched > *reqData.VideoDuration {
		watched = *reqData.VideoDuration
	}

	completed := false
	if reqData.Completed != nil {
		completed = *reqData.Completed
	}

	db := database.Database.Db

	var progress models.Progress
	err := db.Where("user_id = ? AND course_id = ? AND video_id = ?",
		userID, *reqData.CourseID, *reqData.VideoID).First(&progress).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error fetching progress: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
		}
		progress = models.Progress{
			UserID:   userID,
			CourseID: *reqData.CourseID,
			VideoID:  *reqData.VideoID,
		}
	}

	progress.WatchedSeconds = watched
	progress.VideoDuration = *reqData.VideoDuration
	progress.Completed = completed

	if err := db.Save(&progress).Error; err != nil {
		log.Printf("Error saving progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress saved successfully!", progress)
}

// GetCourseProgress lists all of the caller's progress rows for one course.
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	var rows []models.Progress
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Find(&rows).Error; err != nil {
		log.Printf("Error fetching progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", rows)
}
