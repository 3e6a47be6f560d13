package courseController

import (
	"log"

	"lms/config"
	"lms/courseform"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// SubmitAssignment stores a student's assignment upload against a
// video. Submissions are append-only.
func SubmitAssignment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)
	moduleID := c.Locals("moduleID").(uint)
	videoID := c.Locals("videoID").(uint)

	var module models.Module
	if err := database.Database.Db.
		Where("id = ? AND course_id = ?", moduleID, courseID).
		First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var video models.Video
	if err := database.Database.Db.
		Where("id = ? AND module_id = ?", videoID, moduleID).
		First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file uploaded", nil)
	}
	if header.Size > courseform.MaxDocumentSize {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File too large: "+header.Filename, nil)
	}

	storedName := utils.AssignStoredName(header.Filename)
	if _, err := utils.SaveUploadedFile(header, config.AppConfig.UploadDir, storedName); err != nil {
		log.Printf("Error saving submission file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded file!", nil)
	}

	submission := models.AssignmentSubmission{
		ModuleID:     moduleID,
		VideoID:      videoID,
		StudentID:    userID,
		FileURL:      "/uploads/" + storedName,
		OriginalName: header.Filename,
	}

	if err := database.Database.Db.Create(&submission).Error; err != nil {
		log.Printf("Error creating submission: %v", err)
		if err := utils.DeleteFileByURL(config.AppConfig.UploadDir, submission.FileURL); err != nil {
			log.Printf("Error removing submission file: %v", err)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store submission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Submission stored successfully!", submission)
}
