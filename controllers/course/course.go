package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// withTree preloads the full authoring tree in a stable order.
func withTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		Preload("Modules.Videos", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		Preload("Modules.Documents", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		Preload("Modules.Quiz", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		Preload("Modules.Submissions")
}

// GetAllCourses lists every course, newest first. Public.
func GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := withTree(database.Database.Db).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetCourseDetails returns a single course with its full tree. Public.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := withTree(database.Database.Db).First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// GetMyCourses lists the calling teacher's own courses.
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []models.Course
	if err := withTree(database.Database.Db).
		Where("created_by = ?", userID).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}
