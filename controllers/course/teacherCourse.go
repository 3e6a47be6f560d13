package courseController

import (
	"encoding/json"
	"log"
	"mime/multipart"
	"strconv"

	"lms/config"
	"lms/courseform"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// stagedFile pairs an incoming multipart part with its assigned storage
// name so validation can run before anything touches disk.
type stagedFile struct {
	header *multipart.FileHeader
	info   courseform.FileInfo
}

func newStagedFile(field string, header *multipart.FileHeader) stagedFile {
	return stagedFile{
		header: header,
		info: courseform.FileInfo{
			FieldName:    field,
			OriginalName: header.Filename,
			ContentType:  header.Header.Get("Content-Type"),
			Size:         header.Size,
			StoredName:   utils.AssignStoredName(header.Filename),
		},
	}
}

func (s stagedFile) write() error {
	_, err := utils.SaveUploadedFile(s.header, config.AppConfig.UploadDir, s.info.StoredName)
	return err
}

// writeStaged writes staged files to the upload dir. On failure it
// removes whatever it already wrote and reports the error.
func writeStaged(files []stagedFile) error {
	for i, f := range files {
		if err := f.write(); err != nil {
			removeStaged(files[:i])
			return err
		}
	}
	return nil
}

func removeStaged(files []stagedFile) {
	for _, f := range files {
		if err := utils.DeleteFileByURL(config.AppConfig.UploadDir, f.info.URL()); err != nil {
			log.Printf("Error removing staged file %s: %v", f.info.StoredName, err)
		}
	}
}

// CreateCourse builds a full course tree from a multipart authoring
// request. Teachers only (enforced at the route). Nothing is written —
// neither files nor rows — until the whole request has validated.
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid multipart form!", nil)
	}

	// One file per field path; assign storage names up front so the
	// parsed tree carries final URLs.
	staged := make(map[string]stagedFile)
	fileMap := make(map[string]courseform.FileInfo)
	for field, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		sf := newStagedFile(field, headers[0])
		staged[field] = sf
		fileMap[field] = sf.info
	}

	input, err := courseform.ParseCourseForm(form.Value, fileMap)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}
	if len(input.Modules) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "At least one module is required", nil)
	}
	if err := courseform.Validate(input); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	course := buildCourse(input, userID)

	// Validation passed: write only the files the tree references.
	referenced := referencedFiles(input, staged)
	if err := writeStaged(referenced); err != nil {
		log.Printf("Error saving uploaded files: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded files!", nil)
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		removeStaged(referenced)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// referencedFiles returns the staged files the parsed tree actually
// uses. Stray parts are never written.
func referencedFiles(input *courseform.CourseInput, staged map[string]stagedFile) []stagedFile {
	var files []stagedFile
	add := func(f courseform.FileInfo) {
		if sf, ok := staged[f.FieldName]; ok {
			files = append(files, sf)
		}
	}

	for _, module := range input.Modules {
		for _, video := range module.Videos {
			add(video.File)
			if video.Assignment != nil {
				add(*video.Assignment)
			}
		}
		for _, document := range module.Documents {
			add(document.File)
		}
	}
	return files
}

func buildCourse(input *courseform.CourseInput, createdBy uint) models.Course {
	course := models.Course{
		Title:       input.Title,
		Description: input.Description,
		CreatedBy:   createdBy,
	}

	for mi, m := range input.Modules {
		module := models.Module{
			Title:       m.Title,
			Description: m.Description,
			OrderIndex:  mi,
		}

		for vi, v := range m.Videos {
			video := models.Video{
				Title:      v.Title,
				VideoURL:   v.File.URL(),
				OrderIndex: vi,
			}
			if v.Assignment != nil {
				video.AssignmentName = v.Assignment.OriginalName
				video.AssignmentFileURL = v.Assignment.URL()
			}
			module.Videos = append(module.Videos, video)
		}

		for di, d := range m.Documents {
			module.Documents = append(module.Documents, models.Document{
				Name:       d.Name,
				FileURL:    d.File.URL(),
				OrderIndex: di,
			})
		}

		for qi, q := range m.Quiz {
			options, _ := json.Marshal(q.Options)
			module.Quiz = append(module.Quiz, models.QuizQuestion{
				QuestionText:       q.QuestionText,
				Options:            string(options),
				CorrectAnswerIndex: q.CorrectAnswerIndex,
				OrderIndex:         qi,
			})
		}

		course.Modules = append(course.Modules, module)
	}
	return course
}

// UpdateCourse reconciles a module's videos and documents against the
// stored course and updates the course title/description. Owning
// teacher only. New files are staged first, the transaction commits,
// and only then are superseded files deleted, so a failed commit never
// leaves a stored reference pointing at a removed file.
func UpdateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := withTree(database.Database.Db).First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.CreatedBy != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only modify your own courses!", nil)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid multipart form!", nil)
	}

	title := formValue(form, "title")
	description := formValue(form, "description")
	if title == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course title is required", nil)
	}
	if description == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course description is required", nil)
	}

	moduleID, err := strconv.ParseUint(formValue(form, "moduleId"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module ID is required", nil)
	}
	module := findModule(course.Modules, uint(moduleID))
	if module == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	updatedVideoFiles := form.File["updatedVideos"]
	newVideoFiles := form.File["newVideos"]
	updatedDocumentFiles := form.File["updatedDocuments"]
	newDocumentFiles := form.File["newDocuments"]
	updatedAssignmentFiles := form.File["updatedAssignments"]
	newAssignmentFiles := form.File["newAssignments"]

	// Validate every upload before any disk or database mutation.
	var videoStaged, docStaged []stagedFile
	for _, header := range append(append([]*multipart.FileHeader{}, updatedVideoFiles...), newVideoFiles...) {
		sf := newStagedFile("video", header)
		if err := courseform.ValidateVideoFile(sf.info); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		videoStaged = append(videoStaged, sf)
	}
	for _, header := range concatHeaders(updatedDocumentFiles, newDocumentFiles, updatedAssignmentFiles, newAssignmentFiles) {
		sf := newStagedFile("document", header)
		if err := courseform.ValidateDocumentFile(sf.info); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		docStaged = append(docStaged, sf)
	}
	allStaged := append(append([]stagedFile{}, videoStaged...), docStaged...)

	videoEdit := courseform.VideoEdit{
		ExistingIDs:            parseIDList(valueList(form, "existingVideoIds")),
		ExistingTitles:         valueList(form, "existingVideoTitles"),
		NewTitles:              valueList(form, "newVideoTitles"),
		ReplacementFiles:       storedFiles(videoStaged[:len(updatedVideoFiles)]),
		NewFiles:               storedFiles(videoStaged[len(updatedVideoFiles):]),
		ReplacementAssignments: storedFiles(docStaged[len(updatedDocumentFiles)+len(newDocumentFiles) : len(docStaged)-len(newAssignmentFiles)]),
		NewAssignments:         storedFiles(docStaged[len(docStaged)-len(newAssignmentFiles):]),
	}
	documentEdit := courseform.DocumentEdit{
		ExistingIDs:      parseIDList(valueList(form, "existingDocumentIds")),
		ReplacementFiles: storedFiles(docStaged[:len(updatedDocumentFiles)]),
		NewFiles:         storedFiles(docStaged[len(updatedDocumentFiles) : len(updatedDocumentFiles)+len(newDocumentFiles)]),
	}

	finalVideos, videoDeletions := courseform.MergeVideos(module.Videos, videoEdit)
	finalDocuments, documentDeletions := courseform.MergeDocuments(module.Documents, documentEdit)

	if err := writeStaged(allStaged); err != nil {
		log.Printf("Error saving uploaded files: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded files!", nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Course{}).Where("id = ?", course.ID).
			Updates(map[string]interface{}{"title": title, "description": description}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("module_id = ?", module.ID).Delete(&models.Video{}).Error; err != nil {
			return err
		}
		for i := range finalVideos {
			finalVideos[i].ModuleID = module.ID
		}
		if len(finalVideos) > 0 {
			if err := tx.Create(&finalVideos).Error; err != nil {
				return err
			}
		}

		if err := tx.Unscoped().Where("module_id = ?", module.ID).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		for i := range finalDocuments {
			finalDocuments[i].ModuleID = module.ID
		}
		if len(finalDocuments) > 0 {
			if err := tx.Create(&finalDocuments).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Printf("Error updating course %d: %v", course.ID, err)
		removeStaged(allStaged)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	// Commit confirmed; superseded files can go now.
	for _, url := range append(videoDeletions, documentDeletions...) {
		if err := utils.DeleteFileByURL(config.AppConfig.UploadDir, url); err != nil {
			log.Printf("Error deleting superseded file %s: %v", url, err)
		}
	}

	var updated models.Course
	if err := withTree(database.Database.Db).First(&updated, course.ID).Error; err != nil {
		log.Printf("Error reloading course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch updated course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully", updated)
}

func formValue(form *multipart.Form, key string) string {
	if v, ok := form.Value[key]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}

// valueList accepts both `key` and `key[]` spellings; legacy clients
// send repeated bracket fields.
func valueList(form *multipart.Form, key string) []string {
	var values []string
	values = append(values, form.Value[key]...)
	values = append(values, form.Value[key+"[]"]...)
	return values
}

// parseIDList keeps positions aligned with the parallel title lists: an
// unparseable id becomes 0, which matches nothing and is skipped by the
// merge just like a stale id.
func parseIDList(values []string) []uint {
	ids := make([]uint, len(values))
	for i, v := range values {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			ids[i] = uint(id)
		}
	}
	return ids
}

func storedFiles(staged []stagedFile) []courseform.StoredFile {
	var files []courseform.StoredFile
	for _, sf := range staged {
		files = append(files, courseform.StoredFile{
			OriginalName: sf.info.OriginalName,
			URL:          sf.info.URL(),
		})
	}
	return files
}

func concatHeaders(lists ...[]*multipart.FileHeader) []*multipart.FileHeader {
	var all []*multipart.FileHeader
	for _, list := range lists {
		all = append(all, list...)
	}
	return all
}

func findModule(modules []models.Module, id uint) *models.Module {
	for i := range modules {
		if modules[i].ID == id {
			return &modules[i]
		}
	}
	return nil
}
