package courseform

import (
	"fmt"
	"strings"
)

const (
	MaxVideoSize    = 100 * 1024 * 1024
	MaxDocumentSize = 10 * 1024 * 1024
)

var allowedVideoTypes = map[string]bool{
	"video/mp4":       true,
	"video/mpeg":      true,
	"video/quicktime": true,
}

var allowedDocumentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"text/plain": true,
}

// ValidateVideoFile enforces the video upload allow-list and size cap.
func ValidateVideoFile(f FileInfo) error {
	if !allowedVideoTypes[f.ContentType] {
		return fmt.Errorf("Invalid video: %s", f.OriginalName)
	}
	if f.Size > MaxVideoSize {
		return fmt.Errorf("Video too large: %s", f.OriginalName)
	}
	return nil
}

// ValidateDocumentFile enforces the document upload allow-list and size cap.
func ValidateDocumentFile(f FileInfo) error {
	if !allowedDocumentTypes[f.ContentType] {
		return fmt.Errorf("Invalid document: %s", f.OriginalName)
	}
	if f.Size > MaxDocumentSize {
		return fmt.Errorf("Document too large: %s", f.OriginalName)
	}
	return nil
}

// Validate checks the parsed tree before anything of it is persisted,
// and fills each module's normalized Quiz. Runs strictly before any
// storage mutation so a rejected request leaves no partial writes.
func Validate(course *CourseInput) error {
	if strings.TrimSpace(course.Title) == "" ||
		strings.TrimSpace(course.Description) == "" ||
		strings.TrimSpace(course.TeacherID) == "" {
		return fmt.Errorf("title, description, and teacher ID are required")
	}

	for i := range course.Modules {
		module := &course.Modules[i]

		if strings.TrimSpace(module.Title) == "" {
			return fmt.Errorf("module %d: title is required", i+1)
		}
		if strings.TrimSpace(module.Description) == "" {
			return fmt.Errorf("module %d: description is required", i+1)
		}
		if len(module.Videos) == 0 {
			return fmt.Errorf("module %d: at least one video is required", i+1)
		}

		for _, video := range module.Videos {
			if err := ValidateVideoFile(video.File); err != nil {
				return err
			}
			if video.Assignment != nil {
				if err := ValidateDocumentFile(*video.Assignment); err != nil {
					return err
				}
			}
		}

		for _, document := range module.Documents {
			if err := ValidateDocumentFile(document.File); err != nil {
				return err
			}
		}

		quiz, err := normalizeQuiz(module.QuizRaw, i+1)
		if err != nil {
			return err
		}
		module.Quiz = quiz
	}

	return nil
}
