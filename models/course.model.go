package models

import "gorm.io/gorm"

// Course is the root of the authoring tree. Mutated only by the teacher
// that created it.
type Course struct {
	gorm.Model
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CreatedBy   uint     `json:"created_by" gorm:"index;not null"`
	Modules     []Module `json:"modules" gorm:"constraint:OnDelete:CASCADE"`
}

type Module struct {
	gorm.Model
	CourseID    uint                   `json:"course_id" gorm:"index;not null"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	OrderIndex  int                    `json:"order_index" gorm:"default:0"`
	Videos      []Video                `json:"videos" gorm:"constraint:OnDelete:CASCADE"`
	Documents   []Document             `json:"documents" gorm:"constraint:OnDelete:CASCADE"`
	Quiz        []QuizQuestion         `json:"quiz" gorm:"constraint:OnDelete:CASCADE"`
	Submissions []AssignmentSubmission `json:"assignment_submissions" gorm:"constraint:OnDelete:CASCADE"`
}

// Video's DB id is the join key used during update reconciliation to
// decide keep-existing vs brand-new.
type Video struct {
	gorm.Model
	ModuleID          uint   `json:"module_id" gorm:"index;not null"`
	Title             string `json:"title"`
	VideoURL          string `json:"video_url"`
	ThumbnailURL      string `json:"thumbnail_url" gorm:"default:''"`
	AssignmentName    string `json:"assignment_name" gorm:"default:''"`
	AssignmentFileURL string `json:"assignment_file_url" gorm:"default:''"`
	OrderIndex        int    `json:"order_index" gorm:"default:0"`
}

type Document struct {
	gorm.Model
	ModuleID   uint   `json:"module_id" gorm:"index;not null"`
	Name       string `json:"name"`
	FileURL    string `json:"file_url"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
}

// QuizQuestion stores its options as a JSON-encoded array in a text
// column. CorrectAnswerIndex is zero-based into that array.
type QuizQuestion struct {
	gorm.Model
	ModuleID           uint   `json:"module_id" gorm:"index;not null"`
	QuestionText       string `json:"question_text"`
	Options            string `json:"options" gorm:"type:text"` // JSON array of option strings
	CorrectAnswerIndex int    `json:"correct_answer_index"`
	OrderIndex         int    `json:"order_index" gorm:"default:0"`
}

// AssignmentSubmission is created by students and never mutated.
type AssignmentSubmission struct {
	gorm.Model
	ModuleID     uint   `json:"module_id" gorm:"index;not null"`
	VideoID      uint   `json:"video_id" gorm:"index;not null"`
	StudentID    uint   `json:"student_id" gorm:"index;not null"`
	FileURL      string `json:"file_url"`
	OriginalName string `json:"original_name"`
}
