package models

import "gorm.io/gorm"

// Progress holds per-video watch state. At most one row per
// (user, course, video) triple; writes go through an upsert.
type Progress struct {
	gorm.Model
	UserID         uint    `json:"user_id" gorm:"uniqueIndex:idx_progress_key;not null"`
	CourseID       uint    `json:"course_id" gorm:"uniqueIndex:idx_progress_key;not null"`
	VideoID        uint    `json:"video_id" gorm:"uniqueIndex:idx_progress_key;not null"`
	WatchedSeconds float64 `json:"watched_seconds"`
	VideoDuration  float64 `json:"video_duration"`
	Completed      bool    `json:"completed" gorm:"default:false"`
}
