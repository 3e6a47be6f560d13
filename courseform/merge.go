package courseform

import (
	"fmt"

	"lms/models"
)

// StoredFile is an uploaded file that already has its final URL
// assigned. OriginalName feeds fallback titles and document names.
type StoredFile struct {
	OriginalName string
	URL          string
}

// VideoEdit is one module's submitted video reconciliation. All lists
// keep the exact order the client sent: index i in ExistingIDs pairs
// with index i in ExistingTitles, and replacement files are consumed
// sequentially by the surviving entries.
type VideoEdit struct {
	ExistingIDs            []uint
	ExistingTitles         []string
	NewTitles              []string
	ReplacementFiles       []StoredFile
	NewFiles               []StoredFile
	ReplacementAssignments []StoredFile
	NewAssignments         []StoredFile
}

// DocumentEdit is the document counterpart of VideoEdit.
type DocumentEdit struct {
	ExistingIDs      []uint
	ReplacementFiles []StoredFile
	NewFiles         []StoredFile
}

// MergeVideos reconciles a module's stored videos against an edit.
// Entries referenced by id are kept (file/assignment/title swapped in
// when supplied), unreferenced stored entries are dropped, and new
// uploads are appended. An id that matches nothing is skipped silently.
// The returned deletions are the URLs of every superseded or orphaned
// file; the caller decides when to actually remove them.
func MergeVideos(stored []models.Video, edit VideoEdit) (final []models.Video, deletions []string) {
	kept := make(map[uint]bool, len(edit.ExistingIDs))
	fileIdx := 0
	assignIdx := 0

	for i, id := range edit.ExistingIDs {
		existing := findVideo(stored, id)
		if existing == nil {
			continue
		}
		kept[id] = true

		video := *existing

		if i < len(edit.ExistingTitles) && edit.ExistingTitles[i] != "" {
			video.Title = edit.ExistingTitles[i]
		}

		if fileIdx < len(edit.ReplacementFiles) {
			deletions = append(deletions, video.VideoURL)
			video.VideoURL = edit.ReplacementFiles[fileIdx].URL
			fileIdx++
		}

		if assignIdx < len(edit.ReplacementAssignments) {
			if video.AssignmentFileURL != "" {
				deletions = append(deletions, video.AssignmentFileURL)
			}
			video.AssignmentName = edit.ReplacementAssignments[assignIdx].OriginalName
			video.AssignmentFileURL = edit.ReplacementAssignments[assignIdx].URL
			assignIdx++
		}

		final = append(final, video)
	}

	// Stored entries the edit never referenced are dropped; their files
	// would be unreachable, so they go too.
	for _, video := range stored {
		if kept[video.ID] {
			continue
		}
		if video.VideoURL != "" {
			deletions = append(deletions, video.VideoURL)
		}
		if video.AssignmentFileURL != "" {
			deletions = append(deletions, video.AssignmentFileURL)
		}
	}

	for i, file := range edit.NewFiles {
		video := models.Video{
			Title:    newVideoTitle(edit.NewTitles, file, i),
			VideoURL: file.URL,
		}
		if i < len(edit.NewAssignments) {
			video.AssignmentName = edit.NewAssignments[i].OriginalName
			video.AssignmentFileURL = edit.NewAssignments[i].URL
		}
		final = append(final, video)
	}

	for i := range final {
		final[i].OrderIndex = i
	}
	return final, deletions
}

// MergeDocuments reconciles a module's stored documents against an
// edit, with the same keep/replace/append/drop rules as MergeVideos.
// A replacement file also replaces the document's display name.
func MergeDocuments(stored []models.Document, edit DocumentEdit) (final []models.Document, deletions []string) {
	kept := make(map[uint]bool, len(edit.ExistingIDs))
	fileIdx := 0

	for _, id := range edit.ExistingIDs {
		existing := findDocument(stored, id)
		if existing == nil {
			continue
		}
		kept[id] = true

		document := *existing

		if fileIdx < len(edit.ReplacementFiles) {
			deletions = append(deletions, document.FileURL)
			document.FileURL = edit.ReplacementFiles[fileIdx].URL
			document.Name = edit.ReplacementFiles[fileIdx].OriginalName
			fileIdx++
		}

		final = append(final, document)
	}

	for _, document := range stored {
		if kept[document.ID] {
			continue
		}
		if document.FileURL != "" {
			deletions = append(deletions, document.FileURL)
		}
	}

	for i, file := range edit.NewFiles {
		name := file.OriginalName
		if name == "" {
			name = fmt.Sprintf("Document %d", i+1)
		}
		final = append(final, models.Document{
			Name:    name,
			FileURL: file.URL,
		})
	}

	for i := range final {
		final[i].OrderIndex = i
	}
	return final, deletions
}

func newVideoTitle(titles []string, file StoredFile, i int) string {
	if i < len(titles) && titles[i] != "" {
		return titles[i]
	}
	if file.OriginalName != "" {
		return file.OriginalName
	}
	return fmt.Sprintf("Video %d", i+1)
}

func findVideo(videos []models.Video, id uint) *models.Video {
	for i := range videos {
		if videos[i].ID == id {
			return &videos[i]
		}
	}
	return nil
}

func findDocument(documents []models.Document, id uint) *models.Document {
	for i := range documents {
		if documents[i].ID == id {
			return &documents[i]
		}
	}
	return nil
}
