package courseform

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func video(id uint, title, url string) models.Video {
	return models.Video{Model: gorm.Model{ID: id}, Title: title, VideoURL: url}
}

func document(id uint, name, url string) models.Document {
	return models.Document{Model: gorm.Model{ID: id}, Name: name, FileURL: url}
}

func TestMergeVideosReplaceDropAppend(t *testing.T) {
	stored := []models.Video{
		video(1, "A", "/uploads/a.mp4"),
		video(2, "B", "/uploads/b.mp4"),
	}

	final, deletions := MergeVideos(stored, VideoEdit{
		ExistingIDs:      []uint{1},
		ReplacementFiles: []StoredFile{{OriginalName: "a2.mp4", URL: "/uploads/a2.mp4"}},
		NewFiles:         []StoredFile{{OriginalName: "c.mp4", URL: "/uploads/c.mp4"}},
	})

	require.Len(t, final, 2)

	// A kept with the replacement file, B dropped, C appended after
	assert.Equal(t, uint(1), final[0].ID)
	assert.Equal(t, "A", final[0].Title)
	assert.Equal(t, "/uploads/a2.mp4", final[0].VideoURL)
	assert.Equal(t, "c.mp4", final[1].Title)
	assert.Equal(t, "/uploads/c.mp4", final[1].VideoURL)

	// A's old file superseded, B's file orphaned
	assert.ElementsMatch(t, []string{"/uploads/a.mp4", "/uploads/b.mp4"}, deletions)
}

func TestMergeVideosTitleHandling(t *testing.T) {
	stored := []models.Video{
		video(1, "old one", "/uploads/1.mp4"),
		video(2, "old two", "/uploads/2.mp4"),
	}

	final, deletions := MergeVideos(stored, VideoEdit{
		ExistingIDs:    []uint{1, 2},
		ExistingTitles: []string{"renamed", ""},
	})

	require.Len(t, final, 2)
	assert.Equal(t, "renamed", final[0].Title)
	assert.Equal(t, "old two", final[1].Title) // empty title keeps the stored one
	assert.Empty(t, deletions)

	assert.Equal(t, "/uploads/1.mp4", final[0].VideoURL)
	assert.Equal(t, "/uploads/2.mp4", final[1].VideoURL)
}

func TestMergeVideosUnknownIDSkipped(t *testing.T) {
	stored := []models.Video{video(1, "A", "/uploads/a.mp4")}

	final, _ := MergeVideos(stored, VideoEdit{
		ExistingIDs: []uint{99, 1},
	})

	require.Len(t, final, 1)
	assert.Equal(t, uint(1), final[0].ID)
}

func TestMergeVideosReplacementFilesConsumedInOrder(t *testing.T) {
	stored := []models.Video{
		video(1, "A", "/uploads/a.mp4"),
		video(2, "B", "/uploads/b.mp4"),
	}

	// One replacement file for two surviving videos: the first survivor
	// consumes it, the second keeps its file.
	final, deletions := MergeVideos(stored, VideoEdit{
		ExistingIDs:      []uint{2, 1},
		ReplacementFiles: []StoredFile{{OriginalName: "new.mp4", URL: "/uploads/new.mp4"}},
	})

	require.Len(t, final, 2)
	assert.Equal(t, uint(2), final[0].ID)
	assert.Equal(t, "/uploads/new.mp4", final[0].VideoURL)
	assert.Equal(t, "/uploads/a.mp4", final[1].VideoURL)
	assert.Equal(t, []string{"/uploads/b.mp4"}, deletions)
}

func TestMergeVideosAssignmentReplacement(t *testing.T) {
	withAssignment := video(1, "A", "/uploads/a.mp4")
	withAssignment.AssignmentName = "old.pdf"
	withAssignment.AssignmentFileURL = "/uploads/old.pdf"

	final, deletions := MergeVideos([]models.Video{withAssignment}, VideoEdit{
		ExistingIDs:            []uint{1},
		ReplacementAssignments: []StoredFile{{OriginalName: "new.pdf", URL: "/uploads/new.pdf"}},
	})

	require.Len(t, final, 1)
	assert.Equal(t, "new.pdf", final[0].AssignmentName)
	assert.Equal(t, "/uploads/new.pdf", final[0].AssignmentFileURL)
	assert.Equal(t, []string{"/uploads/old.pdf"}, deletions)
}

func TestMergeVideosNewTitleFallbacks(t *testing.T) {
	final, _ := MergeVideos(nil, VideoEdit{
		NewTitles: []string{"given"},
		NewFiles: []StoredFile{
			{OriginalName: "ignored.mp4", URL: "/uploads/x.mp4"},
			{OriginalName: "fromfile.mp4", URL: "/uploads/y.mp4"},
			{OriginalName: "", URL: "/uploads/z.mp4"},
		},
	})

	require.Len(t, final, 3)
	assert.Equal(t, "given", final[0].Title)
	assert.Equal(t, "fromfile.mp4", final[1].Title)
	assert.Equal(t, "Video 3", final[2].Title)

	// order indexes reassigned sequentially
	for i, v := range final {
		assert.Equal(t, i, v.OrderIndex)
	}
}

func TestMergeDocumentsReplaceAdoptsName(t *testing.T) {
	stored := []models.Document{
		document(1, "old.pdf", "/uploads/old.pdf"),
		document(2, "other.pdf", "/uploads/other.pdf"),
	}

	final, deletions := MergeDocuments(stored, DocumentEdit{
		ExistingIDs:      []uint{1},
		ReplacementFiles: []StoredFile{{OriginalName: "new.pdf", URL: "/uploads/new.pdf"}},
		NewFiles:         []StoredFile{{OriginalName: "extra.pdf", URL: "/uploads/extra.pdf"}},
	})

	require.Len(t, final, 2)
	assert.Equal(t, "new.pdf", final[0].Name)
	assert.Equal(t, "/uploads/new.pdf", final[0].FileURL)
	assert.Equal(t, "extra.pdf", final[1].Name)
	assert.ElementsMatch(t, []string{"/uploads/old.pdf", "/uploads/other.pdf"}, deletions)
}
