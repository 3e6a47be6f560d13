package courseform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mp4(field, name string) FileInfo {
	return FileInfo{
		FieldName:    field,
		OriginalName: name,
		ContentType:  "video/mp4",
		Size:         1024,
		StoredName:   "stored-" + name,
	}
}

func pdf(field, name string) FileInfo {
	return FileInfo{
		FieldName:    field,
		OriginalName: name,
		ContentType:  "application/pdf",
		Size:         512,
		StoredName:   "stored-" + name,
	}
}

func TestParseFlatForm(t *testing.T) {
	values := map[string][]string{
		"title":                          {"Go Basics"},
		"description":                    {"An introduction"},
		"teacherId":                      {"7"},
		"modules[0][moduleTitle]":        {"Module One"},
		"modules[0][moduleDescription]":  {"First module"},
		"modules[0][videos][0][title]":   {"Intro"},
		"modules[0][videos][1][title]":   {"Setup"},
		"modules[0][documents][0][title]": {"Syllabus"},
	}
	files := map[string]FileInfo{
		"modules[0][videos][0][file]":       mp4("modules[0][videos][0][file]", "intro.mp4"),
		"modules[0][videos][0][assignment]": pdf("modules[0][videos][0][assignment]", "homework.pdf"),
		"modules[0][videos][1][file]":       mp4("modules[0][videos][1][file]", "setup.mp4"),
		"modules[0][documents][0]":          pdf("modules[0][documents][0]", "syllabus.pdf"),
		"modules[0][documents][1]":          pdf("modules[0][documents][1]", "notes.pdf"),
	}

	course, err := ParseCourseForm(values, files)
	require.NoError(t, err)

	assert.Equal(t, "Go Basics", course.Title)
	assert.Equal(t, "7", course.TeacherID)
	require.Len(t, course.Modules, 1)

	module := course.Modules[0]
	assert.Equal(t, "Module One", module.Title)
	assert.Equal(t, "First module", module.Description)

	require.Len(t, module.Videos, 2)
	assert.Equal(t, "Intro", module.Videos[0].Title)
	assert.Equal(t, "/uploads/stored-intro.mp4", module.Videos[0].File.URL())
	require.NotNil(t, module.Videos[0].Assignment)
	assert.Equal(t, "homework.pdf", module.Videos[0].Assignment.OriginalName)
	assert.Nil(t, module.Videos[1].Assignment)

	require.Len(t, module.Documents, 2)
	assert.Equal(t, "Syllabus", module.Documents[0].Name)      // supplied title wins
	assert.Equal(t, "notes.pdf", module.Documents[1].Name)     // falls back to filename
}

func TestParseFlatFormMissingVideoFile(t *testing.T) {
	values := map[string][]string{
		"title":                         {"Go Basics"},
		"description":                   {"An introduction"},
		"teacherId":                     {"7"},
		"modules[0][moduleTitle]":       {"Module One"},
		"modules[0][moduleDescription]": {"First module"},
		"modules[0][videos][0][title]":  {"Intro"},
	}

	_, err := ParseCourseForm(values, map[string]FileInfo{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing file")
	assert.Contains(t, err.Error(), "Intro")
}

func TestParseStructuredForm(t *testing.T) {
	values := map[string][]string{
		"title":       {"Go Basics"},
		"description": {"An introduction"},
		"teacherId":   {"7"},
		"modules": {`[
			{
				"title": "Module One",
				"description": "First module",
				"videos": [{"title": "Intro"}],
				"documents": [{"title": ""}],
				"quiz": [{"questionText": "Q?", "options": ["a", "b"], "correctAnswerIndex": 1}]
			}
		]`},
	}
	files := map[string]FileInfo{
		"modules[0][videos][0][file]": mp4("modules[0][videos][0][file]", "intro.mp4"),
		"modules[0][documents][0]":    pdf("modules[0][documents][0]", "notes.pdf"),
	}

	course, err := ParseCourseForm(values, files)
	require.NoError(t, err)
	require.Len(t, course.Modules, 1)

	module := course.Modules[0]
	assert.Equal(t, "Module One", module.Title)
	require.Len(t, module.Videos, 1)
	assert.Equal(t, "Intro", module.Videos[0].Title)
	require.Len(t, module.Documents, 1)
	assert.Equal(t, "notes.pdf", module.Documents[0].Name)
	require.Len(t, module.QuizRaw, 1)
	assert.Equal(t, "Q?", module.QuizRaw[0].QuestionText)
}

func TestParseStructuredFormLegacyKeys(t *testing.T) {
	values := map[string][]string{
		"title":       {"Go Basics"},
		"description": {"An introduction"},
		"teacherId":   {"7"},
		"modules":     {`[{"moduleTitle": "Legacy", "moduleDescription": "Old keys", "videos": [{"title": "V"}]}]`},
	}
	files := map[string]FileInfo{
		"modules[0][videos][0][file]": mp4("modules[0][videos][0][file]", "v.mp4"),
	}

	course, err := ParseCourseForm(values, files)
	require.NoError(t, err)
	require.Len(t, course.Modules, 1)
	assert.Equal(t, "Legacy", course.Modules[0].Title)
	assert.Equal(t, "Old keys", course.Modules[0].Description)
}

func TestParseStructuredFormInvalidJSON(t *testing.T) {
	values := map[string][]string{
		"title":       {"Go Basics"},
		"description": {"An introduction"},
		"teacherId":   {"7"},
		"modules":     {`not json`},
	}

	_, err := ParseCourseForm(values, map[string]FileInfo{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid modules payload")
}
