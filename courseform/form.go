// Package courseform reconstructs, validates and reconciles course
// authoring requests. Everything in here is pure: handlers hand in the
// multipart values and a field-path -> file map, and get back either a
// normalized course tree or an error to report. No I/O happens here.
package courseform

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FileInfo describes one uploaded multipart part. StoredName is the
// storage-assigned unique filename; callers assign it before parsing so
// the tree can carry final URLs without touching disk.
type FileInfo struct {
	FieldName    string `json:"field_name"`
	OriginalName string `json:"original_name"`
	ContentType  string `json:"content_type"`
	Size         int64  `json:"size"`
	StoredName   string `json:"stored_name"`
}

// URL is the path the file will be served from once written.
func (f FileInfo) URL() string {
	return "/uploads/" + f.StoredName
}

type CourseInput struct {
	Title       string
	Description string
	TeacherID   string
	Modules     []ModuleInput
}

type ModuleInput struct {
	Title       string
	Description string
	Videos      []VideoInput
	Documents   []DocumentInput

	// QuizRaw holds decoded quiz candidates as submitted; Validate fills
	// Quiz with the filtered, normalized questions.
	QuizRaw []QuizCandidate
	Quiz    []QuizQuestion
}

type VideoInput struct {
	Title      string
	File       FileInfo
	Assignment *FileInfo
}

type DocumentInput struct {
	Name string
	File FileInfo
}

// structuredModule is the JSON shape of one module in the structured
// body variant. The legacy field names are accepted as aliases so older
// clients can move over without renaming keys.
type structuredModule struct {
	Title             string `json:"title"`
	ModuleTitle       string `json:"moduleTitle"`
	Description       string `json:"description"`
	ModuleDescription string `json:"moduleDescription"`
	Videos            []struct {
		Title string `json:"title"`
	} `json:"videos"`
	Documents []struct {
		Title string `json:"title"`
	} `json:"documents"`
	Quiz json.RawMessage `json:"quiz"`
}

// ParseCourseForm turns a flat multipart form into a course tree.
// Two request encodings are supported and resolve to the same tree: a
// structured `modules` JSON value, or the legacy bracket-indexed fields
// (`modules[0][moduleTitle]`, `modules[0][videos][0][title]`, ...).
// File parts are addressed by bracket paths in both variants.
func ParseCourseForm(values map[string][]string, files map[string]FileInfo) (*CourseInput, error) {
	course := &CourseInput{
		Title:       firstValue(values, "title"),
		Description: firstValue(values, "description"),
		TeacherID:   firstValue(values, "teacherId"),
	}

	var (
		modules []ModuleInput
		err     error
	)
	if raw := firstValue(values, "modules"); raw != "" {
		modules, err = parseStructuredModules(raw, files)
	} else {
		modules, err = parseFlatModules(values, files)
	}
	if err != nil {
		return nil, err
	}

	course.Modules = modules
	return course, nil
}

func parseStructuredModules(raw string, files map[string]FileInfo) ([]ModuleInput, error) {
	var decoded []structuredModule
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("invalid modules payload: %w", err)
	}

	var modules []ModuleInput
	for i, sm := range decoded {
		module := ModuleInput{
			Title:       pick(sm.Title, sm.ModuleTitle),
			Description: pick(sm.Description, sm.ModuleDescription),
		}

		for j, sv := range sm.Videos {
			video, err := videoAt(i, j, sv.Title, files)
			if err != nil {
				return nil, err
			}
			module.Videos = append(module.Videos, video)
		}

		for k, sd := range sm.Documents {
			file, ok := files[fmt.Sprintf("modules[%d][documents][%d]", i, k)]
			if !ok {
				return nil, fmt.Errorf("missing file for document %d in module %d", k+1, i+1)
			}
			module.Documents = append(module.Documents, DocumentInput{
				Name: pick(sd.Title, file.OriginalName),
				File: file,
			})
		}

		if len(sm.Quiz) > 0 {
			module.QuizRaw = decodeQuizCandidates(string(sm.Quiz), i)
		}

		modules = append(modules, module)
	}
	return modules, nil
}

func parseFlatModules(values map[string][]string, files map[string]FileInfo) ([]ModuleInput, error) {
	var modules []ModuleInput

	for i := 0; ; i++ {
		title, ok := lookupValue(values, fmt.Sprintf("modules[%d][moduleTitle]", i))
		if !ok {
			break
		}

		module := ModuleInput{
			Title:       title,
			Description: firstValue(values, fmt.Sprintf("modules[%d][moduleDescription]", i)),
		}

		for j := 0; ; j++ {
			videoTitle, ok := lookupValue(values, fmt.Sprintf("modules[%d][videos][%d][title]", i, j))
			if !ok {
				break
			}
			video, err := videoAt(i, j, videoTitle, files)
			if err != nil {
				return nil, err
			}
			module.Videos = append(module.Videos, video)
		}

		for k := 0; ; k++ {
			file, ok := files[fmt.Sprintf("modules[%d][documents][%d]", i, k)]
			if !ok {
				break
			}
			name := firstValue(values, fmt.Sprintf("modules[%d][documents][%d][title]", i, k))
			module.Documents = append(module.Documents, DocumentInput{
				Name: pick(name, file.OriginalName),
				File: file,
			})
		}

		if quizRaw := firstValue(values, fmt.Sprintf("modules[%d][quiz]", i)); quizRaw != "" {
			module.QuizRaw = decodeQuizCandidates(quizRaw, i)
		}

		modules = append(modules, module)
	}
	return modules, nil
}

// videoAt pairs a declared video with its uploaded file and optional
// assignment. A title without a matching file is an error, never a
// silent drop.
func videoAt(i, j int, title string, files map[string]FileInfo) (VideoInput, error) {
	file, ok := files[fmt.Sprintf("modules[%d][videos][%d][file]", i, j)]
	if !ok {
		return VideoInput{}, fmt.Errorf("missing file for video %q in module %d", title, i+1)
	}

	video := VideoInput{Title: title, File: file}
	if assignment, ok := files[fmt.Sprintf("modules[%d][videos][%d][assignment]", i, j)]; ok {
		video.Assignment = &assignment
	}
	return video, nil
}

func firstValue(values map[string][]string, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}

func lookupValue(values map[string][]string, key string) (string, bool) {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func pick(preferred, fallback string) string {
	if strings.TrimSpace(preferred) != "" {
		return preferred
	}
	return fallback
}
