package courseform

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// QuizCandidate is one question exactly as the client submitted it.
// CorrectAnswerIndex stays untyped until validation so a non-integer
// value can be reported instead of failing the whole decode.
type QuizCandidate struct {
	QuestionText       string      `json:"questionText"`
	Options            []string    `json:"options"`
	CorrectAnswerIndex interface{} `json:"correctAnswerIndex"`
}

// QuizQuestion is a validated, normalized question.
type QuizQuestion struct {
	QuestionText       string
	Options            []string
	CorrectAnswerIndex int
}

// decodeQuizCandidates decodes the quiz JSON of one module. Quizzes are
// optional enrichment: a payload that fails to decode degrades to no
// quiz with a logged warning instead of aborting the request.
func decodeQuizCandidates(raw string, moduleIndex int) []QuizCandidate {
	var candidates []QuizCandidate
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		log.Printf("Warning: invalid quiz data in module %d: %v", moduleIndex, err)
		return nil
	}
	return candidates
}

// normalizeQuiz filters and validates the module's quiz candidates.
// Structurally empty candidates (no text, no options) are unfilled form
// rows and are skipped; anything else malformed aborts with an error
// naming the module and question number.
func normalizeQuiz(candidates []QuizCandidate, moduleNum int) ([]QuizQuestion, error) {
	var questions []QuizQuestion

	for n, candidate := range candidates {
		text := strings.TrimSpace(candidate.QuestionText)
		if text == "" && len(candidate.Options) == 0 {
			continue
		}

		if text == "" {
			return nil, fmt.Errorf("module %d question %d: question text is required", moduleNum, n+1)
		}
		if !hasNonBlankOption(candidate.Options) {
			return nil, fmt.Errorf("module %d question %d: at least one option is required", moduleNum, n+1)
		}

		index, err := answerIndex(candidate.CorrectAnswerIndex)
		if err != nil {
			return nil, fmt.Errorf("module %d question %d: %v", moduleNum, n+1, err)
		}
		if index < 0 || index >= len(candidate.Options) {
			return nil, fmt.Errorf("module %d question %d: correct answer index %d is out of range", moduleNum, n+1, index)
		}

		questions = append(questions, QuizQuestion{
			QuestionText:       candidate.QuestionText,
			Options:            candidate.Options,
			CorrectAnswerIndex: index,
		})
	}

	return questions, nil
}

func hasNonBlankOption(options []string) bool {
	for _, option := range options {
		if strings.TrimSpace(option) != "" {
			return true
		}
	}
	return false
}

// answerIndex coerces the submitted correct answer index to an int.
// JSON numbers arrive as float64; integral values pass, anything else
// (fractional, string, missing) is malformed.
func answerIndex(v interface{}) (int, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("correct answer index must be an integer")
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("correct answer index must be an integer")
	}
	return int(f), nil
}
