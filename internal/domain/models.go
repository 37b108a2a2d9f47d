package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeLimitSeconds is the countdown each question starts with.
const TimeLimitSeconds = 30

// ScoreKey is the key the final score is persisted under.
const ScoreKey = "quizScore"

// ResultsRoute is where control goes once the last question is answered.
const ResultsRoute = "results"

// Question models a single-choice question.
type Question struct {
	Text         string   `json:"text" yaml:"text"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correctIndex" yaml:"correctIndex"`
}

// Validate checks that the question has options and a correct index inside them.
func (q Question) Validate() error {
	if len(q.Options) == 0 {
		return fmt.Errorf("%w: no options", ErrInvalidQuestion)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: correct index %d out of range [0,%d)", ErrInvalidQuestion, q.CorrectIndex, len(q.Options))
	}
	return nil
}

// IsCorrect reports whether the selected option index is the right one.
// A negative selection means nothing was chosen and never matches.
func (q Question) IsCorrect(selected int) bool {
	return selected >= 0 && selected == q.CorrectIndex
}

// Score is the persisted outcome of a finished quiz.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// String renders the score as "<correct>/<total>".
func (s Score) String() string {
	return FormatScore(s.Correct, s.Total)
}

// Percent returns the share of correct answers, 0 for an empty total.
func (s Score) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) * 100 / float64(s.Total)
}

// FormatScore renders a score in its persisted form.
func FormatScore(correct, total int) string {
	return strconv.Itoa(correct) + "/" + strconv.Itoa(total)
}

// ParseScore parses a persisted "<correct>/<total>" value.
func ParseScore(raw string) (Score, error) {
	left, right, ok := strings.Cut(strings.TrimSpace(raw), "/")
	if !ok {
		return Score{}, fmt.Errorf("%w: %q", ErrInvalidScore, raw)
	}
	correct, err := strconv.Atoi(left)
	if err != nil {
		return Score{}, fmt.Errorf("%w: %q", ErrInvalidScore, raw)
	}
	total, err := strconv.Atoi(right)
	if err != nil {
		return Score{}, fmt.Errorf("%w: %q", ErrInvalidScore, raw)
	}
	if correct < 0 || total < 0 || correct > total {
		return Score{}, fmt.Errorf("%w: %q", ErrInvalidScore, raw)
	}
	return Score{Correct: correct, Total: total}, nil
}
