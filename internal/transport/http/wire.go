package http

import (
	"bytes"
	"encoding/json"
	"fmt"

	"quiz-widget/internal/domain"
)

// wireQuestion is the JSON shape served at /api/questions.
// Pointer fields distinguish a missing key from a zero value.
type wireQuestion struct {
	Q       *string  `json:"q"`
	Options []string `json:"options"`
	Answer  *int     `json:"answer"`
}

func toWire(questions []domain.Question) []wireQuestion {
	out := make([]wireQuestion, len(questions))
	for i, q := range questions {
		text := q.Text
		answer := q.CorrectIndex
		options := q.Options
		if options == nil {
			options = []string{}
		}
		out[i] = wireQuestion{Q: &text, Options: options, Answer: &answer}
	}
	return out
}

// decodeQuestions parses a /api/questions payload. Anything that is not an
// array of complete, valid question objects is rejected.
func decodeQuestions(body []byte) ([]domain.Question, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: payload is not an array", domain.ErrFetchFailure)
	}
	var raw []wireQuestion
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailure, err)
	}

	questions := make([]domain.Question, 0, len(raw))
	for i, w := range raw {
		if w.Q == nil || w.Options == nil || w.Answer == nil {
			return nil, fmt.Errorf("%w: question %d is missing required fields", domain.ErrFetchFailure, i)
		}
		q := domain.Question{Text: *w.Q, Options: w.Options, CorrectIndex: *w.Answer}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("%w: question %d: %w", domain.ErrFetchFailure, i, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}
