package app

import "quiz-widget/internal/domain"

// OptionControl is one selectable answer, tagged with its 0-based ordinal.
type OptionControl struct {
	Index int
	Label string
}

// QuestionView is everything a renderer needs to draw one question.
type QuestionView struct {
	Index   int
	Total   int
	Text    string
	Options []OptionControl
}

// BuildView produces the display model for the question at index.
func BuildView(index, total int, q domain.Question) QuestionView {
	options := make([]OptionControl, len(q.Options))
	for i, label := range q.Options {
		options[i] = OptionControl{Index: i, Label: label}
	}
	return QuestionView{
		Index:   index,
		Total:   total,
		Text:    q.Text,
		Options: options,
	}
}
