package domain

import "errors"

var (
	// ErrFetchFailure is returned when the question list could not be loaded or parsed.
	ErrFetchFailure = errors.New("failed to load quiz questions")
	// ErrEmptyQuestionSet is returned when the endpoint answered with zero questions.
	ErrEmptyQuestionSet = errors.New("no quiz questions available")
	// ErrAlreadyStarted is returned when a controller is started twice.
	ErrAlreadyStarted = errors.New("quiz already started")
	// ErrInvalidQuestion indicates a question record violates its invariants.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrScoreNotFound is returned when no score has been persisted yet.
	ErrScoreNotFound = errors.New("score not found")
	// ErrInvalidScore indicates a persisted score is not of the form "<score>/<total>".
	ErrInvalidScore = errors.New("invalid score value")
)
