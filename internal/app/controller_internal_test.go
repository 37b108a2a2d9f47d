package app

import (
	"context"
	"testing"
	"time"

	"quiz-widget/internal/domain"
)

type nopRenderer struct{}

func (nopRenderer) ShowQuestion(QuestionView) {}

func (nopRenderer) ShowTime(int) {}

func (nopRenderer) ShowNotice(string) {}

func (nopRenderer) ShowMessage(string) {}

func (nopRenderer) DisableAdvance() {}

func (nopRenderer) Navigate(context.Context, string) {}

func (nopRenderer) Set(context.Context, string, string) error { return nil }

func (nopRenderer) Get(context.Context, string) (string, error) {
	return "", domain.ErrScoreNotFound
}

type fixedSource []domain.Question

func (s fixedSource) FetchQuestions(context.Context) ([]domain.Question, error) { return s, nil }

type idleTicker struct{ ch chan time.Time }

func (t idleTicker) C() <-chan time.Time { return t.ch }

func (t idleTicker) Stop() {}

func TestLateExpiryIsIgnoredAfterSubmit(t *testing.T) {
	c := NewController(Dependencies{
		Questions: fixedSource{
			{Text: "one", Options: []string{"a", "b"}, CorrectIndex: 0},
			{Text: "two", Options: []string{"a", "b"}, CorrectIndex: 0},
		},
		Scores:    nopRenderer{},
		Renderer:  nopRenderer{},
		Navigator: nopRenderer{},
		NewTicker: func(time.Duration) Ticker { return idleTicker{ch: make(chan time.Time)} },
	})
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	c.Submit(0)
	c.expire(0)

	if state := c.State(); state.CurrentIndex != 1 || state.Phase != PhaseAwaitingAnswer {
		t.Fatalf("expected a single advance, got %+v", state)
	}
	c.Close()
}
