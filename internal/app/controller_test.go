package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"quiz-widget/internal/app"
	"quiz-widget/internal/domain"
)

func TestEmptyQuestionSetDisablesQuiz(t *testing.T) {
	ctx := context.Background()
	h := newHarness([]domain.Question{}, nil)

	err := h.ctrl.Start(ctx)
	if !errors.Is(err, domain.ErrEmptyQuestionSet) {
		t.Fatalf("expected empty question set, got %v", err)
	}

	h.ctrl.Submit(0)
	h.ctrl.Select(0, 0)

	got := h.renderer.snapshot()
	if len(got.messages) != 1 || got.messages[0] != app.NoQuestionsMessage {
		t.Fatalf("expected empty-state message, got %v", got.messages)
	}
	if !got.disabled {
		t.Fatalf("expected advance control disabled")
	}
	if h.clock.created() != 0 {
		t.Fatalf("expected no timer, got %d tickers", h.clock.created())
	}
	if _, err := h.scores.Get(ctx, domain.ScoreKey); !errors.Is(err, domain.ErrScoreNotFound) {
		t.Fatalf("expected no persisted score, got %v", err)
	}
	if h.ctrl.Phase() != app.PhaseEmpty {
		t.Fatalf("expected empty phase, got %s", h.ctrl.Phase())
	}
}

func TestSingleCorrectAnswerFinishes(t *testing.T) {
	ctx := context.Background()
	h := newHarness([]domain.Question{
		{Text: "Pick two", Options: []string{"a", "b", "c"}, CorrectIndex: 2},
	}, nil)

	if err := h.ctrl.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.ctrl.Select(0, 2)
	h.ctrl.Submit(0)

	state := h.ctrl.State()
	if state.Score != 1 || state.Phase != app.PhaseFinished || state.CurrentIndex != 1 {
		t.Fatalf("unexpected final state %+v", state)
	}
	value, err := h.scores.Get(ctx, domain.ScoreKey)
	if err != nil {
		t.Fatalf("get score: %v", err)
	}
	if value != "1/1" {
		t.Fatalf("expected 1/1, got %q", value)
	}
	got := h.renderer.snapshot()
	if len(got.routes) != 1 || got.routes[0] != domain.ResultsRoute {
		t.Fatalf("expected navigation to results, got %v", got.routes)
	}
	eventually(t, "timer released", h.clock.latest(t).isStopped)
}

func TestTimeoutAdvancesWithoutScoring(t *testing.T) {
	ctx := context.Background()
	h := newHarness(sampleQuestions(2), nil)

	if err := h.ctrl.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.fire(t, domain.TimeLimitSeconds)

	eventually(t, "second question", func() bool { return h.ctrl.State().CurrentIndex == 1 })

	state := h.ctrl.State()
	if state.Score != 0 {
		t.Fatalf("expected score 0 after timeout, got %d", state.Score)
	}
	if state.TimeRemaining != domain.TimeLimitSeconds {
		t.Fatalf("expected fresh countdown, got %d", state.TimeRemaining)
	}
	got := h.renderer.snapshot()
	if len(got.notices) != 1 || got.notices[0] != app.TimeUpNotice {
		t.Fatalf("expected one time-up notice, got %v", got.notices)
	}
	if len(got.questions) != 2 || got.questions[1].Index != 1 {
		t.Fatalf("expected second question rendered, got %+v", got.questions)
	}
	if h.clock.created() != 2 {
		t.Fatalf("expected a new countdown for question 1, got %d tickers", h.clock.created())
	}
	if h.renderer.lastTime() != domain.TimeLimitSeconds {
		t.Fatalf("expected display reset to %d, got %d", domain.TimeLimitSeconds, h.renderer.lastTime())
	}
}

func TestTimeoutScoresCurrentSelection(t *testing.T) {
	ctx := context.Background()
	h := newHarness(sampleQuestions(2), nil)

	if err := h.ctrl.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.ctrl.Select(0, 0)
	h.clock.fire(t, domain.TimeLimitSeconds)

	eventually(t, "second question", func() bool { return h.ctrl.State().CurrentIndex == 1 })
	if score := h.ctrl.State().Score; score != 1 {
		t.Fatalf("timeout should score the selected option, got %d", score)
	}
}

func TestSubmitRacingTimeoutAdvancesOnce(t *testing.T) {
	ctx := context.Background()
	h := newHarness(sampleQuestions(3), nil)

	if err := h.ctrl.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.fire(t, domain.TimeLimitSeconds-1)
	eventually(t, "one second left", func() bool { return h.renderer.lastTime() == 1 })

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		h.ctrl.Submit(0)
	}()
	go func() {
		defer wg.Done()
		// the loop may already be cancelled by the submit
		select {
		case h.clock.at(0).ch <- time.Now():
		default:
		}
	}()
	wg.Wait()

	eventually(t, "advance", func() bool { return h.ctrl.State().CurrentIndex >= 1 })
	// a late expiry or a duplicate submit for question 0 must be ignored
	h.ctrl.Submit(0)

	state := h.ctrl.State()
	if state.CurrentIndex != 1 {
		t.Fatalf("expected exactly one advance, got index %d", state.CurrentIndex)
	}
	if got := h.renderer.snapshot(); len(got.questions) != 2 {
		t.Fatalf("expected two rendered questions, got %d", len(got.questions))
	}
}

func TestFetchFailureNeverStartsTimer(t *testing.T) {
	ctx := context.Background()
	h := newHarness(nil, errors.New("connection refused"))

	err := h.ctrl.Start(ctx)
	if !errors.Is(err, domain.ErrFetchFailure) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
	h.ctrl.Select(0, 1)
	h.ctrl.Submit(0)

	got := h.renderer.snapshot()
	if len(got.messages) != 1 || got.messages[0] != app.LoadErrorMessage {
		t.Fatalf("expected load error message, got %v", got.messages)
	}
	if len(got.times) != 0 || h.clock.created() != 0 {
		t.Fatalf("expected no timer activity, got times=%v tickers=%d", got.times, h.clock.created())
	}
	if state := h.ctrl.State(); state.Phase != app.PhaseFailed || state.CurrentIndex != 0 {
		t.Fatalf("unexpected state after failure %+v", state)
	}
}

func TestEveryQuestionNeedsOneAdvance(t *testing.T) {
	ctx := context.Background()
	questions := sampleQuestions(5)
	h := newHarness(questions, nil)

	if err := h.ctrl.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := range questions {
		if phase := h.ctrl.Phase(); phase != app.PhaseAwaitingAnswer {
			t.Fatalf("expected awaiting answer before advance %d, got %s", i, phase)
		}
		state := h.ctrl.State()
		if state.Score > state.CurrentIndex {
			t.Fatalf("score %d exceeds answered %d", state.Score, state.CurrentIndex)
		}
		if i%2 == 0 {
			h.ctrl.Select(i, questions[i].CorrectIndex)
		}
		h.ctrl.Submit(i)
	}

	state := h.ctrl.State()
	if state.Phase != app.PhaseFinished || state.CurrentIndex != len(questions) {
		t.Fatalf("expected finished after %d advances, got %+v", len(questions), state)
	}
	if state.Score != 3 {
		t.Fatalf("expected 3 correct, got %d", state.Score)
	}
	value, _ := h.scores.Get(ctx, domain.ScoreKey)
	if value != "3/5" {
		t.Fatalf("expected 3/5, got %q", value)
	}
}

func TestSelectionDoesNotLeakToNextQuestion(t *testing.T) {
	ctx := context.Background()
	questions := []domain.Question{
		{Text: "first", Options: []string{"a", "b"}, CorrectIndex: 1},
		{Text: "second", Options: []string{"a", "b"}, CorrectIndex: 1},
	}
	h := newHarness(questions, nil)
	if err := h.ctrl.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	h.ctrl.Select(0, 1)
	h.ctrl.Submit(0)
	// stale selection for the previous question is ignored
	h.ctrl.Select(0, 1)
	h.ctrl.Submit(1)

	if score := h.ctrl.State().Score; score != 1 {
		t.Fatalf("expected only the first answer to count, got %d", score)
	}
}

func TestStartTwiceFails(t *testing.T) {
	h := newHarness(sampleQuestions(1), nil)
	if err := h.ctrl.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := h.ctrl.Start(context.Background()); !errors.Is(err, domain.ErrAlreadyStarted) {
		t.Fatalf("expected already started, got %v", err)
	}
	if h.source.calls != 1 {
		t.Fatalf("expected a single fetch, got %d", h.source.calls)
	}
}

func TestCloseStopsCountdown(t *testing.T) {
	h := newHarness(sampleQuestions(2), nil)
	if err := h.ctrl.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.ctrl.Close()
	eventually(t, "ticker released", h.clock.latest(t).isStopped)

	h.ctrl.Submit(0)
	if idx := h.ctrl.State().CurrentIndex; idx != 0 {
		t.Fatalf("closed controller must ignore submits, got index %d", idx)
	}
}
