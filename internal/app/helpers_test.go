package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"quiz-widget/internal/app"
	"quiz-widget/internal/domain"
	"quiz-widget/internal/infra/memory"
)

type staticSource struct {
	questions []domain.Question
	err       error
	calls     int
	mu        sync.Mutex
}

func (s *staticSource) FetchQuestions(context.Context) ([]domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.questions, s.err
}

type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
}

func (f *fakeTicker) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

// fakeClock hands out manually driven tickers.
type fakeClock struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (c *fakeClock) NewTicker(time.Duration) app.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	tk := &fakeTicker{ch: make(chan time.Time)}
	c.tickers = append(c.tickers, tk)
	return tk
}

func (c *fakeClock) created() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

func (c *fakeClock) at(i int) *fakeTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickers[i]
}

func (c *fakeClock) latest(t *testing.T) *fakeTicker {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tickers) == 0 {
		t.Fatalf("no ticker created")
	}
	return c.tickers[len(c.tickers)-1]
}

// fire delivers n ticks to the most recent ticker.
func (c *fakeClock) fire(t *testing.T, n int) {
	t.Helper()
	tk := c.latest(t)
	for i := 0; i < n; i++ {
		select {
		case tk.ch <- time.Now():
		case <-time.After(2 * time.Second):
			t.Fatalf("tick %d not consumed", i+1)
		}
	}
}

type recordingRenderer struct {
	mu        sync.Mutex
	questions []app.QuestionView
	times     []int
	notices   []string
	messages  []string
	disabled  bool
	routes    []string
}

func (r *recordingRenderer) ShowQuestion(view app.QuestionView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions = append(r.questions, view)
}

func (r *recordingRenderer) ShowTime(remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.times = append(r.times, remaining)
}

func (r *recordingRenderer) ShowNotice(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, text)
}

func (r *recordingRenderer) ShowMessage(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, text)
}

func (r *recordingRenderer) DisableAdvance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabled = true
}

func (r *recordingRenderer) Navigate(_ context.Context, route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *recordingRenderer) snapshot() recordingRenderer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return recordingRenderer{
		questions: append([]app.QuestionView(nil), r.questions...),
		times:     append([]int(nil), r.times...),
		notices:   append([]string(nil), r.notices...),
		messages:  append([]string(nil), r.messages...),
		disabled:  r.disabled,
		routes:    append([]string(nil), r.routes...),
	}
}

func (r *recordingRenderer) lastTime() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.times) == 0 {
		return -1
	}
	return r.times[len(r.times)-1]
}

type harness struct {
	ctrl     *app.Controller
	source   *staticSource
	clock    *fakeClock
	renderer *recordingRenderer
	scores   *memory.ScoreStore
}

func newHarness(questions []domain.Question, err error) *harness {
	h := &harness{
		source:   &staticSource{questions: questions, err: err},
		clock:    &fakeClock{},
		renderer: &recordingRenderer{},
		scores:   memory.NewScoreStore(),
	}
	h.ctrl = app.NewController(app.Dependencies{
		Questions: h.source,
		Scores:    h.scores,
		Renderer:  h.renderer,
		Navigator: h.renderer,
		NewTicker: h.clock.NewTicker,
	})
	return h
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func sampleQuestions(n int) []domain.Question {
	questions := make([]domain.Question, n)
	for i := range questions {
		questions[i] = domain.Question{
			Text:         "Question " + string(rune('A'+i)),
			Options:      []string{"zero", "one", "two"},
			CorrectIndex: i % 3,
		}
	}
	return questions
}
