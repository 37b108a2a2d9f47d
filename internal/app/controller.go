package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"quiz-widget/internal/domain"
)

// User-visible static texts.
const (
	LoadErrorMessage   = "Error loading quiz questions."
	NoQuestionsMessage = "No quiz questions available."
	TimeUpNotice       = "Time's up! Moving to the next question."
)

// QuestionSource loads the question list once at startup.
type QuestionSource interface {
	FetchQuestions(ctx context.Context) ([]domain.Question, error)
}

// ScoreStore persists key/value pairs that outlive the quiz view.
type ScoreStore interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
}

// Renderer draws controller output. Implementations must be safe for use
// from the timer goroutine and must not call back into the controller synchronously.
type Renderer interface {
	ShowQuestion(view QuestionView)
	ShowTime(remaining int)
	ShowNotice(text string)
	ShowMessage(text string)
	DisableAdvance()
}

// Navigator hands control to another view once the quiz is over.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// Phase is the controller state machine position.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseAwaitingAnswer
	PhaseFinished
	// PhaseFailed is terminal after a fetch failure.
	PhaseFailed
	// PhaseEmpty is terminal after an empty question set.
	PhaseEmpty
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseFinished:
		return "finished"
	case PhaseFailed:
		return "failed"
	case PhaseEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// State is a snapshot of the quiz.
type State struct {
	Questions     []domain.Question
	CurrentIndex  int
	Score         int
	TimeRemaining int
	Phase         Phase
}

// Dependencies wires the controller to its collaborators.
type Dependencies struct {
	Questions QuestionSource
	Scores    ScoreStore
	Renderer  Renderer
	Navigator Navigator
	// NewTicker overrides the countdown tick source; nil uses time.Ticker.
	NewTicker TickerFactory
}

// Controller owns the quiz state and is the only thing that mutates it.
type Controller struct {
	questions QuestionSource
	scores    ScoreStore
	renderer  Renderer
	navigator Navigator
	timer     *Timer

	mu       sync.Mutex
	ctx      context.Context
	started  bool
	closed   bool
	phase    Phase
	items    []domain.Question
	current  int
	score    int
	selected int
}

func NewController(deps Dependencies) *Controller {
	c := &Controller{
		questions: deps.Questions,
		scores:    deps.Scores,
		renderer:  deps.Renderer,
		navigator: deps.Navigator,
		ctx:       context.Background(),
		phase:     PhaseLoading,
		selected:  -1,
	}
	c.timer = NewTimer(domain.TimeLimitSeconds, c.renderer.ShowTime, deps.NewTicker)
	return c
}

// Start fetches the questions and shows the first one. It blocks until the
// fetch resolves and must be called at most once.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return domain.ErrAlreadyStarted
	}
	c.started = true
	c.ctx = ctx
	c.mu.Unlock()

	questions, err := c.questions.FetchQuestions(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	if err != nil {
		c.phase = PhaseFailed
		c.renderer.ShowMessage(LoadErrorMessage)
		log.Printf("load questions: %v", err)
		if !errors.Is(err, domain.ErrFetchFailure) {
			err = fmt.Errorf("%w: %w", domain.ErrFetchFailure, err)
		}
		return err
	}
	if len(questions) == 0 {
		c.phase = PhaseEmpty
		c.renderer.ShowMessage(NoQuestionsMessage)
		c.renderer.DisableAdvance()
		return domain.ErrEmptyQuestionSet
	}

	c.items = questions
	c.current = 0
	c.score = 0
	c.showCurrentLocked()
	log.Printf("quiz started with %d questions", len(questions))
	return nil
}

// Select records option as the answer for the question at questionIndex.
// Stale or out-of-range selections are ignored.
func (c *Controller) Select(questionIndex, option int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.awaitingLocked(questionIndex) {
		return
	}
	if option < 0 || option >= len(c.items[c.current].Options) {
		return
	}
	c.selected = option
}

// Submit advances past the question at questionIndex using the current selection.
// A submit for a question that is no longer current is a no-op.
func (c *Controller) Submit(questionIndex int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.awaitingLocked(questionIndex) {
		return
	}
	c.advanceLocked()
}

// Close stops the countdown and turns every later action into a no-op.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.timer.Stop()
}

// State returns a snapshot of the quiz.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	questions := make([]domain.Question, len(c.items))
	copy(questions, c.items)
	return State{
		Questions:     questions,
		CurrentIndex:  c.current,
		Score:         c.score,
		TimeRemaining: c.timer.Remaining(),
		Phase:         c.phase,
	}
}

// Phase returns the current state machine position.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller) awaitingLocked(questionIndex int) bool {
	return !c.closed && c.phase == PhaseAwaitingAnswer && questionIndex == c.current
}

// expire is the countdown callback for the question at questionIndex.
func (c *Controller) expire(questionIndex int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.awaitingLocked(questionIndex) {
		return
	}
	c.renderer.ShowNotice(TimeUpNotice)
	c.advanceLocked()
}

// advanceLocked scores the current selection and moves on. Caller holds c.mu.
func (c *Controller) advanceLocked() {
	c.timer.Stop()

	if c.items[c.current].IsCorrect(c.selected) {
		c.score++
	}
	c.current++
	c.selected = -1

	if c.current < len(c.items) {
		c.showCurrentLocked()
		return
	}
	c.finishLocked()
}

func (c *Controller) showCurrentLocked() {
	c.phase = PhaseAwaitingAnswer
	c.selected = -1
	index := c.current
	c.renderer.ShowQuestion(BuildView(index, len(c.items), c.items[index]))
	c.timer.Start(func() { c.expire(index) })
}

func (c *Controller) finishLocked() {
	c.phase = PhaseFinished
	value := domain.FormatScore(c.score, len(c.items))
	if err := c.scores.Set(c.ctx, domain.ScoreKey, value); err != nil {
		log.Printf("persist score: %v", err)
	} else {
		log.Printf("quiz finished with score %s", value)
	}
	c.navigator.Navigate(c.ctx, domain.ResultsRoute)
}
