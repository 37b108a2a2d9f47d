// Package plain renders the quiz as line-oriented text for terminals that
// cannot host the live UI (pipes, CI logs, dumb terminals).
package plain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"quiz-widget/internal/app"
	"quiz-widget/internal/domain"
	"quiz-widget/internal/results"
)

// Console writes controller output as plain lines. It implements
// app.Renderer and app.Navigator.
type Console struct {
	mu          sync.Mutex
	out         io.Writer
	scores      results.Store
	view        app.QuestionView
	hasQuestion bool

	doneOnce sync.Once
	done     chan struct{}
}

func NewConsole(out io.Writer, scores results.Store) *Console {
	return &Console{
		out:    out,
		scores: scores,
		done:   make(chan struct{}),
	}
}

func (c *Console) ShowQuestion(view app.QuestionView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = view
	c.hasQuestion = true
	fmt.Fprintf(c.out, "\nQuestion %d/%d: %s\n", view.Index+1, view.Total, view.Text)
	for i, opt := range view.Options {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, opt.Label)
	}
	fmt.Fprintln(c.out, "Type an option number to select it, press enter to submit.")
}

// ShowTime prints the countdown every ten seconds and for each of the last five.
func (c *Console) ShowTime(remaining int) {
	if remaining%10 != 0 && remaining > 5 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "Time left: %ds\n", remaining)
}

func (c *Console) ShowNotice(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "! %s\n", text)
}

func (c *Console) ShowMessage(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasQuestion = false
	fmt.Fprintln(c.out, text)
}

func (c *Console) DisableAdvance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, "[ Next ] (disabled)")
}

// Navigate prints the results view and releases Run.
func (c *Console) Navigate(ctx context.Context, route string) {
	if route != domain.ResultsRoute {
		return
	}
	c.mu.Lock()
	c.hasQuestion = false
	score, err := results.Load(ctx, c.scores)
	switch {
	case errors.Is(err, domain.ErrScoreNotFound):
		fmt.Fprintln(c.out, "\nNo score recorded.")
	case err != nil:
		fmt.Fprintf(c.out, "\nCould not read score: %v\n", err)
	default:
		fmt.Fprintf(c.out, "\n%s\n", results.Summary(score))
	}
	c.mu.Unlock()
	c.doneOnce.Do(func() { close(c.done) })
}

// Done is closed once the results view has been shown.
func (c *Console) Done() <-chan struct{} {
	return c.done
}

// current reports the question on screen, if any.
func (c *Console) current() (app.QuestionView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view, c.hasQuestion
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}
