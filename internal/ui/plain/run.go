package plain

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"quiz-widget/internal/app"
)

// Options configures the plain quiz UI.
type Options struct {
	Input  io.Reader
	Output io.Writer
	// NewTicker overrides the countdown tick source.
	NewTicker app.TickerFactory
}

// Run plays one quiz reading answers line by line from opts.Input. Once input
// is exhausted the countdown drives the remaining questions. Run returns after
// the results are shown, on "q", or when ctx is done.
func Run(ctx context.Context, questions app.QuestionSource, scores app.ScoreStore, opts Options) (*app.Controller, error) {
	console := NewConsole(opts.Output, scores)
	ctrl := app.NewController(app.Dependencies{
		Questions: questions,
		Scores:    scores,
		Renderer:  console,
		Navigator: console,
		NewTicker: opts.NewTicker,
	})
	defer ctrl.Close()

	if err := ctrl.Start(ctx); err != nil {
		return ctrl, err
	}

	stop := make(chan struct{})
	defer close(stop)
	lines := readLines(opts.Input, stop)

	for {
		select {
		case <-ctx.Done():
			return ctrl, ctx.Err()
		case <-console.Done():
			return ctrl, nil
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			if quit := handleLine(ctrl, console, line); quit {
				return ctrl, nil
			}
		}
	}
}

func handleLine(ctrl *app.Controller, console *Console, line string) bool {
	line = strings.TrimSpace(strings.ToLower(line))
	if line == "q" || line == "quit" {
		return true
	}
	view, ok := console.current()
	if !ok {
		return false
	}
	switch line {
	case "", "n", "next":
		ctrl.Submit(view.Index)
		return false
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(view.Options) {
		console.printf("Enter a number between 1 and %d, or press enter to submit.\n", len(view.Options))
		return false
	}
	ctrl.Select(view.Index, view.Options[n-1].Index)
	console.printf("Selected %d. %s\n", n, view.Options[n-1].Label)
	return false
}

func readLines(in io.Reader, stop <-chan struct{}) <-chan string {
	lines := make(chan string)
	if in == nil {
		close(lines)
		return lines
	}
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
	}()
	return lines
}
