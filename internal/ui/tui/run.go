package tui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"quiz-widget/internal/app"
)

// Options configures the live quiz UI.
type Options struct {
	Input     io.Reader
	Output    io.Writer
	NoColor   bool
	AltScreen bool
	// NewTicker overrides the countdown tick source.
	NewTicker app.TickerFactory
}

// Run plays one quiz in the terminal and returns the controller once the UI exits.
func Run(ctx context.Context, questions app.QuestionSource, scores app.ScoreStore, opts Options) (*app.Controller, error) {
	bridge := &Bridge{}
	ctrl := app.NewController(app.Dependencies{
		Questions: questions,
		Scores:    scores,
		Renderer:  bridge,
		Navigator: bridge,
		NewTicker: opts.NewTicker,
	})

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	} else {
		programOpts = append(programOpts, tea.WithOutput(os.Stdout))
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	program := tea.NewProgram(NewModel(ctx, ctrl, scores, opts.NoColor), programOpts...)
	bridge.Attach(program)

	_, err := program.Run()
	// the countdown must not outlive the view
	ctrl.Close()
	return ctrl, err
}
