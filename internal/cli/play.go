package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"quiz-widget/internal/app"
	"quiz-widget/internal/config"
	"quiz-widget/internal/domain"
	transport "quiz-widget/internal/transport/http"
	"quiz-widget/internal/ui/plain"
	"quiz-widget/internal/ui/tui"
)

type playOptions struct {
	endpoint  string
	ui        string
	logPath   string
	noColor   bool
	altScreen bool
	verbose   bool
}

// NewPlayCmd runs one quiz against the question endpoint.
func NewPlayCmd(configPath *string) *cobra.Command {
	opts := playOptions{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a timed quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, *configPath, opts)
		},
	}
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "question endpoint URL (default from config)")
	cmd.Flags().StringVar(&opts.ui, "ui", "", "ui mode: auto|live|plain")
	cmd.Flags().StringVar(&opts.logPath, "log", "", "append logs to this file")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colors in the live UI")
	cmd.Flags().BoolVar(&opts.altScreen, "alt-screen", false, "run the live UI in the alternate screen buffer")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "plain output with logs on stderr")
	return cmd
}

func runPlay(cmd *cobra.Command, configPath string, opts playOptions) error {
	ctx := cmd.Context()
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	endpoint := opts.endpoint
	if endpoint == "" {
		endpoint = cfg.Client.Endpoint
	}
	mode := opts.ui
	if mode == "" {
		mode = cfg.Client.UI
	}

	stdout := cmd.OutOrStdout()
	decision, err := resolveUIMode(mode, opts.verbose, stdout)
	if err != nil {
		return err
	}
	if decision.warning != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), decision.warning)
	}

	closeLog, err := setupLogging(opts.logPath, opts.verbose, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	scores, closeScores, err := openScoreStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeScores()

	client := transport.NewQuestionsClient(endpoint, nil)
	log.Printf("playing quiz from %s", endpoint)

	var ctrl *app.Controller
	if decision.useLive {
		ctrl, err = tui.Run(ctx, client, scores, tui.Options{Output: stdout, NoColor: opts.noColor, AltScreen: opts.altScreen})
	} else {
		ctrl, err = plain.Run(ctx, client, scores, plain.Options{Input: cmd.InOrStdin(), Output: stdout})
	}
	return playResult(ctrl, err)
}

// playResult maps how the quiz ended to the command's exit status. An empty
// question set is a normal ending; a failed fetch is not.
func playResult(ctrl *app.Controller, err error) error {
	if errors.Is(err, domain.ErrEmptyQuestionSet) {
		return nil
	}
	if err != nil {
		return err
	}
	if ctrl != nil && ctrl.Phase() == app.PhaseFailed {
		return domain.ErrFetchFailure
	}
	return nil
}

// setupLogging points the standard logger at the --log file, at stderr in
// verbose mode, and nowhere otherwise since the quiz owns the terminal.
func setupLogging(path string, verbose bool, stderr io.Writer) (func(), error) {
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return func() {}, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		return func() {
			log.SetOutput(os.Stderr)
			f.Close()
		}, nil
	case verbose:
		log.SetOutput(stderr)
	default:
		log.SetOutput(io.Discard)
	}
	return func() { log.SetOutput(os.Stderr) }, nil
}

