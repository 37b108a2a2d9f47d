package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"quiz-widget/internal/config"
	"quiz-widget/internal/domain"
	"quiz-widget/internal/results"
)

// NewResultsCmd prints the score of the last finished quiz.
func NewResultsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Show the last quiz score",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			store, closeStore, err := openScoreStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			score, err := results.Load(cmd.Context(), store)
			if errors.Is(err, domain.ErrScoreNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No score recorded.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), results.Summary(score))
			return nil
		},
	}
}
