// Package results reads the score a finished quiz persisted and renders it
// for the results view.
package results

import (
	"context"
	"fmt"

	"quiz-widget/internal/domain"
)

// Store is the read side of the persisted key/value state.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
}

// Load returns the last persisted score.
func Load(ctx context.Context, store Store) (domain.Score, error) {
	raw, err := store.Get(ctx, domain.ScoreKey)
	if err != nil {
		return domain.Score{}, err
	}
	return domain.ParseScore(raw)
}

// Summary renders a one-line description of a score.
func Summary(score domain.Score) string {
	return fmt.Sprintf("You scored %s (%.0f%%)", score, score.Percent())
}
