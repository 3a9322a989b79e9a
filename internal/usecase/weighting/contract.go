package weighting

import "context"

// ChatCompleter runs a single-turn chat completion.
type ChatCompleter interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}
