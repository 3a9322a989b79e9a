package search

import (
	"context"

	"github.com/kailas-cloud/talentdex/internal/domain"
)

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// VectorMatcher runs the weighted similarity match in the vector store.
type VectorMatcher interface {
	MatchWeighted(ctx context.Context, query []float32, threshold float64, count int, weights domain.Weights) ([]domain.SemanticHit, error)
}

// KeywordSearcher runs the full-text leg. It returns every match the index
// finds relevant; only the semantic leg is capped by the match count.
type KeywordSearcher interface {
	SearchMulti(ctx context.Context, query string) ([]domain.KeywordHit, error)
}

// Weighter rates the embedded fields for a query. model overrides the
// configured chat model when non-empty. Implementations never fail; they
// fall back to uniform weights.
type Weighter interface {
	ComputeWeights(ctx context.Context, query, model string) domain.Weights
}
