package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the
// decorator chain. Tokens are zero on cache hits.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// FieldVectors holds the per-field embeddings for one record. FullText is
// always present for an indexable record; the rest are nil when the source
// field was empty. Vectors are derived from the record as a whole at
// generation time and replaced together on every reindex.
type FieldVectors struct {
	FullText   []float32
	Bio        []float32
	Skills     []float32
	Experience []float32
}
