package indexer

import (
	"context"

	"github.com/kailas-cloud/talentdex/internal/domain"
)

// Embedder vectorizes text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// VectorWriter persists field embeddings.
type VectorWriter interface {
	Upsert(ctx context.Context, profileID string, content string, vectors domain.FieldVectors) error
	Exists(ctx context.Context, profileID string) (bool, error)
}

// DocumentIndexer maintains the keyword index.
type DocumentIndexer interface {
	Index(ctx context.Context, doc domain.IndexDocument) error
}

// RecordSource lists profile records for backfill.
type RecordSource interface {
	ListRecords(ctx context.Context) ([]domain.Record, error)
}
