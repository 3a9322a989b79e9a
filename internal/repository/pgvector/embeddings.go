package pgvector

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"github.com/kailas-cloud/talentdex/internal/domain"
)

// Upsert writes the rendered content and per-field vectors for a profile.
// Absent field vectors are stored as NULL so the match function can skip
// them when averaging.
func (s *Store) Upsert(ctx context.Context, profileID string, content string, vectors domain.FieldVectors) error {
	const stmt = `
		INSERT INTO profile_embeddings
			(profile_id, content, full_text_embedding, bio_embedding, skills_embedding, experience_embedding, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (profile_id)
		DO UPDATE SET
			content = EXCLUDED.content,
			full_text_embedding = EXCLUDED.full_text_embedding,
			bio_embedding = EXCLUDED.bio_embedding,
			skills_embedding = EXCLUDED.skills_embedding,
			experience_embedding = EXCLUDED.experience_embedding,
			updated_at = now()`

	_, err := s.db.ExecContext(ctx, stmt,
		profileID,
		content,
		nullableVector(vectors.FullText),
		nullableVector(vectors.Bio),
		nullableVector(vectors.Skills),
		nullableVector(vectors.Experience),
	)
	if err != nil {
		return fmt.Errorf("upsert embeddings for %s: %w", profileID, err)
	}

	return nil
}

// Exists reports whether an embedding row is already stored for the profile.
func (s *Store) Exists(ctx context.Context, profileID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM profile_embeddings WHERE profile_id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, profileID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check embeddings for %s: %w", profileID, err)
	}

	return exists, nil
}

// MatchWeighted runs the field-wise weighted similarity match. The score
// for each row is the weighted average of cosine similarities over the
// fields that have a stored vector.
func (s *Store) MatchWeighted(ctx context.Context, query []float32, threshold float64, count int, weights domain.Weights) ([]domain.SemanticHit, error) {
	const stmt = `
		SELECT profile_id, similarity
		FROM match_profiles_field_wise($1, $2, $3, $4, $5, $6, $7)`

	rows, err := s.db.QueryContext(ctx, stmt,
		pgvector.NewVector(query),
		threshold,
		count,
		weights.Bio,
		weights.Skills,
		weights.Experience,
		weights.FullText,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: match query: %v", domain.ErrSearchUnavailable, err)
	}
	defer rows.Close()

	var hits []domain.SemanticHit
	for rows.Next() {
		var hit domain.SemanticHit
		if err := rows.Scan(&hit.RecordID, &hit.Similarity); err != nil {
			return nil, fmt.Errorf("%w: scan match row: %v", domain.ErrSearchUnavailable, err)
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate match rows: %v", domain.ErrSearchUnavailable, err)
	}

	s.logger.Debug("semantic match complete", zap.Int("hits", len(hits)))

	return hits, nil
}

func nullableVector(v []float32) any {
	if len(v) == 0 {
		return nil
	}
	return pgvector.NewVector(v)
}
