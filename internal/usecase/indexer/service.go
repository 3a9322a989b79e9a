// Package indexer drives the embedding pipeline: it renders profile
// records into text, embeds the text fields, and writes the vectors to
// the vector store and the document mirror to the keyword index.
package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/talentdex/internal/domain"
)

// Service runs the indexing pipeline.
type Service struct {
	embed     Embedder
	vectors   VectorWriter
	docs      DocumentIndexer
	source    RecordSource
	batchSize int
	logger    *zap.Logger
}

// New creates an indexer service. batchSize bounds how many records a
// backfill run processes between progress log lines.
func New(
	embed Embedder,
	vectors VectorWriter,
	docs DocumentIndexer,
	source RecordSource,
	batchSize int,
	logger *zap.Logger,
) *Service {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Service{
		embed:     embed,
		vectors:   vectors,
		docs:      docs,
		source:    source,
		batchSize: batchSize,
		logger:    logger,
	}
}

// IndexBatch embeds and indexes each record. One record failing never
// aborts the rest; failures are collected into the report.
func (s *Service) IndexBatch(ctx context.Context, records []domain.Record) domain.IndexReport {
	var report domain.IndexReport

	for i := range records {
		s.indexOne(ctx, &records[i], &report)
	}

	s.logger.Info("batch indexing complete",
		zap.Int("success", report.SuccessCount),
		zap.Int("errors", report.ErrorCount),
	)

	return report
}

// Backfill embeds every record from the record source that has no stored
// embedding row yet. Records already embedded are skipped and counted as
// successes.
func (s *Service) Backfill(ctx context.Context) (domain.IndexReport, error) {
	var report domain.IndexReport

	records, err := s.source.ListRecords(ctx)
	if err != nil {
		return report, fmt.Errorf("list records for backfill: %w", err)
	}

	for start := 0; start < len(records); start += s.batchSize {
		end := min(start+s.batchSize, len(records))

		for i := start; i < end; i++ {
			record := &records[i]

			exists, err := s.vectors.Exists(ctx, record.ID)
			if err != nil {
				report.AddError(fmt.Sprintf("%s: check existing embedding: %v", record.ID, err))
				continue
			}
			if exists {
				report.SuccessCount++
				continue
			}

			s.indexOne(ctx, record, &report)
		}

		s.logger.Info("backfill progress",
			zap.Int("processed", end),
			zap.Int("total", len(records)),
		)
	}

	return report, nil
}

// Reindex regenerates embeddings for a single record, e.g. after a
// profile update. Unlike Backfill it never skips existing rows.
func (s *Service) Reindex(ctx context.Context, record domain.Record) error {
	if record.Content() == "" {
		return fmt.Errorf("reindex %s: %w", record.ID, domain.ErrNoContent)
	}

	var report domain.IndexReport
	s.indexOne(ctx, &record, &report)

	if report.ErrorCount > 0 {
		return fmt.Errorf("reindex %s: %s", record.ID, report.Errors[0])
	}

	return nil
}

// indexOne embeds one record and performs the dual write. The four field
// embeddings run concurrently. A vector store failure skips the keyword
// index write; a keyword index failure is recorded but the vector write
// stands.
func (s *Service) indexOne(ctx context.Context, record *domain.Record, report *domain.IndexReport) {
	if record.ID == "" {
		report.AddError("record without an id in batch")
		return
	}

	content := record.Content()
	if content == "" {
		report.AddError(fmt.Sprintf("%s: %v", record.ID, domain.ErrNoContent))
		return
	}

	vectors, err := s.embedFields(ctx, record, content)
	if err != nil {
		report.AddError(fmt.Sprintf("%s: %v", record.ID, err))
		return
	}

	if err := s.vectors.Upsert(ctx, record.ID, content, vectors); err != nil {
		report.AddError(fmt.Sprintf("%s (vector store): %v", record.ID, err))
		return
	}

	if err := s.docs.Index(ctx, record.IndexDocument(content)); err != nil {
		// The vector write already landed; record the index error and
		// still count the record as processed.
		report.AddError(fmt.Sprintf("%s (keyword index): %v", record.ID, err))
		s.logger.Warn("keyword index write failed",
			zap.String("profile_id", record.ID), zap.Error(err))
	}

	report.SuccessCount++
}

// embedFields embeds the full rendered content plus the bio, skills, and
// experience fields when present, concurrently.
func (s *Service) embedFields(ctx context.Context, record *domain.Record, content string) (domain.FieldVectors, error) {
	var vectors domain.FieldVectors

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result, err := s.embed.Embed(gctx, domain.NormalizeText(content))
		if err != nil {
			return fmt.Errorf("embed full text: %w", err)
		}
		vectors.FullText = result.Embedding
		return nil
	})

	if record.Bio != "" {
		g.Go(func() error {
			result, err := s.embed.Embed(gctx, domain.NormalizeText(record.Bio))
			if err != nil {
				return fmt.Errorf("embed bio: %w", err)
			}
			vectors.Bio = result.Embedding
			return nil
		})
	}

	if record.Skills != "" {
		g.Go(func() error {
			result, err := s.embed.Embed(gctx, domain.NormalizeText(record.Skills))
			if err != nil {
				return fmt.Errorf("embed skills: %w", err)
			}
			vectors.Skills = result.Embedding
			return nil
		})
	}

	if experience := record.ExperienceText(); experience != "" {
		g.Go(func() error {
			result, err := s.embed.Embed(gctx, experience)
			if err != nil {
				return fmt.Errorf("embed experience: %w", err)
			}
			vectors.Experience = result.Embedding
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.FieldVectors{}, err
	}

	return vectors, nil
}
