// Package search runs the hybrid query path: a weighted vector-similarity
// match and a fuzzy keyword match in parallel, merged into one ranked list.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/talentdex/internal/domain"
)

// Options tunes a single search call. Zero values take the service
// defaults.
type Options struct {
	// MatchThreshold is the minimum weighted similarity for the vector leg.
	MatchThreshold float64
	// MatchCount caps the number of hits on the semantic leg. The keyword
	// leg is never capped, so merged results may exceed this count.
	MatchCount int
	// UseWeighting turns the per-field weighting model on for this call.
	UseWeighting bool
	// WeightingModel overrides the configured chat model. Ignored when
	// UseWeighting is false.
	WeightingModel string
}

// Config carries the service defaults.
type Config struct {
	MatchThreshold float64
	MatchCount     int
	// SemanticCutoff is the strict lower bound a semantic-only result must
	// exceed to survive filtering. Negative disables the filter entirely.
	SemanticCutoff float64
}

// Service executes hybrid profile searches.
type Service struct {
	embed    Embedder
	vectors  VectorMatcher
	keywords KeywordSearcher
	weighter Weighter
	cfg      Config
	logger   *zap.Logger
}

// New creates a search service. weighter may be nil when the weighting
// model is disabled; every call then uses uniform weights.
func New(
	embed Embedder,
	vectors VectorMatcher,
	keywords KeywordSearcher,
	weighter Weighter,
	cfg Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		embed:    embed,
		vectors:  vectors,
		keywords: keywords,
		weighter: weighter,
		cfg:      cfg,
		logger:   logger,
	}
}

// Search runs both legs for the query and merges them. The vector leg is
// authoritative: its failure fails the search. The keyword leg degrades;
// when the index is unreachable the results carry zero keyword scores.
func (s *Service) Search(ctx context.Context, query string, opts Options) ([]domain.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}

	threshold := s.cfg.MatchThreshold
	if opts.MatchThreshold > 0 {
		threshold = opts.MatchThreshold
	}
	count := s.cfg.MatchCount
	if opts.MatchCount > 0 {
		count = opts.MatchCount
	}

	// Weighting and query embedding are independent; run them together.
	var (
		weights   = domain.UniformWeights()
		embedding []float32
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := s.embed.Embed(gctx, domain.NormalizeText(query))
		if err != nil {
			return fmt.Errorf("embed query: %w", err)
		}
		embedding = result.Embedding
		return nil
	})
	if opts.UseWeighting && s.weighter != nil {
		g.Go(func() error {
			weights = s.weighter.ComputeWeights(gctx, query, opts.WeightingModel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Both legs run in parallel against their own stores.
	var (
		semantic []domain.SemanticHit
		keyword  []domain.KeywordHit
	)

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		hits, err := s.vectors.MatchWeighted(gctx, embedding, threshold, count, weights)
		if err != nil {
			return fmt.Errorf("semantic leg: %w", err)
		}
		semantic = hits
		return nil
	})
	g.Go(func() error {
		hits, err := s.keywords.SearchMulti(gctx, query)
		if err != nil {
			// Degrade rather than fail; semantic results alone are
			// still useful.
			s.logger.Warn("keyword leg unavailable", zap.Error(err))
			return nil
		}
		keyword = hits
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := s.merge(semantic, keyword)

	s.logger.Debug("hybrid search complete",
		zap.Int("semantic_hits", len(semantic)),
		zap.Int("keyword_hits", len(keyword)),
		zap.Int("results", len(results)),
	)

	return results, nil
}

// merge joins the two hit lists by record ID, filters, and ranks. A record
// seen by only one leg keeps a zero for the other score. Ranking is by
// keyword score first, semantic similarity second.
func (s *Service) merge(semantic []domain.SemanticHit, keyword []domain.KeywordHit) []domain.Result {
	combined := make(map[string]*domain.Result, len(semantic)+len(keyword))

	for _, hit := range semantic {
		combined[hit.RecordID] = &domain.Result{
			RecordID:           hit.RecordID,
			SemanticSimilarity: hit.Similarity,
		}
	}
	for _, hit := range keyword {
		if r, ok := combined[hit.RecordID]; ok {
			r.KeywordScore = hit.Score
			continue
		}
		combined[hit.RecordID] = &domain.Result{
			RecordID:     hit.RecordID,
			KeywordScore: hit.Score,
		}
	}

	results := make([]domain.Result, 0, len(combined))
	for _, r := range combined {
		if s.keep(r) {
			results = append(results, *r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].KeywordScore != results[j].KeywordScore {
			return results[i].KeywordScore > results[j].KeywordScore
		}
		return results[i].SemanticSimilarity > results[j].SemanticSimilarity
	})

	return results
}

// keep applies the relevance filter: any keyword evidence keeps the record;
// a semantic-only record must clear the cutoff strictly.
func (s *Service) keep(r *domain.Result) bool {
	if s.cfg.SemanticCutoff < 0 {
		return true
	}
	return r.KeywordScore > 0 || r.SemanticSimilarity > s.cfg.SemanticCutoff
}
