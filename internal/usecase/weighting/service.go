// Package weighting asks a chat model to rate how much each embedded
// profile field matters for a given query. Any failure falls back to
// uniform weights so search never breaks on the weighting path.
package weighting

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/talentdex/internal/domain"
	"github.com/kailas-cloud/talentdex/internal/metrics"
)

const promptTemplate = `Given the search query: "%s", assign a weight (between 0.1 and 2.0) to 'bio', 'skills', 'experience', and 'full_text' based on their relevance to the query. The sum of weights should ideally be around 4.0, but can vary. Respond with a JSON object like this: { "bio": 1.0, "skills": 1.0, "experience": 1.0, "full_text": 1.0 }`

// Service computes per-field search weights.
type Service struct {
	chat   ChatCompleter
	model  string
	logger *zap.Logger
}

// New creates a weighting service.
func New(chat ChatCompleter, model string, logger *zap.Logger) *Service {
	return &Service{chat: chat, model: model, logger: logger}
}

// ComputeWeights rates the four embedded fields for the query. model
// overrides the configured chat model when non-empty. Model failures,
// unparseable output, and non-positive values all fall back to 1.0 per
// field rather than failing the search.
func (s *Service) ComputeWeights(ctx context.Context, query, model string) domain.Weights {
	weights := domain.UniformWeights()

	if model == "" {
		model = s.model
	}

	raw, err := s.chat.Complete(ctx, model, fmt.Sprintf(promptTemplate, query))
	if err != nil {
		metrics.WeightingRequestsTotal.WithLabelValues(model, "error").Inc()
		s.logger.Warn("Weighting model failed, using uniform weights", zap.Error(err))
		return weights
	}

	var parsed struct {
		Bio        float64 `json:"bio"`
		Skills     float64 `json:"skills"`
		Experience float64 `json:"experience"`
		FullText   float64 `json:"full_text"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		metrics.WeightingRequestsTotal.WithLabelValues(model, "parse_error").Inc()
		s.logger.Warn("Unparseable weighting response, using uniform weights",
			zap.String("response", raw), zap.Error(err))
		return weights
	}

	// Missing or non-positive keys keep their uniform default.
	if parsed.Bio > 0 {
		weights.Bio = parsed.Bio
	}
	if parsed.Skills > 0 {
		weights.Skills = parsed.Skills
	}
	if parsed.Experience > 0 {
		weights.Experience = parsed.Experience
	}
	if parsed.FullText > 0 {
		weights.FullText = parsed.FullText
	}

	metrics.WeightingRequestsTotal.WithLabelValues(model, "success").Inc()
	s.logger.Debug("computed field weights",
		zap.Float64("bio", weights.Bio),
		zap.Float64("skills", weights.Skills),
		zap.Float64("experience", weights.Experience),
		zap.Float64("full_text", weights.FullText),
	)

	return weights
}

// stripCodeFence removes a markdown code fence if the model wrapped its
// JSON in one.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
