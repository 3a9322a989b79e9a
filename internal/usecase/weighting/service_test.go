package weighting

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/talentdex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterEmbeddingMetrics()
	os.Exit(m.Run())
}

type mockChat struct {
	response string
	err      error
	model    string
	prompt   string
}

func (m *mockChat) Complete(_ context.Context, model, prompt string) (string, error) {
	m.model = model
	m.prompt = prompt
	return m.response, m.err
}

func TestComputeWeights(t *testing.T) {
	chat := &mockChat{response: `{"bio": 1.8, "skills": 0.5, "experience": 0.2, "full_text": 1.5}`}
	svc := New(chat, "test-model", zap.NewNop())

	w := svc.ComputeWeights(context.Background(), "experienced react developer", "")

	if w.Bio != 1.8 || w.Skills != 0.5 || w.Experience != 0.2 || w.FullText != 1.5 {
		t.Fatalf("unexpected weights: %+v", w)
	}
	if !strings.Contains(chat.prompt, `"experienced react developer"`) {
		t.Errorf("prompt should quote the query, got: %s", chat.prompt)
	}
	if chat.model != "test-model" {
		t.Errorf("model = %s, expected the configured default", chat.model)
	}
}

func TestComputeWeights_ModelOverride(t *testing.T) {
	chat := &mockChat{response: `{"bio": 1.0, "skills": 1.0, "experience": 1.0, "full_text": 1.0}`}
	svc := New(chat, "default-model", zap.NewNop())

	svc.ComputeWeights(context.Background(), "query", "gpt-4o-mini")

	if chat.model != "gpt-4o-mini" {
		t.Errorf("model = %s, expected the per-call override", chat.model)
	}
}

func TestComputeWeights_ModelError(t *testing.T) {
	chat := &mockChat{err: errors.New("rate limit")}
	svc := New(chat, "test-model", zap.NewNop())

	w := svc.ComputeWeights(context.Background(), "query", "")

	if w.Bio != 1.0 || w.Skills != 1.0 || w.Experience != 1.0 || w.FullText != 1.0 {
		t.Fatalf("expected uniform weights, got %+v", w)
	}
}

func TestComputeWeights_UnparseableResponse(t *testing.T) {
	chat := &mockChat{response: "I think bio matters most here."}
	svc := New(chat, "test-model", zap.NewNop())

	w := svc.ComputeWeights(context.Background(), "query", "")

	if w.Bio != 1.0 || w.Skills != 1.0 || w.Experience != 1.0 || w.FullText != 1.0 {
		t.Fatalf("expected uniform weights, got %+v", w)
	}
}

func TestComputeWeights_CodeFence(t *testing.T) {
	chat := &mockChat{response: "```json\n{\"bio\": 2.0, \"skills\": 1.0, \"experience\": 0.5, \"full_text\": 0.5}\n```"}
	svc := New(chat, "test-model", zap.NewNop())

	w := svc.ComputeWeights(context.Background(), "query", "")

	if w.Bio != 2.0 {
		t.Fatalf("expected fenced JSON to parse, got %+v", w)
	}
}

func TestComputeWeights_PartialKeys(t *testing.T) {
	chat := &mockChat{response: `{"bio": 1.6}`}
	svc := New(chat, "test-model", zap.NewNop())

	w := svc.ComputeWeights(context.Background(), "query", "")

	if w.Bio != 1.6 {
		t.Errorf("bio = %f, expected 1.6", w.Bio)
	}
	if w.Skills != 1.0 || w.Experience != 1.0 || w.FullText != 1.0 {
		t.Errorf("missing keys should default to 1.0, got %+v", w)
	}
}

func TestComputeWeights_NonPositiveValues(t *testing.T) {
	chat := &mockChat{response: `{"bio": 0, "skills": -1, "experience": 0.3, "full_text": 1.2}`}
	svc := New(chat, "test-model", zap.NewNop())

	w := svc.ComputeWeights(context.Background(), "query", "")

	if w.Bio != 1.0 || w.Skills != 1.0 {
		t.Errorf("non-positive values should default to 1.0, got %+v", w)
	}
	if w.Experience != 0.3 || w.FullText != 1.2 {
		t.Errorf("positive values should be kept, got %+v", w)
	}
}
