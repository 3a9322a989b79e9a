package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:          HTTPConfig{Port: 8080},
		Postgres:      PostgresConfig{DSN: "postgres://localhost/talentdex?sslmode=disable"},
		Elasticsearch: ElasticsearchConfig{Addresses: []string{"http://localhost:9200"}},
		Embedding:     EmbeddingConfig{APIKey: "test-key"},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Postgres.DSN = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing postgres dsn")
	}
}

func TestValidate_MissingESAddresses(t *testing.T) {
	cfg := validConfig()
	cfg.Elasticsearch.Addresses = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing elasticsearch addresses")
	}
}

func TestValidate_ThresholdOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Search.MatchThreshold = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for match_threshold > 1")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Elasticsearch.Index != "profiles" {
		t.Errorf("expected index 'profiles', got %q", cfg.Elasticsearch.Index)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected default embedding model, got %q", cfg.Embedding.Model)
	}
	if cfg.Weighting.Model != "gpt-3.5-turbo" {
		t.Errorf("expected default weighting model, got %q", cfg.Weighting.Model)
	}
	if cfg.Search.MatchThreshold != 0.78 {
		t.Errorf("expected MatchThreshold=0.78, got %f", cfg.Search.MatchThreshold)
	}
	if cfg.Search.MatchCount != 10 {
		t.Errorf("expected MatchCount=10, got %d", cfg.Search.MatchCount)
	}
	if cfg.Search.SemanticCutoff != 1.0 {
		t.Errorf("expected SemanticCutoff=1.0, got %f", cfg.Search.SemanticCutoff)
	}
	if cfg.Indexing.BatchSize != 10 {
		t.Errorf("expected BatchSize=10, got %d", cfg.Indexing.BatchSize)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Search:   SearchConfig{MatchThreshold: 0.5, MatchCount: 25, SemanticCutoff: -1},
		Indexing: IndexingConfig{BatchSize: 50},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Search.MatchThreshold != 0.5 {
		t.Errorf("expected MatchThreshold=0.5, got %f", cfg.Search.MatchThreshold)
	}
	if cfg.Search.SemanticCutoff != -1 {
		t.Errorf("expected SemanticCutoff=-1 preserved, got %f", cfg.Search.SemanticCutoff)
	}
	if cfg.Indexing.BatchSize != 50 {
		t.Errorf("expected BatchSize=50, got %d", cfg.Indexing.BatchSize)
	}
}
