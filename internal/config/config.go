package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the talentdex API configuration.
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Auth          AuthConfig          `yaml:"auth"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Cache         CacheConfig         `yaml:"cache"`
	Embedding     EmbeddingConfig     `yaml:"embedding"`
	Weighting     WeightingConfig     `yaml:"weighting"`
	Search        SearchConfig        `yaml:"search"`
	Indexing      IndexingConfig      `yaml:"indexing"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// AuthConfig holds API authentication settings. Empty means auth is off.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// PostgresConfig holds vector-store connection settings.
type PostgresConfig struct {
	DSN              string `yaml:"dsn"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
}

// ElasticsearchConfig holds keyword-index connection settings.
type ElasticsearchConfig struct {
	Addresses []string `yaml:"addresses"`
	APIKey    string   `yaml:"api_key"`
	Index     string   `yaml:"index"`
}

// CacheConfig holds the Redis embedding-cache settings. No addresses means
// the cache is disabled and every embedding call goes to the provider.
type CacheConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// WeightingConfig holds LLM relevance-weighting defaults. Per-request
// llm_config overrides both fields.
type WeightingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
}

// SearchConfig holds hybrid-search tuning parameters.
type SearchConfig struct {
	MatchThreshold float64 `yaml:"match_threshold"`
	MatchCount     int     `yaml:"match_count"`
	// SemanticCutoff is the similarity a semantic-only hit must exceed to
	// survive the merge filter. The legacy ranker shipped with 1.0, which
	// drops nearly all semantic-only hits for cosine similarity; kept as the
	// default for result compatibility. Set negative to keep every hit.
	SemanticCutoff float64 `yaml:"semantic_cutoff"`
}

// IndexingConfig holds batch indexing settings.
type IndexingConfig struct {
	BatchSize int `yaml:"batch_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: by env)
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Postgres.ReadinessTimeout <= 0 {
		c.Postgres.ReadinessTimeout = 10
	}
	if c.Elasticsearch.Index == "" {
		c.Elasticsearch.Index = "profiles"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Weighting.Model == "" {
		c.Weighting.Model = "gpt-3.5-turbo"
	}
	if c.Search.MatchThreshold == 0 {
		c.Search.MatchThreshold = 0.78
	}
	if c.Search.MatchCount <= 0 {
		c.Search.MatchCount = 10
	}
	if c.Search.SemanticCutoff == 0 {
		c.Search.SemanticCutoff = 1.0
	}
	if c.Indexing.BatchSize <= 0 {
		c.Indexing.BatchSize = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Postgres.DSN == "" {
		return fmt.Errorf("postgres.dsn is required")
	}
	if len(c.Elasticsearch.Addresses) == 0 {
		return fmt.Errorf("elasticsearch.addresses is required")
	}
	if c.Embedding.APIKey == "" {
		return fmt.Errorf("embedding.api_key is required")
	}
	if c.Search.MatchThreshold < 0 || c.Search.MatchThreshold > 1 {
		return fmt.Errorf("search.match_threshold must be in [0, 1], got %f", c.Search.MatchThreshold)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
