package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/talentdex/internal/config"
	dbRedis "github.com/kailas-cloud/talentdex/internal/db/redis"
	"github.com/kailas-cloud/talentdex/internal/domain"
	logpkg "github.com/kailas-cloud/talentdex/internal/logger"
	"github.com/kailas-cloud/talentdex/internal/metrics"
	"github.com/kailas-cloud/talentdex/internal/repository/embcache"
	"github.com/kailas-cloud/talentdex/internal/repository/esindex"
	pgvectorrepo "github.com/kailas-cloud/talentdex/internal/repository/pgvector"
	chiTransport "github.com/kailas-cloud/talentdex/internal/transport/chi"
	openaiClient "github.com/kailas-cloud/talentdex/internal/transport/openai"
	healthuc "github.com/kailas-cloud/talentdex/internal/usecase/health"
	indexeruc "github.com/kailas-cloud/talentdex/internal/usecase/indexer"
	searchuc "github.com/kailas-cloud/talentdex/internal/usecase/search"
	weightinguc "github.com/kailas-cloud/talentdex/internal/usecase/weighting"
	"github.com/kailas-cloud/talentdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting talentdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("es_addrs", cfg.Elasticsearch.Addresses),
	)

	// Vector store
	store, err := pgvectorrepo.New(cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("Failed to create vector store", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	readyCtx, cancelReady := context.WithTimeout(context.Background(),
		time.Duration(cfg.Postgres.ReadinessTimeout)*time.Second)
	if err := store.WaitForReady(readyCtx); err != nil {
		cancelReady()
		logger.Fatal("Vector store not ready", zap.Error(err))
	}
	cancelReady()
	logger.Info("Connected to vector store")

	// Keyword index
	keywordIndex, err := esindex.New(&esindex.Config{
		Addresses: cfg.Elasticsearch.Addresses,
		APIKey:    cfg.Elasticsearch.APIKey,
		Index:     cfg.Elasticsearch.Index,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal("Failed to create keyword index client", zap.Error(err))
	}

	// Register embedding metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()

	// Embedder chain: OpenAI -> Cached
	base := openaiClient.NewEmbedder(&openaiClient.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})

	var embedder domain.Embedder = base
	if len(cfg.Cache.Addrs) > 0 {
		cache, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create embedding cache store", zap.Error(err))
		}
		defer cache.Close()

		embedder = embcache.New(base, cache, metrics.EmbeddingCacheTotal, logger)
		logger.Info("Embedding cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Weighting service, sharing the OpenAI handle with the embedder
	var weighter searchuc.Weighter
	if cfg.Weighting.Enabled {
		chat := openaiClient.NewChatClient(base.Client())
		weighter = weightinguc.New(chat, cfg.Weighting.Model, logger)
		logger.Info("Relevance weighting enabled", zap.String("model", cfg.Weighting.Model))
	}

	// Use case services
	searchSvc := searchuc.New(embedder, store, keywordIndex, weighter, searchuc.Config{
		MatchThreshold: cfg.Search.MatchThreshold,
		MatchCount:     cfg.Search.MatchCount,
		SemanticCutoff: cfg.Search.SemanticCutoff,
	}, logger)
	indexerSvc := indexeruc.New(embedder, store, keywordIndex, store, cfg.Indexing.BatchSize, logger)
	healthSvc := healthuc.New(store, keywordIndex, newEmbeddingHealthChecker(embedder))

	// Chi server
	server := chiTransport.NewServer(searchSvc, indexerSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.CORSMiddleware())
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}
