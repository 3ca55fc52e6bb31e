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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/roshan-Kawale/AI-Resume-Parser/internal/config"
	dbRedis "github.com/roshan-Kawale/AI-Resume-Parser/internal/db/redis"
	"github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"
	"github.com/roshan-Kawale/AI-Resume-Parser/internal/extract"
	logpkg "github.com/roshan-Kawale/AI-Resume-Parser/internal/logger"
	"github.com/roshan-Kawale/AI-Resume-Parser/internal/metrics"
	candidaterepo "github.com/roshan-Kawale/AI-Resume-Parser/internal/repository/candidate"
	"github.com/roshan-Kawale/AI-Resume-Parser/internal/repository/embcache"
	jobrepo "github.com/roshan-Kawale/AI-Resume-Parser/internal/repository/job"
	chiTransport "github.com/roshan-Kawale/AI-Resume-Parser/internal/transport/chi"
	openaiLLM "github.com/roshan-Kawale/AI-Resume-Parser/internal/transport/openai"
	candidateuc "github.com/roshan-Kawale/AI-Resume-Parser/internal/usecase/candidate"
	healthuc "github.com/roshan-Kawale/AI-Resume-Parser/internal/usecase/health"
	jobuc "github.com/roshan-Kawale/AI-Resume-Parser/internal/usecase/job"
	"github.com/roshan-Kawale/AI-Resume-Parser/internal/version"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting recruiter API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register provider metrics explicitly (no init())
	metrics.RegisterProviderMetrics()

	// Composition root: base embedder wrapped by the cache decorator.
	var embedder domain.Embedder = openaiLLM.NewEmbedder(&openaiLLM.Config{
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		Model:      cfg.LLM.EmbeddingModel,
		Dimensions: cfg.LLM.Dimensions,
		Logger:     logger,
	})
	embedder = embcache.New(embedder, store, metrics.EmbeddingCacheTotal, logger)

	enricher := openaiLLM.NewEnricher(&openaiLLM.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.ChatModel,
		Logger:  logger,
	})
	logger.Info("LLM providers created",
		zap.String("chat_model", cfg.LLM.ChatModel),
		zap.String("embedding_model", cfg.LLM.EmbeddingModel),
		zap.Int("dimensions", cfg.LLM.Dimensions),
	)

	hnsw := candidaterepo.HNSWConfig{
		M:           cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
	}
	candRepo := candidaterepo.New(store, cfg.LLM.Dimensions, cfg.Limits.MetadataTextLimit).
		WithHNSW(hnsw)
	jRepo := jobrepo.New(store, cfg.LLM.Dimensions).WithHNSW(jobrepo.HNSWConfig{
		M:           cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
	})

	if err := candRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to create candidate index", zap.Error(err))
	}
	if err := jRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to create job index", zap.Error(err))
	}

	candSvc := candidateuc.New(
		candRepo, extract.NewPDF(), embedder, enricher,
		cfg.Index.TopKDefault, cfg.Index.TopKMax,
	)
	jobSvc := jobuc.New(jRepo, embedder)
	healthSvc := healthuc.New(store, newEmbeddingHealthChecker(embedder))

	server := chiTransport.NewServer(candSvc, jobSvc, healthSvc, cfg.Limits.MaxResumeBytes, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
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

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
