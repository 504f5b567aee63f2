package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/johnquangdev/meeting-insights/docs"
	pkgvalidator "github.com/johnquangdev/meeting-insights/pkg/validator"

	"github.com/johnquangdev/meeting-insights/internal/adapter/handler"
	"github.com/johnquangdev/meeting-insights/internal/adapter/repository"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/cache"
	httpmw "github.com/johnquangdev/meeting-insights/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-insights/internal/usecase/actionitem"
	aiuse "github.com/johnquangdev/meeting-insights/internal/usecase/ai"
	"github.com/johnquangdev/meeting-insights/internal/usecase/ingest"
	"github.com/johnquangdev/meeting-insights/internal/usecase/meeting"
	pkgai "github.com/johnquangdev/meeting-insights/pkg/ai"
	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// multipart framing around the audio file
const uploadOverheadBytes = 1 << 20

// @title           Meeting Insights API
// @version         1.0
// @description     Upload meeting recordings, transcribe them and track the action items they produce

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = handler.HTTPErrorHandler(logger)

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())
	e.Use(httpmw.RequestLogger(logger))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID, "Idempotency-Key"},
		ExposeHeaders: []string{echo.HeaderContentDisposition, echo.HeaderXRequestID},
	}))

	e.Use(middleware.BodyLimit(strconv.FormatInt(cfg.Upload.MaxBytes+uploadOverheadBytes, 10)))

	// Initialize dependencies
	logger.Info("🔧 Initializing dependencies...")

	ctx := context.Background()

	logger.Info("📦 Initializing audio storage...", zap.String("type", cfg.Storage.Type))
	audioStorage, err := storage.New(&cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize audio storage", zap.Error(err))
	}

	logger.Info("📦 Initializing idempotency cache...", zap.String("type", cfg.Cache.Type))
	idempotencyCache, err := cache.New(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize cache", zap.Error(err))
	}
	defer idempotencyCache.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pipelineMetrics := metrics.NewPipelineMetrics(registry)

	// Initialize AI clients
	logger.Info("🤖 Initializing AI components...")
	asmClient := pkgai.NewAssemblyAIClient(&cfg.Assembly, logger.Named("assemblyai"))
	groqClient := pkgai.NewGroqClient(&cfg.Groq)

	var stt aiuse.SpeechToText
	if asmClient.Configured() {
		stt = asmClient
	} else {
		logger.Warn("⚠️  ASSEMBLYAI_API_KEY not set, uploads will end in error state")
	}

	var llm aiuse.ChatCompleter
	if groqClient.Configured() {
		llm = groqClient
	} else {
		logger.Warn("⚠️  GROQ_API_KEY not set, action item extraction is disabled")
	}

	transcriber := aiuse.NewTranscriber(stt, audioStorage, logger)
	extractor := aiuse.NewExtractor(llm, logger)

	store := repository.NewMemoryStore()

	pipeline := ingest.NewPipeline(store, transcriber, extractor, audioStorage, logger,
		ingest.WithMetrics(pipelineMetrics),
		ingest.WithMaxConcurrency(cfg.Pipeline.MaxConcurrency),
	)

	meetingService := meeting.NewMeetingService(store, pipeline, audioStorage, extractor, idempotencyCache, meeting.Config{
		MaxUploadBytes: cfg.Upload.MaxBytes,
		IdempotencyTTL: cfg.Cache.TTL,
	}, logger)
	actionItemService := actionitem.NewActionItemService(store, logger)

	// Setup router with handlers
	logger.Info("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg,
		handler.NewMeetingHandler(meetingService, cfg.Upload.MaxBytes, logger),
		handler.NewActionItemHandler(actionItemService, logger),
		handler.NewReportHandler(meetingService, actionItemService, logger),
		handler.WithMetrics(registry),
		handler.WithService("assemblyai", asmClient),
		handler.WithService("groq", groqClient),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
	}

	if err := pipeline.Shutdown(shutdownCtx); err != nil {
		logger.Warn("⚠️  Ingestions still running at shutdown", zap.Error(err))
	}

	logger.Info("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Server.Environment == "development" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
