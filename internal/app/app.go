// Package app initializes and holds long-lived application services, acting
// as a dependency injection container.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shadowintel/shadowbot/internal/agent"
	"github.com/shadowintel/shadowbot/internal/api"
	"github.com/shadowintel/shadowbot/internal/clock/system"
	"github.com/shadowintel/shadowbot/internal/completion"
	"github.com/shadowintel/shadowbot/internal/config"
	"github.com/shadowintel/shadowbot/internal/crawler"
	"github.com/shadowintel/shadowbot/internal/extract"
	"github.com/shadowintel/shadowbot/internal/fetcher"
	collyfetcher "github.com/shadowintel/shadowbot/internal/fetcher/colly"
	"github.com/shadowintel/shadowbot/internal/fetcher/detector"
	headlessfetcher "github.com/shadowintel/shadowbot/internal/fetcher/headless"
	"github.com/shadowintel/shadowbot/internal/id/uuid"
	"github.com/shadowintel/shadowbot/internal/logging"
	"github.com/shadowintel/shadowbot/internal/metrics"
	"github.com/shadowintel/shadowbot/internal/pipeline"
	queueMemory "github.com/shadowintel/shadowbot/internal/queue/memory"
	"github.com/shadowintel/shadowbot/internal/telegram"
	"github.com/shadowintel/shadowbot/internal/worker"
)

// App contains the application's dependencies.
type App struct {
	cfg       *config.Config
	logger    *zap.Logger
	apiServer *api.Server
	queue     *queueMemory.Queue
	workers   []*worker.Worker
	headless  *headlessfetcher.Fetcher
}

// Build creates the application's dependencies.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("logger init failed: %w", err)
	}
	zap.ReplaceGlobals(logger)
	metrics.Init()

	a := &App{cfg: cfg, logger: logger}
	a.logger.Info("building application dependencies")

	tg, err := telegram.New(telegram.Config{
		Token:        cfg.Telegram.BotToken,
		MaxFileBytes: cfg.Telegram.MaxFileBytes,
	}, logger.Named("telegram"))
	if err != nil {
		return nil, fmt.Errorf("telegram client init failed: %w", err)
	}

	fetch := a.buildFetcher()
	crawl := crawler.New(fetch, logger.Named("crawler"))

	var recognizer extract.TextRecognizer
	if cfg.Extract.OCREnabled {
		recognizer = extract.Tesseract{}
		a.logger.Info("ocr recognizer enabled")
	}
	extractor := extract.NewService(recognizer, logger.Named("extract"))

	clock := system.New()
	completer := completion.New(completion.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
	}, clock, logger.Named("completion"))

	a.queue = queueMemory.NewQueue(cfg.Worker.QueueDepth)

	runner := pipeline.New(
		pipeline.Config{
			DefaultDepth: cfg.Crawler.DefaultDepth,
			MaxDepth:     cfg.Crawler.MaxDepth,
		},
		pipeline.SingleUserAuthorizer{UserID: cfg.Telegram.AuthorizedUserID},
		crawl,
		extractor,
		completer,
		tg,
		logger.Named("pipeline"),
	)

	workerCfg := worker.Config{SendTimeout: 30 * time.Second}
	for i := 0; i < cfg.Worker.Concurrency; i++ {
		a.workers = append(a.workers, worker.New(
			a.queue,
			runner,
			tg,
			clock,
			workerCfg,
			logger.Named("worker").With(zap.Int("index", i)),
		))
	}

	a.apiServer = api.NewServer(
		a.queue,
		uuid.New(),
		api.Config{
			WebhookSecret:  cfg.Telegram.WebhookSecret,
			EnqueueTimeout: 5 * time.Second,
		},
		logger.Named("api"),
	)

	return a, nil
}

func (a *App) buildFetcher() agent.Fetcher {
	probe := collyfetcher.New(collyfetcher.Config{
		UserAgent: a.cfg.Crawler.UserAgent,
		Timeout:   a.cfg.Crawler.FetchTimeout(),
	})
	a.logger.Info("using colly probe fetcher", zap.String("user_agent", a.cfg.Crawler.UserAgent))

	if !a.cfg.Crawler.RenderEnabled {
		return probe
	}

	headless, err := headlessfetcher.NewChromedp(headlessfetcher.Config{
		MaxParallel:       a.cfg.Crawler.RenderParallel,
		UserAgent:         a.cfg.Crawler.UserAgent,
		NavigationTimeout: a.cfg.Crawler.FetchTimeout(),
	})
	if err != nil {
		a.logger.Warn("headless fetcher init failed, probe only", zap.Error(err))
		return probe
	}
	a.headless = headless
	a.logger.Info("headless rendering enabled", zap.Int("max_parallel", a.cfg.Crawler.RenderParallel))
	return fetcher.NewEscalating(probe, headless, detector.NewHeuristic(0), a.logger.Named("escalating"))
}

// Run starts the application and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("application started")
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, w := range a.workers {
		go w.Run(ctx)
	}
	a.logger.Info("worker pool started", zap.Int("workers", len(a.workers)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           a.apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info("http server started", zap.Int("port", a.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	a.logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown error", zap.Error(err))
	}

	return a.Close()
}

// Close gracefully shuts down the application.
func (a *App) Close() error {
	a.queue.Close()
	if a.headless != nil {
		a.headless.Close()
	}
	if err := a.logger.Sync(); err != nil {
		a.logger.Warn("logger sync failed", zap.Error(err))
	}
	a.logger.Info("shutdown complete")
	return nil
}
