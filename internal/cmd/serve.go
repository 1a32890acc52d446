package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/zoto/internal/config"
	logpkg "github.com/kailas-cloud/zoto/internal/logger"
	"github.com/kailas-cloud/zoto/internal/metrics"
	chiTransport "github.com/kailas-cloud/zoto/internal/transport/chi"
	healthuc "github.com/kailas-cloud/zoto/internal/usecase/health"
	sessionuc "github.com/kailas-cloud/zoto/internal/usecase/session"
	"github.com/kailas-cloud/zoto/internal/version"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the presentation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.HTTP.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return serve(cmd.Context(), cfg, root.verbose)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (overrides config)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, verbose bool) error {
	env := config.GetEnv()
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err := logpkg.NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting zoto API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("recommend_endpoint", cfg.Recommend.Endpoint),
		zap.String("location_provider", cfg.Location.Provider),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	metrics.RegisterSearchMetrics()

	p, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	// p.store is a nil interface when the cache is off, so health skips the check.
	healthSvc := healthuc.New(p.store, p.client)

	sessions := sessionuc.NewRegistry(p.locator, p.recommender, sessionuc.Config{
		TTL:             cfg.Sessions.TTL(),
		LocationTimeout: cfg.Location.Timeout(),
		Logger:          logger,
	})

	server := chiTransport.NewServer(sessions, healthSvc, logger)
	handler := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM or parent cancellation.
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Server stopped gracefully", zap.Int("active_sessions", sessions.Len()))
	return nil
}
