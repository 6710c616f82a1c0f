package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/okian/rexbot/internal/adapters/http/api"
	"github.com/okian/rexbot/internal/adapters/provider"
	"github.com/okian/rexbot/internal/adapters/registry"
	"github.com/okian/rexbot/internal/adapters/transport"
	"github.com/okian/rexbot/internal/app"
	"github.com/okian/rexbot/internal/config"
	"github.com/okian/rexbot/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		log.Error(ctx, "failed to create data dir", logger.Error(err))
		return
	}

	reg, err := registry.NewFileRegistry(
		filepath.Join(cfg.DataDir, "users.json"),
		filepath.Join(cfg.DataDir, "guilds.json"),
	)
	if err != nil {
		log.Error(ctx, "failed to load registry", logger.Error(err))
		return
	}

	client := provider.NewHTTPClient(cfg.ProviderBaseURL,
		provider.WithToken(cfg.ProviderToken),
		provider.WithFetchLimit(cfg.FetchConcurrency),
	)

	messenger := transport.NewConsoleMessenger(os.Stdin, os.Stdout)

	svc := app.New(
		app.WithLogger(log),
		app.WithPrefix(cfg.Prefix),
		app.WithCatalogPath(cfg.CatalogPath),
		app.WithReactionTimeout(time.Duration(cfg.ReactionTimeoutSeconds)*time.Second),
		app.WithRegistry(reg),
		app.WithRosterProvider(client),
		app.WithUnitResolver(client),
		app.WithMessenger(messenger),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	// Ops HTTP routes: health, stats, metrics.
	mux := http.NewServeMux()
	api.NewServer(svc).Register(mux)

	srv := &http.Server{
		Addr:              cfg.OpsAddr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting ops HTTP server", logger.String("addr", cfg.OpsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("ops HTTP server failed: " + err.Error() + "\n")
		}
	}()

	// Feed console lines to the command loop until the input closes or
	// a shutdown signal arrives.
	go func() {
		for {
			line, err := messenger.ReadLine(ctx)
			if err != nil {
				return
			}
			svc.Handle(ctx, transport.Incoming{
				Message:  transport.Message{ChannelID: "console"},
				AuthorID: "console",
				GuildID:  "console",
				Content:  line,
			})
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "ops server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "stopped")
}
