package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"invotrack/internal/api"
	"invotrack/internal/auth"
	"invotrack/internal/config"
	"invotrack/internal/domain/tracker"
	"invotrack/internal/localstore"
	"invotrack/internal/mcp"
	"invotrack/internal/notify"
	"invotrack/internal/postgres"
	"invotrack/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const remoteQueryTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	store, err := localstore.Open(cfg.DB.Path, logger)
	if err != nil {
		logger.Error("failed to open local store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()

	var mirror repository.RemoteMirror
	if cfg.Remote.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.Remote.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to remote database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			logger.Error("failed to run remote migrations", "error", err)
			os.Exit(1)
		}
		mirror = postgres.NewMirror(pool, remoteQueryTimeout)
		logger.Info("remote mirror connected")
	}

	var authn auth.Authenticator = auth.Disabled{}
	if cfg.Auth.Enabled && cfg.Transport.Mode != "stdio" {
		authn = auth.NewClient(cfg.Auth.URL, cfg.Auth.APIKey)
	}

	notices := notify.NewBuffer(64)
	svc := tracker.NewService(store, mirror, notices, logger)
	if err := svc.LoadLocal(ctx); err != nil {
		logger.Error("failed to load local snapshot", "error", err)
		os.Exit(1)
	}
	defer svc.Wait()

	if cfg.Transport.Mode == "stdio" {
		mcpServer := mcp.NewServer(mcp.Config{Tracker: svc, Logger: logger})
		runStdioMode(logger, mcpServer)
		return
	}

	handler := api.NewServer(logger, svc, authn, notices)
	runHTTPMode(logger, handler, cfg.Server.Host, cfg.Server.Port)
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport", "auth", "disabled")

	transport := &sdkmcp.StdioTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, transport); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, handler http.Handler, host string, port int) {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
