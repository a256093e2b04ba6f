package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Egham-7/models-helper/internal/api"
	"github.com/Egham-7/models-helper/internal/config"
	"github.com/Egham-7/models-helper/internal/models"
	"github.com/Egham-7/models-helper/internal/services/catalog"
	"github.com/Egham-7/models-helper/internal/services/comparison"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const shutdownTimeout = 30 * time.Second

// Server wires the catalog cache, the comparison dispatcher and the MCP surface
// onto one transport.
type Server struct {
	config  *config.Config
	fetcher *catalog.Fetcher
	cache   *catalog.Cache
	mcp    *mcpserver.MCPServer
	app    *fiber.App
}

// New validates cfg and builds every component. Logging is redirected to stderr
// because stdout belongs to the stdio transport.
func New(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	fiberlog.SetOutput(os.Stderr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	setupLogLevel(cfg)

	fetcher := catalog.NewFetcher(cfg)
	var cacheOpts []catalog.Option
	if ttl := cfg.CacheTTL(); ttl > 0 {
		cacheOpts = append(cacheOpts, catalog.WithTTL(ttl))
	}
	cache := catalog.NewCache(fetcher.FetchCatalog, cacheOpts...)
	dispatcher := comparison.NewDispatcher(cfg)
	handler := api.NewMCPHandler(cache, dispatcher, cfg.Comparison.DefaultModels)

	return &Server{
		config:  cfg,
		fetcher: fetcher,
		cache:   cache,
		mcp:     api.NewMCPServer(cfg, handler),
	}, nil
}

// Run serves the configured transport until ctx is cancelled, the process receives
// SIGINT or SIGTERM, or the stdio peer closes its end.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer s.fetcher.Close()

	fiberlog.Infof("%s %s starting (transport=%s, go=%s, GOMAXPROCS=%d)",
		s.config.Server.Name, s.config.Server.Version, s.config.Server.Transport,
		runtime.Version(), runtime.GOMAXPROCS(0))

	switch s.config.Server.Transport {
	case models.TransportHTTP:
		return s.runHTTP(ctx)
	default:
		return s.runStdio(ctx, os.Stdin, os.Stdout)
	}
}

func (s *Server) runStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(os.Stderr, "[MCP] ", log.LstdFlags))

	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio transport error: %w", err)
	}

	fiberlog.Info("Stdio transport closed")
	return nil
}

func (s *Server) runHTTP(ctx context.Context) error {
	s.app = createFiberApp(s.config)
	setupRoutes(s.app, s.config, s.mcp, s.cache)

	listenAddr := ":" + s.config.Server.Port

	serverErrChan := make(chan error, 1)
	go func() {
		if err := s.app.Listen(listenAddr); err != nil {
			serverErrChan <- err
		}
	}()

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		fiberlog.Info("Shutdown requested, stopping gracefully...")
	}

	if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	fiberlog.Info("Server shutdown completed successfully")
	return nil
}

func createFiberApp(cfg *config.Config) *fiber.App {
	isProd := cfg.IsProduction()

	app := fiber.New(fiber.Config{
		AppName:           fmt.Sprintf("%s v%s", cfg.Server.Name, cfg.Server.Version),
		EnablePrintRoutes: !isProd,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       5 * time.Minute,
		CaseSensitive:     true,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: !isProd,
	}))

	return app
}

func setupRoutes(app *fiber.App, cfg *config.Config, mcp *mcpserver.MCPServer, cache *catalog.Cache) {
	healthHandler := api.NewHealthHandler(cfg, cache)
	app.Get("/health", healthHandler.HealthCheck)

	// The adaptor buffers whole responses, so the server-to-client SSE stream
	// opened by GET would never flush. Clients fall back to POST-only.
	app.Get("/mcp", refuseEventStream)
	app.All("/mcp", adaptor.HTTPHandler(mcpserver.NewStreamableHTTPServer(mcp)))
}

func refuseEventStream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, "POST, DELETE")
	return c.SendStatus(fiber.StatusMethodNotAllowed)
}

func setupLogLevel(cfg *config.Config) {
	logLevel := cfg.GetNormalizedLogLevel()

	switch logLevel {
	case "trace":
		fiberlog.SetLevel(fiberlog.LevelTrace)
	case "debug":
		fiberlog.SetLevel(fiberlog.LevelDebug)
	case "info":
		fiberlog.SetLevel(fiberlog.LevelInfo)
	case "warn", "warning":
		fiberlog.SetLevel(fiberlog.LevelWarn)
	case "error":
		fiberlog.SetLevel(fiberlog.LevelError)
	case "fatal":
		fiberlog.SetLevel(fiberlog.LevelFatal)
	case "panic":
		fiberlog.SetLevel(fiberlog.LevelPanic)
	default:
		fiberlog.SetLevel(fiberlog.LevelInfo)
		fiberlog.Warnf("Unknown log level '%s', defaulting to 'info'", logLevel)
	}

	fiberlog.Infof("Log level set to: %s", logLevel)
}
