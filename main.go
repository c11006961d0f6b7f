// Command maze-runner starts the maze solving server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing the REST API, WebSocket, metrics and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, the maze and session directories, Redis session
// storage, debug logging, version output, and optional ngrok tunneling.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
	"golang.org/x/sync/errgroup"

	"github.com/wricardo/maze-runner/api"
	"github.com/wricardo/maze-runner/maze/catalog"
	"github.com/wricardo/maze-runner/maze/service"
	"github.com/wricardo/maze-runner/maze/session"
	"github.com/wricardo/maze-runner/metrics"
	"github.com/wricardo/maze-runner/transport/mcp"
	"github.com/wricardo/maze-runner/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Maze Runner Server"
)

const (
	sessionMaxAge   = 24 * time.Hour
	cleanupInterval = time.Hour
)

// Configuration flags control how the server starts and which services are enabled.
var (
	port         = flag.Int("port", 8080, "HTTP server port")
	host         = flag.String("host", "localhost", "HTTP server host")
	mazeDir      = flag.String("maze-dir", getEnvDefault("MAZE_DIR", "mazes"), "Directory containing maze files")
	sessionsDir  = flag.String("sessions-dir", getEnvDefault("SESSIONS_DIR", "sessions"), "Directory for persisted sessions")
	redisAddr    = flag.String("redis-addr", os.Getenv("REDIS_ADDR"), "Redis address or URL for session storage (replaces -sessions-dir)")
	logFormat    = flag.String("log-format", getEnvDefault("LOG_FORMAT", "text"), "Log format: text or json")
	debug        = flag.Bool("debug", false, "Enable debug logging")
	version      = flag.Bool("version", false, "Show version information")
	ngrokEnabled = flag.Bool("ngrok", false, "Enable ngrok tunnel")
	ngrokAuth    = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain  = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")
)

// getEnvDefault returns the environment variable key, or fallback when unset.
func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with API, WebSocket, metrics and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server with internal HTTP server\n")
		fmt.Fprintf(os.Stderr, "  mcp-stdio, mcp   Aliases for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                              # Run HTTP server on default port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090                   # Run HTTP server on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -redis-addr localhost:6379   # Keep sessions in Redis\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s stdio-mcp                    # Run MCP stdio server\n", os.Args[0])
	}
}

// app holds the wired services shared by both modes
type app struct {
	service  service.MazeService
	sessions *session.Manager
	catalog  *catalog.Catalog
	registry *prometheus.Registry
	log      *logrus.Logger
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	logger := logrus.New()

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			logger.WithError(err).Warn("error loading .env file")
		}
	} else {
		logger.Info("loaded environment variables from .env file")
	}

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	configureLogger(logger, *logFormat, *debug)

	args := flag.Args()
	mode := "server"
	if len(args) > 0 {
		mode = args[0]
	}

	// Stdout carries the MCP protocol in stdio mode
	if isStdioMode(mode) {
		logger.SetOutput(os.Stderr)
	}

	logger.WithField("mode", mode).Infof("starting %s v%s", AppName, Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := initializeServices(ctx, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize services")
	}

	switch {
	case isStdioMode(mode):
		err = runStdioMCPWithInternalServer(ctx, a)
	case mode == "server" || mode == "http":
		err = runHTTPServer(ctx, a)
	default:
		logger.Fatalf("unknown mode: %s. Use 'server' (default) or 'stdio-mcp'", mode)
	}

	if saveErr := a.sessions.SaveAllSessions(); saveErr != nil {
		logger.WithError(saveErr).Warn("failed to save sessions on shutdown")
	}
	if err != nil {
		logger.WithError(err).Fatal("server stopped with error")
	}
	logger.Info("server stopped")
}

func isStdioMode(mode string) bool {
	return mode == "stdio-mcp" || mode == "mcp-stdio" || mode == "mcp"
}

// configureLogger applies the format and level flags
func configureLogger(logger *logrus.Logger, format string, debug bool) {
	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// initializeServices wires the catalog, session storage, metrics and maze service.
func initializeServices(ctx context.Context, logger *logrus.Logger) (*app, error) {
	cat, err := catalog.NewCatalog(*mazeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open maze catalog: %w", err)
	}

	persistence, err := newPersistence(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(persistence, logger)
	if err := sessionManager.LoadPersistedSessions(); err != nil {
		logger.WithError(err).Warn("failed to load persisted sessions")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mazeService := service.NewMazeService(sessionManager, cat, service.Options{
		Observer: metrics.New(registry),
		Logger:   logger,
	})

	return &app{
		service:  mazeService,
		sessions: sessionManager,
		catalog:  cat,
		registry: registry,
		log:      logger,
	}, nil
}

// newPersistence stores sessions in Redis when an address is configured and
// on disk otherwise
func newPersistence(ctx context.Context, logger *logrus.Logger) (session.Persistence, error) {
	if *redisAddr != "" {
		client, err := session.NewRedisClient(ctx, *redisAddr)
		if err != nil {
			return nil, err
		}
		logger.WithField("addr", *redisAddr).Info("storing sessions in redis")
		return session.NewRedisPersistence(client, session.WithTTL(sessionMaxAge)), nil
	}

	logger.WithField("dir", *sessionsDir).Info("storing sessions on disk")
	return session.NewFilePersistence(*sessionsDir)
}

// newHandler combines the REST API with the /mcp JSON-RPC endpoint
func newHandler(a *app, hub *websocket.Hub, baseURL string) http.Handler {
	apiServer := api.NewServer(a.service, hub,
		api.WithLogger(a.log),
		api.WithMetricsHandler(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})),
	)
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})
	return mainRouter
}

// runHTTPServer serves HTTP until ctx is cancelled. The websocket hub, session
// cleanup and the optional ngrok tunnel share its lifetime.
func runHTTPServer(ctx context.Context, a *app) error {
	addr := fmt.Sprintf("%s:%d", *host, *port)
	hub := websocket.NewHub(a.log)
	handler := newHandler(a, hub, "http://"+addr)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		a.log.WithFields(logrus.Fields{
			"api":       fmt.Sprintf("http://%s/api", addr),
			"websocket": fmt.Sprintf("ws://%s/ws?session=<session_id>", addr),
			"mcp":       fmt.Sprintf("http://%s/mcp", addr),
			"metrics":   fmt.Sprintf("http://%s/metrics", addr),
		}).Infof("HTTP server listening on %s", addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			a.log.WithError(err).Warn("HTTP server shutdown error")
		}
		return nil
	})

	g.Go(func() error {
		sessionCleanupRoutine(gctx, a.sessions, cleanupInterval)
		return nil
	})

	if ngrokShouldRun() {
		g.Go(func() error {
			runNgrok(gctx, handler, a.log)
			return nil
		})
	}

	return g.Wait()
}

// ngrokShouldRun checks the flag, then NGROK_ENABLED
func ngrokShouldRun() bool {
	if *ngrokEnabled {
		return true
	}
	envEnabled := os.Getenv("NGROK_ENABLED")
	return envEnabled == "true" || envEnabled == "1"
}

// ngrokAuthToken reads the token from the flag or either environment spelling
func ngrokAuthToken() string {
	if *ngrokAuth != "" {
		return *ngrokAuth
	}
	if token := os.Getenv("NGROK_AUTHTOKEN"); token != "" {
		return token
	}
	return os.Getenv("NGROK_AUTH_TOKEN")
}

// runNgrok serves handler through an ngrok tunnel until ctx is cancelled.
// Tunnel failures are logged and do not stop the local server.
func runNgrok(ctx context.Context, handler http.Handler, logger logrus.FieldLogger) {
	authToken := ngrokAuthToken()
	if authToken == "" {
		logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	domain := *ngrokDomain
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		logger.WithField("domain", domain).Info("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	logger.Info("starting ngrok tunnel")
	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		logger.WithError(err).Error("failed to start ngrok tunnel")
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			logger.WithError(err).Warn("failed to close ngrok tunnel")
		}
	}()

	ngrokURL := tun.URL()
	logger.WithFields(logrus.Fields{
		"api":       ngrokURL + "/api",
		"websocket": ngrokURL + "/ws?session=<session_id>",
		"mcp":       ngrokURL + "/mcp",
	}).Infof("ngrok tunnel established: %s", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		logger.WithError(err).Error("ngrok server error")
	}
	logger.Info("ngrok tunnel closed")
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within sessionMaxAge.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			manager.CleanupExpiredSessions(sessionMaxAge)
		}
	}
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at http://localhost:<port>; if unavailable, it
// starts an internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(ctx context.Context, a *app) error {
	externalURL := fmt.Sprintf("http://localhost:%d", *port)
	a.log.Infof("checking for external API server at %s", externalURL)

	baseURL := externalURL
	if !apiAvailable(externalURL) {
		a.log.Info("no external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		baseURL = "http://" + listener.Addr().String()

		hub := websocket.NewHub(a.log)
		go hub.Run(ctx)

		httpServer := &http.Server{Handler: newHandler(a, hub, baseURL)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.WithError(err).Error("internal HTTP server error")
			}
		}()
		defer httpServer.Close()

		a.log.Infof("internal HTTP server on %s", baseURL)
	} else {
		a.log.Infof("external API server found at %s, using it for MCP", externalURL)
	}

	mcpClient := mcp.NewClient(baseURL)
	a.log.Info("MCP stdio server ready")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ServeStdio(mcpClient.GetMCPServer())
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("MCP stdio server error: %w", err)
		}
		return nil
	}
}

// apiAvailable reports whether a maze API answers health checks at baseURL
func apiAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
