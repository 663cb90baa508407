// Command nc2048 is the 2048 sliding-tile puzzle.
//
// It supports four modes:
//  1. "play" (default) – the interactive terminal game
//  2. "server" – HTTP server exposing the REST API, a spectator WebSocket and an /mcp endpoint
//  3. "spectate" – read-only terminal view of a server session
//  4. "mcp" – MCP stdio server, reusing a running API or spinning up an internal one
//
// Flags control host/port, config directory, debug logging and the log file.
// Settings can also come from the environment or a .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/nc2048/api"
	"github.com/wricardo/nc2048/game/config"
	"github.com/wricardo/nc2048/game/engine"
	"github.com/wricardo/nc2048/game/service"
	"github.com/wricardo/nc2048/game/session"
	"github.com/wricardo/nc2048/transport/mcp"
	"github.com/wricardo/nc2048/transport/websocket"
	"github.com/wricardo/nc2048/ui/terminal"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "nc2048"
)

// Session housekeeping for server mode
const (
	cleanupInterval = time.Hour
	sessionMaxAge   = 24 * time.Hour
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Error loading .env file: %v", err)
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command tree. Play is the default action.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    AppName,
		Usage:   "slide the tiles, reach 2048",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("NC2048_DEBUG"),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "write logs to this file instead of stderr",
				Sources: cli.EnvVars("NC2048_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "configuration name for play, or the default for new server sessions",
			},
		},
		Action: runPlay,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play in the terminal (default)",
				Action: runPlay,
			},
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "run the HTTP server with REST API, WebSocket and MCP endpoint",
				Action:  runServer,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host", Sources: cli.EnvVars("HOST")},
					&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
				},
			},
			{
				Name:      "spectate",
				Aliases:   []string{"watch"},
				Usage:     "watch a server session live in the terminal",
				ArgsUsage: "SESSION_ID",
				Action:    runSpectate,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "server to watch"},
				},
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp"},
				Usage:   "run an MCP stdio server",
				Action:  runStdioMCP,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "api-url", Value: "http://localhost:8080", Usage: "REST API to reuse when it is reachable"},
				},
			},
		},
	}
}

// setupLogging configures logrus. When quiet is set and no log file is given,
// logs are discarded so they never draw over the terminal game.
func setupLogging(debug bool, logFile string, quiet bool) (io.Closer, error) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
	log.SetReportCaller(false)
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)
	}

	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		log.SetOutput(f)
		return f, nil
	case quiet:
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(os.Stderr)
	}
	return io.NopCloser(nil), nil
}

// runPlay starts the terminal game on one engine
func runPlay(ctx context.Context, cmd *cli.Command) error {
	closer, err := setupLogging(cmd.Bool("debug"), cmd.String("log-file"), true)
	if err != nil {
		return err
	}
	defer closer.Close()

	configManager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}
	gameConfig, err := selectConfig(configManager, cmd.String("config"))
	if err != nil {
		return err
	}

	eng, err := engine.NewEngine(gameConfig)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	log.WithField("config", gameConfig.Name).Info("starting terminal game")
	err = terminal.NewApp(screen, eng).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runSpectate follows a server-side session over the WebSocket stream
func runSpectate(ctx context.Context, cmd *cli.Command) error {
	sessionID := cmd.Args().First()
	if sessionID == "" {
		return errors.New("spectate needs a session ID")
	}

	closer, err := setupLogging(cmd.Bool("debug"), cmd.String("log-file"), true)
	if err != nil {
		return err
	}
	defer closer.Close()

	conn, err := terminal.DialSpectator(ctx, cmd.String("url"), sessionID)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to init terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	err = terminal.NewSpectator(screen, conn, sessionID).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// selectConfig makes the named configuration the default and returns it. An
// empty name keeps the current default.
func selectConfig(configs *config.Manager, name string) (*engine.GameConfig, error) {
	if name != "" {
		if err := configs.SetDefault(name); err != nil {
			return nil, fmt.Errorf("failed to load config %q: %w", name, err)
		}
	}
	return configs.GetDefault(), nil
}

// runServer starts the HTTP server with REST API, WebSocket hub and an /mcp
// endpoint, and shuts it down gracefully on SIGINT/SIGTERM
func runServer(ctx context.Context, cmd *cli.Command) error {
	closer, err := setupLogging(cmd.Bool("debug"), cmd.String("log-file"), false)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameService, sessions, err := initializeServices(cmd.String("config-dir"), cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	go sessionCleanupRoutine(ctx, sessions, cleanupInterval)

	hub := websocket.NewHub()
	go hub.Run(ctx)

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      newRootHandler(gameService, hub, "http://"+addr),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("%s v%s listening on %s", AppName, Version, addr)
		log.Infof("REST API: http://%s/api", addr)
		log.Infof("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Infof("MCP endpoint: http://%s/mcp", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}
	log.Info("server stopped")
	return nil
}

// newRootHandler mounts the API at / and the MCP JSON-RPC endpoint at /mcp.
// The MCP tools call back into the API at apiURL.
func newRootHandler(gameService service.GameService, hub *websocket.Hub, apiURL string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", api.NewServer(gameService, hub))
	mux.Handle("/mcp", mcpHandler(mcp.NewClient(apiURL).GetMCPServer()))
	return mux
}

// mcpHandler answers single JSON-RPC messages posted to it
func mcpHandler(mcpServer *server.MCPServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		defer r.Body.Close()
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}

		response := mcpServer.HandleMessage(r.Context(), body)
		if response == nil {
			w.WriteHeader(http.StatusAccepted)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Errorf("failed to encode MCP response: %v", err)
		}
	}
}

// initializeServices wires the config and session managers into the game
// service. defaultConfig, when set, is used for sessions created without one.
func initializeServices(configDir, defaultConfig string) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if _, err := selectConfig(configManager, defaultConfig); err != nil {
		return nil, nil, err
	}

	sessionManager := session.NewManager()
	return service.NewGameService(sessionManager, configManager), sessionManager, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within sessionMaxAge, until ctx is cancelled
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(sessionMaxAge); removed > 0 {
				log.Infof("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// runStdioMCP serves MCP over stdio. It reuses the API at --api-url when it
// answers; otherwise it starts an internal API on a random loopback port.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	closer, err := setupLogging(cmd.Bool("debug"), cmd.String("log-file"), false)
	if err != nil {
		return err
	}
	defer closer.Close()

	baseURL := cmd.String("api-url")
	if !apiReachable(baseURL) {
		log.Infof("No API server at %s, starting internal HTTP server", baseURL)

		gameService, sessions, err := initializeServices(cmd.String("config-dir"), cmd.String("config"))
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}
		go sessionCleanupRoutine(ctx, sessions, cleanupInterval)

		internalURL, shutdown, err := startInternalAPI(gameService)
		if err != nil {
			return err
		}
		defer shutdown()
		baseURL = internalURL
	}

	log.Infof("MCP stdio server ready (API at %s)", baseURL)
	if err := server.ServeStdio(mcp.NewClient(baseURL).GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// apiReachable reports whether a health check against baseURL succeeds
func apiReachable(baseURL string) bool {
	if baseURL == "" {
		return false
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// startInternalAPI serves the REST API on 127.0.0.1 with a random port and
// returns its base URL and a shutdown function
func startInternalAPI(gameService service.GameService) (string, func(), error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("failed to get available port: %w", err)
	}

	httpServer := &http.Server{Handler: api.NewServer(gameService, nil)}
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Internal HTTP server error: %v", err)
		}
	}()

	baseURL := "http://" + listener.Addr().String()
	log.Debugf("internal HTTP server on %s", baseURL)

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctx)
	}
	return baseURL, shutdown, nil
}
