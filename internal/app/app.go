package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"guillama/backend/internal/api"
	"guillama/backend/internal/config"
	"guillama/backend/internal/database"
	"guillama/backend/internal/llm"
	"guillama/backend/internal/metrics"
	"guillama/backend/internal/repository"
	"guillama/backend/internal/service"
)

const (
	probeInterval   = 3 * time.Second
	shutdownTimeout = 10 * time.Second
)

// App wires the configured components together.
type App struct {
	Config   *config.Config
	DB       *sql.DB
	Server   *http.Server
	Sessions *service.SessionManager
	Models   *service.ModelService
	provider llm.LLMProvider
}

func NewApp(cfg *config.Config) (*App, error) {
	for _, dir := range []string{cfg.ChatsDir(), cfg.ModelsDir()} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}

	db, err := database.InitDB(cfg.SettingsDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	provider := llm.NewOllamaProvider(llm.ProviderConfig{
		BaseURL:        cfg.OllamaURL,
		ConnectTimeout: cfg.ConnectTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		ReadTimeout:    cfg.ReadTimeout,
		CallTimeout:    cfg.CallTimeout,
	})

	sessions := service.NewSessionManager(cfg.ChatsDir(), provider, service.SessionOptions{StatusDuration: cfg.StatusDuration})
	models := service.NewModelService(provider, repository.NewFileModelCache(cfg.ModelsDir()), cfg.OllamaURL)
	settings := service.NewSettingsService(repository.NewSQLiteSettingsRepository(db), provider)

	router := api.NewRouter(
		api.NewChatroomHandler(sessions),
		api.NewModelHandler(models),
		api.NewSettingsHandler(settings),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		Config:   cfg,
		DB:       db,
		Server:   server,
		Sessions: sessions,
		Models:   models,
		provider: provider,
	}, nil
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource()
	metrics.MustRegister()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		return 1
	}
	return 0
}

// Serve probes the model server, warms the model list and serves HTTP until
// ctx is cancelled. Open chatrooms are closed before the server shuts down.
func (a *App) Serve(ctx context.Context) error {
	defer a.Close()

	if !waitForOllama(ctx, a.provider, a.Config.OllamaProbeAttempts, probeInterval) {
		slog.Warn("Ollama is not reachable, continuing offline", "url", a.Config.OllamaURL)
	}
	if list, err := a.Models.Refresh(ctx); err != nil {
		slog.Warn("Could not load model list", "error", err)
	} else {
		slog.Info("Model list ready", "count", len(list.Names), "from_cache", list.FromCache)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Starting server", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		a.Sessions.CloseAll()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return a.Server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	a.Sessions.CloseAll()
	if err := a.DB.Close(); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// waitForOllama polls the liveness banner up to attempts times. It reports
// whether the server answered.
func waitForOllama(ctx context.Context, provider llm.LLMProvider, attempts int, interval time.Duration) bool {
	if attempts < 1 {
		attempts = 1
	}
	slog.Info("Waiting for Ollama to be ready...")
	for i := 1; i <= attempts; i++ {
		probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		running, err := provider.IsRunning(probeCtx)
		cancel()
		if running {
			slog.Info("Ollama is ready.")
			return true
		}
		slog.Debug("Ollama not ready yet", "attempt", i, "error", err)
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(interval):
		}
	}
	return false
}
