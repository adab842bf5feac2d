// Package app provides the shared entry point for the chacha binary.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/flemzord/chacha/internal/config"
	"github.com/flemzord/chacha/internal/core"
	"github.com/flemzord/chacha/internal/security"
	"github.com/flemzord/chacha/internal/telemetry"
)

// RunParams configures the main application loop.
type RunParams struct {
	// ConfigPath is an explicit path to the YAML configuration file.
	// If empty, ResolveConfigPath is called; when no file exists the
	// built-in default configuration is used.
	ConfigPath string

	// Version, Commit, and Date are injected at build time via ldflags.
	Version string
	Commit  string
	Date    string

	// DataDir overrides the default persistent data directory.
	DataDir string

	// LogLevel sets the minimum log level. Defaults to slog.LevelInfo.
	LogLevel slog.Level
}

// Run loads configuration, starts all modules, and blocks until a
// shutdown signal is received.
func Run(params RunParams) error {
	// A local .env keeps parity with the reference deployment; absence
	// is not an error.
	_ = godotenv.Load()

	cfg, cfgPath, err := loadConfig(params.ConfigPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	redactor := security.NewRedactor()
	redactor.AddLiteral(os.Getenv("ADMIN_TOKEN"))

	level := params.LogLevel
	if cfg.Debug {
		level = slog.LevelDebug
	}
	innerHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(security.NewRedactingHandler(innerHandler, redactor))

	if cfgPath != "" {
		logger.Info("configuration loaded", "path", cfgPath)
	} else {
		logger.Info("no configuration file found, using built-in defaults")
	}

	traces, err := telemetry.Setup(context.Background(), cfg.Telemetry, "chacha", params.Version, logger)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = traces.Shutdown(ctx)
	}()

	dataDir := params.DataDir
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}

	appCtx := core.NewAppContext(logger, dataDir)
	appCtx = appCtx.WithModuleConfigs(cfg.Modules)
	appCtx.RegisterService("security.redactor", redactor)

	application := core.NewApp(appCtx)
	ids := config.Resolve(cfg)
	if err := application.LoadModules(ids); err != nil {
		return err
	}

	// Wire the pipeline between LoadModules and Start: the gateway
	// resolves it from the service registry when it starts.
	if err := wirePipeline(application, appCtx, cfg, ids, logger, traces); err != nil {
		return err
	}

	if err := application.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	sig := <-sigCh
	logger.Info("shutdown signal received", "signal", sig.String())
	application.Stop()
	logger.Info("shutdown complete")
	return nil
}

// loadConfig resolves and loads the configuration. Explicit paths must
// exist; otherwise the standard locations are searched and the built-in
// default is the fallback. The returned path is empty for the default.
func loadConfig(explicit string) (*config.Config, string, error) {
	if explicit != "" {
		cfg, err := config.Load(explicit)
		return cfg, explicit, err
	}

	if path, ok := FindConfigPath(); ok {
		cfg, err := config.Load(path)
		return cfg, path, err
	}

	cfg, err := config.Default()
	return cfg, "", err
}

// FindConfigPath searches standard locations for a config file.
// Search order: $XDG_CONFIG_HOME/chacha/chacha.yaml →
// ~/.config/chacha/chacha.yaml → ./chacha.yaml
func FindConfigPath() (string, bool) {
	var candidates []string

	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		candidates = append(candidates, filepath.Join(xdg, "chacha", "chacha.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "chacha", "chacha.yaml"))
	}

	candidates = append(candidates, "chacha.yaml")

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// DefaultDataDir returns the default persistent data directory.
// Uses $XDG_DATA_HOME/chacha if set, otherwise ~/.local/share/chacha.
func DefaultDataDir() string {
	if dir, ok := os.LookupEnv("XDG_DATA_HOME"); ok {
		return filepath.Join(dir, "chacha")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "chacha")
}

// Version formats the build metadata for display.
func Version(params RunParams) string {
	return fmt.Sprintf("chacha %s (commit: %s, built: %s)", params.Version, params.Commit, params.Date)
}
