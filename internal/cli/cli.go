package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/weekgrid/pkg/config"
	errs "github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/pipeline"
	"github.com/matzehuels/weekgrid/pkg/schedule"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "weekgrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config config.Config

	// Out receives command output (stdout unless replaced in tests).
	Out io.Writer

	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the --config file, or the per-user file when the flag is
// empty.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner over the configured cache.
func (c *CLI) newRunner(ctx context.Context) *pipeline.Runner {
	cfg := c.Config
	if c.noCache {
		cfg.Cache.Backend = config.BackendNone
	}
	store, err := cfg.OpenCache(ctx, c.Logger)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "err", err)
		cfg.Cache.Backend = config.BackendNone
		store, _ = cfg.OpenCache(ctx, c.Logger)
	}
	return pipeline.NewRunner(store, nil, c.Logger)
}

// =============================================================================
// Options Helpers
// =============================================================================

// document is a schedule file read from disk.
type document struct {
	path   string
	data   []byte
	format schedule.Format
}

// readDocument reads path and picks its format from the extension.
func readDocument(path string) (document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return document{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "document not found: %s", path)
	}
	if err != nil {
		return document{}, err
	}
	return document{path: path, data: data, format: schedule.FormatFromPath(path)}, nil
}

// baseOptions returns pipeline options seeded from config for doc.
func (c *CLI) baseOptions(doc document) pipeline.Options {
	opts := c.Config.PipelineOptions()
	opts.DocumentFormat = string(doc.format)
	opts.Logger = c.Logger
	return opts
}
