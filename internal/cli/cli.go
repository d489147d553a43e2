// Package cli implements the labelsheet command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/labelsheet/pkg/buildinfo"
	"github.com/matzehuels/labelsheet/pkg/cache"
	"github.com/matzehuels/labelsheet/pkg/geometry"
	"github.com/matzehuels/labelsheet/pkg/observability"
	"github.com/matzehuels/labelsheet/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "labelsheet"

	// Environment variables for service endpoints and the cache location.
	envRedisURL   = "LABELSHEET_REDIS_URL"
	envS3Endpoint = "LABELSHEET_S3_ENDPOINT"
	envCacheDir   = "LABELSHEET_CACHE_DIR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level pipeline, cache
// and storage events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetStorageHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "labelsheet prints Code-128 library barcode labels",
		Long:         `labelsheet renders numbered Code-128 barcode labels for library books and lays them out on printable label sheets (PDF, PNG preview or JSON manifest).`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool, redisURL string) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache, redisURL)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

// newCache picks the artifact cache: none, Redis when a URL is configured,
// otherwise the local file cache.
func (c *CLI) newCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL == "" {
		redisURL = os.Getenv(envRedisURL)
	}
	if redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache")
		return rc, nil
	}
	fc, err := openFileCache()
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// loadRegistry returns the built-in presets plus those in presetsFile.
func loadRegistry(presetsFile string) (*geometry.Registry, error) {
	reg := geometry.NewRegistry()
	if presetsFile == "" {
		return reg, nil
	}
	if err := reg.LoadFile(presetsFile); err != nil {
		return nil, err
	}
	return reg, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns $LABELSHEET_CACHE_DIR if set, else the XDG cache
// directory (~/.cache/labelsheet/).
func cacheDir() (string, error) {
	if dir := os.Getenv(envCacheDir); dir != "" {
		return filepath.Clean(dir), nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// openFileCache opens the artifact cache under cacheDir.
func openFileCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	return cache.NewFileCache(dir)
}
