// Package cli implements the onepercent command-line interface.
//
// The CLI is built with cobra and logs through charmbracelet/log. Every
// command reads the TOML configuration named by --config (or the default
// path, when present) before it runs; flags override file values.
//
// # Commands
//
//   - render: render a data view to SVG, PNG, JSON, DOT or text files
//   - watch: re-render a data view whenever its file changes
//   - preview: show a data view in the terminal and edit its value live
//   - serve: run the HTTP render API
//   - history: list or show past renders
//   - cache: manage the artifact cache
//   - version: print build information
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/onepercent/pkg/buildinfo"
	"github.com/matzehuels/onepercent/pkg/cache"
	"github.com/matzehuels/onepercent/pkg/config"
	"github.com/matzehuels/onepercent/pkg/history"
	"github.com/matzehuels/onepercent/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "onepercent"

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

	// Config is loaded before each command runs.
	Config *config.Config

	configPath string
	out        io.Writer
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output, which defaults to stdout.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "onepercent draws percentages as a waffle of one hundred circles",
		Long: `onepercent renders a single percentage as a grid of one hundred circles:
one circle per percent in an accent color, the rest in a neutral color,
with the number and a description above the grid.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/onepercent/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, path, err := config.Resolve(c.configPath)
	if err != nil {
		return err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. History is recorded only
// when a MongoDB store is configured.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, c.Config.Cache.Prefix), c.Logger)
	if c.Config.Cache.TTL > 0 {
		runner.TTL = c.Config.Cache.TTL
	}
	if c.Config.History.MongoURI != "" {
		store, err := c.newHistory(ctx)
		if err != nil {
			runner.Close(ctx)
			return nil, err
		}
		runner.History = store
	}
	return runner, nil
}

// newCache picks the cache backend from the configuration: none when
// disabled, Redis when an address is set, otherwise files on disk.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cc := c.Config.Cache
	switch {
	case noCache || cc.Disabled:
		return cache.NewNullCache(), nil
	case cc.RedisAddr != "":
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr: cc.RedisAddr,
			DB:   cc.RedisDB,
		})
	}
	dir := cc.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// newHistory opens the configured history store: MongoDB when a URI is set,
// otherwise an in-memory store.
func (c *CLI) newHistory(ctx context.Context) (history.Store, error) {
	hc := c.Config.History
	if hc.MongoURI == "" {
		return history.NewMemoryStore(0), nil
	}
	return history.NewMongoStore(ctx, history.MongoOptions{
		URI:      hc.MongoURI,
		Database: hc.Database,
	})
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/onepercent/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions returns pipeline options populated from the configuration.
func (c *CLI) baseOptions() pipeline.Options {
	cfg := c.Config
	return pipeline.Options{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Seed:       cfg.Render.Seed,
		Scale:      cfg.Render.Scale,
		Background: cfg.Render.Background,
		Font:       cfg.Render.Font,
		Formats:    append([]string(nil), cfg.Render.Formats...),
		Palette:    append([]string(nil), cfg.Chart.Palette...),
		Neutral:    cfg.Chart.Neutral,
		Animation:  cfg.AnimationConfig(),
		Logger:     c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so the configured formats apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}
