package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/pkg/buildinfo"
	"github.com/matzehuels/stackview/pkg/cache"
	"github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/observability"
	"github.com/matzehuels/stackview/pkg/pipeline"
	"github.com/matzehuels/stackview/pkg/prefs"
	"github.com/matzehuels/stackview/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "stackview"
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

	// prefsPath overrides the preference file location (--prefs).
	prefsPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Stackview lays out and paints piece stacks on a board",
		Long: `Stackview renders boards of piece stacks from scene files.

Stacks are drawn the way a double-blind viewer sees them: pieces the viewer
has not spotted stay hidden, selected pieces are painted last with a
highlight, and location markers are moved aside in collapsed stacks.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			hooks := logHooks{logger: c.Logger}
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.prefsPath, "prefs", "", "preference file (default: $XDG_CONFIG_HOME/stackview/prefs.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.prefsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped by
// build version.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// loadPrefs reads the preference file once for the current command.
func (c *CLI) loadPrefs() (prefs.Preferences, error) {
	path, err := c.prefsFile()
	if err != nil {
		return prefs.Default(), nil
	}
	return prefs.Load(path)
}

func (c *CLI) prefsFile() (string, error) {
	if c.prefsPath != "" {
		return c.prefsPath, nil
	}
	return prefs.DefaultPath()
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/stackview/).
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

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// readScene reads a scene file and detects its format from the extension.
func readScene(path string) ([]byte, scene.Format, error) {
	format, err := scene.DetectFormat(path)
	if err != nil {
		return nil, "", err
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", errors.New(errors.ErrCodeFileNotFound, "scene file not found: %s", path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read scene %s: %w", path, err)
	}
	return data, format, nil
}

// loadOptions reads the scene at path and the preferences into a fresh set
// of pipeline options.
func (c *CLI) loadOptions(ctx context.Context, path string) (pipeline.Options, error) {
	data, format, err := readScene(path)
	if err != nil {
		return pipeline.Options{}, err
	}
	p, err := c.loadPrefs()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Scene:       data,
		SceneFormat: format,
		Prefs:       p,
		Logger:      loggerFromContext(ctx),
	}, nil
}
