package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "wordcloud"

	// skipConfigAnnotation marks commands that run without reading the
	// config file.
	skipConfigAnnotation = "skip-config"
)

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
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger and built-in config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "wordcloud packs weighted words into shaped clouds",
		Long:         `wordcloud turns word counts or free text into word clouds. Words are sized by frequency, packed into a rectangle, circle, heart and other silhouettes, and rendered as SVG, PNG or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if cmd.Annotations[skipConfigAnnotation] == "true" {
				return nil
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/wordcloud/config.toml)")

	// Register all subcommands
	root.AddCommand(c.countCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.shapesCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// openCache opens the configured cache backend. A remote backend that
// cannot be reached degrades to no caching with a warning.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.Cache
	if cfg.Backend == "" || cfg.Backend == cache.BackendFile {
		if cfg.Dir == "" {
			dir, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			cfg.Dir = dir
		}
	}
	cc, err := cache.Open(ctx, cfg)
	if err != nil {
		if cfg.Backend == cache.BackendRedis || cfg.Backend == cache.BackendMongo {
			c.Logger.Warn("cache disabled", "backend", cfg.Backend, "err", err)
			return cache.NewNullCache(), nil
		}
		return nil, err
	}
	return cc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/wordcloud/).
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

// configDir returns the config directory using XDG standard (~/.config/wordcloud/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags binds the layout flags shared by layout, render, preview.
func layoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()
	f.IntVar(&opts.Width, "width", opts.Width, "canvas width in pixels")
	f.IntVar(&opts.Height, "height", opts.Height, "canvas height in pixels")
	f.StringVarP(&opts.Shape, "shape", "s", opts.Shape, "silhouette: rectangle, square, circle, triangle, diamond, star, heart")
	f.StringVarP(&opts.Palette, "palette", "p", opts.Palette, "colour scheme: default, rainbow, ocean, sunset, mono")
	f.StringVar(&opts.Angles, "angles", opts.Angles, "spiral start angles: fixed (reproducible), random")
	f.Uint64Var(&opts.Seed, "seed", opts.Seed, "seed for random angles (0 = time based)")
	f.StringVar(&opts.Rotation, "rotation", opts.Rotation, "word orientation: mixed, horizontal")
	f.IntVarP(&opts.MaxWords, "max-words", "n", opts.MaxWords, "keep the N most frequent words")
	f.BoolVar(&opts.CaseSensitive, "case-sensitive", opts.CaseSensitive, "keep words differing only in case apart")
	f.Float64Var(opts.Margin, "margin", *opts.Margin, "minimum gap between words in pixels")
	f.Float64Var(&opts.MinFontSize, "min-font", opts.MinFontSize, "smallest font size (0 = derived from canvas)")
	f.Float64Var(&opts.MaxFontSize, "max-font", opts.MaxFontSize, "largest font size (0 = derived from canvas)")
	f.IntVar(&opts.MinLength, "min-length", opts.MinLength, "shortest token counted in text input")
	f.BoolVar(&opts.KeepNumbers, "keep-numbers", opts.KeepNumbers, "count numeric tokens in text input")
}

// renderFlags binds the render flags shared by render and visualize.
func renderFlags(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()
	f.StringVar(&opts.Background, "background", opts.Background, "background colour (#rgb, #rrggbb or none)")
	f.BoolVar(&opts.EmbedFont, "embed-font", opts.EmbedFont, "embed the font in SVG output")
	f.BoolVar(&opts.ShowBoxes, "boxes", opts.ShowBoxes, "outline word boxes")
	f.Float64Var(&opts.Scale, "scale", opts.Scale, "PNG pixel density")
}

// applyConfigDefaults fills options the user did not set on the command line
// from the config file. Flags always win.
func (c *CLI) applyConfigDefaults(cmd *cobra.Command, opts *pipeline.Options) {
	d := c.Config.Layout
	fs := cmd.Flags()
	unset := func(name string) bool { return fs.Lookup(name) != nil && !fs.Changed(name) }

	if unset("width") && d.Width > 0 {
		opts.Width = d.Width
	}
	if unset("height") && d.Height > 0 {
		opts.Height = d.Height
	}
	if unset("shape") && d.Shape != "" {
		opts.Shape = d.Shape
	}
	if unset("palette") && d.Palette != "" {
		opts.Palette = d.Palette
	}
	if unset("angles") && d.Angles != "" {
		opts.Angles = d.Angles
	}
	if unset("seed") && d.Seed != 0 {
		opts.Seed = d.Seed
	}
	if unset("rotation") && d.Rotation != "" {
		opts.Rotation = d.Rotation
	}
	if unset("max-words") && d.MaxWords > 0 {
		opts.MaxWords = d.MaxWords
	}
	if unset("background") && d.Background != "" {
		opts.Background = d.Background
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
	}
	return parts
}
