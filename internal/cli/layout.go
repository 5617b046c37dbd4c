package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// defaultOptions returns pipeline options seeded with built-in defaults,
// used as flag defaults.
func defaultOptions() pipeline.Options {
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	opts.Logger = nil
	return opts
}

// layoutCommand creates the layout command for computing word placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		format  string
		noCache bool
	)
	opts := defaultOptions()

	cmd := &cobra.Command{
		Use:   "layout [words-file|-|url]",
		Short: "Place words and write the layout as JSON",
		Long: `Place words and write the layout as JSON.

The layout command reads a word list (JSON, YAML, TOML, CSV) or plain text,
packs the words into the chosen shape and writes a layout.json file that
can be rendered with 'visualize'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfigDefaults(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], format, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&format, "input-format", "", "input format: json, yaml, toml, csv, text (default: from extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	layoutFlags(cmd, &opts)

	return cmd
}

// runLayout loads the words, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, format string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := loadInput(ctx, input, format, &opts, runner.Cache); err != nil {
		return err
	}

	opts.Logger = c.Logger
	ws, err := pipeline.PrepareWords(opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d words...", len(ws)))
	spinner.Start()

	l, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, ws, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}

	exported := l.Export()
	exported.Palette = opts.Palette
	if err := cloud.WriteLayoutFile(exported, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(l.Summary.PlacedCount, l.Summary.TotalWords, cacheHit)
	if !l.Summary.Complete() {
		printWarning("Dropped %d words: %s", len(l.Summary.Dropped), truncateList(l.Summary.Dropped, 5))
	}
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// truncateList joins up to n items and notes how many were left out.
func truncateList(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(items[:n], ", "), len(items)-n)
}

// isLayoutFile reports whether path looks like a layout written by 'layout'.
func isLayoutFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(filepath.Base(path)), ".layout.json")
}
