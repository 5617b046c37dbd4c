package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// renderCommand creates the render command, which runs the full pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		format     string
		output     string
		noCache    bool
	)
	opts := defaultOptions()

	cmd := &cobra.Command{
		Use:   "render [words-file|-|url]",
		Short: "Lay out and render words in one step",
		Long: `Lay out and render words in one step.

The render command reads a word list or plain text, places the words and
writes SVG, PNG or JSON output. It is equivalent to 'layout' followed by
'visualize'.

Examples:
  wordcloud render talk.txt
  wordcloud render words.yaml -s heart -p sunset -f svg,png
  cat notes.md | wordcloud render - -o notes.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			c.applyConfigDefaults(cmd, &opts)
			return c.runRender(cmd.Context(), args[0], format, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&format, "input-format", "", "input format: json, yaml, toml, csv, text (default: from extension)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	layoutFlags(cmd, &opts)
	renderFlags(cmd, &opts)

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input, format string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := loadInput(ctx, input, format, &opts, runner.Cache); err != nil {
		return err
	}

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Building word cloud...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Placed %d of %d words", result.Stats.PlacedCount, result.Stats.WordCount))

	if !result.Layout.Summary.Complete() {
		printWarning("Dropped %d words: %s", len(result.Layout.Summary.Dropped), truncateList(result.Layout.Summary.Dropped, 5))
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
		placed:    result.Stats.PlacedCount,
		total:     result.Stats.WordCount,
	})
}
