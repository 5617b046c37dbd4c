package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/core/words"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	wio "github.com/matzehuels/wordcloud/pkg/io"
)

// countCommand creates the count command, which turns text into an editable
// word list.
func (c *CLI) countCommand() *cobra.Command {
	var (
		output string
		format string
		opts   words.CountOptions
		noStop bool
	)

	cmd := &cobra.Command{
		Use:   "count [file|-|url]",
		Short: "Count words in a file and write them as a JSON word list",
		Long: `Count words in a file and write them as a JSON word list.

Plain text is tokenized and counted; structured word lists (JSON, YAML,
TOML, CSV) are merged and sorted. The result can be edited by hand and
passed to 'layout' or 'render'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noStop {
				opts.StopWords = []string{}
			}
			ws, err := c.countInput(cmd.Context(), args[0], format, opts)
			if err != nil {
				return err
			}
			ws = words.Normalize(ws, opts.NormalizeOptions)

			out, err := openOutput(output)
			if err != nil {
				return err
			}
			defer out.Close()
			if err := wio.WriteJSON(ws, out); err != nil {
				return fmt.Errorf("write word list: %w", err)
			}
			if output != "" {
				printSuccess("Counted %d words", len(ws))
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&format, "input-format", "", "input format: json, yaml, toml, csv, text (default: from extension)")
	cmd.Flags().IntVarP(&opts.MaxWords, "max-words", "n", 0, "keep the N most frequent words")
	cmd.Flags().BoolVar(&opts.CaseSensitive, "case-sensitive", false, "keep words differing only in case apart")
	cmd.Flags().IntVar(&opts.MinLength, "min-length", 0, "shortest token counted")
	cmd.Flags().BoolVar(&opts.KeepNumbers, "keep-numbers", false, "count numeric tokens")
	cmd.Flags().BoolVar(&noStop, "no-stop-words", false, "keep common English stop words")

	return cmd
}

// countInput reads a word list from a file, stdin or URL.
func (c *CLI) countInput(ctx context.Context, input, format string, opts words.CountOptions) ([]words.WordWeight, error) {
	if !wio.IsURL(input) {
		return readWords(input, format, opts)
	}
	cc, err := c.openCache(ctx, false)
	if err != nil {
		return nil, err
	}
	defer cc.Close()

	var loaded pipeline.Options
	if err := loadInput(ctx, input, format, &loaded, cc); err != nil {
		return nil, err
	}
	if loaded.Text != "" {
		return words.Count(loaded.Text, opts), nil
	}
	return loaded.Words, nil
}
