package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/core/cloud/mask"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/palette"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

const (
	// swatchSize is the number of colour samples shown per palette.
	swatchSize = 8

	// headerRow is the row index lipgloss tables pass for the header.
	headerRow = -1
)

// shapesCommand lists the available silhouettes and colour schemes.
func (c *CLI) shapesCommand() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "shapes",
		Short: "List shapes and palettes",
		Long: `List shapes and palettes.

Coverage is the share of the canvas inside each silhouette at the given
size; smaller shapes fit fewer words before they shrink.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 || height <= 0 {
				return fmt.Errorf("canvas must be positive, got %dx%d", width, height)
			}
			fmt.Fprintln(cmd.OutOrStdout(), shapesTable(width, height))
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), palettesTable())
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", pipeline.DefaultWidth, "canvas width for coverage")
	cmd.Flags().IntVar(&height, "height", pipeline.DefaultHeight, "canvas height for coverage")
	return cmd
}

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// shapesTable renders one row per shape with its coverage of a
// width x height canvas.
func shapesTable(width, height int) string {
	rows := make([][]string, 0, len(mask.Shapes))
	for _, s := range mask.Shapes {
		cov := mask.New(width, height, s).Coverage()
		def := ""
		if s == mask.DefaultShape {
			def = "default"
		}
		rows = append(rows, []string{string(s), fmt.Sprintf("%5.1f%%", cov*100), coverageBar(cov, 20), def})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Shape", "Coverage", "", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return tableHeaderStyle
			case col == 0:
				return StyleHighlight
			case col == 3:
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// coverageBar draws frac in [0, 1] as a bar of n cells.
func coverageBar(frac float64, n int) string {
	full := int(frac*float64(n) + 0.5)
	full = max(0, min(n, full))
	return StyleNumber.Render(strings.Repeat("█", full)) + StyleDim.Render(strings.Repeat("░", n-full))
}

// palettesTable renders each colour scheme with a row of swatches.
func palettesTable() string {
	names := palette.Names()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, swatches(name)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Palette", "Colours").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return tableHeaderStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// swatches samples a palette at swatchSize ranks.
func swatches(name string) string {
	assign, err := palette.Parse(name)
	if err != nil {
		return ""
	}
	var b strings.Builder
	for i := range swatchSize {
		hex := assign(i, swatchSize)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██"))
	}
	return b.String()
}
