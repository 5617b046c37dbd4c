package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/mask"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/palette"
	"github.com/matzehuels/wordcloud/pkg/core/words"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// previewCommand creates the interactive terminal preview.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		output string
		format string
	)
	opts := defaultOptions()

	cmd := &cobra.Command{
		Use:   "preview [words-file|-]",
		Short: "Preview a word cloud in the terminal",
		Long: `Preview a word cloud in the terminal.

The layout is drawn as a character grid. Keys:
  s  next shape
  p  next palette
  r  new random seed
  q  quit

With -o the last layout shown is saved on exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfigDefaults(cmd, &opts)
			return c.runPreview(cmd.Context(), args[0], format, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "save the final layout to this file")
	cmd.Flags().StringVar(&format, "input-format", "", "input format: json, yaml, toml, csv, text (default: from extension)")
	layoutFlags(cmd, &opts)

	return cmd
}

// runPreview loads the words and runs the preview program.
func (c *CLI) runPreview(ctx context.Context, input, format string, opts pipeline.Options, output string) error {
	cc, err := c.openCache(ctx, false)
	if err != nil {
		return err
	}
	err = loadInput(ctx, input, format, &opts, cc)
	cc.Close()
	if err != nil {
		return err
	}
	ws, err := pipeline.PrepareWords(opts)
	if err != nil {
		return err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	opts.Words, opts.Text = nil, ""

	m := newPreviewModel(ctx, ws, opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if input == stdinName {
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	final, err := tea.NewProgram(m, progOpts...).Run()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	pm := final.(previewModel)
	if output == "" || pm.layout == nil {
		return nil
	}
	exported := pm.layout.Export()
	exported.Palette = pm.opts.Palette
	if err := cloud.WriteLayoutFile(exported, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printSuccess("Saved layout")
	printFile(output)
	return nil
}

// =============================================================================
// previewModel - Interactive layout preview
// =============================================================================

// layoutMsg carries a finished layout back to the model.
type layoutMsg struct {
	gen    int
	layout layout.Layout
	err    error
}

// previewModel is the bubbletea model for the terminal preview.
type previewModel struct {
	ctx    context.Context
	words  []words.WordWeight
	opts   pipeline.Options
	layout *layout.Layout

	// gen numbers layout requests so stale results are ignored.
	gen       int
	computing bool
	err       error

	cols, rows int
}

func newPreviewModel(ctx context.Context, ws []words.WordWeight, opts pipeline.Options) previewModel {
	return previewModel{
		ctx:       ctx,
		words:     ws,
		opts:      opts,
		computing: true,
		cols:      80,
		rows:      24,
	}
}

func (m previewModel) Init() tea.Cmd {
	return m.layoutCmd()
}

// compute starts a layout for the current options.
func (m *previewModel) compute() tea.Cmd {
	m.gen++
	m.computing = true
	return m.layoutCmd()
}

func (m previewModel) layoutCmd() tea.Cmd {
	gen, ctx, ws, opts := m.gen, m.ctx, m.words, m.opts
	return func() tea.Msg {
		l, err := pipeline.GenerateLayout(ctx, ws, opts)
		return layoutMsg{gen: gen, layout: l, err: err}
	}
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "s":
			m.opts.Shape = nextName(shapeNames(), m.opts.Shape)
			return m, m.compute()
		case "p":
			m.opts.Palette = nextName(palette.Names(), m.opts.Palette)
			return m, m.compute()
		case "r":
			m.opts.Angles = string(layout.AnglesRandom)
			m.opts.Seed = rand.Uint64()
			return m, m.compute()
		}
	case tea.WindowSizeMsg:
		m.cols = max(20, msg.Width)
		m.rows = max(6, msg.Height-3)
	case layoutMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.computing = false
		m.err = msg.err
		if msg.err == nil {
			l := msg.layout
			m.layout = &l
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Preview"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s · %s · %s", m.opts.Shape, m.opts.Palette, m.opts.Angles)))
	if m.opts.Angles == string(layout.AnglesRandom) && m.opts.Seed != 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf(" · seed %d", m.opts.Seed)))
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(StyleWarning.Render(m.err.Error()))
	case m.layout == nil:
		b.WriteString(StyleDim.Render("Placing words..."))
	default:
		b.WriteString(drawLayout(*m.layout, m.cols, m.rows))
	}
	b.WriteString("\n")

	status := "s shape  p palette  r reseed  q quit"
	if m.layout != nil {
		status = fmt.Sprintf("%d/%d placed  ", m.layout.Summary.PlacedCount, m.layout.Summary.TotalWords) + status
	}
	if m.computing && m.layout != nil {
		status = "updating...  " + status
	}
	b.WriteString(StyleDim.Render(status))
	return b.String()
}

// nextName returns the entry after current in names, wrapping around.
func nextName(names []string, current string) string {
	i := slices.Index(names, strings.ToLower(current))
	return names[(i+1)%len(names)]
}

func shapeNames() []string {
	names := make([]string, len(mask.Shapes))
	for i, s := range mask.Shapes {
		names[i] = string(s)
	}
	return names
}

// =============================================================================
// Character Grid
// =============================================================================

// gridCell is one terminal cell of the preview.
type gridCell struct {
	ch    rune
	style lipgloss.Style
	set   bool
}

// drawLayout scales l onto a cols x rows character grid. The silhouette is
// dotted in and words are written centred on their boxes, vertical words
// top to bottom. A word is skipped when any of its cells is taken, so small
// words give way to larger ones placed earlier.
func drawLayout(l layout.Layout, cols, rows int) string {
	grid := make([][]gridCell, rows)
	for r := range grid {
		grid[r] = make([]gridCell, cols)
	}

	sx := float64(l.Width) / float64(cols)
	sy := float64(l.Height) / float64(rows)
	m := mask.New(l.Width, l.Height, l.Shape)
	for r := range rows {
		for c := range cols {
			if m.IsInside(int((float64(c)+0.5)*sx), int((float64(r)+0.5)*sy)) {
				grid[r][c] = gridCell{ch: '·', style: StyleDim}
			}
		}
	}

	for i, w := range l.Words {
		text := []rune(w.Text)
		cc := int(w.CenterX() / sx)
		cr := int(w.CenterY() / sy)
		dc, dr := 1, 0
		c0, r0 := cc-len(text)/2, cr
		if w.Rotation == 90 {
			dc, dr = 0, 1
			c0, r0 = cc, cr-len(text)/2
		}
		if !fits(grid, c0, r0, dc, dr, len(text)) {
			continue
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(w.Color))
		if i < len(l.Words)/10+1 {
			style = style.Bold(true)
		}
		for k, ch := range text {
			grid[r0+k*dr][c0+k*dc] = gridCell{ch: ch, style: style, set: true}
		}
	}

	var b strings.Builder
	for r, row := range grid {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, cell := range row {
			if cell.ch == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(cell.style.Render(string(cell.ch)))
		}
	}
	return b.String()
}

// fits reports whether n cells starting at (c0, r0) in direction (dc, dr)
// are on the grid and free of words.
func fits(grid [][]gridCell, c0, r0, dc, dr, n int) bool {
	for k := range n {
		r, c := r0+k*dr, c0+k*dc
		if r < 0 || r >= len(grid) || c < 0 || c >= len(grid[r]) {
			return false
		}
		if grid[r][c].set {
			return false
		}
	}
	return true
}
