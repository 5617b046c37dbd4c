package cache

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey identifies a layout computed from a word list.
	LayoutKey(wordsHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes a layout.
type LayoutKeyOpts struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Shape         string  `json:"shape"`
	Angles        string  `json:"angles"`
	Rotation      string  `json:"rotation"`
	Seed          uint64  `json:"seed"`
	Palette       string  `json:"palette"`
	MaxWords      int     `json:"max_words"`
	CaseSensitive bool    `json:"case_sensitive"`
	Margin        float64 `json:"margin,omitempty"`
	MinFontSize   float64 `json:"min_font_size,omitempty"`
	MaxFontSize   float64 `json:"max_font_size,omitempty"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Background string  `json:"background,omitempty"`
	EmbedFont  bool    `json:"embed_font,omitempty"`
	ShowBoxes  bool    `json:"show_boxes,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes inputs into prefixed SHA-256 keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (k *DefaultKeyer) LayoutKey(wordsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", wordsHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
