// Package pipeline runs the draft → render pipeline for dressform.
//
// The CLI, the HTTP API and batch jobs all go through a [Runner] so that
// defaults, validation, caching and logging are identical everywhere.
//
// # Stages
//
//  1. Draft: validate the inputs and draft the bodice and its sleeve
//  2. Render: turn each requested piece into drawings and encode them in the
//     requested formats (SVG, PNG, PDF, DXF, JSON, tiled print pages)
//
// Drafting is pure and cheap and is never cached. Each rendered artifact is
// cached under a key derived from a hash of the draft inputs plus the render
// settings, so re-running a profile only re-encodes what changed.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Measurements: measure.Defaults(),
//	    Pieces:       []string{pipeline.PieceBodice},
//	    Formats:      []string{pipeline.FormatSVG, pipeline.FormatPages},
//	    Paper:        "a4",
//	})
//	svg := result.Artifacts["bodice.svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dressform/pkg/cache"
	"github.com/matzehuels/dressform/pkg/draft"
	derrors "github.com/matzehuels/dressform/pkg/errors"
	pkgio "github.com/matzehuels/dressform/pkg/io"
	"github.com/matzehuels/dressform/pkg/measure"
	"github.com/matzehuels/dressform/pkg/render/pattern/sink"
	"github.com/matzehuels/dressform/pkg/render/pattern/tile"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Batch
// =============================================================================

const (
	// DefaultScale is the preview resolution in pixels per centimetre.
	DefaultScale = 10.0

	// MaxScale bounds the preview resolution.
	MaxScale = 40.0

	// DefaultStyle is the default visual style.
	DefaultStyle = "technical"

	// DefaultPaper is the default paper for tiled pages.
	DefaultPaper = "a4"
)

// Piece names.
const (
	PieceBodice = "bodice"
	PieceSleeve = "sleeve"

	// PieceConstruction is the construction diagram, emitted when
	// Options.Diagram is set.
	PieceConstruction = "construction"
)

// Format constants for output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
	FormatDXF   = "dxf"
	FormatJSON  = "json"
	FormatPages = "pages"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
	FormatDXF:   true,
	FormatJSON:  true,
	FormatPages: true,
}

// ValidPieces is the set of draftable pieces.
var ValidPieces = map[string]bool{
	PieceBodice: true,
	PieceSleeve: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Draft inputs
	Measurements measure.Measurements  `json:"measurements"`
	Figure       measure.FigureOptions `json:"figure"`
	Split        string                `json:"split,omitempty"`

	// Render options
	Pieces  []string `json:"pieces,omitempty"`
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Paper   string   `json:"paper,omitempty"`
	Overlap float64  `json:"overlap,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	NoGrid  bool     `json:"no_grid,omitempty"`
	NoMarks bool     `json:"no_marks,omitempty"`
	Diagram bool     `json:"diagram,omitempty"`

	// Refresh bypasses cached artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// OptionsFromProfile builds options from a stored profile. Render settings
// of the profile fill only what the caller left empty.
func OptionsFromProfile(p pkgio.Profile, base Options) Options {
	o := base
	o.Measurements = p.Measurements
	o.Figure = p.Figure
	if o.Split == "" {
		o.Split = p.Draft.Split
	}
	if r := p.Render; r != nil {
		if o.Style == "" {
			o.Style = r.Style
		}
		if o.Paper == "" {
			o.Paper = r.Paper
		}
		if len(o.Formats) == 0 {
			o.Formats = slices.Clone(r.Formats)
		}
		if o.Scale == 0 {
			o.Scale = r.Scale
		}
	}
	o.validated = false
	return o
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Pattern is the drafted bodice and sleeve.
	Pattern draft.Pattern

	// DraftHash is the content hash of the draft inputs.
	DraftHash string

	// Artifacts contains rendered outputs keyed by file name, e.g.
	// "bodice.svg" or "sleeve-page-r1c2.svg".
	Artifacts map[string][]byte

	// Keys maps each artifact name to its cache key.
	Keys map[string]string

	// Warnings collects the feasibility warnings of the drafted pieces.
	Warnings []draft.Warning

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks artifact cache hits.
	CacheInfo CacheInfo
}

// Names returns the artifact names in sorted order.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Artifacts))
	for n := range r.Artifacts {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Stats contains pipeline execution statistics.
type Stats struct {
	DraftTime  time.Duration
	RenderTime time.Duration
	Bytes      int
}

// CacheInfo counts artifact cache hits and misses.
type CacheInfo struct {
	Hits   int
	Misses int
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return derrors.New(derrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, dxf, json, pages)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePiece checks that a piece name is valid.
func ValidatePiece(piece string) error {
	if !ValidPieces[piece] {
		return derrors.New(derrors.ErrCodeInvalidOption, "invalid piece: %q (must be one of: bodice, sleeve)", piece)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all inputs and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForDraft(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForDraft checks the draft inputs and normalises the figure options.
func (o *Options) ValidateForDraft() error {
	if err := o.Measurements.Validate(); err != nil {
		return err
	}
	if err := o.Figure.Validate(); err != nil {
		return err
	}
	o.Figure = o.Figure.Normalized()
	split, err := draft.LookupDartSplit(o.Split)
	if err != nil {
		return err
	}
	o.Split = split.Name
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Pieces) == 0 {
		o.Pieces = []string{PieceBodice, PieceSleeve}
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Paper == "" {
		o.Paper = DefaultPaper
	}
	if o.Overlap == 0 {
		o.Overlap = tile.DefaultOverlap
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	for i, p := range o.Pieces {
		o.Pieces[i] = strings.ToLower(p)
		if err := ValidatePiece(o.Pieces[i]); err != nil {
			return err
		}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := sink.StyleByName(o.Style); err != nil {
		return err
	}
	if _, err := tile.PaperByName(o.Paper); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return derrors.New(derrors.ErrCodeInvalidInput, "scale must be between 0 and %.0f px/cm (got %v)", MaxScale, o.Scale)
	}
	if o.Overlap < 0 {
		return derrors.New(derrors.ErrCodeInvalidInput, "overlap cannot be negative (got %v)", o.Overlap)
	}
	return nil
}

// DraftKeyOpts returns cache key options for the draft inputs.
func (o *Options) DraftKeyOpts() cache.DraftKeyOpts {
	return cache.DraftKeyOpts{
		Measurements: o.Measurements,
		Options:      o.Figure,
		Split:        o.Split,
	}
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(piece, format, page string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Piece:  piece,
		Format: format,
		Style:  o.Style,
		Page:   page,
		Grid:   !o.NoGrid,
		Marks:  !o.NoMarks,
	}
	switch format {
	case FormatPNG, FormatSVG:
		k.Scale = o.Scale
	case FormatPages:
		k.Paper = o.Paper
		k.Overlap = o.Overlap
	}
	return k
}
