package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/dressform/pkg/draft"
	"github.com/matzehuels/dressform/pkg/render/diagram"
	"github.com/matzehuels/dressform/pkg/render/pattern"
	"github.com/matzehuels/dressform/pkg/render/pattern/sink"
	"github.com/matzehuels/dressform/pkg/render/pattern/tile"
)

// ArtifactName returns the file name of a single-file artifact.
func ArtifactName(piece, format string) string {
	return piece + "." + format
}

// PageName returns the file name of one tiled page.
func PageName(piece string, p tile.Page) string {
	return fmt.Sprintf("%s-page-%s.svg", piece, strings.ToLower(p.Label()))
}

// Drawing builds the drawing of one piece.
func Drawing(p draft.Pattern, piece string, opts Options) (pattern.Drawing, error) {
	po := pattern.DefaultOptions()
	po.Grid = !opts.NoGrid
	po.Marks = !opts.NoMarks

	switch piece {
	case PieceBodice:
		return pattern.FromBodice(p.Bodice, po), nil
	case PieceSleeve:
		return pattern.FromSleeve(p.Sleeve, po), nil
	}
	return pattern.Drawing{}, ValidatePiece(piece)
}

// RenderArtifact encodes a drawing in one single-file format.
func RenderArtifact(d pattern.Drawing, p draft.Pattern, format string, opts Options) ([]byte, error) {
	style, err := sink.StyleByName(opts.Style)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(d, sink.WithStyle(style), sink.WithScale(opts.Scale)), nil
	case FormatPNG:
		return sink.RenderPNG(d, sink.WithPNGStyle(style), sink.WithPNGScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(d, sink.WithPDFSVGOptions(sink.WithStyle(style), sink.WithPhysicalSize()))
	case FormatDXF:
		return sink.RenderDXF(d), nil
	case FormatJSON:
		return sink.RenderJSON(d, sink.WithJSONStyle(style.Name()), sink.WithJSONSteps(draft.ConstructionSteps(&p)))
	}
	return nil, fmt.Errorf("unsupported single-file format: %s", format)
}

// Paginate splits a drawing into pages on the configured paper.
func Paginate(d pattern.Drawing, opts Options) ([]tile.Page, tile.Paper, error) {
	paper, err := tile.PaperByName(opts.Paper)
	if err != nil {
		return nil, tile.Paper{}, err
	}
	return tile.Paginate(d.Bounds, paper, opts.Overlap), paper, nil
}

// RenderDiagram renders the construction diagram of p as SVG.
func RenderDiagram(ctx context.Context, p draft.Pattern) ([]byte, error) {
	dot := diagram.ToDOT(draft.ConstructionSteps(&p), diagram.Options{Detailed: true})
	return diagram.RenderSVG(ctx, dot)
}
