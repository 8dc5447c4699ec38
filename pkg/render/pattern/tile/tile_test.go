package tile

import (
	"strings"
	"testing"

	derrors "github.com/matzehuels/dressform/pkg/errors"
	"github.com/matzehuels/dressform/pkg/geom"
	"github.com/matzehuels/dressform/pkg/render/pattern"
)

func TestPaperByName(t *testing.T) {
	tests := []struct {
		name string
		want Paper
	}{
		{"", A4},
		{"a4", A4},
		{"A3", A3},
		{"Letter", Letter},
	}
	for _, tt := range tests {
		got, err := PaperByName(tt.name)
		if err != nil {
			t.Fatalf("PaperByName(%q) error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("PaperByName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	_, err := PaperByName("tabloid")
	if !derrors.Is(err, derrors.ErrCodeInvalidPaper) {
		t.Errorf("PaperByName(tabloid) error = %v, want INVALID_PAPER", err)
	}
}

func TestPaginate(t *testing.T) {
	// A4 printable area is 19 x 27.7 cm.
	tests := []struct {
		name       string
		bounds     geom.Rect
		overlap    float64
		rows, cols int
	}{
		{"fits one page", geom.NewRect(0, 0, 10, 10), 1.5, 1, 1},
		{"exact width", geom.NewRect(0, 0, 19, 27.7), 1.5, 1, 1},
		{"two columns", geom.NewRect(0, 0, 30, 20), 1.5, 1, 2},
		{"overlap pushes to three", geom.NewRect(0, 0, 37, 20), 1.5, 1, 3},
		{"no overlap fits two", geom.NewRect(0, 0, 38, 20), 0, 1, 2},
		{"grid", geom.NewRect(-5, -5, 60, 60), 1.5, 3, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := Paginate(tt.bounds, A4, tt.overlap)
			if len(pages) != tt.rows*tt.cols {
				t.Fatalf("len(pages) = %d, want %d", len(pages), tt.rows*tt.cols)
			}
			last := pages[len(pages)-1]
			if last.Row != tt.rows || last.Col != tt.cols {
				t.Errorf("last page = %s, want R%dC%d", last.Label(), tt.rows, tt.cols)
			}
			if pages[0].Window.Min != tt.bounds.Min {
				t.Errorf("first window starts at %v, want %v", pages[0].Window.Min, tt.bounds.Min)
			}
			if last.Window.Max.X < tt.bounds.Max.X || last.Window.Max.Y < tt.bounds.Max.Y {
				t.Errorf("pages do not cover bounds: last window %v", last.Window)
			}
		})
	}
}

func TestPaginateOverlap(t *testing.T) {
	pages := Paginate(geom.NewRect(0, 0, 30, 10), A4, 2)
	if len(pages) != 2 {
		t.Fatalf("len(pages) = %d, want 2", len(pages))
	}
	if got := pages[0].Window.Max.X - pages[1].Window.Min.X; got < 1.999 || got > 2.001 {
		t.Errorf("overlap = %v, want 2", got)
	}
}

func TestPaginateEmpty(t *testing.T) {
	if pages := Paginate(geom.Rect{}, A4, 1); pages != nil {
		t.Errorf("Paginate(empty) = %v, want nil", pages)
	}
}

func TestRenderPages(t *testing.T) {
	d := pattern.Drawing{
		Name: "bodice",
		Layers: []pattern.Layer{{Name: pattern.LayerOutline, Paths: []pattern.Path{
			{Name: "edge", Points: []geom.Point{geom.Pt(0, 0), geom.Pt(30, 0), geom.Pt(30, 10)}},
		}}},
		Bounds: geom.NewRect(0, 0, 30, 10),
	}
	pages := Paginate(d.Bounds, A4, DefaultOverlap)
	sheets := RenderPages(d, A4, pages)
	if len(sheets) != len(pages) {
		t.Fatalf("len(sheets) = %d, want %d", len(sheets), len(pages))
	}

	first := string(sheets[0])
	for _, want := range []string{
		`width="210.0mm" height="297.0mm"`,
		"<title>bodice R1C1</title>",
		">R1C1</text>",
		`id="registration-test-square"`,
	} {
		if !strings.Contains(first, want) {
			t.Errorf("first sheet missing %q", want)
		}
	}
	second := string(sheets[1])
	if !strings.Contains(second, ">R1C2</text>") {
		t.Error("second sheet missing R1C2 label")
	}
	if strings.Contains(second, "test-square") {
		t.Error("test square repeated on second sheet")
	}
}
