package tile

import (
	"sort"
	"strings"

	derrors "github.com/matzehuels/dressform/pkg/errors"
)

// Paper is a portrait sheet size with its unprintable margin, all in
// centimetres.
type Paper struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

// Standard paper sizes.
var (
	A4     = Paper{Name: "a4", Width: 21.0, Height: 29.7, Margin: 1}
	A3     = Paper{Name: "a3", Width: 29.7, Height: 42.0, Margin: 1}
	Letter = Paper{Name: "letter", Width: 21.59, Height: 27.94, Margin: 1}
)

var papers = map[string]Paper{"a4": A4, "a3": A3, "letter": Letter}

// PaperNames returns the accepted paper names, sorted.
func PaperNames() []string {
	names := make([]string, 0, len(papers))
	for n := range papers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PaperByName looks up a paper size. The empty name selects A4.
func PaperByName(name string) (Paper, error) {
	if name == "" {
		return A4, nil
	}
	if p, ok := papers[strings.ToLower(name)]; ok {
		return p, nil
	}
	return Paper{}, derrors.New(derrors.ErrCodeInvalidPaper, "unknown paper %q (expected one of: %s)",
		name, strings.Join(PaperNames(), ", "))
}

// Printable returns the width and height inside the margins.
func (p Paper) Printable() (w, h float64) {
	return p.Width - 2*p.Margin, p.Height - 2*p.Margin
}
