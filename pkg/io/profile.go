package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/dressform/pkg/draft"
	derrors "github.com/matzehuels/dressform/pkg/errors"
	"github.com/matzehuels/dressform/pkg/measure"
)

// Format is a profile file format.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the profile format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", derrors.New(derrors.ErrCodeInvalidProfile, "profile must be a .toml or .json file: %q", path)
}

// Profile is a stored client record.
type Profile struct {
	Name         string                `toml:"name,omitempty" json:"name,omitempty"`
	Measurements measure.Measurements  `toml:"measurements" json:"measurements"`
	Figure       measure.FigureOptions `toml:"figure" json:"figure"`
	Draft        DraftSettings         `toml:"draft" json:"draft"`
	Render       *RenderSettings       `toml:"render,omitempty" json:"render,omitempty"`
}

// DraftSettings selects drafting variants.
type DraftSettings struct {
	Split string `toml:"split,omitempty" json:"split,omitempty"`
}

// RenderSettings are per-profile output defaults. Empty fields defer to the
// caller's configuration.
type RenderSettings struct {
	Style   string   `toml:"style,omitempty" json:"style,omitempty"`
	Paper   string   `toml:"paper,omitempty" json:"paper,omitempty"`
	Formats []string `toml:"formats,omitempty" json:"formats,omitempty"`
	Scale   float64  `toml:"scale,omitempty" json:"scale,omitempty"`
}

// DefaultProfile returns a profile with the reference measurements and
// neutral figure options.
func DefaultProfile() Profile {
	return Profile{
		Measurements: measure.Defaults(),
		Figure:       measure.FigureOptions{}.Normalized(),
		Draft:        DraftSettings{Split: draft.StandardSplit.Name},
	}
}

// Validate checks measurements, figure options and the dart split.
func (p Profile) Validate() error {
	if err := p.Measurements.Validate(); err != nil {
		return err
	}
	if err := p.Figure.Validate(); err != nil {
		return err
	}
	_, err := draft.LookupDartSplit(p.Draft.Split)
	return err
}

// Split resolves the profile's dart split.
func (p Profile) Split() (draft.DartSplit, error) {
	return draft.LookupDartSplit(p.Draft.Split)
}
