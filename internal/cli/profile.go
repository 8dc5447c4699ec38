package cli

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	derrors "github.com/matzehuels/dressform/pkg/errors"
	pkgio "github.com/matzehuels/dressform/pkg/io"
	"github.com/matzehuels/dressform/pkg/measure"
)

// profileFlags are the draft-input flags shared by draft, inspect and
// diagram. They override values read from a profile file.
type profileFlags struct {
	sets   map[string]string
	figure map[string]string
	split  string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringToStringVar(&f.sets, "set", nil, "override measurements, e.g. --set bust=96,waist=78")
	cmd.Flags().StringToStringVar(&f.figure, "figure", nil, "figure options, e.g. --figure posture=erect,hips=full")
	cmd.Flags().StringVar(&f.split, "split", "", "dart split: standard, contour")
}

// load reads the profile at path (the reference profile when empty) and
// applies the flag overrides.
func (f *profileFlags) load(path string) (pkgio.Profile, error) {
	p := pkgio.DefaultProfile()
	if path != "" {
		if err := derrors.ValidateProfileFilename(path); err != nil {
			return pkgio.Profile{}, err
		}
		var err error
		if p, err = pkgio.ImportProfile(path); err != nil {
			return pkgio.Profile{}, err
		}
	}
	if err := setMeasurements(&p.Measurements, f.sets); err != nil {
		return pkgio.Profile{}, err
	}
	for k, v := range f.figure {
		if err := p.Figure.Set(measure.Axis(strings.ToLower(k)), strings.ToLower(v)); err != nil {
			return pkgio.Profile{}, err
		}
	}
	if f.split != "" {
		p.Draft.Split = f.split
	}
	if err := p.Validate(); err != nil {
		return pkgio.Profile{}, err
	}
	return p, nil
}

// setMeasurements overrides measurements by their profile key.
func setMeasurements(m *measure.Measurements, sets map[string]string) error {
	if len(sets) == 0 {
		return nil
	}
	values := make(map[string]float64, len(sets))
	for name, raw := range sets {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := measure.RangeOf(name); !ok {
			return derrors.New(derrors.ErrCodeInvalidMeasurement, "unknown measurement %q", name)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return derrors.New(derrors.ErrCodeInvalidMeasurement, "%s: %q is not a number", name, raw)
		}
		values[name] = v
	}
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, m)
}

// profileBase returns the path of a profile without its extension, or
// "pattern" for the reference profile.
func profileBase(path string) string {
	if path == "" {
		return "pattern"
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}
