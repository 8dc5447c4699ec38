package cli

import (
	"path/filepath"
	"testing"

	derrors "github.com/matzehuels/dressform/pkg/errors"
	pkgio "github.com/matzehuels/dressform/pkg/io"
	"github.com/matzehuels/dressform/pkg/measure"
)

func TestSetMeasurements(t *testing.T) {
	m := measure.Defaults()
	err := setMeasurements(&m, map[string]string{"bust": "96.5", "Sleeve_Length": " 58 "})
	if err != nil {
		t.Fatalf("setMeasurements: %v", err)
	}
	if m.Bust != 96.5 {
		t.Errorf("Bust = %v, want 96.5", m.Bust)
	}
	if m.SleeveLength != 58 {
		t.Errorf("SleeveLength = %v, want 58", m.SleeveLength)
	}
	if m.Waist != measure.Defaults().Waist {
		t.Errorf("Waist changed to %v", m.Waist)
	}
}

func TestSetMeasurementsErrors(t *testing.T) {
	tests := []map[string]string{
		{"wingspan": "100"},
		{"bust": "big"},
	}
	for _, sets := range tests {
		m := measure.Defaults()
		err := setMeasurements(&m, sets)
		if !derrors.Is(err, derrors.ErrCodeInvalidMeasurement) {
			t.Errorf("setMeasurements(%v) = %v, want INVALID_MEASUREMENT", sets, err)
		}
	}
}

func TestProfileFlagsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.toml")
	p := pkgio.DefaultProfile()
	p.Measurements.Waist = 80
	if err := pkgio.ExportProfile(p, path); err != nil {
		t.Fatal(err)
	}

	pf := profileFlags{
		sets:   map[string]string{"bust": "98"},
		figure: map[string]string{"Posture": "Erect"},
		split:  "contour",
	}
	got, err := pf.load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Measurements.Waist != 80 || got.Measurements.Bust != 98 {
		t.Errorf("measurements = %+v", got.Measurements)
	}
	if got.Figure.Posture != measure.PostureErect {
		t.Errorf("Posture = %q", got.Figure.Posture)
	}
	if got.Draft.Split != "contour" {
		t.Errorf("Split = %q", got.Draft.Split)
	}
}

func TestProfileFlagsLoadDefault(t *testing.T) {
	var pf profileFlags
	got, err := pf.load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Measurements != measure.Defaults() {
		t.Error("empty path should load the reference measurements")
	}
}

func TestProfileBase(t *testing.T) {
	tests := map[string]string{
		"":                  "pattern",
		"anna.toml":         "anna",
		"clients/bo.json":   "clients/bo",
		"dir.v2/carla.toml": "dir.v2/carla",
	}
	for in, want := range tests {
		if got := profileBase(in); got != want {
			t.Errorf("profileBase(%q) = %q, want %q", in, got, want)
		}
	}
}
