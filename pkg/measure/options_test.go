package measure

import (
	"testing"

	derrors "github.com/matzehuels/dressform/pkg/errors"
)

func TestZeroOptionsAreNeutral(t *testing.T) {
	var o FigureOptions
	if !o.IsNeutral() {
		t.Error("FigureOptions{}.IsNeutral() = false, want true")
	}
	if err := o.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if got, want := o.String(), "shoulder=normal posture=normal bust=medium hips=normal height=average"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseFigureOptions(t *testing.T) {
	tests := []struct {
		name    string
		in      map[string]string
		want    FigureOptions
		wantErr bool
	}{
		{
			name: "empty",
			in:   nil,
			want: FigureOptions{},
		},
		{
			name: "mixed case",
			in:   map[string]string{"Shoulder": "SLOPED", "bust": " full "},
			want: FigureOptions{Shoulder: ShoulderSloped, Bust: BustFull},
		},
		{
			name: "height",
			in:   map[string]string{"height": "below-average"},
			want: FigureOptions{Height: HeightBelowAverage},
		},
		{name: "bad value", in: map[string]string{"posture": "slouched"}, wantErr: true},
		{name: "bad axis", in: map[string]string{"neck": "long"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFigureOptions(tt.in)
			if tt.wantErr {
				if !derrors.Is(err, derrors.ErrCodeInvalidOption) {
					t.Fatalf("err = %v, want INVALID_OPTION", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidateRejectsUnknown(t *testing.T) {
	o := FigureOptions{Hips: "wide"}
	if err := o.Validate(); !derrors.Is(err, derrors.ErrCodeInvalidOption) {
		t.Errorf("Validate() = %v, want INVALID_OPTION", err)
	}
}

func TestValues(t *testing.T) {
	for _, a := range Axes {
		vals := Values(a)
		if len(vals) != 3 {
			t.Errorf("Values(%s) has %d entries, want 3", a, len(vals))
		}
		var neutral FigureOptions
		if vals[0] != neutral.Get(a) {
			t.Errorf("Values(%s)[0] = %q, want neutral %q", a, vals[0], neutral.Get(a))
		}
	}
}
