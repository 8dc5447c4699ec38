package measure

import (
	"fmt"
	"sort"
	"strings"

	derrors "github.com/matzehuels/dressform/pkg/errors"
)

// Shoulder describes shoulder slope.
type Shoulder string

// Posture describes upper-body posture.
type Posture string

// Bust describes bust prominence.
type Bust string

// Hips describes hip prominence.
type Hips string

// Height describes overall height relative to the block.
type Height string

// Figure option values. The empty string of each type is treated as the
// neutral value of that axis.
const (
	ShoulderNormal Shoulder = "normal"
	ShoulderSloped Shoulder = "sloped"
	ShoulderSquare Shoulder = "square"

	PostureNormal  Posture = "normal"
	PostureStooped Posture = "stooped"
	PostureErect   Posture = "erect"

	BustMedium Bust = "medium"
	BustSmall  Bust = "small"
	BustFull   Bust = "full"

	HipsNormal Hips = "normal"
	HipsFlat   Hips = "flat"
	HipsFull   Hips = "full"

	HeightAverage      Height = "average"
	HeightBelowAverage Height = "below-average"
	HeightAboveAverage Height = "above-average"
)

// Axis names a figure option dimension.
type Axis string

const (
	AxisShoulder Axis = "shoulder"
	AxisPosture  Axis = "posture"
	AxisBust     Axis = "bust"
	AxisHips     Axis = "hips"
	AxisHeight   Axis = "height"
)

// Axes lists every figure option axis in canonical order.
var Axes = []Axis{AxisShoulder, AxisPosture, AxisBust, AxisHips, AxisHeight}

var allowed = map[Axis][]string{
	AxisShoulder: {string(ShoulderNormal), string(ShoulderSloped), string(ShoulderSquare)},
	AxisPosture:  {string(PostureNormal), string(PostureStooped), string(PostureErect)},
	AxisBust:     {string(BustMedium), string(BustSmall), string(BustFull)},
	AxisHips:     {string(HipsNormal), string(HipsFlat), string(HipsFull)},
	AxisHeight:   {string(HeightAverage), string(HeightBelowAverage), string(HeightAboveAverage)},
}

// Values returns the accepted values of an axis, neutral value first.
func Values(a Axis) []string {
	return append([]string(nil), allowed[a]...)
}

// FigureOptions holds one categorical selection per axis.
type FigureOptions struct {
	Shoulder Shoulder `toml:"shoulder" json:"shoulder"`
	Posture  Posture  `toml:"posture" json:"posture"`
	Bust     Bust     `toml:"bust" json:"bust"`
	Hips     Hips     `toml:"hips" json:"hips"`
	Height   Height   `toml:"height" json:"height"`
}

// Normalized returns a copy where every empty axis is replaced by its neutral
// value.
func (o FigureOptions) Normalized() FigureOptions {
	if o.Shoulder == "" {
		o.Shoulder = ShoulderNormal
	}
	if o.Posture == "" {
		o.Posture = PostureNormal
	}
	if o.Bust == "" {
		o.Bust = BustMedium
	}
	if o.Hips == "" {
		o.Hips = HipsNormal
	}
	if o.Height == "" {
		o.Height = HeightAverage
	}
	return o
}

// Get returns the selected value of axis a, normalized.
func (o FigureOptions) Get(a Axis) string {
	n := o.Normalized()
	switch a {
	case AxisShoulder:
		return string(n.Shoulder)
	case AxisPosture:
		return string(n.Posture)
	case AxisBust:
		return string(n.Bust)
	case AxisHips:
		return string(n.Hips)
	case AxisHeight:
		return string(n.Height)
	}
	return ""
}

// IsNeutral reports whether every axis holds its neutral value.
func (o FigureOptions) IsNeutral() bool {
	return o.Normalized() == FigureOptions{}.Normalized()
}

// Validate rejects any value outside its axis' enumeration.
func (o FigureOptions) Validate() error {
	for _, a := range Axes {
		if err := checkValue(a, o.Get(a)); err != nil {
			return err
		}
	}
	return nil
}

// String renders the options as "shoulder=normal posture=normal ...".
func (o FigureOptions) String() string {
	parts := make([]string, 0, len(Axes))
	for _, a := range Axes {
		parts = append(parts, fmt.Sprintf("%s=%s", a, o.Get(a)))
	}
	return strings.Join(parts, " ")
}

// ParseFigureOptions builds FigureOptions from axis/value pairs. Keys and
// values are case-insensitive; missing axes default to neutral.
func ParseFigureOptions(values map[string]string) (FigureOptions, error) {
	var o FigureOptions
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := o.Set(Axis(strings.ToLower(strings.TrimSpace(k))), values[k]); err != nil {
			return FigureOptions{}, err
		}
	}
	return o, nil
}

// Set assigns value to axis a after validating it.
func (o *FigureOptions) Set(a Axis, value string) error {
	v := strings.ToLower(strings.TrimSpace(value))
	if err := checkValue(a, v); err != nil {
		return err
	}
	switch a {
	case AxisShoulder:
		o.Shoulder = Shoulder(v)
	case AxisPosture:
		o.Posture = Posture(v)
	case AxisBust:
		o.Bust = Bust(v)
	case AxisHips:
		o.Hips = Hips(v)
	case AxisHeight:
		o.Height = Height(v)
	}
	return nil
}

func checkValue(a Axis, v string) error {
	vals, ok := allowed[a]
	if !ok {
		return derrors.New(derrors.ErrCodeInvalidOption, "unknown figure option %q", string(a))
	}
	for _, ok := range vals {
		if v == ok {
			return nil
		}
	}
	return derrors.New(derrors.ErrCodeInvalidOption, "invalid %s %q (expected one of: %s)",
		a, v, strings.Join(vals, ", "))
}
