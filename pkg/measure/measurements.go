package measure

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	derrors "github.com/matzehuels/dressform/pkg/errors"
)

// Measurements is the raw body measurement record for one client.
// Ranges on the validate tags mirror the bounds of the original input form.
type Measurements struct {
	// Circumferences
	Bust  float64 `toml:"bust" json:"bust" validate:"gte=70,lte=130"`
	Waist float64 `toml:"waist" json:"waist" validate:"gte=60,lte=110"`
	Hip   float64 `toml:"hip" json:"hip" validate:"gte=70,lte=130"`

	// Vertical lengths
	BackLength    float64 `toml:"back_length" json:"back_length" validate:"gte=35,lte=45"`
	FrontLength   float64 `toml:"front_length" json:"front_length" validate:"gte=40,lte=55"`
	GarmentLength float64 `toml:"garment_length" json:"garment_length" validate:"gte=80,lte=120"`

	// Shoulder
	ShoulderWidth    float64 `toml:"shoulder_width" json:"shoulder_width" validate:"gte=10,lte=20"`
	ShoulderDiagonal float64 `toml:"shoulder_diagonal" json:"shoulder_diagonal" validate:"gte=35,lte=45"`

	// Bust apex, measured from the shoulder-neck point and from centre front
	BustHeight float64 `toml:"bust_height" json:"bust_height" validate:"gte=15,lte=35"`
	BustOffset float64 `toml:"bust_offset" json:"bust_offset" validate:"gte=7,lte=13"`

	// Ease allowances
	BustEase  float64 `toml:"bust_ease" json:"bust_ease" validate:"gte=0,lte=10"`
	WaistEase float64 `toml:"waist_ease" json:"waist_ease" validate:"gte=0,lte=10"`
	HipEase   float64 `toml:"hip_ease" json:"hip_ease" validate:"gte=0,lte=10"`

	// Sleeve
	ArmholeLength     float64 `toml:"armhole_length" json:"armhole_length" validate:"gte=40,lte=60"`
	SleeveLength      float64 `toml:"sleeve_length" json:"sleeve_length" validate:"gte=50,lte=70"`
	SleeveBottomWidth float64 `toml:"sleeve_bottom_width" json:"sleeve_bottom_width" validate:"gte=20,lte=35"`
}

// Defaults returns the reference measurement set (a size 52 dress block).
func Defaults() Measurements {
	return Measurements{
		Bust:              103,
		Waist:             86,
		Hip:               102,
		BackLength:        41,
		FrontLength:       46,
		GarmentLength:     110,
		ShoulderWidth:     14,
		ShoulderDiagonal:  41,
		BustHeight:        26,
		BustOffset:        9.5,
		BustEase:          5,
		WaistEase:         3,
		HipEase:           2,
		ArmholeLength:     48,
		SleeveLength:      60,
		SleeveBottomWidth: 26,
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validatorInstance returns the shared validator, reporting fields by their
// JSON names so messages match profile keys.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks every measurement against its physiological range.
// A violation is an INVALID_MEASUREMENT error naming the field; values are
// never clamped.
func (m Measurements) Validate() error {
	return derrors.FromValidator(derrors.ErrCodeInvalidMeasurement, validatorInstance().Struct(m))
}
