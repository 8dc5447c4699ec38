package draft

import "fmt"

// WarningCode classifies a feasibility warning.
type WarningCode string

// Feasibility warnings. Each marks a quantity that was clamped or a
// diagnostic that fell outside its tolerance; the draft is still usable.
const (
	WarnArmholeFloor      WarningCode = "ARMHOLE_FLOOR"
	WarnFrontClamped      WarningCode = "FRONT_CLAMPED"
	WarnDartVolumeClamped WarningCode = "DART_VOLUME_CLAMPED"
	WarnShoulderClamped   WarningCode = "SHOULDER_CLAMPED"
	WarnWaistCrossing     WarningCode = "WAIST_CROSSING"
	WarnHipCrossing       WarningCode = "HIP_CROSSING"
	WarnDartTipClamped    WarningCode = "DART_TIP_CLAMPED"
	WarnShoulderDiagonal  WarningCode = "SHOULDER_DIAGONAL"
	WarnCapHeightClamped  WarningCode = "CAP_HEIGHT_CLAMPED"
	WarnCapEaseNegative   WarningCode = "CAP_EASE_NEGATIVE"
	WarnCapEaseHigh       WarningCode = "CAP_EASE_HIGH"
)

// Warning is a non-fatal feasibility report attached to a draft.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

func (w Warning) String() string { return fmt.Sprintf("%s: %s", w.Code, w.Message) }

// HasWarning reports whether ws contains code.
func HasWarning(ws []Warning, code WarningCode) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}

type warnings []Warning

func (ws *warnings) add(code WarningCode, format string, args ...any) {
	*ws = append(*ws, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}
