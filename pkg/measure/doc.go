// Package measure defines the immutable inputs of a drafting session: body
// [Measurements] and the categorical [FigureOptions].
//
// All lengths are centimetres. A Measurements value is validated once with
// [Measurements.Validate] before it reaches the drafting engine; the engine
// itself assumes valid input and never re-checks ranges.
//
// FigureOptions carries five independent, closed enumerations. The zero value
// of every axis is the neutral selection (normal shoulders, normal posture,
// medium bust, normal hips, average height), so FigureOptions{} drafts the
// unadjusted block. Unknown values are rejected by [ParseFigureOptions] and
// [FigureOptions.Validate] with an INVALID_OPTION error.
//
// # Usage
//
//	m := measure.Defaults()
//	m.Bust = 96
//	if err := m.Validate(); err != nil {
//	    return err
//	}
//
//	opts, err := measure.ParseFigureOptions(map[string]string{
//	    "shoulder": "sloped",
//	    "bust":     "full",
//	})
package measure
