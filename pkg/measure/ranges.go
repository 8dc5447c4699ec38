package measure

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Range is the accepted interval of one measurement, in centimetres.
type Range struct {
	Name    string  `json:"name"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

var (
	ranges     []Range
	rangesOnce sync.Once
)

// Ranges lists every measurement in declaration order with the bounds of
// its validate tag.
func Ranges() []Range {
	rangesOnce.Do(func() {
		def := reflect.ValueOf(Defaults())
		t := def.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			r := Range{Name: name, Default: def.Field(i).Float()}
			for _, rule := range strings.Split(f.Tag.Get("validate"), ",") {
				key, val, _ := strings.Cut(rule, "=")
				v, err := strconv.ParseFloat(val, 64)
				if err != nil {
					continue
				}
				switch key {
				case "gte":
					r.Min = v
				case "lte":
					r.Max = v
				}
			}
			ranges = append(ranges, r)
		}
	})
	return append([]Range(nil), ranges...)
}

// RangeOf returns the range of the named measurement.
func RangeOf(name string) (Range, bool) {
	for _, r := range Ranges() {
		if r.Name == name {
			return r, true
		}
	}
	return Range{}, false
}
