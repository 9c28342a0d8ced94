package model

import (
	"strconv"
	"strings"
)

// Str returns the raw value for key, "" when the column is absent.
func (f RawFrame) Str(key string) string {
	return f[key]
}

// Float parses the field as a float64, returning 0 for absent or malformed
// values. Capture exports routinely carry blank cells; permissive coercion
// keeps a single bad cell from discarding the frame.
func (f RawFrame) Float(key string) float64 {
	v, _ := f.FloatOK(key)
	return v
}

// FloatOK parses the field as a float64 and reports whether a well-formed
// number was present.
func (f RawFrame) FloatOK(key string) (float64, bool) {
	s := strings.TrimSpace(f[key])
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Has reports whether the frame carries a non-empty value for key.
func (f RawFrame) Has(key string) bool {
	return strings.TrimSpace(f[key]) != ""
}
