// Package parse turns raw field text into optional numbers.
package parse

import (
	"strconv"
	"strings"

	"papercalc-core/measure"
)

// Number parses raw as a finite float64. Surrounding space and thousands
// separators are ignored. Anything else that does not parse, including
// NaN and Inf spellings, yields an absent value.
func Number(raw string) measure.Value {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return measure.None()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return measure.None()
	}
	return measure.Some(f)
}

// Fields maps raw text onto a Set. Missing keys are absent.
func Fields(raw map[measure.Field]string) measure.Set {
	var s measure.Set
	for f, text := range raw {
		s = s.With(f, Number(text))
	}
	return s
}
