// Package basis describes reference sheet sizes ("basis sizes") used for
// pound-weight conversions, and the named presets the calculator offers.
package basis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Size is a reference sheet in inches.
type Size struct {
	WidthIn  float64
	HeightIn float64
}

// Valid reports whether both sides are positive finite numbers.
func (s Size) Valid() bool {
	return positive(s.WidthIn) && positive(s.HeightIn)
}

// Area returns width × height in square inches, or 0 for an invalid size.
func (s Size) Area() float64 {
	if !s.Valid() {
		return 0
	}
	return s.WidthIn * s.HeightIn
}

func (s Size) String() string {
	return strconv.FormatFloat(s.WidthIn, 'f', -1, 64) + "x" + strconv.FormatFloat(s.HeightIn, 'f', -1, 64)
}

func positive(f float64) bool { return f > 0 && !math.IsInf(f, 0) }

// ParseSize accepts "25x38", "25×38" or "25*38".
func ParseSize(spec string) (Size, error) {
	s := strings.TrimSpace(strings.ToLower(spec))
	for _, sep := range []string{"×", "*"} {
		s = strings.ReplaceAll(s, sep, "x")
	}
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return Size{}, fmt.Errorf("bad size %q (want WIDTHxHEIGHT in inches)", spec)
	}
	wf, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return Size{}, fmt.Errorf("bad size %q: width: %w", spec, err)
	}
	hf, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return Size{}, fmt.Errorf("bad size %q: height: %w", spec, err)
	}
	return Size{WidthIn: wf, HeightIn: hf}, nil
}

var (
	Standard = Size{WidthIn: 25, HeightIn: 38}
	Cover    = Size{WidthIn: 20, HeightIn: 26}
)
