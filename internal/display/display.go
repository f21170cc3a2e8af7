// Package display rounds a resolved Measurement Set for presentation and
// adds the quantities that are shown but never fed back into the engine
// (apparent density, the echoed reference area).
package display

import (
	"math"

	"papercalc-core/basis"
	"papercalc-core/measure"
	"papercalc-core/resolve"
)

// Full disables rounding for a quantity.
const Full = -1

// Precision is the number of decimals shown per quantity.
type Precision struct {
	GSM     int
	Micron  int
	Mm      int
	Tiao    int
	Bulk    int
	Lb      int
	Area    int
	Density int
}

// DefaultPrecision matches the calculator's long-standing display.
var DefaultPrecision = Precision{GSM: 2, Micron: 1, Mm: 3, Tiao: 2, Bulk: 3, Lb: 2, Area: 2, Density: 3}

// RawPrecision keeps every value at full precision.
var RawPrecision = Precision{Full, Full, Full, Full, Full, Full, Full, Full}

// For returns the precision for a Measurement Set field.
func (p Precision) For(f measure.Field) int {
	switch f {
	case measure.BasisWeight:
		return p.GSM
	case measure.ThicknessMicron:
		return p.Micron
	case measure.ThicknessMm:
		return p.Mm
	case measure.ThicknessTiao:
		return p.Tiao
	case measure.Bulk:
		return p.Bulk
	case measure.PoundWeight:
		return p.Lb
	}
	return Full
}

// Round rounds half away from zero to dp decimals. dp < 0 returns v.
func Round(v float64, dp int) float64 {
	if dp < 0 {
		return v
	}
	f := math.Pow(10, float64(dp))
	r := math.Round(v*f) / f
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return v
	}
	return r
}

// Evaluation is one engine run as seen by the presentation layer.
type Evaluation struct {
	Preset    string
	Size      basis.Size
	Input     measure.Set
	Output    measure.Set
	Conflicts []resolve.Conflict
}

// Result is an Evaluation prepared for rendering.
type Result struct {
	Preset    string
	Size      basis.Size
	AreaSqIn  float64
	Values    measure.Set // rounded
	Density   measure.Value
	Derived   []measure.Field
	Conflicts []resolve.Conflict
	Input     measure.Set // as supplied, unrounded
}

// Build rounds ev for display. Density is computed from the full-precision
// bulk and rounded separately.
func Build(ev Evaluation, p Precision) Result {
	r := Result{
		Preset:    ev.Preset,
		Size:      ev.Size,
		AreaSqIn:  Round(ev.Size.Area(), p.Area),
		Derived:   resolve.Derived(ev.Input, ev.Output),
		Conflicts: ev.Conflicts,
		Input:     ev.Input,
	}
	for _, f := range measure.Fields {
		if v, ok := ev.Output.Get(f).Get(); ok {
			r.Values = r.Values.With(f, measure.Some(Round(v, p.For(f))))
		}
	}
	r.Density = Density(ev.Output.Bulk, p.Density)
	return r
}

// Density returns 1/bulk in g/cm³ rounded to dp, absent when bulk is absent or zero.
func Density(bulk measure.Value, dp int) measure.Value {
	b, ok := bulk.Get()
	if !ok {
		return measure.None()
	}
	d := measure.Some(1 / b)
	if v, ok := d.Get(); ok {
		return measure.Some(Round(v, dp))
	}
	return d
}
