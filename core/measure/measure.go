// Package measure holds the optional-number type and the six-field
// Measurement Set the inference engine works on.
package measure

import "math"

// Value is an optional finite number. The zero Value is absent.
type Value struct {
	v  float64
	ok bool
}

// Some returns a present Value, or an absent one if f is NaN or ±Inf.
func Some(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{v: f, ok: true}
}

// None returns an absent Value.
func None() Value { return Value{} }

func (x Value) Known() bool { return x.ok }

// Get returns the number and whether it is present.
func (x Value) Get() (float64, bool) { return x.v, x.ok }

// Or returns the number, or def when absent.
func (x Value) Or(def float64) float64 {
	if !x.ok {
		return def
	}
	return x.v
}

// Ptr returns nil for an absent value. Wire types use *float64 for omitempty.
func (x Value) Ptr() *float64 {
	if !x.ok {
		return nil
	}
	f := x.v
	return &f
}

// FromPtr is the inverse of Ptr.
func FromPtr(p *float64) Value {
	if p == nil {
		return Value{}
	}
	return Some(*p)
}

// Field names one member of a Set.
type Field int

const (
	BasisWeight Field = iota
	ThicknessMicron
	ThicknessMm
	ThicknessTiao
	Bulk
	PoundWeight
)

// Fields lists every Field in display order.
var Fields = []Field{BasisWeight, ThicknessMicron, ThicknessMm, ThicknessTiao, Bulk, PoundWeight}

var fieldNames = [...]string{
	BasisWeight:     "basis_weight",
	ThicknessMicron: "thickness_um",
	ThicknessMm:     "thickness_mm",
	ThicknessTiao:   "thickness_tiao",
	Bulk:            "bulk",
	PoundWeight:     "pound_weight",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// Set is one sheet of paper described by up to six measurements.
type Set struct {
	BasisWeight     Value // g/m²
	ThicknessMicron Value // μm
	ThicknessMm     Value // mm
	ThicknessTiao   Value // 0.01 mm
	Bulk            Value // cm³/g
	PoundWeight     Value // lb per 500-sheet ream
}

// Get returns the Value stored for f.
func (s Set) Get(f Field) Value {
	switch f {
	case BasisWeight:
		return s.BasisWeight
	case ThicknessMicron:
		return s.ThicknessMicron
	case ThicknessMm:
		return s.ThicknessMm
	case ThicknessTiao:
		return s.ThicknessTiao
	case Bulk:
		return s.Bulk
	case PoundWeight:
		return s.PoundWeight
	}
	return Value{}
}

// With returns a copy of s with f set to v.
func (s Set) With(f Field, v Value) Set {
	switch f {
	case BasisWeight:
		s.BasisWeight = v
	case ThicknessMicron:
		s.ThicknessMicron = v
	case ThicknessMm:
		s.ThicknessMm = v
	case ThicknessTiao:
		s.ThicknessTiao = v
	case Bulk:
		s.Bulk = v
	case PoundWeight:
		s.PoundWeight = v
	}
	return s
}

// Count reports how many fields are present.
func (s Set) Count() int {
	n := 0
	for _, f := range Fields {
		if s.Get(f).Known() {
			n++
		}
	}
	return n
}

// Missing lists the absent fields in display order.
func (s Set) Missing() []Field {
	var out []Field
	for _, f := range Fields {
		if !s.Get(f).Known() {
			out = append(out, f)
		}
	}
	return out
}
