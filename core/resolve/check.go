package resolve

import (
	"fmt"
	"math"

	"papercalc-core/measure"
	"papercalc-core/units"
)

// DefaultTolerance is the relative tolerance Check uses when given tol <= 0.
const DefaultTolerance = 1e-6

// Conflict is an identity that does not hold among the resolved values.
// Resolve never overwrites a known field, so any conflict traces back to
// supplied values that disagree with each other.
type Conflict struct {
	Identity string
	Fields   []measure.Field
	Want     float64 // value the identity implies for Fields[0]
	Got      float64 // value Fields[0] actually holds
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: %s is %g but the other fields imply %g", c.Identity, c.Fields[0], c.Got, c.Want)
}

// Check resolves in and reports every identity the result violates by more
// than tol (relative). It does not change what Resolve returns.
func Check(in measure.Set, areaSqIn float64, tol float64) []Conflict {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	out := Resolve(in, areaSqIn)
	var cs []Conflict
	add := func(identity string, want, got float64, fs ...measure.Field) {
		if !within(want, got, tol) {
			cs = append(cs, Conflict{Identity: identity, Fields: fs, Want: want, Got: got})
		}
	}

	um, okU := out.ThicknessMicron.Get()
	if mm, ok := out.ThicknessMm.Get(); ok && okU {
		add("mm = μm/1000", units.MicronToMm(um), mm, measure.ThicknessMm, measure.ThicknessMicron)
	}
	if tiao, ok := out.ThicknessTiao.Get(); ok && okU {
		add("tiao = μm/10", units.MicronToTiao(um), tiao, measure.ThicknessTiao, measure.ThicknessMicron)
	}
	gsm, okG := out.BasisWeight.Get()
	if bulk, ok := out.Bulk.Get(); ok && okG && okU {
		add("μm = bulk × gsm", gsm*bulk, um, measure.ThicknessMicron, measure.Bulk, measure.BasisWeight)
	}
	if area := validArea(areaSqIn); area > 0 && okG {
		if lb, ok := out.PoundWeight.Get(); ok {
			add("lb ⇄ gsm", units.GSMToPounds(gsm, area), lb, measure.PoundWeight, measure.BasisWeight)
		}
	}
	return cs
}

func within(a, b, tol float64) bool {
	d := math.Abs(a - b)
	if d == 0 {
		return true
	}
	return d <= tol*math.Max(math.Abs(a), math.Abs(b))
}
