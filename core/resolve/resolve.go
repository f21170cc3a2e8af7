package resolve

import (
	"math"

	"papercalc-core/measure"
	"papercalc-core/units"
)

// Passes bounds the iteration. The longest dependency chain is lb → gsm →
// thickness/bulk → mm/tiao, which settles inside two passes.
const Passes = 3

// Step records one derived field.
type Step struct {
	Pass  int // 1-based
	Rule  string
	Field measure.Field
	Value float64
}

type state struct {
	set   measure.Set
	area  float64 // sq in; 0 means pound-weight rules are off
	pass  int
	steps []Step
	trace bool
}

// fill writes v into f if f is absent and v is finite. It reports whether
// the field was written.
func (st *state) fill(rule string, f measure.Field, v float64) bool {
	if st.set.Get(f).Known() || math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	st.set = st.set.With(f, measure.Some(v))
	if st.trace {
		st.steps = append(st.steps, Step{Pass: st.pass, Rule: rule, Field: f, Value: v})
	}
	return true
}

type rule struct {
	name  string
	apply func(st *state, name string)
}

// rules is the documented precedence order. Do not reorder without
// updating the package doc.
var rules = []rule{
	{"thickness-from-micron", func(st *state, name string) {
		if um, ok := st.set.ThicknessMicron.Get(); ok {
			st.fill(name, measure.ThicknessMm, units.MicronToMm(um))
			st.fill(name, measure.ThicknessTiao, units.MicronToTiao(um))
		}
	}},
	{"thickness-from-mm", func(st *state, name string) {
		if mm, ok := st.set.ThicknessMm.Get(); ok {
			um := units.MmToMicron(mm)
			st.fill(name, measure.ThicknessMicron, um)
			st.fill(name, measure.ThicknessTiao, units.MicronToTiao(um))
		}
	}},
	{"thickness-from-tiao", func(st *state, name string) {
		if tiao, ok := st.set.ThicknessTiao.Get(); ok {
			um := units.TiaoToMicron(tiao)
			st.fill(name, measure.ThicknessMicron, um)
			st.fill(name, measure.ThicknessMm, units.MicronToMm(um))
		}
	}},
	{"lb-to-gsm", func(st *state, name string) {
		if st.area <= 0 {
			return
		}
		if lb, ok := st.set.PoundWeight.Get(); ok {
			st.fill(name, measure.BasisWeight, units.PoundsToGSM(lb, st.area))
		}
	}},
	{"gsm-to-lb", func(st *state, name string) {
		if st.area <= 0 {
			return
		}
		if gsm, ok := st.set.BasisWeight.Get(); ok {
			st.fill(name, measure.PoundWeight, units.GSMToPounds(gsm, st.area))
		}
	}},
	{"bulk-from-thickness", func(st *state, name string) {
		um, okT := st.set.ThicknessMicron.Get()
		gsm, okG := st.set.BasisWeight.Get()
		if okT && okG {
			st.fill(name, measure.Bulk, um/gsm)
		}
	}},
	{"gsm-from-thickness", func(st *state, name string) {
		um, okT := st.set.ThicknessMicron.Get()
		bulk, okB := st.set.Bulk.Get()
		if okT && okB {
			st.fill(name, measure.BasisWeight, um/bulk)
		}
	}},
	{"thickness-from-product", func(st *state, name string) {
		gsm, okG := st.set.BasisWeight.Get()
		bulk, okB := st.set.Bulk.Get()
		if !okG || !okB {
			return
		}
		um := gsm * bulk
		if st.fill(name, measure.ThicknessMicron, um) {
			st.fill(name, measure.ThicknessMm, units.MicronToMm(um))
			st.fill(name, measure.ThicknessTiao, units.MicronToTiao(um))
		}
	}},
}

// RuleNames returns the rule names in precedence order.
func RuleNames() []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.name
	}
	return out
}

// Resolve returns in with every field derivable from it filled. areaSqIn is
// the reference sheet area in square inches; a zero, negative or non-finite
// area disables the pound-weight rules and nothing else.
func Resolve(in measure.Set, areaSqIn float64) measure.Set {
	out, _ := run(in, areaSqIn, false)
	return out
}

// ResolveTrace is Resolve that also reports each derivation in order.
func ResolveTrace(in measure.Set, areaSqIn float64) (measure.Set, []Step) {
	return run(in, areaSqIn, true)
}

func run(in measure.Set, areaSqIn float64, trace bool) (measure.Set, []Step) {
	st := &state{set: in, area: validArea(areaSqIn), trace: trace}
	for st.pass = 1; st.pass <= Passes; st.pass++ {
		before := st.set.Count()
		for _, r := range rules {
			r.apply(st, r.name)
		}
		if st.set.Count() == before {
			break
		}
	}
	return st.set, st.steps
}

func validArea(a float64) float64 {
	if a > 0 && !math.IsInf(a, 0) {
		return a
	}
	return 0
}

// Derived lists the fields present in out but not in in.
func Derived(in, out measure.Set) []measure.Field {
	var fs []measure.Field
	for _, f := range measure.Fields {
		if !in.Get(f).Known() && out.Get(f).Known() {
			fs = append(fs, f)
		}
	}
	return fs
}
