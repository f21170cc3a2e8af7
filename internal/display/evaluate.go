package display

import (
	"papercalc-core/basis"
	"papercalc-core/measure"
	"papercalc-core/resolve"
)

// Evaluate runs the engine and the consistency check for one input.
func Evaluate(preset string, size basis.Size, in measure.Set) (Evaluation, []resolve.Step) {
	area := size.Area()
	out, steps := resolve.ResolveTrace(in, area)
	return Evaluation{
		Preset:    preset,
		Size:      size,
		Input:     in,
		Output:    out,
		Conflicts: resolve.Check(in, area, resolve.DefaultTolerance),
	}, steps
}
