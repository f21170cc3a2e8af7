package display

import (
	"strconv"

	"papercalc-core/measure"
)

// Quantity carries the labels used by text renderers.
type Quantity struct {
	Field measure.Field
	Label string
	Unit  string
}

// Quantities lists the measurement fields in display order.
var Quantities = []Quantity{
	{measure.BasisWeight, "Basis weight", "g/m²"},
	{measure.ThicknessMicron, "Thickness", "μm"},
	{measure.ThicknessMm, "Thickness", "mm"},
	{measure.ThicknessTiao, "Thickness", "tiao"},
	{measure.Bulk, "Bulk", "cm³/g"},
	{measure.PoundWeight, "Ream weight", "lb"},
}

// Placeholder is shown for absent values.
const Placeholder = "—"

// Format prints an already-rounded value without trailing zeros.
func Format(v measure.Value) string {
	f, ok := v.Get()
	if !ok {
		return Placeholder
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
