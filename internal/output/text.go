// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"papercalc/internal/display"
)

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// WriteText prints one "label (unit)<TAB>value" line per quantity, then the
// density, basis size and any conflicts. Derived values are marked with '*'.
func WriteText(w io.Writer, r display.Result) error {
	derived := make(map[string]bool, len(r.Derived))
	for _, f := range r.Derived {
		derived[f.String()] = true
	}
	var b strings.Builder
	for _, q := range display.Quantities {
		mark := ""
		if derived[q.Field.String()] {
			mark = " *"
		}
		fmt.Fprintf(&b, "%s (%s)\t%s%s\n", q.Label, q.Unit, display.Format(r.Values.Get(q.Field)), mark)
	}
	fmt.Fprintf(&b, "Apparent density (g/cm³)\t%s\n", display.Format(r.Density))
	fmt.Fprintf(&b, "Basis size (in)\t%s %s = %s in²\n", r.Preset, r.Size, formatFloat(r.AreaSqIn))
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "# conflict: %s\n", c)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
