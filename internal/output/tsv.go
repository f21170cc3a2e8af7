// internal/output/tsv.go
package output

import (
	"fmt"
	"io"
	"strings"

	"papercalc-core/measure"
	"papercalc/internal/display"
)

// TSVHeader is the stable column order of the tsv format.
const TSVHeader = "preset\twidth_in\theight_in\tarea_sq_in\tbasis_weight_gsm\tthickness_um\tthickness_mm\tthickness_tiao\tbulk_cm3_g\tpound_weight_lb\tdensity_g_cm3\tderived"

// WriteTSV writes the header (optional) and a single row. Absent values are empty cells.
func WriteTSV(w io.Writer, r display.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	cells := []string{
		r.Preset,
		formatFloat(r.Size.WidthIn),
		formatFloat(r.Size.HeightIn),
		formatFloat(r.AreaSqIn),
	}
	for _, f := range measure.Fields {
		cells = append(cells, cell(r.Values.Get(f)))
	}
	cells = append(cells, cell(r.Density))
	derived := make([]string, 0, len(r.Derived))
	for _, f := range r.Derived {
		derived = append(derived, f.String())
	}
	cells = append(cells, strings.Join(derived, ","))
	_, err := fmt.Fprintln(w, strings.Join(cells, "\t"))
	return err
}

func cell(v measure.Value) string {
	if !v.Known() {
		return ""
	}
	return display.Format(v)
}
