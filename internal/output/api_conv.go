// internal/output/api_conv.go
package output

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"papercalc-core/measure"
	"papercalc/internal/display"
	"papercalc/pkg/api"
)

// evaluationNS namespaces evaluation IDs (UUIDv5).
var evaluationNS = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:papercalc:evaluation"))

// EvaluationID fingerprints the supplied values and the reference size, so
// identical requests get identical IDs regardless of output format.
func EvaluationID(in measure.Set, widthIn, heightIn float64) string {
	var b strings.Builder
	for _, f := range measure.Fields {
		if v, ok := in.Get(f).Get(); ok {
			b.WriteString(f.String())
			b.WriteByte('=')
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			b.WriteByte(';')
		}
	}
	b.WriteString("size=")
	b.WriteString(strconv.FormatFloat(widthIn, 'g', -1, 64))
	b.WriteByte('x')
	b.WriteString(strconv.FormatFloat(heightIn, 'g', -1, 64))
	return uuid.NewSHA1(evaluationNS, []byte(b.String())).String()
}

// ToAPIResult converts a display Result to the stable wire schema (v1).
func ToAPIResult(r display.Result) api.ResultV1 {
	v := api.ResultV1{
		EvaluationID:   EvaluationID(r.Input, r.Size.WidthIn, r.Size.HeightIn),
		Preset:         r.Preset,
		WidthIn:        r.Size.WidthIn,
		HeightIn:       r.Size.HeightIn,
		AreaSqIn:       r.AreaSqIn,
		BasisWeightGSM: r.Values.BasisWeight.Ptr(),
		ThicknessUm:    r.Values.ThicknessMicron.Ptr(),
		ThicknessMm:    r.Values.ThicknessMm.Ptr(),
		ThicknessTiao:  r.Values.ThicknessTiao.Ptr(),
		BulkCm3G:       r.Values.Bulk.Ptr(),
		PoundWeightLb:  r.Values.PoundWeight.Ptr(),
		DensityGCm3:    r.Density.Ptr(),
	}
	for _, f := range r.Derived {
		v.Derived = append(v.Derived, f.String())
	}
	for _, c := range r.Conflicts {
		v.Conflicts = append(v.Conflicts, api.ConflictV1{
			Identity: c.Identity,
			Field:    c.Fields[0].String(),
			Got:      c.Got,
			Want:     c.Want,
		})
	}
	return v
}
