package output

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"papercalc-core/basis"
	"papercalc-core/measure"
	"papercalc-core/resolve"
	"papercalc/internal/codec"
	"papercalc/internal/display"
	"papercalc/pkg/api"
)

func scenario() display.Result {
	in := measure.Set{ThicknessMicron: measure.Some(160), Bulk: measure.Some(1.30)}
	area := basis.Standard.Area()
	return display.Build(display.Evaluation{
		Preset:    "woodfree-A",
		Size:      basis.Standard,
		Input:     in,
		Output:    resolve.Resolve(in, area),
		Conflicts: resolve.Check(in, area, 0),
	}, display.DefaultPrecision)
}

func TestTSVHeader_Stable(t *testing.T) {
	const want = "preset\twidth_in\theight_in\tarea_sq_in\tbasis_weight_gsm\tthickness_um\tthickness_mm\tthickness_tiao\tbulk_cm3_g\tpound_weight_lb\tdensity_g_cm3\tderived"
	if TSVHeader != want {
		t.Fatalf("TSVHeader changed:\n got:  %q\n want: %q", TSVHeader, want)
	}
}

func TestWriteTSV(t *testing.T) {
	var b bytes.Buffer
	if err := WriteTSV(&b, scenario(), true); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 2 || lines[0] != TSVHeader {
		t.Fatalf("unexpected output %q", b.String())
	}
	const row = "woodfree-A\t25\t38\t950\t123.08\t160\t0.16\t16\t1.3\t83.15\t0.769\tbasis_weight,thickness_mm,thickness_tiao,pound_weight"
	if lines[1] != row {
		t.Fatalf("row:\n got:  %q\n want: %q", lines[1], row)
	}

	b.Reset()
	r := scenario()
	r.Values = measure.Set{Bulk: measure.Some(1.3)}
	r.Density = measure.None()
	r.Derived = nil
	if err := WriteTSV(&b, r, false); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(b.String(), "\t"); got != 11 {
		t.Fatalf("want 11 tabs for empty cells, got %d in %q", got, b.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var b bytes.Buffer
	if err := WriteJSON(&b, scenario()); err != nil {
		t.Fatal(err)
	}
	var got api.ResultV1
	if err := json.Unmarshal(b.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.BasisWeightGSM == nil || *got.BasisWeightGSM != 123.08 {
		t.Fatalf("gsm = %v", got.BasisWeightGSM)
	}
	if got.PoundWeightLb == nil || *got.PoundWeightLb != 83.15 {
		t.Fatalf("lb = %v", got.PoundWeightLb)
	}
	if len(got.Conflicts) != 0 || len(got.Derived) != 4 {
		t.Fatalf("derived/conflicts = %v / %v", got.Derived, got.Conflicts)
	}
	if !strings.Contains(b.String(), `"area_sq_in": 950`) {
		t.Fatalf("missing area in %s", b.String())
	}
}

func TestBinaryFormatsRoundTrip(t *testing.T) {
	want := ToAPIResult(scenario())

	var cb bytes.Buffer
	if err := WriteCBOR(&cb, scenario()); err != nil {
		t.Fatal(err)
	}
	var fromCBOR api.ResultV1
	if err := codec.UnmarshalCBOR(cb.Bytes(), &fromCBOR); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fromCBOR, want) {
		t.Fatalf("cbor:\n got  %+v\n want %+v", fromCBOR, want)
	}

	var mb bytes.Buffer
	if err := WriteMsgpack(&mb, scenario()); err != nil {
		t.Fatal(err)
	}
	var fromMsgpack api.ResultV1
	if err := codec.UnmarshalMsgpack(mb.Bytes(), &fromMsgpack); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fromMsgpack, want) {
		t.Fatalf("msgpack:\n got  %+v\n want %+v", fromMsgpack, want)
	}
}

func TestWriteTextMarksDerived(t *testing.T) {
	r := scenario()
	r.Conflicts = []resolve.Conflict{{Identity: "tiao = μm/10", Fields: []measure.Field{measure.ThicknessTiao}, Got: 50, Want: 10}}
	var b bytes.Buffer
	if err := WriteText(&b, r); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{
		"Basis weight (g/m²)\t123.08 *\n",
		"Thickness (μm)\t160\n",
		"Apparent density (g/cm³)\t0.769\n",
		"Basis size (in)\twoodfree-A 25x38 = 950 in²\n",
		"# conflict: tiao = μm/10: thickness_tiao is 50",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestEvaluationID(t *testing.T) {
	in := measure.Set{ThicknessMicron: measure.Some(160), Bulk: measure.Some(1.30)}
	a := EvaluationID(in, 25, 38)
	if a != EvaluationID(in, 25, 38) {
		t.Fatalf("ID not deterministic")
	}
	if a == EvaluationID(in, 20, 26) {
		t.Fatalf("ID should depend on size")
	}
	if a == EvaluationID(measure.Set{ThicknessMicron: measure.Some(160)}, 25, 38) {
		t.Fatalf("ID should depend on inputs")
	}
	if len(a) != 36 {
		t.Fatalf("not a UUID: %q", a)
	}
}
