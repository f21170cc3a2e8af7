// Package docio decodes a measurement document: the six fields plus an
// optional basis size, in JSON (comments allowed), YAML, CBOR or msgpack.
//
// Keys follow the v1 result schema, so a json/cbor/msgpack result can be
// fed back in as input. Short aliases (gsm, um, mm, tiao, bulk, lb) are
// accepted. Values may be numbers or strings; strings go through the same
// lenient parsing as command-line fields.
package docio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"papercalc-core/measure"
	"papercalc-core/parse"
	"papercalc/internal/codec"
)

// Format is a document encoding.
type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	CBOR    Format = "cbor"
	Msgpack Format = "msgpack"
)

// Document is a decoded input.
type Document struct {
	Set      measure.Set
	Preset   string
	Size     string  // "WxH", empty if not given
	WidthIn  float64 // 0 if not given
	HeightIn float64 // 0 if not given
}

var fieldKeys = map[string]measure.Field{
	"basis_weight_gsm": measure.BasisWeight,
	"basis_weight":     measure.BasisWeight,
	"gsm":              measure.BasisWeight,
	"thickness_um":     measure.ThicknessMicron,
	"micron":           measure.ThicknessMicron,
	"um":               measure.ThicknessMicron,
	"thickness_mm":     measure.ThicknessMm,
	"mm":               measure.ThicknessMm,
	"thickness_tiao":   measure.ThicknessTiao,
	"tiao":             measure.ThicknessTiao,
	"bulk_cm3_g":       measure.Bulk,
	"bulk":             measure.Bulk,
	"pound_weight_lb":  measure.PoundWeight,
	"pound_weight":     measure.PoundWeight,
	"lb":               measure.PoundWeight,
}

// Output-only keys of the v1 schema; ignored on input.
var ignoredKeys = map[string]bool{
	"evaluation_id": true,
	"area_sq_in":    true,
	"density_g_cm3": true,
	"conflicts":     true,
}

// FormatFor picks a format from a file extension. Unknown extensions and
// "-" (stdin) are JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".cbor":
		return CBOR
	case ".msgpack", ".mpk", ".mp":
		return Msgpack
	}
	return JSON
}

// ReadFile decodes the document at path; "-" reads JSON from stdin.
func ReadFile(path string, stdin io.Reader) (Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("read input: %w", err)
	}
	doc, err := Decode(data, FormatFor(path))
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode parses data in the given format.
func Decode(data []byte, f Format) (Document, error) {
	var raw map[string]any
	var err error
	switch f {
	case JSON:
		err = json.Unmarshal(jsonc.ToJSON(data), &raw)
	case YAML:
		err = yaml.Unmarshal(data, &raw)
	case CBOR:
		err = codec.UnmarshalCBOR(data, &raw)
	case Msgpack:
		err = codec.UnmarshalMsgpack(data, &raw)
	default:
		return Document{}, fmt.Errorf("unknown input format %q", f)
	}
	if err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", f, err)
	}
	return fromMap(raw)
}

func fromMap(raw map[string]any) (Document, error) {
	var doc Document
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var unknown []string
	var derived []measure.Field
	for _, k := range keys {
		v := raw[k]
		key := strings.ToLower(k)
		if f, ok := fieldKeys[key]; ok {
			if doc.Set.Get(f).Known() {
				continue // first key in sorted order wins for aliases
			}
			doc.Set = doc.Set.With(f, number(v))
			continue
		}
		switch key {
		case "preset":
			s, ok := v.(string)
			if !ok {
				return Document{}, fmt.Errorf("preset must be a string, got %T", v)
			}
			doc.Preset = s
		case "size":
			s, ok := v.(string)
			if !ok {
				return Document{}, fmt.Errorf("size must be a string like \"25x38\", got %T", v)
			}
			doc.Size = s
		case "width_in", "width":
			doc.WidthIn = number(v).Or(0)
		case "height_in", "height":
			doc.HeightIn = number(v).Or(0)
		case "derived":
			fs, err := derivedFields(v)
			if err != nil {
				return Document{}, err
			}
			derived = fs
		default:
			if !ignoredKeys[key] {
				unknown = append(unknown, k)
			}
		}
	}
	if len(unknown) > 0 {
		return Document{}, fmt.Errorf("unknown field(s): %s", strings.Join(unknown, ", "))
	}
	// Fields a previous run derived were rounded for display; only the
	// supplied ones go back into the engine.
	for _, f := range derived {
		doc.Set = doc.Set.With(f, measure.None())
	}
	return doc, nil
}

// derivedFields reads the "derived" list of a v1 result.
func derivedFields(v any) ([]measure.Field, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("derived must be a list of field names, got %T", v)
	}
	out := make([]measure.Field, 0, len(list))
	for _, item := range list {
		name, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("derived: field name must be a string, got %T", item)
		}
		f, ok := fieldKeys[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("derived: unknown field %q", name)
		}
		out = append(out, f)
	}
	return out, nil
}

// number accepts every numeric type the four decoders produce, plus strings.
// A nil (JSON null) is absent.
func number(v any) measure.Value {
	switch n := v.(type) {
	case nil:
		return measure.None()
	case string:
		return parse.Number(n)
	case float64:
		return measure.Some(n)
	case float32:
		return measure.Some(float64(n))
	case int:
		return measure.Some(float64(n))
	case int8:
		return measure.Some(float64(n))
	case int16:
		return measure.Some(float64(n))
	case int32:
		return measure.Some(float64(n))
	case int64:
		return measure.Some(float64(n))
	case uint:
		return measure.Some(float64(n))
	case uint8:
		return measure.Some(float64(n))
	case uint16:
		return measure.Some(float64(n))
	case uint32:
		return measure.Some(float64(n))
	case uint64:
		return measure.Some(float64(n))
	case json.Number:
		return parse.Number(n.String())
	}
	return measure.None()
}
