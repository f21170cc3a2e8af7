package calccli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"papercalc-core/basis"
	"papercalc-core/measure"
	"papercalc/internal/clibase"
)

// Options is the parsed papercalc command line.
type Options struct {
	clibase.Common

	// Raw field text, keyed by field; only flags present on the command line.
	Fields map[measure.Field]string

	// Basis size
	Preset    string
	PresetSet bool
	Size      string
	Width     float64
	Height    float64
	WidthSet  bool
	HeightSet bool

	// Modes
	Input       string
	Strict      bool
	Interactive bool
	Sample      bool
	ListPresets bool
}

// SizeGiven reports whether any explicit basis dimension was supplied.
func (o Options) SizeGiven() bool { return o.Size != "" || o.WidthSet || o.HeightSet }

// fieldFlags maps flag names to fields. "um" is a hidden alias of "micron".
var fieldFlags = []struct {
	name  string
	field measure.Field
	usage string
}{
	{"gsm", measure.BasisWeight, "basis weight (g/m²)"},
	{"micron", measure.ThicknessMicron, "thickness (μm)"},
	{"um", measure.ThicknessMicron, "alias of --micron"},
	{"mm", measure.ThicknessMm, "thickness (mm)"},
	{"tiao", measure.ThicknessTiao, "thickness (tiao, 0.01 mm)"},
	{"bulk", measure.Bulk, "bulk (cm³/g)"},
	{"lb", measure.PoundWeight, "ream weight (lb per 500 sheets)"},
}

// NewFlagSet returns an empty flag set that does not print on its own.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	return fs
}

// WriteUsage prints full help for a flag set prepared by ParseArgs.
func WriteUsage(out io.Writer, fs *pflag.FlagSet) {
	name := fs.Name()
	clibase.WriteUsage(out, fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] --gsm 128 --bulk 1.1\n", name)
		_, _ = fmt.Fprintf(out, "  %s [options] --lb 80 --micron 160 --preset coated-gloss\n", name)
		_, _ = fmt.Fprintf(out, "  %s [options] --input sheet.yaml\n", name)
		_, _ = fmt.Fprintf(out, "  %s --interactive\n", name)

		_, _ = fmt.Fprintln(out, "\nMeasurements (any two; blanks or non-numbers count as unknown):")
		_, _ = fmt.Fprintln(out, "      --gsm number         Basis weight (g/m²)")
		_, _ = fmt.Fprintln(out, "      --micron number      Thickness (μm); alias --um")
		_, _ = fmt.Fprintln(out, "      --mm number          Thickness (mm)")
		_, _ = fmt.Fprintln(out, "      --tiao number        Thickness (tiao = 0.01 mm)")
		_, _ = fmt.Fprintln(out, "      --bulk number        Bulk (cm³/g)")
		_, _ = fmt.Fprintln(out, "      --lb number          Ream weight (lb per 500 sheets)")
		_, _ = fmt.Fprintln(out, "      --input file         Read fields from .json/.jsonc/.yaml/.cbor/.msgpack ('-' = JSON on stdin)")

		_, _ = fmt.Fprintln(out, "\nBasis size (lb ⇄ gsm):")
		_, _ = fmt.Fprintf(out, "      --preset string      Grade preset, see --list-presets [%s]\n", basis.DefaultPreset)
		_, _ = fmt.Fprintln(out, "      --size WxH           Custom basis size in inches, e.g. 22.5x28.5")
		_, _ = fmt.Fprintln(out, "      --width/--height in  Custom basis size, one side at a time")
		_, _ = fmt.Fprintf(out, "      --list-presets       List presets and exit [%s]\n", def("list-presets"))

		_, _ = fmt.Fprintln(out, "\nModes:")
		_, _ = fmt.Fprintf(out, "      --strict             Exit 4 when supplied values disagree [%s]\n", def("strict"))
		_, _ = fmt.Fprintf(out, "      --sample             Use the sample sheet (80 lb, bulk 1.35) [%s]\n", def("sample"))
		_, _ = fmt.Fprintf(out, "  -i, --interactive        Recalculate after every line typed on stdin [%s]\n", def("interactive"))
	})
}

// ParseArgs binds every flag on fs and parses argv.
func ParseArgs(fs *pflag.FlagSet, argv []string) (Options, error) {
	o := Options{Fields: make(map[measure.Field]string)}

	noHeader := clibase.Register(fs, &o.Common)

	raw := make(map[string]*string, len(fieldFlags))
	for _, ff := range fieldFlags {
		raw[ff.name] = fs.String(ff.name, "", ff.usage)
	}
	_ = fs.MarkHidden("um")

	fs.StringVar(&o.Preset, "preset", basis.DefaultPreset, "grade preset")
	fs.StringVar(&o.Size, "size", "", "custom basis size WxH (inches)")
	fs.Float64Var(&o.Width, "width", 0, "custom basis width (inches)")
	fs.Float64Var(&o.Height, "height", 0, "custom basis height (inches)")
	fs.BoolVar(&o.ListPresets, "list-presets", false, "list presets and exit")

	fs.StringVar(&o.Input, "input", "", "input document")
	fs.BoolVar(&o.Strict, "strict", false, "fail on conflicting inputs")
	fs.BoolVar(&o.Sample, "sample", false, "use the sample sheet")
	fs.BoolVarP(&o.Interactive, "interactive", "i", false, "interactive session")

	if err := fs.Parse(argv); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected argument(s): %s", strings.Join(fs.Args(), " "))
	}

	for _, ff := range fieldFlags {
		if fs.Changed(ff.name) {
			o.Fields[ff.field] = *raw[ff.name]
		}
	}
	o.PresetSet = fs.Changed("preset")
	o.WidthSet = fs.Changed("width")
	o.HeightSet = fs.Changed("height")

	if err := clibase.AfterParse(&o.Common, noHeader, formats); err != nil {
		return o, err
	}
	if fs.Changed("micron") && fs.Changed("um") {
		return o, fmt.Errorf("--micron conflicts with its alias --um")
	}
	if o.Size != "" && (o.WidthSet || o.HeightSet) {
		return o, fmt.Errorf("--size conflicts with --width/--height")
	}
	if o.SizeGiven() && o.PresetSet && !strings.EqualFold(o.Preset, basis.Custom) {
		return o, fmt.Errorf("--size/--width/--height need --preset custom (got %q)", o.Preset)
	}
	if o.Interactive && (o.Input != "" || o.Sample) {
		return o, fmt.Errorf("--interactive cannot be combined with --input or --sample")
	}
	if o.Interactive && o.Output != "text" {
		return o, fmt.Errorf("--interactive only supports --output text")
	}
	if o.Sample && o.Input != "" {
		return o, fmt.Errorf("--sample conflicts with --input")
	}
	return o, nil
}

// formats is the list of --output values; TestFormatsMatchWriters keeps it in sync.
var formats = []string{"text", "tsv", "json", "cbor", "msgpack"}

// Formats returns the accepted --output values.
func Formats() []string { return append([]string(nil), formats...) }
