// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"papercalc/internal/display"
	"papercalc/internal/output"
	"papercalc/internal/pretty"
)

// Options are the presentation switches shared by every format.
type Options struct {
	Header bool // tsv: emit header line
	Pretty bool // text: boxed card instead of plain lines
	Color  bool // text --pretty: ANSI colours
}

// WriteFunc renders one result.
type WriteFunc func(w io.Writer, r display.Result, opt Options) error

// Formats maps an --output value to its writer. Register in init().
var Formats = map[string]WriteFunc{}

// Register adds or replaces the writer for format (last wins).
func Register(format string, fn WriteFunc) { Formats[format] = fn }

// Names lists the registered formats, sorted.
func Names() []string {
	out := make([]string, 0, len(Formats))
	for k := range Formats {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Binary reports whether format produces non-text bytes.
func Binary(format string) bool { return format == "cbor" || format == "msgpack" }

// Write dispatches to the writer registered for format.
func Write(format string, w io.Writer, r display.Result, opt Options) error {
	fn, ok := Formats[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, r, opt)
}

func init() {
	Register("text", func(w io.Writer, r display.Result, opt Options) error {
		if opt.Pretty {
			_, err := io.WriteString(w, pretty.RenderResult(r, pretty.Options{Color: opt.Color})+"\n")
			return err
		}
		return output.WriteText(w, r)
	})
	Register("tsv", func(w io.Writer, r display.Result, opt Options) error {
		return output.WriteTSV(w, r, opt.Header)
	})
	Register("json", func(w io.Writer, r display.Result, _ Options) error {
		return output.WriteJSON(w, r)
	})
	Register("cbor", func(w io.Writer, r display.Result, _ Options) error {
		return output.WriteCBOR(w, r)
	})
	Register("msgpack", func(w io.Writer, r display.Result, _ Options) error {
		return output.WriteMsgpack(w, r)
	})
}
