// internal/clibase/usage.go
package clibase

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"papercalc/internal/version"
)

// WriteUsage prints the shared help text for fs to out.
// extra prints tool-specific sections before the shared Output/Misc blocks.
func WriteUsage(out io.Writer, fs *pflag.FlagSet, name string, extra func(out io.Writer, def func(string) string)) {
	def := func(flagName string) string {
		if f := fs.Lookup(flagName); f != nil {
			return f.DefValue
		}
		return ""
	}

	// Header
	fmt.Fprintf(out, "%s – paper basis weight / caliper / bulk calculator\n\n", name)
	fmt.Fprintf(out, "Version: %s\n\n", version.Version)

	if extra != nil {
		extra(out, def)
	}

	fmt.Fprintln(out, "\nOutput:")
	fmt.Fprintf(out, "  -o, --output string      Output: text | tsv | json | cbor | msgpack [%s]\n", def("output"))
	fmt.Fprintf(out, "      --pretty             Boxed result card (text) [%s]\n", def("pretty"))
	fmt.Fprintf(out, "      --color string       Colour for --pretty: auto | always | never [%s]\n", def("color"))
	fmt.Fprintf(out, "      --no-header          Suppress header line (tsv) [%s]\n", def("no-header"))
	fmt.Fprintf(out, "      --raw                Full precision, no display rounding [%s]\n", def("raw"))
	fmt.Fprintf(out, "      --explain            List each derivation on stderr [%s]\n", def("explain"))

	fmt.Fprintln(out, "\nMiscellaneous:")
	fmt.Fprintln(out, "      --config file        YAML config (default $PAPERCALC_CONFIG)")
	fmt.Fprintf(out, "  -q, --quiet              Suppress non-essential warnings [%s]\n", def("quiet"))
	fmt.Fprintf(out, "      --verbose            Debug logging on stderr [%s]\n", def("verbose"))
	fmt.Fprintln(out, "  -v, --version            Print version and exit")
	fmt.Fprintln(out, "  -h, --help               Show this help and exit")
}
