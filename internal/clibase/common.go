// internal/clibase/common.go
package clibase

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Common holds output and miscellaneous CLI fields.
type Common struct {
	// Output
	Output  string // text|tsv|json|cbor|msgpack
	Pretty  bool
	Header  bool
	Raw     bool
	Explain bool
	Color   string // auto|always|never

	// Misc
	Config  string
	Quiet   bool
	Verbose bool
	Version bool
}

// Register wires shared flags onto fs and returns a pointer to the “no-header” bool
// that the caller can use to set Common.Header = !noHeader after parsing.
func Register(fs *pflag.FlagSet, c *Common) *bool {
	// Output
	fs.StringVarP(&c.Output, "output", "o", "text", "output: text | tsv | json | cbor | msgpack")
	fs.BoolVar(&c.Pretty, "pretty", false, "boxed result card (text)")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line (tsv)")
	fs.BoolVar(&c.Raw, "raw", false, "full precision, no display rounding")
	fs.BoolVar(&c.Explain, "explain", false, "list each derivation on stderr")
	fs.StringVar(&c.Color, "color", "auto", "colour for --pretty: auto | always | never")

	// Misc
	fs.StringVar(&c.Config, "config", "", "YAML config file (default $PAPERCALC_CONFIG)")
	fs.BoolVarP(&c.Quiet, "quiet", "q", false, "suppress non-essential warnings")
	fs.BoolVar(&c.Verbose, "verbose", false, "debug logging on stderr")
	fs.BoolVarP(&c.Version, "version", "v", false, "print version and exit")

	return &noHeader
}

// AfterParse finalizes header, then runs shared validation against the
// formats the caller supports.
func AfterParse(c *Common, noHeader *bool, formats []string) error {
	c.Header = !*noHeader
	return Validate(c, formats)
}

// Validate applies shared CLI invariants.
func Validate(c *Common, formats []string) error {
	ok := false
	for _, f := range formats {
		if c.Output == f {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("invalid --output %q (want %s)", c.Output, strings.Join(formats, " | "))
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid --color %q (want auto | always | never)", c.Color)
	}
	if c.Quiet && c.Verbose {
		return fmt.Errorf("--quiet conflicts with --verbose")
	}
	return nil
}
