package calcapp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"papercalc-core/basis"
	"papercalc-core/measure"
	"papercalc-core/parse"
	"papercalc-core/resolve"

	"papercalc/internal/calccli"
	"papercalc/internal/cmdutil"
	"papercalc/internal/config"
	"papercalc/internal/display"
	"papercalc/internal/docio"
	"papercalc/internal/interactive"
	"papercalc/internal/version"
	"papercalc/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitIO       = 3
	ExitConflict = 4
	ExitCanceled = 130
)

const name = "papercalc"

// flushExit flushes outw and maps the result onto an exit code.
func flushExit(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return code
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitIO
	}
	return code
}

// quickstart is printed when papercalc runs without arguments.
func quickstart(w io.Writer) {
	_, _ = fmt.Fprintf(w, "%s: fill in any two measurements, get the rest\n\n", name)
	_, _ = fmt.Fprintln(w, "  # caliper and bulk → basis weight, tiao and ream weight")
	_, _ = fmt.Fprintf(w, "  %s --micron 160 --bulk 1.30\n\n", name)
	_, _ = fmt.Fprintln(w, "  # ream weight on the cover basis → gsm")
	_, _ = fmt.Fprintf(w, "  %s --lb 65 --preset cover\n\n", name)
	_, _ = fmt.Fprintln(w, "  # custom basis size, machine-readable")
	_, _ = fmt.Fprintf(w, "  %s --gsm 157 --size 31x43 -o json\n\n", name)
	_, _ = fmt.Fprintln(w, "  # edit a sheet line by line")
	_, _ = fmt.Fprintf(w, "  %s --interactive\n", name)
	_, _ = fmt.Fprintln(w, "\nRun with --help for all flags.")
}

// RunContext is the papercalc command.
func RunContext(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := calccli.NewFlagSet(name)

	if len(argv) == 0 {
		quickstart(outw)
		return flushExit(outw, stderr, ExitOK)
	}

	opts, err := calccli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			calccli.WriteUsage(outw, fs)
			return flushExit(outw, stderr, ExitOK)
		}
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		calccli.WriteUsage(stderr, fs)
		return ExitUsage
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return flushExit(outw, stderr, ExitOK)
	}

	log := cmdutil.NewLogger(stderr, opts.Verbose)

	cfgPath := config.Path(opts.Config)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}
	cat, err := cfg.Catalog()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}
	if cfgPath != "" {
		log.Debug("config loaded", "path", cfgPath, "presets", len(cat.All()), "default_preset", cfg.Preset())
	}

	prec := cfg.Precision.Apply(display.DefaultPrecision)
	if opts.Raw {
		prec = display.RawPrecision
	}

	if opts.ListPresets {
		if err := interactive.WritePresets(outw, cat); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return ExitIO
		}
		return flushExit(outw, stderr, ExitOK)
	}

	if opts.Interactive {
		req, err := buildRequest(opts, cfg, cat, nil)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return ExitUsage
		}
		s := interactive.New(cat, cfg.Preset(), prec)
		s.Preset, s.Custom, s.Input = req.preset, req.custom, req.input
		if err := interactive.Run(ctx, s, stdin, outw, stderr); errors.Is(err, context.Canceled) {
			return flushExit(outw, stderr, ExitCanceled)
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return flushExit(outw, stderr, ExitIO)
		}
		return flushExit(outw, stderr, ExitOK)
	}

	req, err := buildRequest(opts, cfg, cat, stdin)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}
	if req.input.Count() == 0 {
		cmdutil.Warnf(stderr, opts.Quiet, "no measurements given; every field is unknown")
	}
	if !req.size.Valid() {
		cmdutil.Warnf(stderr, opts.Quiet, "basis size %s is not positive; lb ⇄ gsm conversions skipped", req.size)
	}

	ev, steps := display.Evaluate(req.preset, req.size, req.input)
	logSteps(log, steps)
	if opts.Explain {
		explain(stderr, steps)
	}
	for _, c := range ev.Conflicts {
		if opts.Strict {
			_, _ = fmt.Fprintf(stderr, "error: conflicting input: %s\n", c)
		} else {
			cmdutil.Warnf(stderr, opts.Quiet, "conflicting input: %s", c)
		}
	}
	if opts.Strict && len(ev.Conflicts) > 0 {
		return ExitConflict
	}

	res := display.Build(ev, prec)
	wopt := writers.Options{
		Header: opts.Header,
		Pretty: opts.Pretty,
		Color:  useColor(opts.Color, stdout),
	}
	if err := writers.Write(opts.Output, outw, res, wopt); err != nil {
		if writers.IsBrokenPipe(err) {
			return ExitOK
		}
		_, _ = fmt.Fprintln(stderr, err)
		return ExitIO
	}
	return flushExit(outw, stderr, ExitOK)
}

// Run is RunContext without cancellation or stdin.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, strings.NewReader(""), stdout, stderr)
}

// request is the input to one evaluation after flags, document and config
// have been merged.
type request struct {
	preset string
	custom basis.Size
	size   basis.Size
	input  measure.Set
}

// buildRequest merges, lowest priority first: config default preset, the
// --input document (or the sample sheet), then explicit flags.
func buildRequest(opts calccli.Options, cfg *config.Config, cat *basis.Catalog, stdin io.Reader) (request, error) {
	req := request{preset: cfg.Preset()}
	customGiven := false

	switch {
	case opts.Sample:
		req.preset = basis.DefaultPreset
		req.input = interactive.Sample()
	case opts.Input != "":
		doc, err := docio.ReadFile(opts.Input, stdin)
		if err != nil {
			return req, err
		}
		req.input = doc.Set
		if doc.Preset != "" {
			req.preset = doc.Preset
		}
		// A named preset in the document wins over its echoed width/height.
		docCustom := doc.Preset == "" || strings.EqualFold(doc.Preset, basis.Custom)
		if docCustom && doc.Size != "" {
			s, err := basis.ParseSize(doc.Size)
			if err != nil {
				return req, fmt.Errorf("%s: %w", opts.Input, err)
			}
			req.custom = s
			customGiven = true
		}
		if docCustom && doc.WidthIn != 0 {
			req.custom.WidthIn = doc.WidthIn
			customGiven = true
		}
		if docCustom && doc.HeightIn != 0 {
			req.custom.HeightIn = doc.HeightIn
			customGiven = true
		}
	}

	for f, raw := range opts.Fields {
		req.input = req.input.With(f, parse.Number(raw))
	}

	if opts.PresetSet {
		req.preset = opts.Preset
	}
	if opts.Size != "" {
		s, err := basis.ParseSize(opts.Size)
		if err != nil {
			return req, fmt.Errorf("--size: %w", err)
		}
		req.custom = s
		customGiven = true
	}
	if opts.WidthSet {
		req.custom.WidthIn = opts.Width
		customGiven = true
	}
	if opts.HeightSet {
		req.custom.HeightIn = opts.Height
		customGiven = true
	}

	switch {
	case opts.PresetSet && !strings.EqualFold(req.preset, basis.Custom):
		if opts.SizeGiven() {
			return req, fmt.Errorf("a custom basis size needs preset %q, not %q", basis.Custom, req.preset)
		}
		// An explicit preset flag overrides a size read from the document.
	case customGiven:
		req.preset = basis.Custom
	}

	p, ok := cat.Lookup(req.preset)
	if !ok {
		return req, fmt.Errorf("unknown preset %q (have: %s)", req.preset, strings.Join(cat.Names(), ", "))
	}
	req.preset = p.Name
	size, err := cat.Select(p.Name, req.custom)
	if err != nil {
		return req, err
	}
	req.size = size
	return req, nil
}

func logSteps(log *slog.Logger, steps []resolve.Step) {
	for _, s := range steps {
		log.Debug("derived", "pass", s.Pass, "rule", s.Rule, "field", s.Field.String(), "value", s.Value)
	}
}

func explain(w io.Writer, steps []resolve.Step) {
	if len(steps) == 0 {
		_, _ = fmt.Fprintln(w, "# nothing derived")
		return
	}
	for _, s := range steps {
		_, _ = fmt.Fprintf(w, "# pass %d  %-22s %s = %g\n", s.Pass, s.Rule, s.Field, s.Value)
	}
}

// useColor resolves --color. auto means stdout is a terminal and NO_COLOR
// is unset.
func useColor(mode string, stdout io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
