// Package interactive is a line-oriented calculator session. Every command
// that edits the sheet re-runs the engine and prints the new result.
package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"papercalc-core/basis"
	"papercalc-core/measure"
	"papercalc-core/parse"

	"papercalc/internal/display"
	"papercalc/internal/output"
)

// ErrQuit is returned by Exec for "quit" and "exit".
var ErrQuit = errors.New("quit")

// Session holds the sheet being edited.
type Session struct {
	Catalog   *basis.Catalog
	Default   string // preset restored by "reset"
	Preset    string
	Custom    basis.Size
	Input     measure.Set
	Precision display.Precision
}

// New returns a session on the default preset with an empty sheet.
func New(cat *basis.Catalog, defaultPreset string, prec display.Precision) *Session {
	return &Session{Catalog: cat, Default: defaultPreset, Preset: defaultPreset, Precision: prec}
}

var fieldNames = map[string]measure.Field{
	"gsm":    measure.BasisWeight,
	"micron": measure.ThicknessMicron,
	"um":     measure.ThicknessMicron,
	"μm":     measure.ThicknessMicron,
	"mm":     measure.ThicknessMm,
	"tiao":   measure.ThicknessTiao,
	"bulk":   measure.Bulk,
	"lb":     measure.PoundWeight,
}

const help = `commands:
  gsm|micron|mm|tiao|bulk|lb <value>   set a field (no value clears it)
  clear [field]                        clear one field or the whole sheet
  preset <name>                        switch basis preset
  size <W>x<H>                         custom basis size in inches
  presets                              list presets
  sample                               load the sample sheet
  reset                                empty sheet, default preset
  show                                 print the current result
  quit`

// Result evaluates the current sheet.
func (s *Session) Result() (display.Result, error) {
	size, err := s.Catalog.Select(s.Preset, s.Custom)
	if err != nil {
		return display.Result{}, err
	}
	ev, _ := display.Evaluate(s.Preset, size, s.Input)
	return display.Build(ev, s.Precision), nil
}

// Exec applies one command line. changed reports whether the sheet or its
// basis moved and the result should be reprinted.
func (s *Session) Exec(line string, out io.Writer) (changed bool, err error) {
	words := strings.Fields(line)
	if len(words) == 0 || strings.HasPrefix(words[0], "#") {
		return false, nil
	}
	cmd := strings.ToLower(words[0])
	args := words[1:]

	if f, ok := fieldNames[cmd]; ok {
		s.Input = s.Input.With(f, parse.Number(strings.Join(args, "")))
		return true, nil
	}

	switch cmd {
	case "quit", "exit", "q":
		return false, ErrQuit
	case "help", "?":
		_, err := fmt.Fprintln(out, help)
		return false, err
	case "show":
		return true, nil
	case "clear":
		if len(args) == 0 {
			s.Input = measure.Set{}
			return true, nil
		}
		f, ok := fieldNames[strings.ToLower(args[0])]
		if !ok {
			return false, fmt.Errorf("unknown field %q", args[0])
		}
		s.Input = s.Input.With(f, measure.None())
		return true, nil
	case "reset":
		s.Input = measure.Set{}
		s.Preset = s.Default
		s.Custom = basis.Size{}
		return true, nil
	case "sample":
		s.Preset = basis.DefaultPreset
		s.Custom = basis.Size{}
		s.Input = Sample()
		return true, nil
	case "preset":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: preset <name>")
		}
		p, ok := s.Catalog.Lookup(args[0])
		if !ok {
			return false, fmt.Errorf("unknown preset %q (have: %s)", args[0], strings.Join(s.Catalog.Names(), ", "))
		}
		s.Preset = p.Name
		return true, nil
	case "size":
		size, err := basis.ParseSize(strings.Join(args, ""))
		if err != nil {
			return false, err
		}
		s.Preset = basis.Custom
		s.Custom = size
		return true, nil
	case "presets":
		return false, WritePresets(out, s.Catalog)
	}
	return false, fmt.Errorf("unknown command %q (try help)", cmd)
}

// Sample is the demonstration sheet: 80 lb at bulk 1.35.
func Sample() measure.Set {
	return measure.Set{PoundWeight: measure.Some(80), Bulk: measure.Some(1.35)}
}

// WritePresets lists the catalog one preset per line.
func WritePresets(w io.Writer, cat *basis.Catalog) error {
	for _, p := range cat.All() {
		size := p.Size.String()
		if p.Name == basis.Custom {
			size = "(user)"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, size, p.Label); err != nil {
			return err
		}
	}
	return nil
}

// Run reads commands from in until EOF, "quit" or ctx is done. Command
// errors are reported on errw and the session continues.
func Run(ctx context.Context, s *Session, in io.Reader, out, errw io.Writer) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	flush := func() error {
		if f, ok := out.(interface{ Flush() error }); ok {
			return f.Flush()
		}
		return nil
	}

	_, _ = fmt.Fprintln(out, "papercalc interactive; type help for commands")
	for {
		_, _ = fmt.Fprint(out, "> ")
		if err := flush(); err != nil {
			return err
		}
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out)
			select {
			case err := <-readErr:
				return err
			default:
				return nil
			}
		}

		changed, err := s.Exec(line, out)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			_, _ = fmt.Fprintf(errw, "error: %v\n", err)
			continue
		}
		if !changed {
			continue
		}
		r, err := s.Result()
		if err != nil {
			_, _ = fmt.Fprintf(errw, "error: %v\n", err)
			continue
		}
		if err := output.WriteText(out, r); err != nil {
			return err
		}
	}
}
