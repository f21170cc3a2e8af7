// Package pretty renders a result as a boxed terminal card.
package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"papercalc-core/measure"
	"papercalc/internal/display"
)

// Options control the card rendering.
type Options struct {
	// Color enables ANSI styling. Without it the card is plain text inside
	// a rounded border.
	Color bool
}

type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	derived lipgloss.Style
	muted   lipgloss.Style
	warn    lipgloss.Style
	box     lipgloss.Style
}

func newStyles(color bool) styles {
	plain := lipgloss.NewStyle()
	s := styles{
		title:   plain,
		label:   plain,
		value:   plain,
		derived: plain,
		muted:   plain,
		warn:    plain,
		box:     plain.Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
	if color {
		s.title = s.title.Bold(true)
		s.label = s.label.Foreground(lipgloss.Color("245"))
		s.value = s.value.Bold(true)
		s.derived = s.derived.Bold(true).Foreground(lipgloss.Color("39"))
		s.muted = s.muted.Foreground(lipgloss.Color("241"))
		s.warn = s.warn.Foreground(lipgloss.Color("214"))
		s.box = s.box.BorderForeground(lipgloss.Color("63"))
	}
	return s
}

// RenderResult draws the quantities in two aligned columns. Derived values
// are styled differently from supplied ones and suffixed with '*'.
func RenderResult(r display.Result, opt Options) string {
	st := newStyles(opt.Color)
	derived := make(map[string]bool, len(r.Derived))
	for _, f := range r.Derived {
		derived[f.String()] = true
	}

	labels := make([]string, 0, len(display.Quantities)+1)
	values := make([]string, 0, len(display.Quantities)+1)
	for _, q := range display.Quantities {
		labels = append(labels, fmt.Sprintf("%s (%s)", q.Label, q.Unit))
		v := display.Format(r.Values.Get(q.Field))
		if derived[q.Field.String()] {
			values = append(values, st.derived.Render(v+" *"))
		} else {
			values = append(values, st.value.Render(v))
		}
	}
	labels = append(labels, "Density (g/cm³)")
	values = append(values, st.value.Render(display.Format(r.Density)))

	width := 0
	for _, l := range labels {
		if w := lipgloss.Width(l); w > width {
			width = w
		}
	}
	rows := make([]string, len(labels))
	for i := range labels {
		pad := strings.Repeat(" ", width-lipgloss.Width(labels[i]))
		rows[i] = st.label.Render(labels[i]) + pad + "  " + values[i]
	}

	title := st.title.Render("Paper properties")
	sub := st.muted.Render(fmt.Sprintf("%s · %s in · %s in²", r.Preset, r.Size, display.Format(measure.Some(r.AreaSqIn))))
	parts := []string{title, sub, "", strings.Join(rows, "\n")}
	if len(r.Derived) > 0 {
		parts = append(parts, "", st.muted.Render("* derived"))
	}
	for _, c := range r.Conflicts {
		parts = append(parts, st.warn.Render("! "+c.String()))
	}
	return st.box.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
