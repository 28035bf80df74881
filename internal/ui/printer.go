package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Printer writes user-facing output. Styles are applied only when the
// destination is a terminal.
type Printer struct {
	w     io.Writer
	color bool

	header lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
	fail   lipgloss.Style
	dim    lipgloss.Style
	agent  lipgloss.Style
}

// New returns a printer for w, coloured when w is a terminal.
func New(w io.Writer) *Printer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return newPrinter(w, color)
}

// NewPlain returns a printer that never colours its output.
func NewPlain(w io.Writer) *Printer {
	return newPrinter(w, false)
}

func newPrinter(w io.Writer, color bool) *Printer {
	return &Printer{
		w:      w,
		color:  color,
		header: lipgloss.NewStyle().Bold(true),
		ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af")),
		fail:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086")),
		agent:  lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true),
	}
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// Writer returns the destination.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Println writes one unstyled line.
func (p *Printer) Println(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Header writes a bold heading line.
func (p *Printer) Header(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(p.header, fmt.Sprintf(format, args...)))
}

// OK writes a "[ OK ]" status line.
func (p *Printer) OK(format string, args ...any) {
	p.status(p.ok, "[ OK ]", format, args...)
}

// Warn writes a "[WARN]" status line.
func (p *Printer) Warn(format string, args ...any) {
	p.status(p.warn, "[WARN]", format, args...)
}

// Fail writes a "[FAIL]" status line.
func (p *Printer) Fail(format string, args ...any) {
	p.status(p.fail, "[FAIL]", format, args...)
}

// Skip writes a "[SKIP]" status line.
func (p *Printer) Skip(format string, args ...any) {
	p.status(p.dim, "[SKIP]", format, args...)
}

func (p *Printer) status(s lipgloss.Style, tag, format string, args ...any) {
	fmt.Fprintf(p.w, "  %s %s\n", p.render(s, tag), fmt.Sprintf(format, args...))
}
