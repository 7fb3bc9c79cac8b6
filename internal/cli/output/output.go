// Package output renders annotation results for the CLI in text or JSON
// form, with terminal styling when stdout is a TTY.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

const (
	// ModeAuto picks text output, styled when stdout is a terminal.
	ModeAuto Mode = "auto"
	// ModeText is plain line-oriented output.
	ModeText Mode = "text"
	// ModeJSON is machine-readable output.
	ModeJSON Mode = "json"
)

// Styles holds the lipgloss styles used by text rendering.
type Styles struct {
	Match   lipgloss.Style
	Badge   lipgloss.Style
	LineNum lipgloss.Style
	Title   lipgloss.Style
	Warning lipgloss.Style
}

// newStyles builds the style set on the given lipgloss renderer.
func newStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Match:   r.NewStyle().Foreground(lipgloss.Color("212")).Underline(true),
		Badge:   r.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		LineNum: r.NewStyle().Foreground(lipgloss.Color("241")),
		Title:   r.NewStyle().Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// Renderer writes CLI output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer for the given writers and mode. An empty
// or auto mode resolves to text; styling is enabled only when out is a
// terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" || mode == ModeAuto {
		mode = ModeText
	}

	lr := lipgloss.NewRenderer(out)
	if !isTerminal(out) {
		lr = lipgloss.NewRenderer(out, termenv.WithProfile(termenv.Ascii))
	}

	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styles: newStyles(lr),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Mode returns the resolved output mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Out returns the destination writer.
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Styles returns the active style set.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Warningf writes a styled warning line to the error stream.
func (r *Renderer) Warningf(format string, args ...any) {
	prefix := r.styles.Warning.Render("warning:")
	_, _ = fmt.Fprintf(r.errOut, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}
