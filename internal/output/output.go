// Package output provides consistent CLI output formatting for the
// one-shot (non-interactive) commands.
package output

import (
	"fmt"
	"io"

	"github.com/pagemark/pagemark/internal/api"
	"github.com/pagemark/pagemark/internal/highlight"
)

// Writer provides formatted output for CLI.
type Writer struct {
	out io.Writer
}

// New creates a new output Writer.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Status prints a status message with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status("⚠️ ", msg)
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status("❌", msg)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Hit prints one numbered search result. The excerpt prefers the
// backend snippet with its markup stripped; plain terminals get no
// inline emphasis.
func (w *Writer) Hit(n int, h api.Hit) {
	w.Statusf("", "%d. %s p.%d", n, h.Document.File, h.Document.Page)

	excerpt := h.Document.Text
	if s := h.TextSnippet(); s != "" {
		excerpt = highlight.Strip(s)
	}
	if excerpt != "" {
		w.Status("", "   "+excerpt)
	}
}
