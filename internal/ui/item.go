package ui

import (
	"fmt"
	"strings"

	"github.com/pagemark/pagemark/internal/api"
	"github.com/pagemark/pagemark/internal/highlight"
)

// renderHit renders one result list entry: a source line with the file
// and page, then the excerpt. The backend's highlight snippet takes
// precedence over the raw paragraph text; marked terms are styled, the
// rest of the snippet is never interpreted as markup.
func renderHit(h api.Hit, selected bool, width int, st Styles) string {
	cursor := "  "
	sourceStyle := st.Label
	if selected {
		cursor = "▸ "
		sourceStyle = st.Selected
	}

	source := fmt.Sprintf("%s p.%d", h.Document.File, h.Document.Page)
	header := st.Active.Render(cursor) + sourceStyle.Render(source)

	excerpt := renderExcerpt(h, width-4, st)
	return header + "\n    " + excerpt
}

// renderExcerpt styles the hit's snippet, falling back to the raw
// paragraph text when the backend sent no highlight for the text field.
func renderExcerpt(h api.Hit, width int, st Styles) string {
	snippet := h.TextSnippet()
	if snippet == "" {
		return st.Label.Render(clip(h.Document.Text, width))
	}

	spans := highlight.Parse(snippet)
	var b strings.Builder
	for _, sp := range spans {
		if sp.Marked {
			b.WriteString(st.Mark.Render(sp.Text))
		} else {
			b.WriteString(st.Label.Render(sp.Text))
		}
	}
	return b.String()
}

// clip truncates a line to fit, marking the cut with an ellipsis.
func clip(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if max < 4 || len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
