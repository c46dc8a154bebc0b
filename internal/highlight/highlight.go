// Package highlight parses backend result snippets.
//
// Snippets arrive as plain text with the matched terms wrapped in
// <mark>...</mark> tags. Parse splits a snippet into spans so the
// renderer can style matches without ever interpreting the text as
// markup. Malformed tags degrade to plain text instead of failing.
package highlight

import "strings"

const (
	openTag  = "<mark>"
	closeTag = "</mark>"
)

// Span is one run of snippet text. Marked spans are matched terms.
type Span struct {
	Text   string
	Marked bool
}

// Parse splits a snippet into plain and marked spans, in order.
// An unclosed <mark> keeps the rest of the snippet as plain text,
// tag included, so broken markup never hides content.
func Parse(snippet string) []Span {
	if snippet == "" {
		return nil
	}

	var spans []Span
	rest := snippet
	for {
		open := strings.Index(rest, openTag)
		if open < 0 {
			break
		}
		body := rest[open+len(openTag):]
		end := strings.Index(body, closeTag)
		if end < 0 {
			break
		}
		if open > 0 {
			spans = append(spans, Span{Text: rest[:open]})
		}
		spans = append(spans, Span{Text: body[:end], Marked: true})
		rest = body[end+len(closeTag):]
	}
	if rest != "" {
		spans = append(spans, Span{Text: rest})
	}
	return spans
}

// Strip returns the snippet with all well-formed mark tags removed.
func Strip(snippet string) string {
	var b strings.Builder
	for _, sp := range Parse(snippet) {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// Terms returns the distinct marked terms in order of first appearance.
func Terms(snippet string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, sp := range Parse(snippet) {
		if !sp.Marked {
			continue
		}
		if _, ok := seen[sp.Text]; ok {
			continue
		}
		seen[sp.Text] = struct{}{}
		terms = append(terms, sp.Text)
	}
	return terms
}
