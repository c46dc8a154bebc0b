package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// brickRuns are the block widths used for the splash rows. Rows cycle
// through offsets into this sequence so the joints never line up,
// giving the pane its masonry look.
var brickRuns = []int{7, 4, 9, 5, 6, 8, 3, 7, 5}

// Splash renders the decorative idle pane shown before any search and
// after every reset. Purely cosmetic; it is replaced by the result list
// as soon as results (or an error) arrive.
func Splash(width, height int, st Styles) string {
	if width < 10 || height < 4 {
		return ""
	}

	rows := height - 2
	var lines []string
	for row := 0; row < rows; row++ {
		lines = append(lines, brickRow(width, row))
	}

	title := st.Header.Render("pagemark") + st.Label.Render("  document snippet search")
	body := strings.Join(lines, "\n")

	return lipgloss.JoinVertical(lipgloss.Center, title, st.Splash.Render(body))
}

// brickRow lays one row of bricks, shifting the pattern by the row
// index so vertical joints stagger.
func brickRow(width, row int) string {
	var b strings.Builder
	n := 0
	i := row % len(brickRuns)

	// Odd rows start with a partial brick.
	if row%2 == 1 {
		half := brickRuns[i] / 2
		b.WriteString(strings.Repeat("▒", half))
		b.WriteString(" ")
		n += half + 1
	}
	for n < width {
		run := brickRuns[i%len(brickRuns)]
		b.WriteString(strings.Repeat("▒", run))
		b.WriteString(" ")
		n += run + 1
		i++
	}

	r := []rune(b.String())
	if len(r) > width {
		r = r[:width]
	}
	return string(r)
}
