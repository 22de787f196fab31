package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/vidsqueeze/internal/term"
)

const bannerArt = `       _     _
__   _(_) __| |___  __ _ _   _  ___  ___ _______
\ \ / / |/ _` + "`" + ` / __|/ _` + "`" + ` | | | |/ _ \/ _ \_  / _ \
 \ V /| | (_| \__ \ (_| | |_| |  __/  __// /  __/
  \_/ |_|\__,_|___/\__, |\__,_|\___|\___/___\___|
                      |_|                        `

// PrintBanner writes the ASCII banner and version line to w.
func PrintBanner(w io.Writer, version string) {
	fmt.Fprintln(w, term.Magenta.Render(bannerArt))
	fmt.Fprintln(w, term.Faint.Render("v"+version))
}

// Field is one labeled value in a [Box].
type Field struct {
	Label string
	Value string
}

// Box renders fields as an aligned, bordered block under a title.
func Box(title string, fields []Field) string {
	r := term.Renderer()
	labelWidth := 0
	for _, f := range fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label))
	}
	label := r.NewStyle().Bold(true).Width(labelWidth + 2)

	var b strings.Builder
	b.WriteString(r.NewStyle().Bold(true).Render(title))
	for _, f := range fields {
		b.WriteString("\n")
		b.WriteString(label.Render(f.Label+":") + f.Value)
	}
	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("13")).
		Padding(0, 1).
		Render(b.String())
}

// Table renders rows under headers with columns padded to their widest cell.
// Rows shorter than headers are padded with empty cells.
func Table(headers []string, rows [][]string) string {
	r := term.Renderer()
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = style.Width(w).Render(cell)
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	var b strings.Builder
	b.WriteString(line(headers, r.NewStyle().Bold(true).Underline(true)))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(line(row, r.NewStyle()))
	}
	return b.String()
}
