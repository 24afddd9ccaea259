package driver

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// highlighter renders a matched substring within its line in bold red,
// but only when w looks like a terminal — piping output to a file or
// another process should see plain text, matching every other grep
// implementation's TTY-gated color convention.
type highlighter struct {
	style  lipgloss.Style
	active bool
}

func newHighlighter(w io.Writer) *highlighter {
	f, ok := w.(*os.File)
	active := ok && isatty.IsTerminal(f.Fd())
	return &highlighter{
		style:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		active: active,
	}
}

// line renders line with its first occurrence of matched highlighted.
// matched is the exact slice FindString returned, so it is guaranteed to
// occur as a substring of line.trim(); line here is the untrimmed
// original so column output still reflects what the user wrote.
func (h *highlighter) line(line, matched string) string {
	if !h.active || matched == "" {
		return line
	}
	idx := strings.Index(line, matched)
	if idx < 0 {
		return line
	}
	return line[:idx] + h.style.Render(matched) + line[idx+len(matched):]
}
