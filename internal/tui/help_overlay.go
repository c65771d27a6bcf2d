package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Wrap bounds for the help overlay body.
const (
	helpMinWrap = 32
	helpMaxWrap = 64
)

// helpMarkdown is the body of the help overlay. The %s verbs take the
// toggle, edit, delete and copy key labels in that order.
const helpMarkdown = `
# Keys

**Input**

| key | action |
|---|---|
| enter | add the draft, or save the edit |
| tab | focus the list |
| esc | cancel the edit, else focus the list |

**List**

| key | action |
|---|---|
| j / k | move |
| %s | toggle done |
| %s | edit into the input |
| %s | delete (fades out) |
| %s | copy text |
| ? | close this help |
| q | quit |
`

// helpOverlay holds the last rendered help body. Output is reused until
// the wrap width or the key labels change.
type helpOverlay struct {
	wrap   int
	source string
	out    string
}

// helpWrap leaves room for the overlay border on narrow terminals and
// caps line length on wide ones.
func helpWrap(termWidth int) int {
	if termWidth <= 0 {
		return helpMaxWrap
	}
	return clamp(termWidth-8, helpMinWrap, helpMaxWrap)
}

func (h *helpOverlay) view(source string, termWidth int) string {
	wrap := helpWrap(termWidth)
	if h.out != "" && h.wrap == wrap && h.source == source {
		return h.out
	}
	h.wrap, h.source = wrap, source
	h.out = renderHelp(source, wrap)
	return h.out
}

// renderHelp styles source with glamour, or returns it trimmed when the
// renderer cannot be built.
func renderHelp(source string, wrap int) string {
	source = strings.TrimSpace(source)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return source
	}
	out, err := r.Render(source)
	if err != nil {
		return source
	}
	return strings.Trim(out, "\n")
}

func (m Model) helpText() string {
	return fmt.Sprintf(helpMarkdown,
		m.keys.toggle.Help().Key,
		m.keys.edit.Help().Key,
		m.keys.delete.Help().Key,
		m.keys.copy.Help().Key,
	)
}
