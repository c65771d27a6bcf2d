package tui

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/evanschultz/jot/internal/app"
)

// Grey ramp used to approximate opacity in the 256-color palette.
const (
	fadeFloor = 236
	fadeCeil  = 252
)

// View handles view.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full screen as a string.
func (m Model) render() string {
	rm := m.ctrl.Render()
	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)
	emptyStyle := lipgloss.NewStyle().Foreground(muted).Italic(true)
	buttonStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)

	header := titleStyle.Render(m.title) + statusStyle.Render("  ["+string(rm.Mode)+"]")

	lines := make([]string, 0, len(rm.Rows))
	for i, row := range rm.Rows {
		lines = append(lines, m.renderRow(i, row, rm.EditingID))
	}
	list := emptyStyle.Render("Nothing to do yet.")
	if len(lines) > 0 {
		list = strings.Join(lines, "\n")
	}

	inputLine := m.input.View() + "  " + buttonStyle.Render("["+rm.ButtonLabel+"]")

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))

	content := strings.Join([]string{
		header,
		"",
		list,
		"",
		inputLine,
		statusStyle.Render(m.status),
	}, "\n")
	if m.height > 0 {
		content = fitLines(content, max(0, m.height-lipgloss.Height(helpLine)))
	}
	full := content + "\n" + helpLine

	if m.showHelp {
		overlay := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Render(m.helpBox.view(m.helpText(), m.width))
		height := lipgloss.Height(full)
		if m.height > 0 {
			height = m.height
		}
		full = overlayOnContent(full, overlay, max(1, m.width), max(1, height))
	}
	return full
}

// renderRow draws one task with its cursor, checkbox, fade and reveal.
func (m Model) renderRow(i int, row app.Row, editingID string) string {
	cursor := "  "
	if m.focus == focusList && i == m.cursor {
		cursor = "› "
	}
	check := "[ ]"
	if row.Completed {
		check = "[x]"
	}
	style := lipgloss.NewStyle().Foreground(fadeColor(row.Opacity))
	text := style.Strikethrough(row.Completed).Render(revealText(row.Text, row.Scale))
	line := cursor + style.Render(check) + " " + text
	switch {
	case row.Removing:
		line += style.Italic(true).Render("  (removing)")
	case row.ID == editingID:
		line += lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Render("  (editing)")
	}
	return line
}

// fadeColor maps opacity in [0,1] onto the grey ramp.
func fadeColor(opacity float64) color.Color {
	opacity = math.Max(0, math.Min(1, opacity))
	level := fadeFloor + int(math.Round(opacity*float64(fadeCeil-fadeFloor)))
	return lipgloss.Color(strconv.Itoa(level))
}

// revealText returns the leading share of text that scale uncovers.
func revealText(text string, scale float64) string {
	rs := []rune(text)
	n := int(math.Ceil(math.Max(0, math.Min(1, scale)) * float64(len(rs))))
	return string(rs[:n])
}

// clamp clamps the requested operation.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	return min(max(v, minV), maxV)
}

// fitLines fits lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		lines = append(lines, make([]string, maxLines-len(lines))...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent centers overlay on top of base.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	centered := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay)
	canvas.Compose(lipgloss.NewLayer(base).X(0).Y(0).Z(0))
	canvas.Compose(lipgloss.NewLayer(centered).X(0).Y(0).Z(10))
	return canvas.Render()
}

// truncate truncates the requested operation.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	if limit <= 1 {
		return string(rs[:limit])
	}
	return string(rs[:limit-1]) + "…"
}
