package notify

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	toastBase = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	kindColors = map[Kind]lipgloss.AdaptiveColor{
		KindInfo:    {Light: "#0087AF", Dark: "#5FD7FF"},
		KindSuccess: {Light: "#008700", Dark: "#5FD787"},
		KindError:   {Light: "#AF0000", Dark: "#FF5F87"},
	}

	kindIcons = map[Kind]string{
		KindInfo:    "i",
		KindSuccess: "✓",
		KindError:   "✗",
	}
)

// Render draws n as a bordered box no wider than width (0 means unbounded).
func Render(n Notification, width int) string {
	color := kindColors[n.Kind]
	title := lipgloss.NewStyle().Bold(true).Foreground(color).
		Render(kindIcons[n.Kind] + " " + n.Title)

	lines := []string{title}
	if d := strings.TrimSpace(n.Description); d != "" {
		lines = append(lines, d)
	}

	style := toastBase.BorderForeground(color)
	if width > 4 {
		style = style.MaxWidth(width)
		if w := lipgloss.Width(strings.Join(lines, "\n")) + 4; w > width {
			style = style.Width(width - 2)
		}
	}
	return style.Render(strings.Join(lines, "\n"))
}
