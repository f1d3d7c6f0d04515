package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const dateLayout = "2006-01-02"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatDate renders a YYYY-MM-DD date, or a dim dash for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return Dim("—")
	}
	return t.Format(dateLayout)
}

// Shift renders the calendar-day movement from old to new, e.g. "+30d".
func Shift(old *time.Time, new time.Time) string {
	if old == nil {
		return StyleBlue.Render("new")
	}
	days := int(new.Sub(*old).Hours() / 24)
	switch {
	case days == 0:
		return Dim("·")
	case days > 0:
		return StyleYellow.Render(fmt.Sprintf("+%dd", days))
	default:
		return StyleGreen.Render(fmt.Sprintf("%dd", days))
	}
}
