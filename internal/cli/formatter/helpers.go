package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

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

// RelativeDays phrases a calendar-day distance from today.
func RelativeDays(days int) string {
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueLabel renders an item's due date with a colored relative hint. Open
// items due within three days or overdue are red, within a week yellow.
func DueLabel(item *domain.ChecklistItem, now time.Time) string {
	if item.DueDate == nil {
		return Dim("--")
	}
	date := domain.FormatDate(item.DueDate)
	if !item.IsOpen() {
		return Dim(date)
	}
	days := domain.DaysUntil(*item.DueDate, now)
	hint := UrgencyStyle(domain.UrgencyFor(*item.DueDate, now)).Render(RelativeDays(days))
	return date + " " + hint
}

// orDash substitutes a dimmed dash for blank values.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}

// Truncate shortens s to max visible runes with an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 1 || len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
