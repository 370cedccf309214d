package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleOrange = lipgloss.NewStyle().Foreground(ColorOrange)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorOrange).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ItemStatusPill returns a colored indicator for a checklist item status.
func ItemStatusPill(s domain.ItemStatus) string {
	switch s {
	case domain.ItemNotStarted:
		return StyleDim.Render("○ " + string(s))
	case domain.ItemInProgress:
		return StyleBlue.Render("◐ " + string(s))
	case domain.ItemUnderReview:
		return StylePurple.Render("◑ " + string(s))
	case domain.ItemComplete:
		return StyleGreen.Render("✔ " + string(s))
	case domain.ItemIssueFlagged:
		return StyleRed.Render("⚑ " + string(s))
	default:
		return StyleDim.Render(string(s))
	}
}

// PropertyStatusPill returns a colored indicator for a property status.
func PropertyStatusPill(s domain.PropertyStatus) string {
	switch s {
	case domain.PropertyActive:
		return StyleGreen.Render("● " + string(s))
	case domain.PropertyOnHold:
		return StyleYellow.Render("○ " + string(s))
	case domain.PropertyClosed:
		return StyleDim.Render("✔ " + string(s))
	case domain.PropertyCancelled:
		return StyleDim.Render("✖ " + string(s))
	default:
		return StyleDim.Render(string(s))
	}
}

func UrgencyStyle(u domain.Urgency) lipgloss.Style {
	switch u {
	case domain.UrgencyOverdue:
		return StyleRed
	case domain.UrgencyUrgent:
		return StyleOrange
	case domain.UrgencySoon:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// PctStyle colors a completion percentage: red below 33, yellow below 66.
func PctStyle(pct float64) lipgloss.Style {
	switch {
	case pct < 33:
		return StyleRed
	case pct < 66:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
