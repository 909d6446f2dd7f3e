package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/tally/internal/dates"
	"github.com/balkashynov/tally/internal/models"
	"github.com/balkashynov/tally/internal/tui"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(tui.ColorAccentBright))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(tui.ColorDisabledText))
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(tui.ColorSuccess))
	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(tui.ColorWarning))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(tui.ColorError))
	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(tui.ColorPrimaryText)).
			Background(lipgloss.Color(tui.ColorAccentMain)).
			Padding(0, 1)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(tui.ColorBorder)).
			Padding(0, 1)
)

// priorityLabel colours a priority by urgency
func priorityLabel(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return errorStyle.Render("high")
	case models.PriorityLow:
		return successStyle.Render("low")
	default:
		return warningStyle.Render("med")
	}
}

// checkbox renders a completion state
func checkbox(done bool) string {
	if done {
		return successStyle.Render("[x]")
	}
	return "[ ]"
}

// bar draws a fixed width percentage bar
func bar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	return successStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}

// pad right-pads a styled string to a visible width
func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// formatDay renders a calendar day the way day arguments accept it
func formatDay(t time.Time) string {
	return t.Format("02/01/2006")
}

// relativeDay describes how long ago a day was
func relativeDay(day, now time.Time) string {
	switch n := dates.DaysBetween(now, day); {
	case n == 0:
		return "today"
	case n == 1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", n)
	}
}
