package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/tally/internal/dates"
)

// RunHabitCalendar starts the interactive habit calendar
func RunHabitCalendar(source CalendarSource, clock dates.Clock, habitID, habitName string) error {
	model := NewCalendarModel(source, clock, habitID, habitName)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Handle exit messages after TUI closes
	if m, ok := finalModel.(CalendarModel); ok && m.err != nil {
		fmt.Printf("❌ Error: %v\n", m.err)
	}
	return nil
}
