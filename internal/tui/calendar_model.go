package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/tally/internal/dates"
	"github.com/balkashynov/tally/internal/logger"
	"github.com/balkashynov/tally/internal/tracker"
)

// CalendarSource is the completion data behind the calendar.
// *tracker.Tracker satisfies it.
type CalendarSource interface {
	CompletedDaysInMonth(ctx context.Context, entityID string, year int, month time.Month) ([]time.Time, error)
	Toggle(ctx context.Context, entityID string, day time.Time) (bool, error)
	CurrentStreak(ctx context.Context, entityID string) (int, error)
	MonthlyProgress(ctx context.Context, entityID string, year int, month time.Month) (tracker.Progress, error)
}

// monthLoadedMsg carries one month of completion data
type monthLoadedMsg struct {
	year      int
	month     time.Month
	completed map[int]bool
	progress  tracker.Progress
	streak    int
	err       error
}

// toggledMsg reports the outcome of a toggle
type toggledMsg struct {
	day  time.Time
	done bool
	err  error
}

// CalendarModel is a month grid for marking one habit per day
type CalendarModel struct {
	source   CalendarSource
	clock    dates.Clock
	entityID string
	title    string

	cursor    time.Time // always midnight of the selected day
	completed map[int]bool
	progress  tracker.Progress
	streak    int
	loading   bool
	status    string
	err       error

	keys  calendarKeyMap
	help  help.Model
	bar   progress.Model
	width int
}

// NewCalendarModel creates a calendar opened on today's month
func NewCalendarModel(source CalendarSource, clock dates.Clock, entityID, title string) CalendarModel {
	if clock == nil {
		clock = dates.SystemClock{}
	}
	bar := progress.New(progress.WithSolidFill(ColorSuccess), progress.WithWidth(28))
	bar.PercentageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	return CalendarModel{
		source:    source,
		clock:     clock,
		entityID:  entityID,
		title:     title,
		cursor:    dates.StartOfDay(clock.Now()),
		completed: map[int]bool{},
		loading:   true,
		keys:      defaultCalendarKeys(),
		help:      help.New(),
		bar:       bar,
	}
}

// Init loads the current month
func (m CalendarModel) Init() tea.Cmd {
	return m.loadMonth()
}

func (m CalendarModel) loadMonth() tea.Cmd {
	source, id := m.source, m.entityID
	year, month := m.cursor.Year(), m.cursor.Month()

	return func() tea.Msg {
		ctx := context.Background()
		msg := monthLoadedMsg{year: year, month: month, completed: map[int]bool{}}

		days, err := source.CompletedDaysInMonth(ctx, id, year, month)
		if err != nil {
			msg.err = err
			return msg
		}
		for _, d := range days {
			msg.completed[d.Day()] = true
		}
		if msg.progress, err = source.MonthlyProgress(ctx, id, year, month); err != nil {
			msg.err = err
			return msg
		}
		msg.streak, msg.err = source.CurrentStreak(ctx, id)
		return msg
	}
}

func (m CalendarModel) toggle() tea.Cmd {
	source, id, day := m.source, m.entityID, m.cursor
	return func() tea.Msg {
		done, err := source.Toggle(context.Background(), id, day)
		return toggledMsg{day: day, done: done, err: err}
	}
}

// Update handles messages
func (m CalendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case monthLoadedMsg:
		// drop results for a month the cursor has already left
		if msg.year != m.cursor.Year() || msg.month != m.cursor.Month() {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			logger.Error("Failed to load habit calendar", "habit", m.entityID, "error", msg.err)
			return m, nil
		}
		m.completed = msg.completed
		m.progress = msg.progress
		m.streak = msg.streak
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		verb := "Unmarked"
		if msg.done {
			verb = "Marked"
		}
		m.status = fmt.Sprintf("%s %s", verb, msg.day.Format("Mon 02 Jan"))
		return m, m.loadMonth()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m CalendarModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggle()
	case key.Matches(msg, m.keys.Left):
		return m.moveTo(m.cursor.AddDate(0, 0, -1))
	case key.Matches(msg, m.keys.Right):
		return m.moveTo(m.cursor.AddDate(0, 0, 1))
	case key.Matches(msg, m.keys.Up):
		return m.moveTo(m.cursor.AddDate(0, 0, -7))
	case key.Matches(msg, m.keys.Down):
		return m.moveTo(m.cursor.AddDate(0, 0, 7))
	case key.Matches(msg, m.keys.PrevMonth):
		return m.moveTo(shiftMonth(m.cursor, -1))
	case key.Matches(msg, m.keys.NextMonth):
		return m.moveTo(shiftMonth(m.cursor, 1))
	case key.Matches(msg, m.keys.Today):
		return m.moveTo(m.clock.Now())
	}
	return m, nil
}

// moveTo places the cursor on day, never past today, and reloads when the month changes
func (m CalendarModel) moveTo(day time.Time) (tea.Model, tea.Cmd) {
	day = dates.StartOfDay(day)
	if today := dates.StartOfDay(m.clock.Now()); day.After(today) {
		day = today
	}

	sameMonth := day.Year() == m.cursor.Year() && day.Month() == m.cursor.Month()
	m.cursor = day
	m.status = ""
	if sameMonth {
		return m, nil
	}
	m.loading = true
	m.completed = map[int]bool{}
	return m, m.loadMonth()
}

// shiftMonth moves by whole months, clamping the day to the target month's length
func shiftMonth(t time.Time, delta int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(delta), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := dates.DaysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

// Cursor returns the selected day
func (m CalendarModel) Cursor() time.Time {
	return m.cursor
}

var (
	calTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccentBright))
	calMonthStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorPrimaryText)).
			MarginTop(1)
	calWeekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText))
	calDayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText))
	calDoneStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorSuccess))
	calFutureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText))
	calTodayStyle = lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color(ColorAccentBright))
	calCursorStyle = lipgloss.NewStyle().
			Reverse(true)
	calStreakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning))
	calStatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
	calErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true)
	calHelpStyle = lipgloss.NewStyle().
			MarginTop(1)
)

// View renders the calendar
func (m CalendarModel) View() string {
	var b strings.Builder

	b.WriteString(calTitleStyle.Render(m.title))
	b.WriteString("  ")
	b.WriteString(calStreakStyle.Render(streakLabel(m.streak)))
	b.WriteString("\n")

	b.WriteString(calMonthStyle.Render(m.cursor.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")

	b.WriteString(m.bar.ViewAs(m.progress.Percentage / 100))
	b.WriteString(fmt.Sprintf("  %d/%d days\n", m.progress.CompletedDays, m.progress.TotalDays))

	switch {
	case m.err != nil:
		b.WriteString(calErrorStyle.Render("❌ " + m.err.Error()))
	case m.loading:
		b.WriteString(calStatusStyle.Render("Loading..."))
	default:
		b.WriteString(calStatusStyle.Render(m.status))
	}
	b.WriteString("\n")

	b.WriteString(calHelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderGrid draws the month as weeks starting on Sunday
func (m CalendarModel) renderGrid() string {
	var b strings.Builder
	for _, wd := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		b.WriteString(calWeekdayStyle.Render(fmt.Sprintf(" %s ", wd)))
	}
	b.WriteString("\n")

	year, month := m.cursor.Year(), m.cursor.Month()
	first := dates.StartOfMonth(year, month, m.cursor.Location())
	lead := int(first.Weekday())
	b.WriteString(strings.Repeat("    ", lead))

	today := dates.StartOfDay(m.clock.Now())
	days := dates.DaysInMonth(year, month)
	for d := 1; d <= days; d++ {
		day := first.AddDate(0, 0, d-1)
		b.WriteString(m.renderDay(day, today))
		if (lead+d)%7 == 0 && d != days {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m CalendarModel) renderDay(day, today time.Time) string {
	label := fmt.Sprintf("%2d", day.Day())
	if m.completed[day.Day()] {
		label = fmt.Sprintf("%2d✓", day.Day())
	} else {
		label += " "
	}

	style := calDayStyle
	switch {
	case day.After(today):
		style = calFutureStyle
	case m.completed[day.Day()]:
		style = calDoneStyle
	case day.Equal(today):
		style = calTodayStyle
	}
	if day.Equal(m.cursor) {
		style = style.Inherit(calCursorStyle)
	}
	return " " + style.Render(label)
}

func streakLabel(streak int) string {
	switch streak {
	case 0:
		return "no streak yet"
	case 1:
		return "🔥 1 day streak"
	default:
		return fmt.Sprintf("🔥 %d day streak", streak)
	}
}
