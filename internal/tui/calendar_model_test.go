package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/tally/internal/dates"
	"github.com/balkashynov/tally/internal/tracker"
)

// 2026-10-17 is a Saturday
var calNow = time.Date(2026, time.October, 17, 15, 30, 0, 0, time.Local)

type fakeSource struct {
	days    map[time.Time]bool
	toggled []time.Time
	err     error
}

func newFakeSource(days ...time.Time) *fakeSource {
	f := &fakeSource{days: map[time.Time]bool{}}
	for _, d := range days {
		f.days[dates.StartOfDay(d)] = true
	}
	return f
}

func (f *fakeSource) CompletedDaysInMonth(_ context.Context, _ string, year int, month time.Month) ([]time.Time, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []time.Time
	for d := range f.days {
		if d.Year() == year && d.Month() == month {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeSource) Toggle(_ context.Context, _ string, day time.Time) (bool, error) {
	f.toggled = append(f.toggled, day)
	day = dates.StartOfDay(day)
	if f.days[day] {
		delete(f.days, day)
		return false, nil
	}
	f.days[day] = true
	return true, nil
}

func (f *fakeSource) CurrentStreak(_ context.Context, _ string) (int, error) {
	var stamps []time.Time
	for d := range f.days {
		stamps = append(stamps, d)
	}
	return tracker.Streak(stamps, calNow), nil
}

func (f *fakeSource) MonthlyProgress(ctx context.Context, id string, year int, month time.Month) (tracker.Progress, error) {
	days, err := f.CompletedDaysInMonth(ctx, id, year, month)
	if err != nil {
		return tracker.Progress{}, err
	}
	return tracker.NewProgress(len(days), dates.DaysInMonth(year, month)), nil
}

func newTestCalendar(t *testing.T, src *fakeSource) CalendarModel {
	t.Helper()
	m := NewCalendarModel(src, dates.FixedClock{At: calNow}, "h-1", "Read")
	return feed(t, m, m.Init())
}

// feed runs cmd and passes its message back into the model
func feed(t *testing.T, m CalendarModel, cmd tea.Cmd) CalendarModel {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(CalendarModel)
}

func press(m CalendarModel, msg tea.KeyMsg) (CalendarModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(CalendarModel), cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestCalendarInitialLoad(t *testing.T) {
	src := newFakeSource(calNow, calNow.AddDate(0, 0, -1), time.Date(2026, time.September, 3, 0, 0, 0, 0, time.Local))
	m := newTestCalendar(t, src)

	assert.False(t, m.loading)
	assert.True(t, m.completed[17])
	assert.True(t, m.completed[16])
	assert.False(t, m.completed[3])
	assert.Equal(t, 2, m.streak)
	assert.Equal(t, 2, m.progress.CompletedDays)
	assert.Equal(t, 31, m.progress.TotalDays)

	view := m.View()
	assert.Contains(t, view, "Read")
	assert.Contains(t, view, "October 2026")
	assert.Contains(t, view, "2 day streak")
	assert.Contains(t, view, "2/31 days")
}

func TestCalendarCursorNeverPassesToday(t *testing.T) {
	m := newTestCalendar(t, newFakeSource())

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd)
	assert.True(t, m.Cursor().Equal(dates.StartOfDay(calNow)))

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.True(t, m.Cursor().Equal(dates.StartOfDay(calNow)))

	m, _ = press(m, runeKey(']'))
	assert.True(t, m.Cursor().Equal(dates.StartOfDay(calNow)))
}

func TestCalendarMovement(t *testing.T) {
	m := newTestCalendar(t, newFakeSource())

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Nil(t, cmd, "same month needs no reload")
	assert.Equal(t, 16, m.Cursor().Day())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 9, m.Cursor().Day())

	m, _ = press(m, runeKey('t'))
	assert.Equal(t, 17, m.Cursor().Day())
}

func TestCalendarMonthPaging(t *testing.T) {
	src := newFakeSource(time.Date(2026, time.September, 3, 0, 0, 0, 0, time.Local))
	m := newTestCalendar(t, src)

	m, cmd := press(m, runeKey('['))
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.Equal(t, time.September, m.Cursor().Month())
	assert.Equal(t, 17, m.Cursor().Day())

	m = feed(t, m, cmd)
	assert.True(t, m.completed[3])
	assert.Equal(t, 30, m.progress.TotalDays)
	assert.Contains(t, m.View(), "September 2026")
}

func TestCalendarIgnoresStaleMonth(t *testing.T) {
	m := newTestCalendar(t, newFakeSource())

	_, stale := press(m, runeKey('['))
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})

	// the September load arrives after the cursor is back in October
	m = feed(t, m, stale)
	assert.Equal(t, 31, m.progress.TotalDays)
}

func TestShiftMonthClampsDay(t *testing.T) {
	jan31 := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.Local), shiftMonth(jan31, 1))
	assert.Equal(t, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.Local), shiftMonth(jan31, -1))
}

func TestCalendarToggle(t *testing.T) {
	src := newFakeSource()
	m := newTestCalendar(t, src)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeySpace})
	require.NotNil(t, cmd)

	next, reload := m.Update(cmd())
	m = next.(CalendarModel)
	require.Len(t, src.toggled, 1)
	assert.True(t, src.toggled[0].Equal(dates.StartOfDay(calNow)))
	assert.Contains(t, m.status, "Marked")

	m = feed(t, m, reload)
	assert.True(t, m.completed[17])
	assert.Equal(t, 1, m.streak)

	// enter toggles back off
	m, cmd = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	next, reload = m.Update(cmd())
	m = feed(t, next.(CalendarModel), reload)
	assert.False(t, m.completed[17])
	assert.Contains(t, m.status, "Unmarked")
}

func TestCalendarLoadError(t *testing.T) {
	src := newFakeSource()
	src.err = errors.New("disk on fire")
	m := newTestCalendar(t, src)

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "disk on fire")
}

func TestCalendarQuit(t *testing.T) {
	m := newTestCalendar(t, newFakeSource())

	for _, k := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := press(m, k)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}
