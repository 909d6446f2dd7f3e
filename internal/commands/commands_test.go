package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/tally/internal/dates"
	"github.com/balkashynov/tally/internal/db"
	apperrors "github.com/balkashynov/tally/internal/errors"
	"github.com/balkashynov/tally/internal/ids"
	"github.com/balkashynov/tally/internal/models"
)

var testNow = time.Date(2026, time.October, 17, 15, 30, 0, 0, time.Local)

func newTestApp(t *testing.T) *app {
	t.Helper()
	clock := dates.FixedClock{At: testNow}
	store, err := db.Open(filepath.Join(t.TempDir(), "tally.db"),
		db.WithClock(clock),
		db.WithIDGenerator(&ids.Sequence{Prefix: "id"}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return &app{store: store, clock: clock}
}

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, a *app, args ...string) string {
	t.Helper()
	out, err := run(t, a, args...)
	require.NoError(t, err, out)
	return out
}

func TestVersionAndHelpSkipStore(t *testing.T) {
	a := &app{clock: dates.FixedClock{At: testNow}}

	out := mustRun(t, a, "version")
	assert.Contains(t, out, "tally dev")

	out = mustRun(t, a, "help")
	assert.Contains(t, out, "COMMANDS:")
	assert.Nil(t, a.store)
}

func TestTaskAddWithSmartSyntax(t *testing.T) {
	a := newTestApp(t)

	out := mustRun(t, a, "task", "add", "Fix the sink @home +high due:2days")
	assert.Contains(t, out, "Created task id-1: Fix the sink")

	task, err := a.store.Tasks().GetByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "home", task.Category)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, 19, task.DueDate.Day())
}

func TestTaskAddFlagsOverrideSyntax(t *testing.T) {
	a := newTestApp(t)

	mustRun(t, a, "task", "add", "Taxes +high", "--priority", "low", "--category", "admin")

	task, err := a.store.Tasks().GetByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityLow, task.Priority)
	assert.Equal(t, "admin", task.Category)
}

func TestTaskAddValidation(t *testing.T) {
	a := newTestApp(t)

	_, err := run(t, a, "task", "add", "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = run(t, a, "task", "add", "Taxes", "--priority", "urgent")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = run(t, a, "task", "add", "Taxes due:someday")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	tasks, err := a.store.Tasks().GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskListDoneAndFilters(t *testing.T) {
	a := newTestApp(t)
	mustRun(t, a, "task", "add", "one +high")
	mustRun(t, a, "task", "add", "two")
	mustRun(t, a, "task", "add", "three +low")

	mustRun(t, a, "task", "done", "id-2")

	var pending []models.Task
	out := mustRun(t, a, "task", "ls", "--filter", "pending", "--json")
	require.NoError(t, json.Unmarshal([]byte(out), &pending))
	assert.Len(t, pending, 2)

	var high []models.Task
	out = mustRun(t, a, "task", "ls", "--priority", "high", "--json")
	require.NoError(t, json.Unmarshal([]byte(out), &high))
	require.Len(t, high, 1)
	assert.Equal(t, "one", high[0].Title)

	out = mustRun(t, a, "task", "ls")
	assert.Contains(t, out, "three")
	assert.Contains(t, out, "[x]")

	_, err := run(t, a, "task", "ls", "--filter", "archived")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTaskEditAndRemove(t *testing.T) {
	a := newTestApp(t)
	mustRun(t, a, "task", "add", "Draft", "--due", "3 days")

	mustRun(t, a, "task", "edit", "id-1", "--title", "Final", "--clear-due")
	task, err := a.store.Tasks().GetByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "Final", task.Title)
	assert.Nil(t, task.DueDate)

	mustRun(t, a, "task", "rm", "id-1")
	_, err = run(t, a, "task", "rm", "id-1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTaskSearchAndStats(t *testing.T) {
	a := newTestApp(t)
	mustRun(t, a, "task", "add", "Buy milk +high")
	mustRun(t, a, "task", "add", "Walk dog")
	mustRun(t, a, "task", "done", "id-1")

	out := mustRun(t, a, "task", "search", "MILK")
	assert.Contains(t, out, "1 result(s)")

	var s struct {
		Total          int     `json:"total"`
		Completed      int     `json:"completed"`
		CompletionRate float64 `json:"completion_rate"`
	}
	out = mustRun(t, a, "task", "stats", "--json")
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Completed)
	assert.InDelta(t, 50.0, s.CompletionRate, 0.001)
}

func TestNoteCommands(t *testing.T) {
	a := newTestApp(t)
	mustRun(t, a, "note", "add", "Groceries", "--content", "eggs, flour")
	mustRun(t, a, "note", "add", "Ideas")

	out := mustRun(t, a, "note", "pin", "id-1")
	assert.Contains(t, out, "Pinned note: Groceries")

	var notes []models.Note
	out = mustRun(t, a, "note", "ls", "--json")
	require.NoError(t, json.Unmarshal([]byte(out), &notes))
	require.Len(t, notes, 2)
	assert.Equal(t, "Groceries", notes[0].Title)

	out = mustRun(t, a, "note", "search", "flour")
	assert.Contains(t, out, "1 result(s)")

	mustRun(t, a, "note", "rm", "id-2")
	count, err := a.store.Notes().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

type habitListRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DoneToday bool   `json:"done_today"`
	Streak    int    `json:"streak"`
}

func listHabits(t *testing.T, a *app) []habitListRow {
	t.Helper()
	var rows []habitListRow
	out := mustRun(t, a, "habit", "ls", "--json")
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	return rows
}

func TestHabitToggleFlow(t *testing.T) {
	a := newTestApp(t)
	mustRun(t, a, "habit", "add", "Read", "--target", "5")

	out := mustRun(t, a, "habit", "toggle", "id-1", "yesterday")
	assert.Contains(t, out, "Marked 16/10/2026 (yesterday)")
	mustRun(t, a, "habit", "toggle", "id-1", "2", "days", "ago")

	rows := listHabits(t, a)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].DoneToday)
	assert.Equal(t, 2, rows[0].Streak)

	out = mustRun(t, a, "habit", "toggle", "id-1")
	assert.Contains(t, out, "🔥 3")

	out = mustRun(t, a, "habit", "toggle", "id-1", "today")
	assert.Contains(t, out, "Unmarked")

	rows = listHabits(t, a)
	assert.False(t, rows[0].DoneToday)
	assert.Equal(t, 2, rows[0].Streak)
}

func TestHabitValidation(t *testing.T) {
	a := newTestApp(t)
	mustRun(t, a, "habit", "add", "Read")

	_, err := run(t, a, "habit", "toggle", "id-1", "2026-10-20")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = run(t, a, "habit", "toggle", "missing")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = run(t, a, "habit", "add", "Run", "--target", "9")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = run(t, a, "habit", "show", "id-1", "--month", "october")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestHabitShowMonth(t *testing.T) {
	a := newTestApp(t)
	mustRun(t, a, "habit", "add", "Stretch")
	for _, day := range []string{"01/09/2026", "02/09/2026", "2026-09-03"} {
		mustRun(t, a, "habit", "toggle", "id-1", day)
	}

	var shown struct {
		Month    string `json:"month"`
		Progress struct {
			CompletedDays int `json:"completed_days"`
			TotalDays     int `json:"total_days"`
		} `json:"progress"`
	}
	out := mustRun(t, a, "habit", "show", "id-1", "--month", "2026-09", "--json")
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "2026-09", shown.Month)
	assert.Equal(t, 3, shown.Progress.CompletedDays)
	assert.Equal(t, 30, shown.Progress.TotalDays)

	out = mustRun(t, a, "habit", "show", "id-1", "--month", "2026-09")
	assert.Contains(t, out, "3/30 days")
}

func TestHabitRemove(t *testing.T) {
	a := newTestApp(t)
	mustRun(t, a, "habit", "add", "Read")
	mustRun(t, a, "habit", "toggle", "id-1")

	mustRun(t, a, "habit", "rm", "id-1")
	assert.Empty(t, listHabits(t, a))
}

func TestWorkoutFlow(t *testing.T) {
	a := newTestApp(t)

	_, err := run(t, a, "workout", "add", "Legs", "--duration", "0")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	mustRun(t, a, "workout", "add", "Legs", "--duration", "50")
	mustRun(t, a, "workout", "exercise", "add", "id-1", "Squat", "--sets", "5", "--reps", "5", "--weight", "100")
	mustRun(t, a, "workout", "exercise", "add", "id-1", "Lunges")

	mustRun(t, a, "workout", "done", "id-1", "--duration", "45")
	mustRun(t, a, "workout", "done", "id-1", "--duration", "55", "--notes", "heavy")
	mustRun(t, a, "workout", "toggle", "id-1", "3 days ago")

	var d db.WorkoutDetails
	out := mustRun(t, a, "workout", "show", "id-1", "--json")
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 2, d.TotalCompletions)
	assert.Equal(t, 2, d.Frequency)
	assert.Equal(t, "2x", d.Badge)
	assert.Equal(t, 20, d.Points)
	assert.Equal(t, 2500, d.Totals.TotalWeight)
	assert.Equal(t, 55, d.Totals.TotalReps)
	require.Len(t, d.Exercises, 2)
	assert.Equal(t, "Squat", d.Exercises[0].Name)

	out = mustRun(t, a, "workout", "show", "id-1")
	assert.Contains(t, out, "Total weight 2500 kg")

	out = mustRun(t, a, "workout", "ls")
	assert.Contains(t, out, "Legs")
	assert.Contains(t, out, "2x")

	mustRun(t, a, "workout", "exercise", "rm", "id-3")
	mustRun(t, a, "workout", "rm", "id-1")
	_, err = run(t, a, "workout", "show", "id-1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStatsDashboard(t *testing.T) {
	a := newTestApp(t)
	mustRun(t, a, "task", "add", "one")
	mustRun(t, a, "note", "add", "memo")
	mustRun(t, a, "habit", "add", "Read")
	mustRun(t, a, "habit", "toggle", "id-3")
	mustRun(t, a, "habit", "toggle", "id-3", "yesterday")
	mustRun(t, a, "workout", "add", "Run", "--duration", "30")
	mustRun(t, a, "workout", "done", "id-6")

	var d dashboard
	out := mustRun(t, a, "stats", "--json")
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 1, d.Tasks.Total)
	assert.Equal(t, int64(1), d.Notes)
	assert.Equal(t, 1, d.Habits)
	assert.Equal(t, 1, d.HabitsDone)
	assert.Equal(t, 2, d.BestStreak)
	assert.Equal(t, "Read", d.BestStreakName)
	assert.Equal(t, 1, d.Workouts)
	assert.Equal(t, 1, d.Sessions)
	assert.Equal(t, 10, d.Points)

	out = mustRun(t, a, "stats")
	assert.Contains(t, out, "Habits")
	assert.Contains(t, out, "Workouts")
}
