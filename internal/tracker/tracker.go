// Package tracker implements per-day completion ledgers for habits and
// workouts: idempotent toggling, current streaks, monthly progress and
// trailing-window frequency counts.
//
// The Tracker holds no state of its own; every operation reads the ledger,
// computes, and returns. Callers must serialise a Toggle with concurrent
// reads of the same entity if they need exact consistency.
package tracker

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/balkashynov/tally/internal/dates"
	"github.com/balkashynov/tally/internal/logger"
)

// Ledger is the record-store view of one completion table.
// A zero from or to leaves that side of the range unbounded; ranges are
// half-open, [from, to).
type Ledger interface {
	CompletionDates(ctx context.Context, entityID string, from, to time.Time) ([]time.Time, error)
	AddCompletion(ctx context.Context, entityID string, day time.Time) error
	RemoveCompletions(ctx context.Context, entityID string, from, to time.Time) error
}

// Progress is the completion share of one calendar month.
type Progress struct {
	CompletedDays int     `json:"completed_days"`
	TotalDays     int     `json:"total_days"`
	Percentage    float64 `json:"percentage"`
}

// Tracker answers completion questions over a Ledger.
type Tracker struct {
	ledger Ledger
	clock  dates.Clock
}

// New creates a Tracker. A nil clock uses the system clock.
func New(ledger Ledger, clock dates.Clock) *Tracker {
	if clock == nil {
		clock = dates.SystemClock{}
	}
	return &Tracker{ledger: ledger, clock: clock}
}

// IsCompletedOnDay reports whether entityID has a completion on day's calendar day.
func (t *Tracker) IsCompletedOnDay(ctx context.Context, entityID string, day time.Time) (bool, error) {
	found, err := t.ledger.CompletionDates(ctx, entityID, dates.StartOfDay(day), dates.EndOfDay(day))
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

// Toggle removes the completion for day if one exists, otherwise inserts one
// stamped at the start of that day. It returns the new completion state.
func (t *Tracker) Toggle(ctx context.Context, entityID string, day time.Time) (bool, error) {
	start, end := dates.StartOfDay(day), dates.EndOfDay(day)

	done, err := t.IsCompletedOnDay(ctx, entityID, day)
	if err != nil {
		return false, err
	}

	if done {
		// removes the whole day so stray duplicates cannot survive a toggle-off
		if err := t.ledger.RemoveCompletions(ctx, entityID, start, end); err != nil {
			return true, err
		}
		logger.Debug("completion removed", "entity", entityID, "day", start.Format(time.DateOnly))
		return false, nil
	}

	if err := t.ledger.AddCompletion(ctx, entityID, start); err != nil {
		return false, err
	}
	logger.Debug("completion added", "entity", entityID, "day", start.Format(time.DateOnly))
	return true, nil
}

// CurrentStreak returns the number of consecutive completed days ending
// today, or ending yesterday when today has no completion yet.
func (t *Tracker) CurrentStreak(ctx context.Context, entityID string) (int, error) {
	all, err := t.ledger.CompletionDates(ctx, entityID, time.Time{}, time.Time{})
	if err != nil {
		return 0, err
	}
	return Streak(all, t.clock.Now()), nil
}

// CompletedDaysInMonth returns the distinct completed days of a month, newest first.
func (t *Tracker) CompletedDaysInMonth(ctx context.Context, entityID string, year int, month time.Month) ([]time.Time, error) {
	loc := t.clock.Now().Location()
	found, err := t.ledger.CompletionDates(ctx, entityID,
		dates.StartOfMonth(year, month, loc), dates.EndOfMonth(year, month, loc))
	if err != nil {
		return nil, err
	}
	return DistinctDays(found, loc), nil
}

// MonthlyProgress reports how many distinct days of the month were completed.
func (t *Tracker) MonthlyProgress(ctx context.Context, entityID string, year int, month time.Month) (Progress, error) {
	days, err := t.CompletedDaysInMonth(ctx, entityID, year, month)
	if err != nil {
		return Progress{}, err
	}
	return NewProgress(len(days), dates.DaysInMonth(year, month)), nil
}

// FrequencyInWindow counts completions within the trailing windowDays days
// ending now.
func (t *Tracker) FrequencyInWindow(ctx context.Context, entityID string, windowDays int) (int, error) {
	if windowDays <= 0 {
		return 0, nil
	}
	now := t.clock.Now()
	// upper bound is exclusive, so nudge it past now
	found, err := t.ledger.CompletionDates(ctx, entityID, now.AddDate(0, 0, -windowDays), now.Add(time.Nanosecond))
	if err != nil {
		return 0, err
	}
	return len(found), nil
}

// NewProgress builds a Progress, yielding 0% for an empty month.
func NewProgress(completed, total int) Progress {
	p := Progress{CompletedDays: completed, TotalDays: total}
	if total > 0 {
		p.Percentage = float64(completed) / float64(total) * 100
	}
	return p
}

// DistinctDays normalises every timestamp to its calendar day in loc, drops
// duplicates and sorts the result newest first.
func DistinctDays(stamps []time.Time, loc *time.Location) []time.Time {
	seen := make(map[int64]bool, len(stamps))
	days := make([]time.Time, 0, len(stamps))
	for _, s := range stamps {
		d := dates.StartOfDay(s.In(loc))
		if seen[d.Unix()] {
			continue
		}
		seen[d.Unix()] = true
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// Streak walks the completion days backwards from today. Each day may be at
// most one calendar day before the previous one counted; the first may be
// today or yesterday. Days after today are ignored.
func Streak(stamps []time.Time, now time.Time) int {
	streak := 0
	cursor := dates.StartOfDay(now)

	for _, day := range DistinctDays(stamps, now.Location()) {
		gap := dates.DaysBetween(cursor, day)
		if gap < 0 {
			continue
		}
		if gap > 1 {
			break
		}
		streak++
		cursor = day
	}

	return streak
}

// FrequencyBadge renders a completion count as a badge label.
// An empty string means no badge.
func FrequencyBadge(count int) string {
	switch {
	case count >= 10:
		return "10x+"
	case count >= 1:
		return strconv.Itoa(count) + "x"
	default:
		return ""
	}
}
