package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartAndEndOfDay(t *testing.T) {
	at := time.Date(2026, time.March, 14, 17, 45, 12, 500, time.Local)

	assert.Equal(t, time.Date(2026, time.March, 14, 0, 0, 0, 0, time.Local), StartOfDay(at))
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.Local), EndOfDay(at))

	// end of month rolls over
	last := time.Date(2026, time.December, 31, 23, 59, 0, 0, time.Local)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.Local), EndOfDay(last))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want int
	}{
		{"same instant", time.Date(2026, 5, 10, 9, 0, 0, 0, time.Local), time.Date(2026, 5, 10, 9, 0, 0, 0, time.Local), 0},
		{"same day different hours", time.Date(2026, 5, 10, 23, 0, 0, 0, time.Local), time.Date(2026, 5, 10, 1, 0, 0, 0, time.Local), 0},
		{"late vs early next day", time.Date(2026, 5, 11, 0, 30, 0, 0, time.Local), time.Date(2026, 5, 10, 23, 30, 0, 0, time.Local), 1},
		{"across month", time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), time.Date(2026, 2, 27, 0, 0, 0, 0, time.Local), 2},
		{"negative", time.Date(2026, 5, 8, 0, 0, 0, 0, time.Local), time.Date(2026, 5, 10, 0, 0, 0, 0, time.Local), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.a, tt.b))
		})
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("timezone database not available")
	}
	// 2026-03-29 is the spring-forward day in Europe
	before := time.Date(2026, 3, 28, 0, 0, 0, 0, loc)
	after := time.Date(2026, 3, 30, 0, 0, 0, 0, loc)
	assert.Equal(t, 2, DaysBetween(after, before))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2026, time.January))
	assert.Equal(t, 28, DaysInMonth(2026, time.February))
	assert.Equal(t, 29, DaysInMonth(2028, time.February))
	assert.Equal(t, 30, DaysInMonth(2026, time.September))
	assert.Equal(t, 31, DaysInMonth(2026, time.December))
}

func TestMonthBounds(t *testing.T) {
	start := StartOfMonth(2026, time.December, time.Local)
	end := EndOfMonth(2026, time.December, time.Local)
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.Local), end)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 7, 4, 0, 0, 0, 0, time.Local)
	assert.True(t, SameDay(a, a.Add(23*time.Hour)))
	assert.False(t, SameDay(a, a.Add(24*time.Hour)))
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	var c Clock = FixedClock{At: at}
	assert.Equal(t, at, c.Now())
}
