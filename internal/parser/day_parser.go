package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/tally/internal/dates"
)

var (
	daysAgoRegex = regexp.MustCompile(`^(\d+)\s*(day|days)\s+ago$`)
	monthRegex   = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
)

// ParseDay resolves a day argument to midnight of that calendar day.
// Accepts "", today, yesterday, "N days ago", dd/mm/yyyy and yyyy-mm-dd.
// Days after today are rejected; completions can only be recorded for the past.
func ParseDay(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	today := dates.StartOfDay(now)

	switch input {
	case "", "today":
		return today, nil
	case "yesterday":
		return dates.StartOfDay(now.AddDate(0, 0, -1)), nil
	}

	if matches := daysAgoRegex.FindStringSubmatch(input); len(matches) == 3 {
		n, err := strconv.Atoi(matches[1])
		if err != nil || n > 3650 {
			return time.Time{}, fmt.Errorf("invalid number of days: %s", matches[1])
		}
		return dates.StartOfDay(now.AddDate(0, 0, -n)), nil
	}

	day, err := parseCalendarDate(input, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q. Use: today, yesterday, N days ago, dd/mm/yyyy or yyyy-mm-dd", input)
	}
	if day.After(today) {
		return time.Time{}, fmt.Errorf("day %s is in the future", day.Format("02/01/2006"))
	}
	return day, nil
}

// ParseMonth resolves a yyyy-mm argument; an empty input means the current month.
func ParseMonth(input string, now time.Time) (int, time.Month, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return now.Year(), now.Month(), nil
	}

	matches := monthRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return 0, 0, fmt.Errorf("invalid month %q. Use: yyyy-mm", input)
	}
	year, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month must be between 1 and 12")
	}
	return year, time.Month(month), nil
}
