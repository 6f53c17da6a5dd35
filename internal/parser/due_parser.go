package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/jobtrack/internal/models"
)

var (
	isoDateRegex  = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	dmyDateRegex  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRegex = regexp.MustCompile(`^(\d+)\s*(day|days|d|week|weeks|w)$`)
)

// ParseDueDate parses a due date relative to today.
// Supported formats:
// - yyyy-mm-dd (e.g., "2024-12-15")
// - dd/mm/yyyy (e.g., "15/12/2024")
// - today, tomorrow
// - X days (e.g., "3 days", "3d")
// - X weeks (e.g., "2 weeks", "2w")
func ParseDueDate(input string) (*models.Date, error) {
	return ParseDueDateAt(input, models.Today())
}

// ParseDueDateAt is ParseDueDate with an explicit "today"
func ParseDueDateAt(input string, today models.Date) (*models.Date, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil, nil
	}

	switch input {
	case "today":
		return &today, nil
	case "tomorrow":
		d := today.AddDays(1)
		return &d, nil
	}

	if m := isoDateRegex.FindStringSubmatch(input); m != nil {
		return buildDate(m[1], m[2], m[3])
	}
	if m := dmyDateRegex.FindStringSubmatch(input); m != nil {
		return buildDate(m[3], m[2], m[1])
	}
	if m := relativeRegex.FindStringSubmatch(input); m != nil {
		return parseRelative(m[1], m[2], today)
	}

	return nil, fmt.Errorf("invalid date format. Use: yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, X days or X weeks")
}

func buildDate(year, month, day string) (*models.Date, error) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	if m < 1 || m > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}
	if d < 1 || d > 31 {
		return nil, fmt.Errorf("day must be between 1 and 31")
	}

	date, err := models.ParseDate(fmt.Sprintf("%04d-%02d-%02d", y, m, d))
	if err != nil {
		// handles 31/02 and friends
		return nil, fmt.Errorf("invalid date")
	}
	return &date, nil
}

func parseRelative(amount, unit string, today models.Date) (*models.Date, error) {
	n, err := strconv.Atoi(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid number")
	}

	switch unit {
	case "day", "days", "d":
		if n > 3650 {
			return nil, fmt.Errorf("days must be at most 3650")
		}
	case "week", "weeks", "w":
		if n > 520 {
			return nil, fmt.Errorf("weeks must be at most 520")
		}
		n *= 7
	}

	d := today.AddDays(n)
	return &d, nil
}

// FormatDueDate formats a due date for display
func FormatDueDate(due *models.Date, today models.Date) string {
	if due == nil {
		return "No due date"
	}

	daysDiff := today.DaysUntil(*due)
	dateStr := due.Time(time.UTC).Format("Jan 2, 2006")

	switch {
	case daysDiff < 0:
		return fmt.Sprintf("⚠️ OVERDUE (%s)", dateStr)
	case daysDiff == 0:
		return fmt.Sprintf("🔥 Due today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("📅 Due tomorrow (%s)", dateStr)
	case daysDiff <= 7:
		return fmt.Sprintf("📅 Due %s (in %d days)", dateStr, daysDiff)
	default:
		return fmt.Sprintf("📅 Due %s", dateStr)
	}
}
