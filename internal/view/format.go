package view

import (
	"fmt"
	"time"

	"github.com/balkashynov/jobtrack/internal/models"
)

// RelativeTime renders how long ago t was: "Just now", "5m ago", "3h ago",
// or the calendar date once it is a day old.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	}
	return t.Local().Format("Jan 2, 2006")
}

// NextHint names the job's next incomplete milestone
func NextHint(j models.Job) string {
	if len(j.Milestones) == 0 {
		return "No milestones"
	}
	next := j.NextMilestone()
	if next == nil {
		return "All milestones complete"
	}
	return "Next: " + next.Title
}

// DueBadge is the short due-date marker used in lists
func DueBadge(due *models.Date, today models.Date) string {
	if due == nil {
		return "-"
	}
	days := today.DaysUntil(*due)
	switch {
	case days < 0:
		return "OVERDUE"
	case days == 0:
		return "TODAY"
	case days == 1:
		return "TOMORROW"
	case days <= 7:
		return fmt.Sprintf("%dd", days)
	}
	return due.Time(time.UTC).Format("Jan 02")
}
