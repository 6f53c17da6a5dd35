package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/jobtrack/internal/models"
	"github.com/balkashynov/jobtrack/internal/parser"
	"github.com/balkashynov/jobtrack/internal/tui"
	"github.com/balkashynov/jobtrack/internal/view"
)

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSuccess))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorError))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorDisabledText))
	phaseStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(tui.ColorAccentBright))
)

// progressBar draws a fixed-width bar like "████░░░░ 50%"
func progressBar(pct, width int) string {
	filled := pct * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	label := fmt.Sprintf("%3d%%", pct)
	if pct == 100 {
		return doneStyle.Render(bar + " " + label)
	}
	return bar + " " + label
}

// shortID is the prefix shown in lists; any unique prefix resolves back
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// renderJobTable prints one line per job
func renderJobTable(w io.Writer, jobs []models.Job, progress map[string]int, today models.Date) {
	fmt.Fprintf(w, "%-8s  %-28s  %-18s  %-9s  %-15s  %s\n", "ID", "JOB", "CUSTOMER", "DUE", "PROGRESS", "NEXT")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, j := range jobs {
		due := fmt.Sprintf("%-9s", view.DueBadge(j.DueDate, today))
		if j.DueDate != nil && j.DueDate.Before(today) {
			due = overdueStyle.Render(due)
		}
		fmt.Fprintf(w, "%-8s  %-28s  %-18s  %s  %s  %s\n",
			shortID(j.ID),
			truncate(j.JobName, 28),
			truncate(j.CustomerName, 18),
			due,
			progressBar(progress[j.ID], 10),
			mutedStyle.Render(view.NextHint(j)))
	}
}

// renderJobDetail prints a job with its checklist grouped by phase.
// Milestones are numbered by checklist position, which toggle accepts.
func renderJobDetail(w io.Writer, j models.Job, pct int, today models.Date, now time.Time) {
	fmt.Fprintf(w, "%s  (%s)\n", j.JobName, j.ID)
	fmt.Fprintf(w, "Customer: %s\n", j.CustomerName)
	fmt.Fprintf(w, "Due:      %s\n", parser.FormatDueDate(j.DueDate, today))
	fmt.Fprintf(w, "Progress: %s  (%d/%d milestones)\n", progressBar(pct, 20), j.CompletedCount(), len(j.Milestones))
	fmt.Fprintf(w, "Updated:  %s\n", view.RelativeTime(j.LastTouched(), now))
	fmt.Fprintf(w, "%s\n", view.NextHint(j))

	position := make(map[string]int, len(j.Milestones))
	for i, m := range j.SortedMilestones() {
		position[m.ID] = i + 1
	}

	for _, g := range models.GroupByPhase(j.Milestones) {
		fmt.Fprintf(w, "\n%s %s\n", phaseStyle.Render(g.Phase), mutedStyle.Render(fmt.Sprintf("%d/%d", g.Done(), len(g.Milestones))))
		for _, m := range g.Milestones {
			box := "[ ]"
			line := m.Title
			if m.IsComplete {
				box = doneStyle.Render("[x]")
				if m.CompletedAt != nil {
					line += mutedStyle.Render("  " + m.CompletedAt.Local().Format("Jan 2 15:04"))
				}
			}
			fmt.Fprintf(w, "  %2d. %s %s\n", position[m.ID], box, line)
		}
	}

	if j.Notes != "" {
		fmt.Fprintf(w, "\nNotes:\n%s\n", j.Notes)
	}
	if len(j.Photos) > 0 {
		fmt.Fprintf(w, "\nPhotos: %d attached\n", len(j.Photos))
	}
}

type jsonJob struct {
	ID           string       `json:"id"`
	JobName      string       `json:"jobName"`
	CustomerName string       `json:"customerName"`
	DueDate      *models.Date `json:"dueDate"`
	Progress     int          `json:"progress"`
	Completed    int          `json:"completed"`
	Total        int          `json:"total"`
	Next         string       `json:"next,omitempty"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// jsonJobs builds the scripting summary of each job
func jsonJobs(jobs []models.Job, progress map[string]int) []jsonJob {
	out := make([]jsonJob, 0, len(jobs))
	for _, j := range jobs {
		item := jsonJob{
			ID:           j.ID,
			JobName:      j.JobName,
			CustomerName: j.CustomerName,
			DueDate:      j.DueDate,
			Progress:     progress[j.ID],
			Completed:    j.CompletedCount(),
			Total:        len(j.Milestones),
			UpdatedAt:    j.LastTouched(),
		}
		if next := j.NextMilestone(); next != nil {
			item.Next = next.Title
		}
		out = append(out, item)
	}
	return out
}

// renderJobsJSON prints a summary array for scripting
func renderJobsJSON(w io.Writer, jobs []models.Job, progress map[string]int) error {
	return writeJSON(w, jsonJobs(jobs, progress))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
