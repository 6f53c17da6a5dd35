package commands

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/jobtrack/internal/models"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search jobs by job or customer name",
	Long: `Search jobs by a case-insensitive substring of the job name or the
customer name. Saved filters and sort still apply, and the same filter
flags as 'ls' can override them.`,
	Args: cobra.MinimumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		runList(cmd, strings.Join(args, " "))
	}),
}

// renderSearchJSON wraps the job summaries with the query that produced them
func renderSearchJSON(w io.Writer, query string, jobs []models.Job, progress map[string]int) error {
	type searchResult struct {
		Query string    `json:"query"`
		Count int       `json:"count"`
		Jobs  []jsonJob `json:"jobs"`
	}
	return writeJSON(w, searchResult{
		Query: strings.TrimSpace(query),
		Count: len(jobs),
		Jobs:  jsonJobs(jobs, progress),
	})
}
