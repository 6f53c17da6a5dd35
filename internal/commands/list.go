package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/jobtrack/internal/models"
	"github.com/balkashynov/jobtrack/internal/view"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List jobs",
	Long: `List jobs using the saved filters, overridden by any flags.

  --save   remember the resulting filters for next time
  --reset  forget saved filters and go back to the defaults`,
	Args: cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		runList(cmd, "")
	}),
}

// runList derives the visible job list and renders it
func runList(cmd *cobra.Command, query string) {
	f, err := listFilters(cmd)
	if err != nil {
		printErr(cmd, err)
		return
	}

	data, err := store.Data()
	if err != nil {
		printErr(cmd, err)
		return
	}

	mode, err := store.ProgressMode()
	if err != nil {
		printErr(cmd, err)
		return
	}
	pct := mode.ByJob(data.Jobs)
	today := models.Today()
	jobs := view.Derive(data.Jobs, query, f, pct, today)

	w := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if query != "" {
			err = renderSearchJSON(w, query, jobs, pct)
		} else {
			err = renderJobsJSON(w, jobs, pct)
		}
		if err != nil {
			printErr(cmd, err)
		}
		return
	}

	if len(data.Jobs) == 0 {
		fmt.Fprintln(w, "No jobs yet. Use 'jobtrack add \"Job name @Customer\"' to create your first job.")
		return
	}

	if chips := view.Chips(f); len(chips) > 0 {
		labels := make([]string, len(chips))
		for i, c := range chips {
			labels[i] = c.Label
		}
		fmt.Fprintf(w, "%s\n", mutedStyle.Render(strings.Join(labels, " · ")))
	}

	if query != "" {
		fmt.Fprintf(w, "Search results for '%s' (%d found):\n", strings.TrimSpace(query), len(jobs))
	}
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No jobs match your search or filters.")
		return
	}
	renderJobTable(w, jobs, pct, today)
	fmt.Fprintf(w, "\n%d of %d jobs\n", len(jobs), len(data.Jobs))
}

// listFilters merges flags over the saved filters, saving or resetting
// them when asked
func listFilters(cmd *cobra.Command) (models.JobFilters, error) {
	if reset, _ := cmd.Flags().GetBool("reset"); reset {
		def := models.DefaultFilters()
		if err := store.SaveFilters(def); err != nil {
			return def, err
		}
	}

	f, err := store.Filters()
	if err != nil {
		return f, err
	}

	// Only flag values are validated; a stale saved value passes through
	check := models.DefaultFilters()
	for name, fields := range map[string][2]*string{
		"sort":     {&f.Sort, &check.Sort},
		"status":   {&f.Status, &check.Status},
		"due":      {&f.Due, &check.Due},
		"progress": {&f.Progress, &check.Progress},
	} {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*fields[0], *fields[1] = v, v
		}
	}
	if err := view.Validate(check); err != nil {
		return f, err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := store.SaveFilters(f); err != nil {
			return f, err
		}
	}
	return f, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("sort", "o", "", "Sort: "+strings.Join(view.Values(view.SortOptions), ", "))
	cmd.Flags().StringP("status", "s", "", "Status: "+strings.Join(view.Values(view.StatusOptions), ", "))
	cmd.Flags().StringP("due", "d", "", "Due: "+strings.Join(view.Values(view.DueOptions), ", "))
	cmd.Flags().StringP("progress", "p", "", "Progress: "+strings.Join(view.Values(view.ProgressOptions), ", "))
	cmd.Flags().Bool("save", false, "Remember these filters")
	cmd.Flags().Bool("reset", false, "Reset saved filters to the defaults")
	cmd.Flags().Bool("json", false, "JSON output")
}

func init() {
	addFilterFlags(listCmd)
	addFilterFlags(searchCmd)
}
