package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/jobtrack/internal/db"
	"github.com/balkashynov/jobtrack/internal/models"
	"github.com/balkashynov/jobtrack/internal/parser"
	"github.com/balkashynov/jobtrack/internal/progress"
	"github.com/balkashynov/jobtrack/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [job description]",
	Short: "Add a new job",
	Long: `Add a new job. It gets its own copy of the current milestone template.

Modes:
  Interactive: jobtrack add (no arguments) or jobtrack add -i
  Quick: jobtrack add "Tank 40 gal" -c Acme --due 2024-07-01
  Smart parsing: jobtrack add "Tank 40 gal @Acme due:2w"

Smart parsing syntax:
  @customer        - Customer (use @"Two Words" for spaces)
  due:2024-07-01   - Due date (yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, X days, X weeks)`,
	Args: cobra.ArbitraryArgs,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		interactive, _ := cmd.Flags().GetBool("interactive")
		if len(args) == 0 {
			interactive = true
		}

		today := models.Today()
		parsed := parser.ParseQuickAdd(strings.Join(args, " "), today)

		// Explicit flags take precedence over parsed text
		if customer, _ := cmd.Flags().GetString("customer"); customer != "" {
			parsed.CustomerName = customer
			parsed.Errors = dropError(parsed.Errors, "Customer is required")
		}
		if due, _ := cmd.Flags().GetString("due"); due != "" {
			d, err := parser.ParseDueDateAt(due, today)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error parsing due date: %v\n", err)
				return
			}
			parsed.DueDate = d
		}

		if !interactive && len(parsed.Errors) > 0 {
			// Fall back to the form with whatever parsed cleanly
			fmt.Fprintf(cmd.OutOrStdout(), "⚠️  Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
			interactive = true
		}

		req := db.CreateJobRequest{
			JobName:      parsed.JobName,
			CustomerName: parsed.CustomerName,
			DueDate:      parsed.DueDate,
		}

		if interactive {
			initial := tui.JobFormValues{JobName: parsed.JobName, CustomerName: parsed.CustomerName}
			if parsed.DueDate != nil {
				initial.Due = parsed.DueDate.String()
			}
			values, ok, err := tui.RunJobForm("New job", initial, darkPreference())
			if err != nil {
				printErr(cmd, err)
				return
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "❌ Job creation cancelled.")
				return
			}
			req = values.Request()
		}

		job, err := store.AddJob(req)
		if err != nil {
			printErr(cmd, fmt.Errorf("creating job: %w", err))
			return
		}

		mode, err := store.ProgressMode()
		if err != nil {
			printErr(cmd, err)
			return
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "✅ Created job %s: %s\n", shortID(job.ID), job.JobName)
		fmt.Fprintf(w, "  Customer: %s\n", job.CustomerName)
		if job.DueDate != nil {
			fmt.Fprintf(w, "  Due: %s\n", parser.FormatDueDate(job.DueDate, today))
		}
		fmt.Fprintf(w, "  Milestones: %d (%d%%)\n", len(job.Milestones), progress.Calc(*job, mode.Weighted, mode.Weights))
	}),
}

func dropError(errs []string, prefix string) []string {
	out := errs[:0]
	for _, e := range errs {
		if !strings.HasPrefix(e, prefix) {
			out = append(out, e)
		}
	}
	return out
}

func init() {
	addCmd.Flags().BoolP("interactive", "i", false, "Interactive mode with TUI")
	addCmd.Flags().StringP("customer", "c", "", "Customer name")
	addCmd.Flags().StringP("due", "", "", "Due date: yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, X days, X weeks")
}
