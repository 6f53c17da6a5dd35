package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/jobtrack/internal/db"
	"github.com/balkashynov/jobtrack/internal/models"
	"github.com/balkashynov/jobtrack/internal/parser"
	"github.com/balkashynov/jobtrack/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <job>",
	Short: "Edit a job's name, customer or due date",
	Long: `Edit an existing job.

With no flags, opens the same form as 'jobtrack add' pre-filled with the
current values. With flags, changes only what is given:

  jobtrack edit tank --name "Tank 60 gal" --due 2w
  jobtrack edit tank --clear-due`,
	Args: cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		job, err := resolveJob(args[0])
		if err != nil {
			printErr(cmd, err)
			return
		}

		var upd db.JobUpdate
		flags := cmd.Flags()
		if !anyChanged(cmd, "name", "customer", "due", "clear-due") {
			initial := tui.JobFormValues{JobName: job.JobName, CustomerName: job.CustomerName}
			if job.DueDate != nil {
				initial.Due = job.DueDate.String()
			}
			values, ok, err := tui.RunJobForm("Edit job", initial, darkPreference())
			if err != nil {
				printErr(cmd, err)
				return
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "❌ Edit cancelled.")
				return
			}
			upd = values.Update()
		} else {
			if flags.Changed("name") {
				name, _ := flags.GetString("name")
				upd.JobName = &name
			}
			if flags.Changed("customer") {
				customer, _ := flags.GetString("customer")
				upd.CustomerName = &customer
			}
			if flags.Changed("due") {
				due, _ := flags.GetString("due")
				d, err := parser.ParseDueDate(due)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error parsing due date: %v\n", err)
					return
				}
				upd.DueDate = d
				upd.ClearDueDate = d == nil
			}
			if flags.Changed("clear-due") {
				upd.ClearDueDate, _ = flags.GetBool("clear-due")
			}
		}

		updated, err := store.UpdateJob(job.ID, upd)
		if err != nil {
			printErr(cmd, err)
			return
		}
		if updated == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: job %s not found\n", shortID(job.ID))
			return
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "✏️  Updated job %s: %s\n", shortID(updated.ID), updated.JobName)
		fmt.Fprintf(w, "  Customer: %s\n", updated.CustomerName)
		fmt.Fprintf(w, "  Due: %s\n", parser.FormatDueDate(updated.DueDate, models.Today()))
	}),
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func init() {
	editCmd.Flags().StringP("name", "n", "", "New job name")
	editCmd.Flags().StringP("customer", "c", "", "New customer name")
	editCmd.Flags().StringP("due", "", "", "New due date")
	editCmd.Flags().Bool("clear-due", false, "Remove the due date")
}
