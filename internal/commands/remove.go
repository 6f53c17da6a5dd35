package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "rm <job>",
	Aliases: []string{"delete"},
	Short:   "Delete a job",
	Args:    cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		job, err := resolveJob(args[0])
		if err != nil {
			printErr(cmd, err)
			return
		}

		if !confirm(cmd, fmt.Sprintf("Delete job %q for %s? This cannot be undone.", job.JobName, job.CustomerName)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return
		}

		ok, err := store.DeleteJob(job.ID)
		if err != nil {
			printErr(cmd, err)
			return
		}
		if !ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: job %s not found\n", shortID(job.ID))
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted job %s: %s\n", shortID(job.ID), job.JobName)
	}),
}

func init() {
	removeCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
