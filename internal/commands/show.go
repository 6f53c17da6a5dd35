package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/jobtrack/internal/models"
)

var showCmd = &cobra.Command{
	Use:   "show <job>",
	Short: "Show a job and its milestone checklist",
	Long: `Show a job with its milestones grouped by phase.

The numbers in front of each milestone can be passed to 'jobtrack toggle'.`,
	Args: cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		job, err := resolveJob(args[0])
		if err != nil {
			printErr(cmd, err)
			return
		}
		mode, err := store.ProgressMode()
		if err != nil {
			printErr(cmd, err)
			return
		}
		renderJobDetail(cmd.OutOrStdout(), *job, mode.Percent(*job), models.Today(), time.Now())
	}),
}
