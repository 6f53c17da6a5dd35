package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle <job> <milestone>...",
	Aliases: []string{"t"},
	Short:   "Mark milestones complete, or back to incomplete",
	Long: `Flip the completion state of one or more milestones on a job.

Milestones are given by their number in 'jobtrack show' or by id.`,
	Args: cobra.MinimumNArgs(2),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		job, err := resolveJob(args[0])
		if err != nil {
			printErr(cmd, err)
			return
		}

		w := cmd.OutOrStdout()
		for _, ref := range args[1:] {
			m, err := resolveMilestone(job, ref)
			if err != nil {
				printErr(cmd, err)
				continue
			}

			updated, err := store.ToggleMilestone(job.ID, m.ID)
			if err != nil {
				printErr(cmd, err)
				return
			}
			if updated == nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: job %s no longer exists\n", shortID(job.ID))
				return
			}
			job = updated

			now := job.Milestone(m.ID)
			if now.IsComplete {
				fmt.Fprintf(w, "✅ %s / %s\n", now.Phase, now.Title)
			} else {
				fmt.Fprintf(w, "↩️  %s / %s marked incomplete\n", now.Phase, now.Title)
			}
		}

		mode, err := store.ProgressMode()
		if err != nil {
			printErr(cmd, err)
			return
		}
		fmt.Fprintf(w, "%s  %s\n", job.JobName, progressBar(mode.Percent(*job), 20))
	}),
}
