package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/jobtrack/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive job overview",
	Long: `Open the full-screen overview: search and filter jobs, open a job's
checklist and tick milestones off.`,
	Args: cobra.NoArgs,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		if err := tui.RunOverview(store, appLog); err != nil {
			printErr(cmd, err)
		}
	}),
}
