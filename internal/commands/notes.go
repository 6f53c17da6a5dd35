package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var notesCmd = &cobra.Command{
	Use:   "notes <job> [text]",
	Short: "Show or replace a job's notes",
	Long: `Without text, print the job's notes. With text, replace them.

  jobtrack notes tank "Customer wants a second drain"
  echo "long notes" | jobtrack notes tank -     read from stdin
  jobtrack notes tank --clear`,
	Args: cobra.MinimumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		job, err := resolveJob(args[0])
		if err != nil {
			printErr(cmd, err)
			return
		}

		w := cmd.OutOrStdout()
		clearNotes, _ := cmd.Flags().GetBool("clear")
		if len(args) == 1 && !clearNotes {
			if job.Notes == "" {
				fmt.Fprintln(w, "No notes.")
				return
			}
			fmt.Fprintln(w, job.Notes)
			return
		}

		notes := strings.Join(args[1:], " ")
		if notes == "-" {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				printErr(cmd, err)
				return
			}
			notes = strings.TrimRight(string(raw), "\n")
		}
		if clearNotes {
			notes = ""
		}

		if _, err := store.SaveNotes(job.ID, notes); err != nil {
			printErr(cmd, err)
			return
		}
		fmt.Fprintf(w, "📝 Notes saved for %s\n", job.JobName)
	}),
}

func init() {
	notesCmd.Flags().Bool("clear", false, "Remove the notes")
}
