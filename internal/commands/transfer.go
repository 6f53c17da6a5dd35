package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/jobtrack/internal/db"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Back up every job, the template and settings as JSON",
	Long: `Write the whole tracker as pretty-printed JSON.

Without a file name the backup goes to job-tracker-backup-YYYY-MM-DD.json in
the current directory. Use '-' to print to stdout.`,
	Args: cobra.MaximumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		out, err := store.Export()
		if err != nil {
			printErr(cmd, err)
			return
		}

		dest := db.ExportFilename(time.Now())
		if len(args) == 1 {
			dest = args[0]
		}
		if dest == "-" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return
		}
		if err := os.WriteFile(dest, []byte(out+"\n"), 0o644); err != nil {
			printErr(cmd, err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "💾 Exported to %s\n", dest)
	}),
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace everything with a JSON backup ('-' for stdin)",
	Long: `Replace all jobs, the template, weights and progress mode with the
contents of a backup. Invalid files are rejected and nothing changes.`,
	Args: cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		var raw []byte
		var err error
		if args[0] == "-" {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				printErr(cmd, fmt.Errorf("reading from stdin needs --yes"))
				return
			}
			raw, err = io.ReadAll(cmd.InOrStdin())
		} else {
			raw, err = os.ReadFile(args[0])
		}
		if err != nil {
			printErr(cmd, err)
			return
		}

		if !confirm(cmd, "Replace ALL current data with this backup?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return
		}
		if err := store.Import(raw); err != nil {
			printErr(cmd, err)
			return
		}

		data, err := store.Data()
		if err != nil {
			printErr(cmd, err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "📥 Imported %d job(s) and %d template milestone(s)\n", len(data.Jobs), len(data.Template))
	}),
}

func init() {
	importCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
