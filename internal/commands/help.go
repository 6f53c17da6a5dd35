package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for jobtrack",
	Long:  `Display detailed help for all jobtrack commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if sub, _, err := rootCmd.Find(args); err == nil && sub != rootCmd {
				_ = sub.Help()
				return
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), customHelp)
	},
}

const customHelp = `
   _       _     _                  _
  (_) ___ | |__ | |_ _ __ __ _  ___| | __
  | |/ _ \| '_ \| __| '__/ _' |/ __| |/ /
  | | (_) | |_) | |_| | | (_| | (__|   <
 _/ |\___/|_.__/ \__|_|  \__,_|\___|_|\_\
|__/

jobtrack - job and milestone tracker

Jobs are referenced by any unique prefix of their id (shown in 'ls') or by
their exact name. Milestones are referenced by their number in 'show'.

COMMANDS:

  add <job>                Create a job with a copy of the template
    -c, --customer         Customer name
    --due                  Due date (yyyy-mm-dd, dd/mm/yyyy, today, 3 days, 2w)
    -i, --interactive      Open the form

    Smart syntax:
      @customer        Customer (@"Two Words" for spaces)
      due:2w           Due date

    Example:
      jobtrack add "Tank 40 gal @Acme due:2024-07-01"

  ls                       List jobs
    -o, --sort             recent|due-soonest|due-latest|progress-high|progress-low|name-az
    -s, --status           all|active|completed
    -d, --due              all|overdue|7days|30days|none
    -p, --progress         all|0|1-99|100
    --save / --reset       Remember or forget the filters
    --json                 JSON output

  search <query>           Filter by job or customer name (same flags as ls)
  show <job>               Job details and numbered checklist
  toggle <job> <n>...      Flip milestones complete/incomplete
  edit <job>               Edit name, customer or due date (form without flags)
  rm <job>                 Delete a job
  notes <job> [text]       Show or replace notes

  photo add <job> <file>...    Attach images (3 MiB limit each)
  photo ls <job>               List photos
  photo rm <job> <n>           Remove a photo
  photo save <job> <n> [file]  Write a photo to disk

  template show            Phases, weights and numbered milestones
  template add-phase <p>   Add an empty phase (weight 10)
  template rm-phase <p>    Remove a phase and its milestones
  template add <p> <title> Add a milestone
  template rm|up|down <n>  Remove or reorder a milestone
  template weight <p> <w>  Set a phase weight
  template reset           Restore the built-in template
  template export|import   YAML round trip
  apply-template <job>     Rebuild a job's checklist from the template (--all)

  settings show            Progress mode, theme and weight table
  settings weighted on|off Weighted progress by phase
  settings dark on|off|system

  export [file]            JSON backup (job-tracker-backup-YYYY-MM-DD.json)
  import <file>            Replace everything with a backup

  ui                       Interactive overview
    ↑/↓ navigate · / search · f filters · enter open · space toggle · q quit

  version                  Version information
  help [command]           This help, or help for one command

`
