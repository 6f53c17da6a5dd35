package commands

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/jobtrack/internal/config"
	"github.com/balkashynov/jobtrack/internal/db"
	"github.com/balkashynov/jobtrack/internal/logger"
	"github.com/balkashynov/jobtrack/internal/models"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	cfg     *config.Config
	appLog  = zap.NewNop()
	store   *db.Store
)

var rootCmd = &cobra.Command{
	Use:   "jobtrack",
	Short: "Track fabrication jobs against a milestone checklist",
	Long: `jobtrack keeps a list of jobs, each with its own copy of a shared
milestone checklist. Tick milestones off, watch progress, and edit the
checklist template without touching existing jobs until you apply it.`,
	SilenceUsage: true,
}

// initDB loads configuration, opens the database and builds the store
func initDB() error {
	if store != nil {
		return nil
	}

	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	l, err := logger.New(c.Log.Level, c.Log.File)
	if err != nil {
		return err
	}
	gdb, err := db.Open(c.DataPath)
	if err != nil {
		return err
	}

	cfg = c
	appLog = l
	store = db.NewStore(db.NewSQLiteKV(gdb), db.WithLogger(l))
	appLog.Debug("store opened", zap.String("path", c.DataPath))
	return nil
}

// withDB wraps a command function to initialize the database first
func withDB(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := initDB(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		fn(cmd, args)
	}
}

// printErr reports a failure the way every command does
func printErr(cmd *cobra.Command, err error) {
	appLog.Debug("command failed", zap.String("command", cmd.CommandPath()), zap.Error(err))
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}

// resolveJob finds a job by id, id prefix or exact name
func resolveJob(ref string) (*models.Job, error) {
	id, err := store.ResolveJobID(ref)
	if err != nil {
		return nil, err
	}
	job, err := store.Job(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("%w: %s", db.ErrJobNotFound, ref)
	}
	return job, nil
}

// resolveMilestone accepts a milestone id, id prefix or 1-based position
// in the job's checklist order
func resolveMilestone(job *models.Job, ref string) (*models.Milestone, error) {
	sorted := job.SortedMilestones()
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(sorted) {
			return nil, fmt.Errorf("milestone #%d not found (job has %d)", n, len(sorted))
		}
		return &sorted[n-1], nil
	}

	var match *models.Milestone
	for i := range sorted {
		if sorted[i].ID == ref {
			return &sorted[i], nil
		}
		if strings.HasPrefix(sorted[i].ID, ref) {
			if match != nil {
				return nil, fmt.Errorf("milestone %q is ambiguous", ref)
			}
			match = &sorted[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("milestone %q not found", ref)
	}
	return match, nil
}

// darkPreference is the saved theme; unreadable settings follow the terminal
func darkPreference() *bool {
	dark, err := store.DarkMode()
	if err != nil {
		appLog.Warn("reading theme preference", zap.Error(err))
		return nil
	}
	return dark
}

// confirm asks a yes/no question unless --yes was given
func confirm(cmd *cobra.Command, prompt string) bool {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.jobtrack/config.yaml)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(photoCmd)
	rootCmd.AddCommand(applyTemplateCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
