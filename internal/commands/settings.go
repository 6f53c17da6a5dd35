package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/jobtrack/internal/template"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change progress and display settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show progress mode, theme and phase weights",
	Args:  cobra.NoArgs,
	Run: withEditor(false, func(cmd *cobra.Command, e *template.Editor, args []string) error {
		weighted, err := store.WeightedMode()
		if err != nil {
			return err
		}
		dark, err := store.DarkMode()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		mode := "flat (every milestone counts the same)"
		if weighted {
			mode = "weighted by phase"
		}
		theme := "system"
		if dark != nil {
			theme = onOff(*dark)
		}
		fmt.Fprintf(w, "Progress mode: %s\n", mode)
		fmt.Fprintf(w, "Dark mode:     %s\n\n", theme)

		fmt.Fprintf(w, "%-20s %8s\n", "PHASE", "WEIGHT")
		fmt.Fprintln(w, strings.Repeat("-", 29))
		for _, phase := range e.Phases() {
			weight, ok := e.Weight(phase)
			label := fmt.Sprintf("%g", weight)
			if !ok {
				label = "-"
			}
			fmt.Fprintf(w, "%-20s %8s\n", phase, label)
		}
		fmt.Fprintln(w, strings.Repeat("-", 29))
		fmt.Fprintf(w, "%-20s %8g\n", "Total", e.TotalWeight())
		return nil
	}),
}

var settingsWeightedCmd = &cobra.Command{
	Use:       "weighted <on|off>",
	Short:     "Weight progress by phase instead of counting milestones",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	Run: withDB(func(cmd *cobra.Command, args []string) {
		on, err := parseOnOff(args[0])
		if err != nil {
			printErr(cmd, err)
			return
		}
		if err := store.SetWeightedMode(on); err != nil {
			printErr(cmd, err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "⚖️  Weighted progress %s\n", onOff(on))
	}),
}

var settingsDarkCmd = &cobra.Command{
	Use:       "dark <on|off|system>",
	Short:     "Choose the interface theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off", "system"},
	Run: withDB(func(cmd *cobra.Command, args []string) {
		var pref *bool
		if args[0] != "system" {
			on, err := parseOnOff(args[0])
			if err != nil {
				printErr(cmd, err)
				return
			}
			pref = &on
		}
		if err := store.SetDarkMode(pref); err != nil {
			printErr(cmd, err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🌗 Dark mode %s\n", args[0])
	}),
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWeightedCmd)
	settingsCmd.AddCommand(settingsDarkCmd)
}
