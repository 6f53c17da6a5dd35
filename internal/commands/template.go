package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/jobtrack/internal/models"
	"github.com/balkashynov/jobtrack/internal/template"
)

var applyTemplateCmd = &cobra.Command{
	Use:   "apply-template [job]",
	Short: "Rebuild a job's checklist from the current template",
	Long: `Rebuild a job's milestones from the current template.

Completed milestones whose phase and title still exist in the template stay
complete. Milestones that are no longer in the template are removed along
with their completion history. Use --all to apply to every job.`,
	Args: cobra.MaximumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		all, _ := cmd.Flags().GetBool("all")
		if all == (len(args) == 1) {
			printErr(cmd, errors.New("give either a job or --all"))
			return
		}

		var ids []string
		if all {
			jobs, err := store.Jobs()
			if err != nil {
				printErr(cmd, err)
				return
			}
			for _, j := range jobs {
				ids = append(ids, j.ID)
			}
		} else {
			job, err := resolveJob(args[0])
			if err != nil {
				printErr(cmd, err)
				return
			}
			ids = []string{job.ID}
		}

		if !confirm(cmd, fmt.Sprintf("Apply the template to %d job(s)? Milestones not in the template lose their history.", len(ids))) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return
		}

		for _, id := range ids {
			before, err := store.Job(id)
			if err != nil {
				printErr(cmd, err)
				return
			}
			job, err := store.ApplyTemplateToJob(id)
			if err != nil {
				printErr(cmd, err)
				return
			}
			if job == nil || before == nil {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🔄 %s: %d milestones (was %d), %d complete\n",
				job.JobName, len(job.Milestones), len(before.Milestones), job.CompletedCount())
		}
	}),
}

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tmpl"},
	Short:   "View and edit the milestone template",
	Long: `View and edit the milestone template that new jobs copy.

Changes never reach existing jobs until 'jobtrack apply-template'.`,
}

var templateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the template grouped by phase",
	Args:  cobra.NoArgs,
	Run: withEditor(false, func(cmd *cobra.Command, e *template.Editor, args []string) error {
		renderTemplate(cmd.OutOrStdout(), e)
		return nil
	}),
}

var templateAddPhaseCmd = &cobra.Command{
	Use:   "add-phase <name>",
	Short: "Add an empty phase with the default weight",
	Args:  cobra.MinimumNArgs(1),
	Run: withEditor(true, func(cmd *cobra.Command, e *template.Editor, args []string) error {
		name := strings.Join(args, " ")
		if err := e.AddPhase(name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "➕ Added phase %q (weight %d)\n", strings.TrimSpace(name), models.DefaultPhaseWeight)
		return nil
	}),
}

var templateRemovePhaseCmd = &cobra.Command{
	Use:   "rm-phase <name>",
	Short: "Remove a phase, its weight and all of its milestones",
	Args:  cobra.MinimumNArgs(1),
	Run: withEditor(true, func(cmd *cobra.Command, e *template.Editor, args []string) error {
		name := strings.Join(args, " ")
		count := len(e.Milestones(name))
		if !e.RemovePhase(name) {
			return fmt.Errorf("%w: %s", template.ErrUnknownPhase, name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Removed phase %q and %d milestone(s)\n", name, count)
		return nil
	}),
}

var templateAddCmd = &cobra.Command{
	Use:   "add <phase> <title>",
	Short: "Add a milestone to a phase (it sorts last)",
	Args:  cobra.MinimumNArgs(2),
	Run: withEditor(true, func(cmd *cobra.Command, e *template.Editor, args []string) error {
		entry, err := e.AddMilestone(args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "➕ Added %s / %s\n", entry.Phase, entry.Title)
		return nil
	}),
}

var templateRemoveCmd = &cobra.Command{
	Use:   "rm <milestone>",
	Short: "Remove a template milestone by number or id",
	Args:  cobra.ExactArgs(1),
	Run: withEditor(true, func(cmd *cobra.Command, e *template.Editor, args []string) error {
		entry, err := resolveTemplateEntry(e, args[0])
		if err != nil {
			return err
		}
		e.RemoveMilestone(entry.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Removed %s / %s\n", entry.Phase, entry.Title)
		return nil
	}),
}

var templateUpCmd = &cobra.Command{
	Use:   "up <milestone>",
	Short: "Move a template milestone one place earlier",
	Args:  cobra.ExactArgs(1),
	Run:   withEditor(true, moveEntry(template.Up)),
}

var templateDownCmd = &cobra.Command{
	Use:   "down <milestone>",
	Short: "Move a template milestone one place later",
	Args:  cobra.ExactArgs(1),
	Run:   withEditor(true, moveEntry(template.Down)),
}

var templateWeightCmd = &cobra.Command{
	Use:   "weight <phase> <weight>",
	Short: "Set a phase's weight for weighted progress",
	Args:  cobra.ExactArgs(2),
	Run: withEditor(true, func(cmd *cobra.Command, e *template.Editor, args []string) error {
		weight, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid weight %q", args[1])
		}
		if err := e.SetWeight(args[0], weight); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "⚖️  %s weight set to %g (total %g)\n", args[0], weight, e.TotalWeight())
		return nil
	}),
}

var templateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the template and weights with the built-in defaults",
	Args:  cobra.NoArgs,
	Run: withEditor(true, func(cmd *cobra.Command, e *template.Editor, args []string) error {
		if !confirm(cmd, "Reset the template to the defaults? Existing jobs are not changed.") {
			return errCancelled
		}
		e.Reset()
		fmt.Fprintln(cmd.OutOrStdout(), "🔄 Template reset to defaults")
		return nil
	}),
}

var templateExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the template and weights as YAML",
	Args:  cobra.MaximumNArgs(1),
	Run: withEditor(false, func(cmd *cobra.Command, e *template.Editor, args []string) error {
		out, err := e.ExportYAML()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}
		if err := os.WriteFile(args[0], out, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "💾 Template written to %s\n", args[0])
		return nil
	}),
}

var templateImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the template and weights from YAML ('-' for stdin)",
	Args:  cobra.ExactArgs(1),
	Run: withEditor(true, func(cmd *cobra.Command, e *template.Editor, args []string) error {
		var raw []byte
		var err error
		if args[0] == "-" {
			raw, err = io.ReadAll(cmd.InOrStdin())
		} else {
			raw, err = os.ReadFile(args[0])
		}
		if err != nil {
			return err
		}
		if err := e.ImportYAML(raw); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "📥 Imported %d milestones in %d phases\n", len(e.Template()), len(e.Phases()))
		return nil
	}),
}

var errCancelled = errors.New("cancelled")

// withEditor opens a template editor for fn and, when save is set, stores
// the result if fn succeeds
func withEditor(save bool, fn func(*cobra.Command, *template.Editor, []string) error) func(*cobra.Command, []string) {
	return withDB(func(cmd *cobra.Command, args []string) {
		e, err := store.Editor()
		if err != nil {
			printErr(cmd, err)
			return
		}
		if err := fn(cmd, e, args); err != nil {
			if errors.Is(err, errCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return
			}
			printErr(cmd, err)
			return
		}
		if !save {
			return
		}
		if err := store.SaveEditor(e); err != nil {
			printErr(cmd, err)
		}
	})
}

func moveEntry(dir template.Direction) func(*cobra.Command, *template.Editor, []string) error {
	return func(cmd *cobra.Command, e *template.Editor, args []string) error {
		entry, err := resolveTemplateEntry(e, args[0])
		if err != nil {
			return err
		}
		if !e.Move(entry.ID, dir) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already at the edge\n", entry.Title)
			return nil
		}
		for i, t := range e.Sorted() {
			if t.ID == entry.ID {
				fmt.Fprintf(cmd.OutOrStdout(), "↕️  %s is now #%d\n", entry.Title, i+1)
			}
		}
		return nil
	}
}

// resolveTemplateEntry accepts a 1-based position in template order or an id
func resolveTemplateEntry(e *template.Editor, ref string) (models.TemplateMilestone, error) {
	sorted := e.Sorted()
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(sorted) {
			return models.TemplateMilestone{}, fmt.Errorf("template milestone #%d not found (template has %d)", n, len(sorted))
		}
		return sorted[n-1], nil
	}
	for _, t := range sorted {
		if t.ID == ref {
			return t, nil
		}
	}
	return models.TemplateMilestone{}, fmt.Errorf("template milestone %q not found", ref)
}

// renderTemplate prints phases with weights and numbered milestones
func renderTemplate(w io.Writer, e *template.Editor) {
	position := make(map[string]int)
	for i, t := range e.Sorted() {
		position[t.ID] = i + 1
	}

	for _, phase := range e.Phases() {
		weight, _ := e.Weight(phase)
		entries := e.Milestones(phase)
		fmt.Fprintf(w, "%s %s\n", phaseStyle.Render(phase), mutedStyle.Render(fmt.Sprintf("weight %g · %d milestone(s)", weight, len(entries))))
		for _, t := range entries {
			fmt.Fprintf(w, "  %2d. %s\n", position[t.ID], t.Title)
		}
		if len(entries) == 0 {
			fmt.Fprintln(w, mutedStyle.Render("      (empty)"))
		}
	}
	fmt.Fprintf(w, "\nTotal weight: %g\n", e.TotalWeight())
}

func init() {
	applyTemplateCmd.Flags().Bool("all", false, "Apply to every job")
	applyTemplateCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	templateResetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateAddPhaseCmd)
	templateCmd.AddCommand(templateRemovePhaseCmd)
	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateRemoveCmd)
	templateCmd.AddCommand(templateUpCmd)
	templateCmd.AddCommand(templateDownCmd)
	templateCmd.AddCommand(templateWeightCmd)
	templateCmd.AddCommand(templateResetCmd)
	templateCmd.AddCommand(templateExportCmd)
	templateCmd.AddCommand(templateImportCmd)
}
