package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/balkashynov/jobtrack/internal/db"
)

// RunJobForm opens the job form prefilled with initial. dark is the saved
// theme preference. ok is false when the user cancelled.
func RunJobForm(title string, initial JobFormValues, dark *bool) (JobFormValues, bool, error) {
	model := NewJobFormModel(title, initial, NewStyles(PaletteFor(dark)))

	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return JobFormValues{}, false, err
	}

	m, ok := finalModel.(JobFormModel)
	if !ok || !m.Submitted() {
		return JobFormValues{}, false, nil
	}
	return m.Values(), true, nil
}

// RunOverview starts the interactive job overview
func RunOverview(store *db.Store, log *zap.Logger) error {
	model, err := NewOverviewModel(store, log)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
