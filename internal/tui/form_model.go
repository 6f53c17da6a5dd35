package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/jobtrack/internal/db"
	"github.com/balkashynov/jobtrack/internal/parser"
)

// JobFormValues is the raw text of the job form
type JobFormValues struct {
	JobName      string
	CustomerName string
	Due          string
}

// Validate checks required fields and the due date syntax
func (v JobFormValues) Validate() error {
	if strings.TrimSpace(v.JobName) == "" {
		return errors.New("job name is required")
	}
	if strings.TrimSpace(v.CustomerName) == "" {
		return errors.New("customer is required")
	}
	if _, err := parser.ParseDueDate(v.Due); err != nil {
		return fmt.Errorf("due date: %w", err)
	}
	return nil
}

// Request converts validated values into a create request
func (v JobFormValues) Request() db.CreateJobRequest {
	due, _ := parser.ParseDueDate(v.Due)
	return db.CreateJobRequest{
		JobName:      strings.TrimSpace(v.JobName),
		CustomerName: strings.TrimSpace(v.CustomerName),
		DueDate:      due,
	}
}

// Update converts validated values into a full job update; an empty due
// date clears it
func (v JobFormValues) Update() db.JobUpdate {
	req := v.Request()
	return db.JobUpdate{
		JobName:      &req.JobName,
		CustomerName: &req.CustomerName,
		DueDate:      req.DueDate,
		ClearDueDate: req.DueDate == nil,
	}
}

const (
	fieldName = iota
	fieldCustomer
	fieldDue
	fieldCount
)

var fieldLabels = [fieldCount]string{"Job name", "Customer", "Due date"}

// JobFormModel is a three-field form used for both adding and editing
type JobFormModel struct {
	heading string
	inputs  []textinput.Model
	focus   int
	styles  Styles

	validationErr string
	submitted     bool
	cancelled     bool
}

func NewJobFormModel(heading string, initial JobFormValues, styles Styles) JobFormModel {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 50
		inputs[i].TextStyle = styles.Text
		inputs[i].PlaceholderStyle = styles.Muted
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.Palette.AccentBright))
	}

	inputs[fieldName].Placeholder = "e.g. Tank 40 gal (required)"
	inputs[fieldName].CharLimit = 200
	inputs[fieldName].SetValue(initial.JobName)

	inputs[fieldCustomer].Placeholder = "e.g. Acme Foods (required)"
	inputs[fieldCustomer].CharLimit = 200
	inputs[fieldCustomer].SetValue(initial.CustomerName)

	inputs[fieldDue].Placeholder = "yyyy-mm-dd, dd/mm/yyyy, tomorrow, 3 days, 2 weeks (optional)"
	inputs[fieldDue].CharLimit = 50
	inputs[fieldDue].SetValue(initial.Due)

	m := JobFormModel{heading: heading, inputs: inputs, styles: styles}
	// Start on the first empty required field
	if initial.JobName != "" && initial.CustomerName == "" {
		m.focus = fieldCustomer
	}
	m.inputs[m.focus].Focus()
	return m
}

// Values returns the current text of every field
func (m JobFormModel) Values() JobFormValues {
	return JobFormValues{
		JobName:      m.inputs[fieldName].Value(),
		CustomerName: m.inputs[fieldCustomer].Value(),
		Due:          m.inputs[fieldDue].Value(),
	}
}

func (m JobFormModel) Submitted() bool { return m.submitted }
func (m JobFormModel) Cancelled() bool { return m.cancelled }

func (m JobFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m JobFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "tab", "down":
			return m.setFocus((m.focus + 1) % fieldCount), nil

		case "shift+tab", "up":
			return m.setFocus((m.focus + fieldCount - 1) % fieldCount), nil

		case "enter":
			if m.focus < fieldCount-1 {
				return m.setFocus(m.focus + 1), nil
			}
			if err := m.Values().Validate(); err != nil {
				m.validationErr = err.Error()
				return m, nil
			}
			m.submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.validationErr = ""
	return m, cmd
}

func (m JobFormModel) setFocus(i int) JobFormModel {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	return m
}

func (m JobFormModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.heading))
	b.WriteString("\n\n")

	for i, input := range m.inputs {
		label := m.styles.Secondary.Render(fieldLabels[i])
		if i == m.focus {
			label = m.styles.Selected.Render("› " + fieldLabels[i])
		}
		b.WriteString(label + "\n")
		b.WriteString(input.View() + "\n\n")
	}

	if m.validationErr != "" {
		b.WriteString(m.styles.Error.Render("⚠️  " + m.validationErr))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.Help.Render("tab/↑/↓ move · enter next/save · esc cancel"))

	return m.styles.Panel.Padding(1, 2).Render(b.String())
}
