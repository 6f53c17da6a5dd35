package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/balkashynov/jobtrack/internal/db"
	"github.com/balkashynov/jobtrack/internal/models"
	"github.com/balkashynov/jobtrack/internal/parser"
	"github.com/balkashynov/jobtrack/internal/view"
)

// Focus represents what UI element has focus
type Focus int

const (
	FocusTable Focus = iota
	FocusSearch
	FocusMilestones
)

type overviewKeys struct {
	Up, Down, PrevPage, NextPage key.Binding
	Search, Open, Back, Toggle   key.Binding
	Sort, Status, Due, Progress  key.Binding
	Reset, Theme, Quit           key.Binding
}

func newOverviewKeys() overviewKeys {
	return overviewKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPage: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "page")),
		NextPage: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "page")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "milestones")),
		Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "enter", "x"), key.WithHelp("space", "toggle")),
		Sort:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort")),
		Status:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		Due:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "due")),
		Progress: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "progress")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset filters")),
		Theme:    key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "theme")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// OverviewModel is the interactive job list with a quick-update panel for
// ticking milestones off
type OverviewModel struct {
	store  *db.Store
	log    *zap.Logger
	styles Styles
	dark   *bool
	today  func() models.Date
	now    func() time.Time

	width  int
	height int

	jobs     []models.Job
	visible  []models.Job
	progress map[string]int
	filters  models.JobFilters

	focus       Focus
	search      textinput.Model
	selected    int
	milestone   int
	jobsPerPage int
	keys        overviewKeys
	help        help.Model
	bar         progressbar.Model
	shimmer     *Shimmer
	status      string
	statusIsErr bool
}

// NewOverviewModel loads the saved filters and the job list
func NewOverviewModel(store *db.Store, log *zap.Logger) (OverviewModel, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dark, err := store.DarkMode()
	if err != nil {
		return OverviewModel{}, err
	}
	filters, err := store.Filters()
	if err != nil {
		return OverviewModel{}, err
	}

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "job or customer name"
	search.CharLimit = 100

	m := OverviewModel{
		store:       store,
		log:         log,
		dark:        dark,
		today:       models.Today,
		now:         time.Now,
		filters:     filters,
		search:      search,
		jobsPerPage: 10,
		keys:        newOverviewKeys(),
		help:        help.New(),
	}
	m = m.applyStyles(NewStyles(PaletteFor(dark)))
	if err := m.reload(); err != nil {
		return OverviewModel{}, err
	}
	return m, nil
}

func (m OverviewModel) applyStyles(s Styles) OverviewModel {
	m.styles = s
	m.search.PromptStyle = s.Header
	m.search.TextStyle = s.Text
	m.search.PlaceholderStyle = s.Muted
	m.help.Styles.ShortKey = s.Secondary
	m.help.Styles.ShortDesc = s.Help
	m.help.Styles.ShortSeparator = s.Muted
	m.bar = progressbar.New(
		progressbar.WithSolidFill(s.Palette.AccentMain),
		progressbar.WithoutPercentage(),
		progressbar.WithWidth(24),
	)
	m.bar.EmptyColor = s.Palette.Border
	enabled := m.shimmer == nil || m.shimmer.Enabled
	m.shimmer = NewShimmer(s.Palette, enabled)
	return m
}

// reload reads jobs and progress settings from the store and re-derives
// the visible list, keeping the selected job when it is still shown
func (m *OverviewModel) reload() error {
	jobs, err := m.store.Jobs()
	if err != nil {
		return err
	}
	mode, err := m.store.ProgressMode()
	if err != nil {
		return err
	}
	m.jobs = jobs
	m.progress = mode.ByJob(jobs)
	m.derive()
	return nil
}

func (m *OverviewModel) derive() {
	var keep string
	if job := m.selectedJob(); job != nil {
		keep = job.ID
	}

	m.visible = view.Derive(m.jobs, m.search.Value(), m.filters, m.progress, m.today())

	m.selected = 0
	for i, j := range m.visible {
		if j.ID == keep {
			m.selected = i
			break
		}
	}
}

func (m OverviewModel) selectedJob() *models.Job {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return nil
	}
	return &m.visible[m.selected]
}

func (m OverviewModel) Init() tea.Cmd {
	return m.shimmer.Tick()
}

func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		if job := m.selectedJob(); job != nil && m.focus == FocusTable {
			m.shimmer.Advance(len([]rune(rowLabel(*job))))
		}
		return m, m.shimmer.Tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// header, column titles, pagination, help and borders
		m.jobsPerPage = max(m.height-12, 3)
		return m, nil

	case tea.KeyMsg:
		switch m.focus {
		case FocusSearch:
			return m.handleSearchKeys(msg)
		case FocusMilestones:
			return m.handleMilestoneKeys(msg)
		}
		return m.handleTableKeys(msg)
	}
	return m, nil
}

func (m OverviewModel) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), msg.String() == "esc":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.shimmer.Reset()
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.visible)-1 {
			m.selected++
			m.shimmer.Reset()
		}
	case key.Matches(msg, m.keys.PrevPage):
		m.selected = max(m.selected-m.jobsPerPage, 0)
		m.shimmer.Reset()
	case key.Matches(msg, m.keys.NextPage):
		m.selected = max(min(m.selected+m.jobsPerPage, len(m.visible)-1), 0)
		m.shimmer.Reset()

	case key.Matches(msg, m.keys.Search):
		m.focus = FocusSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Open):
		if m.selectedJob() != nil && len(m.selectedJob().Milestones) > 0 {
			m.focus = FocusMilestones
			m.milestone = 0
			if next := m.selectedJob().NextMilestone(); next != nil {
				for i, ms := range m.selectedJob().SortedMilestones() {
					if ms.ID == next.ID {
						m.milestone = i
					}
				}
			}
		}

	case key.Matches(msg, m.keys.Sort):
		m.filters.Sort = cycle(view.SortOptions, m.filters.Sort)
		m.filtersChanged()
	case key.Matches(msg, m.keys.Status):
		m.filters.Status = cycle(view.StatusOptions, m.filters.Status)
		m.filtersChanged()
	case key.Matches(msg, m.keys.Due):
		m.filters.Due = cycle(view.DueOptions, m.filters.Due)
		m.filtersChanged()
	case key.Matches(msg, m.keys.Progress):
		m.filters.Progress = cycle(view.ProgressOptions, m.filters.Progress)
		m.filtersChanged()
	case key.Matches(msg, m.keys.Reset):
		m.filters = models.DefaultFilters()
		m.filtersChanged()

	case key.Matches(msg, m.keys.Theme):
		m.cycleTheme()
	}
	return m, nil
}

func (m OverviewModel) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.focus = FocusTable
		m.derive()
		return m, nil
	case "enter":
		m.search.Blur()
		m.focus = FocusTable
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.derive()
	return m, cmd
}

func (m OverviewModel) handleMilestoneKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	job := m.selectedJob()
	if job == nil {
		m.focus = FocusTable
		return m, nil
	}
	count := len(job.Milestones)

	switch {
	case msg.String() == "ctrl+c", msg.String() == "q":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.focus = FocusTable
	case key.Matches(msg, m.keys.Up):
		if m.milestone > 0 {
			m.milestone--
		}
	case key.Matches(msg, m.keys.Down):
		if m.milestone < count-1 {
			m.milestone++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggleCurrent()
	}
	return m, nil
}

// toggleCurrent flips the milestone under the cursor and reloads so that
// progress, filters and sort order reflect the change
func (m *OverviewModel) toggleCurrent() {
	job := m.selectedJob()
	sorted := job.SortedMilestones()
	if m.milestone >= len(sorted) {
		return
	}
	target := sorted[m.milestone]

	updated, err := m.store.ToggleMilestone(job.ID, target.ID)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	if updated == nil {
		m.setStatus("Job no longer exists", true)
		m.focus = FocusTable
		_ = m.reload()
		return
	}

	state := "reopened"
	if updated.Milestone(target.ID).IsComplete {
		state = "done"
	}
	m.setStatus(fmt.Sprintf("%s: %s", target.Title, state), false)
	m.log.Debug("milestone toggled", zap.String("job", job.ID), zap.String("milestone", target.ID))

	if err := m.reload(); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	// The job may drop out of the filtered list once toggled
	if sel := m.selectedJob(); sel == nil || sel.ID != updated.ID {
		m.focus = FocusTable
	}
}

func (m *OverviewModel) filtersChanged() {
	m.derive()
	if err := m.store.SaveFilters(m.filters); err != nil {
		m.log.Warn("saving filters failed", zap.Error(err))
		m.setStatus("Could not save filters", true)
	}
}

// cycleTheme steps dark → light → follow terminal and stores the choice
func (m *OverviewModel) cycleTheme() {
	var next *bool
	switch {
	case m.dark == nil:
		on := true
		next = &on
	case *m.dark:
		off := false
		next = &off
	}
	if err := m.store.SetDarkMode(next); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.dark = next
	*m = m.applyStyles(NewStyles(PaletteFor(next)))
	m.setStatus("Theme: "+themeName(next), false)
}

func themeName(dark *bool) string {
	switch {
	case dark == nil:
		return "system"
	case *dark:
		return "dark"
	}
	return "light"
}

func (m *OverviewModel) setStatus(text string, isErr bool) {
	m.status = text
	m.statusIsErr = isErr
}

// cycle returns the option after current, wrapping; unknown values restart
// at the first option
func cycle(opts []view.Option, current string) string {
	for i, o := range opts {
		if o.Value == current {
			return opts[(i+1)%len(opts)].Value
		}
	}
	return opts[0].Value
}

// View renders the TUI
func (m OverviewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	leftWidth := m.width * 55 / 100
	rightWidth := m.width - leftWidth - 5

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderJobTable(leftWidth),
		" ",
		m.renderJobDetails(rightWidth),
	)

	var bottom string
	switch {
	case m.focus == FocusSearch:
		bottom = m.search.View()
	case m.status != "":
		style := m.styles.Success
		if m.statusIsErr {
			style = m.styles.Error
		}
		bottom = style.Render(m.status) + "  " + m.renderHelpBar()
	default:
		bottom = m.renderHelpBar()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderChips(), content, "", bottom)
}

func (m OverviewModel) renderChips() string {
	chips := view.Chips(m.filters)
	if len(chips) == 0 && m.search.Value() == "" {
		return m.styles.Muted.Render(fmt.Sprintf("%d job(s)", len(m.jobs)))
	}
	parts := make([]string, 0, len(chips)+1)
	if q := strings.TrimSpace(m.search.Value()); q != "" {
		parts = append(parts, fmt.Sprintf("[Search: %s]", q))
	}
	for _, c := range chips {
		parts = append(parts, "["+c.Label+"]")
	}
	summary := fmt.Sprintf("Showing %d of %d  ", len(m.visible), len(m.jobs))
	return m.styles.Muted.Render(summary) + m.styles.Header.Render(strings.Join(parts, " "))
}

func (m OverviewModel) renderJobTable(width int) string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("🛠️  Jobs"))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		msg := "No jobs yet. Add one with 'jobtrack add'."
		if len(m.jobs) > 0 {
			msg = "No jobs match. Press r to reset filters."
		}
		b.WriteString(m.styles.Secondary.Italic(true).Render(msg))
		return m.styles.Panel.Width(width).Render(b.String())
	}

	dueWidth := 9
	pctWidth := 5
	nameWidth := max(width-dueWidth-pctWidth-8, 12)

	b.WriteString(m.styles.Header.Render(fmt.Sprintf(" %-*s %*s %-*s", nameWidth, "JOB", pctWidth, "%", dueWidth, "DUE")))
	b.WriteString("\n")

	today := m.today()
	page := m.selected / m.jobsPerPage
	start := page * m.jobsPerPage
	end := min(start+m.jobsPerPage, len(m.visible))

	for i := start; i < end; i++ {
		job := m.visible[i]
		pct := m.progress[job.ID]

		label := truncate(rowLabel(job), nameWidth)
		name := fmt.Sprintf("%-*s", nameWidth, label)
		if i == m.selected && m.focus == FocusTable {
			name = m.shimmer.Render(label) + strings.Repeat(" ", nameWidth-len([]rune(label)))
		}
		due := view.DueBadge(job.DueDate, today)
		dueStyle := m.styles.Secondary
		switch due {
		case "OVERDUE":
			dueStyle = m.styles.Error
		case "TODAY", "TOMORROW":
			dueStyle = m.styles.Warning
		}
		pctStyle := m.styles.Text
		if pct == 100 {
			pctStyle = m.styles.Success
		}

		row := fmt.Sprintf("%s %s %s",
			name,
			pctStyle.Render(fmt.Sprintf("%*d", pctWidth, pct)),
			dueStyle.Render(fmt.Sprintf("%-*s", dueWidth, due)))

		if i == m.selected {
			b.WriteString(m.styles.Selected.Render("›") + row)
		} else {
			b.WriteString(" " + row)
		}
		b.WriteString("\n")
	}

	if m.jobsPerPage < len(m.visible) {
		totalPages := (len(m.visible) + m.jobsPerPage - 1) / m.jobsPerPage
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render(fmt.Sprintf("Page %d/%d (%d jobs)", page+1, totalPages, len(m.visible))))
	}

	return m.styles.Panel.Width(width).Render(b.String())
}

func (m OverviewModel) renderJobDetails(width int) string {
	job := m.selectedJob()
	if job == nil {
		logo := m.styles.Title.Width(width).Align(lipgloss.Center).Render("jobtrack")
		return m.styles.Panel.Width(width).Render(logo)
	}

	var b strings.Builder
	today := m.today()
	pct := m.progress[job.ID]

	b.WriteString(m.styles.Text.Bold(true).Render(job.JobName))
	b.WriteString("\n")
	b.WriteString(m.styles.Secondary.Render(job.CustomerName))
	b.WriteString("\n\n")

	b.WriteString(m.bar.ViewAs(float64(pct) / 100))
	b.WriteString(fmt.Sprintf(" %3d%%\n", pct))
	b.WriteString(m.styles.Secondary.Render(parser.FormatDueDate(job.DueDate, today)))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Updated " + view.RelativeTime(job.LastTouched(), m.now())))
	b.WriteString("\n")
	b.WriteString(m.styles.Secondary.Render(view.NextHint(*job)))
	b.WriteString("\n")

	position := 0
	for _, g := range models.GroupByPhase(job.SortedMilestones()) {
		b.WriteString("\n")
		b.WriteString(m.styles.Header.Render(g.Phase))
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %d/%d", g.Done(), len(g.Milestones))))
		b.WriteString("\n")
		for _, ms := range g.Milestones {
			box, style := "[ ]", m.styles.Text
			if ms.IsComplete {
				box, style = "[x]", m.styles.Success
			}
			line := style.Render(box + " " + ms.Title)
			if m.focus == FocusMilestones && position == m.milestone {
				line = m.styles.Selected.Render("› ") + line
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
			position++
		}
	}

	if job.Notes != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Secondary.Italic(true).Width(width - 2).Render(truncate(job.Notes, 200)))
		b.WriteString("\n")
	}
	if len(job.Photos) > 0 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("📷 %d photo(s)", len(job.Photos))))
	}

	panel := m.styles.Panel
	if m.focus == FocusMilestones {
		panel = panel.BorderForeground(lipgloss.Color(m.styles.Palette.AccentMain))
	}
	return panel.Width(width).Render(b.String())
}

func (m OverviewModel) renderHelpBar() string {
	var bindings []key.Binding
	if m.focus == FocusMilestones {
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.Back, m.keys.Quit}
	} else {
		bindings = []key.Binding{
			m.keys.Up, m.keys.Down, m.keys.Open, m.keys.Search,
			m.keys.Sort, m.keys.Status, m.keys.Due, m.keys.Progress,
			m.keys.Reset, m.keys.Theme, m.keys.Quit,
		}
	}
	return m.help.ShortHelpView(bindings)
}

func rowLabel(job models.Job) string {
	return job.JobName + " · " + job.CustomerName
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
