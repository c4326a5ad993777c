// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Provides an interactive full-screen console over the in-memory workspace
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/crmpro/activity"
	"github.com/harperreed/crmpro/config"
	"github.com/harperreed/crmpro/models"
	"github.com/harperreed/crmpro/store"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewEdit
	ViewGraph
	ViewConfirmDelete
)

// Tab is the active top-level tab.
type Tab int

const (
	TabContacts Tab = iota
	TabDeals
	TabTasks
	TabSettings
)

var tabNames = []string{"Contacts", "Deals", "Tasks", "Settings"}

func (t Tab) String() string {
	if int(t) < len(tabNames) {
		return tabNames[t]
	}
	return ""
}

// Model is the main bubbletea model. The active tab, settings section, filters,
// and selection all live here.
type Model struct {
	ws       *store.Workspace
	feed     *activity.Feed
	settings *config.Settings
	today    func() models.Date

	viewMode ViewMode
	tab      Tab

	// List view state
	selectedRow  int
	searching    bool
	searchInput  textinput.Model
	searchQuery  string
	contactState string
	dealStage    string
	taskStatus   string
	taskPriority string

	// Detail, delete, and graph state
	selectedID  int
	returnTo    ViewMode
	graphDOT    string
	graphOffset int

	// Edit view state
	form *entityForm

	// Settings view state
	section        int
	settingsRow    int
	editingSetting bool
	settingInput   textinput.Model

	status string
	err    error

	width  int
	height int
}

// NewModel creates a new TUI model. feed may be nil.
func NewModel(ws *store.Workspace, feed *activity.Feed, settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	search := textinput.New()
	search.Placeholder = "Search..."
	search.Prompt = "/ "
	search.CharLimit = 100

	return Model{
		ws:           ws,
		feed:         feed,
		settings:     settings,
		today:        settings.Today,
		viewMode:     ViewList,
		tab:          TabContacts,
		searchInput:  search,
		settingInput: textinput.New(),
		contactState: models.FilterAll,
		dealStage:    models.FilterAll,
		taskStatus:   models.FilterAll,
		taskPriority: models.FilterAll,
		width:        100,
		height:       30,
	}
}

// Run starts the full-screen console and blocks until the user quits.
func Run(ws *store.Workspace, feed *activity.Feed, settings *config.Settings) error {
	p := tea.NewProgram(NewModel(ws, feed, settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewEdit:
		return m.renderEditView()
	case ViewGraph:
		return m.renderGraphView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}
	return ""
}

// typing reports whether keystrokes belong to a text input.
func (m Model) typing() bool {
	return m.searching || m.editingSetting || m.viewMode == ViewEdit
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if !m.typing() && msg.String() == "q" {
		return m, tea.Quit
	}

	// Delegate to view-specific handlers
	switch m.viewMode {
	case ViewList:
		if m.tab == TabSettings {
			return m.handleSettingsKeys(msg)
		}
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewEdit:
		return m.handleEditKeys(msg)
	case ViewGraph:
		return m.handleGraphKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}

	return m, nil
}

func (m Model) money() *models.Money {
	return m.settings.Money()
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	bandStyles = map[models.ProbabilityBand]lipgloss.Style{
		models.BandHigh: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		models.BandGood: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		models.BandFair: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		models.BandLow:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)
