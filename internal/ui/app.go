package ui

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sift/internal/db"
	"sift/internal/grid"
	"sift/internal/model"
	"sift/internal/tablestate"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Options configures the root model.
type Options struct {
	ConfigDir    string
	SearchMode   grid.SearchMode
	RowLimit     int
	InitialTable string
	Logger       zerolog.Logger
}

type inputTarget int

const (
	inputGlobal inputTarget = iota
	inputColumn
)

// Model is the root Bubble Tea model.
type Model struct {
	db     *sql.DB
	opts   Options
	logger zerolog.Logger
	screen model.Screen
	mode   model.Mode
	gState GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool
	columnJump  bool

	// Screen models
	tables *TablesModel
	table  *TableModel

	input       textinput.Model
	inputTarget inputTarget
	inputBefore *tablestate.TableState

	keys      KeyMap
	inputKeys InputKeyMap
	prefs     UIPreferences
	undoStack []undoAction
	redoStack []undoAction
}

// New creates a new root model.
func New(database *sql.DB, opts Options) Model {
	if opts.SearchMode == "" {
		opts.SearchMode = grid.SearchSmart
	}
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 256

	return Model{
		db:        database,
		opts:      opts,
		logger:    opts.Logger.With().Str("component", "ui").Logger(),
		screen:    model.ScreenTables,
		mode:      model.ModeNav,
		gState:    GStateIdle,
		input:     input,
		keys:      DefaultKeyMap(),
		inputKeys: DefaultInputKeyMap(),
		prefs:     loadUIPreferences(opts.ConfigDir),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.opts.InitialTable != "" {
		return tea.Batch(
			loadTablesCmd(m.db),
			loadDatasetCmd(m.db, m.opts.InitialTable, m.opts.RowLimit),
		)
	}
	return loadTablesCmd(m.db)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.mode == model.ModeInsert {
			return m.handleInsertMode(msg)
		}

		if m.columnJump {
			m.columnJump = false
			if msg.String() == "esc" {
				m.info = ""
				return m, nil
			}
			if n, err := strconv.Atoi(msg.String()); err == nil && m.currentTable() != nil {
				if m.currentTable().JumpToColumn(n) {
					m.info = fmt.Sprintf("Jumped to column %d", n)
					m.persistTablePrefs()
					return m, nil
				}
				m.info = fmt.Sprintf("Column %d unavailable", n)
				return m, nil
			}
		}

		if key.Matches(msg, m.keys.Help) {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" {
				m.showingHelp = false
			}
			return m, nil
		}

		return m.handleNavMode(msg)

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		m.logger.Error().Err(msg.Err).Msg("command failed")
		return m, nil

	case model.TablesLoadedMsg:
		m.tables = NewTablesModel(msg.Tables)
		if m.table != nil {
			m.tables.Select(m.table.Name())
		}
		m.error = ""
		return m, nil

	case model.DatasetLoadedMsg:
		g := grid.New(msg.Dataset,
			grid.WithSearchMode(m.opts.SearchMode),
			grid.WithLogger(m.logger),
		)
		m.table = NewTableModel(g, m.logger)
		m.table.ApplyPrefs(m.prefs.Tables[msg.Dataset.Name])
		m.undoStack = nil
		m.redoStack = nil
		m.screen = model.ScreenTable
		m.error = ""
		m.info = ""
		m.logger.Info().
			Str("table", msg.Dataset.Name).
			Int("rows", len(msg.Dataset.Rows)).
			Int("columns", len(msg.Dataset.Columns)).
			Msg("table opened")
		return m, nil

	default:
		if m.mode == model.ModeInsert {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	var content string
	var breadcrumbParts []string

	// Header: 1 line + border, footer: 1 line + border
	contentHeight := m.height - 4
	if m.mode == model.ModeInsert {
		contentHeight--
	}
	if m.error != "" {
		contentHeight--
	}
	if m.info != "" {
		contentHeight--
	}

	switch m.screen {
	case model.ScreenTables:
		breadcrumbParts = []string{"Tables"}
		if m.tables != nil {
			content = m.tables.View(m.width, contentHeight)
		}
	case model.ScreenTable:
		breadcrumbParts = []string{"Tables", "Table"}
		if m.table != nil {
			breadcrumbParts = []string{"Tables", m.table.Name()}
			content = m.table.View(m.width, contentHeight)
		}
	}

	header := renderHeader(breadcrumbParts, m.width)
	footer := RenderHelp(m.screen, m.mode, m.width)

	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	parts := []string{header}
	if m.error != "" {
		parts = append(parts, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		parts = append(parts, SuccessStyle.Width(m.width).Render(m.info))
	}
	if m.mode == model.ModeInsert {
		parts = append(parts, m.renderInput())
	}
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderInput() string {
	label := "search"
	if m.inputTarget == inputColumn && m.table != nil {
		label = "filter " + m.table.ActiveColumnName()
	}
	return InputStyle.Width(m.width).Render(LabelStyle.Render(label+": ") + m.input.View())
}

func renderHeader(breadcrumbParts []string, width int) string {
	title := HeaderStyle.Render("sift")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb
	right := BreadcrumbStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle "gg" state machine
	if msg.String() == "g" {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		return m.handleJumpToTop()
	}
	m.gState = GStateIdle

	switch m.screen {
	case model.ScreenTables:
		return m.handleTablesNav(msg)
	case model.ScreenTable:
		return m.handleTableNav(msg)
	}
	return m, nil
}

func (m Model) handleJumpToTop() (tea.Model, tea.Cmd) {
	switch m.screen {
	case model.ScreenTables:
		if m.tables != nil {
			m.tables.JumpToTop()
		}
	case model.ScreenTable:
		if m.table != nil {
			m.table.JumpToTop()
		}
	}
	return m, nil
}

func (m Model) handleTablesNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		m.info = "Reloading tables"
		return m, loadTablesCmd(m.db)
	}
	if m.tables == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Select):
		if t, ok := m.tables.Selected(); ok {
			m.info = "Loading " + t.Name
			return m, loadDatasetCmd(m.db, t.Name, m.opts.RowLimit)
		}
	case key.Matches(msg, m.keys.Down):
		m.tables.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.tables.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		m.tables.JumpToBottom()
	}
	return m, nil
}

func (m Model) handleTableNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = model.ScreenTables
		m.info = ""
		if m.tables == nil {
			return m, loadTablesCmd(m.db)
		}
		return m, nil
	}

	t := m.currentTable()
	if t == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		t.MoveDown()
	case key.Matches(msg, m.keys.Up):
		t.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		t.JumpToBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		t.HalfPageDown(m.height / 2)
	case key.Matches(msg, m.keys.HalfPageUp):
		t.HalfPageUp(m.height / 2)

	case key.Matches(msg, m.keys.NextColumn):
		t.NextColumn()
		m.persistTablePrefs()
	case key.Matches(msg, m.keys.PrevColumn):
		t.PrevColumn()
		m.persistTablePrefs()
	case key.Matches(msg, m.keys.ColumnJump):
		m.columnJump = true
		m.info = "Jump to column: press 1-9 (esc to cancel)"
	case key.Matches(msg, m.keys.HideColumn):
		if t.HideActiveColumn() {
			m.info = "Column hidden"
			m.persistTablePrefs()
		} else {
			m.info = "Cannot hide last visible column"
		}
	case key.Matches(msg, m.keys.ShowColumns):
		t.ShowAllColumns()
		m.info = "All columns shown"
		m.persistTablePrefs()

	case key.Matches(msg, m.keys.SortAsc):
		m.trackChange("sort", func(t *TableModel) { t.SortActiveColumn(false) })
		m.info = "Sorted ascending"
		m.persistTablePrefs()
	case key.Matches(msg, m.keys.SortDesc):
		m.trackChange("sort", func(t *TableModel) { t.SortActiveColumn(true) })
		m.info = "Sorted descending"
		m.persistTablePrefs()
	case key.Matches(msg, m.keys.AddSortAsc):
		m.trackChange("sort", func(t *TableModel) { t.AddSortActiveColumn(false) })
		m.info = "Added ascending sort key"
		m.persistTablePrefs()
	case key.Matches(msg, m.keys.AddSortDesc):
		m.trackChange("sort", func(t *TableModel) { t.AddSortActiveColumn(true) })
		m.info = "Added descending sort key"
		m.persistTablePrefs()
	case key.Matches(msg, m.keys.ToggleSort):
		m.trackChange("sort", func(t *TableModel) { m.info = t.CycleSortActiveColumn() })
		m.persistTablePrefs()

	case key.Matches(msg, m.keys.FilterValue):
		applied := false
		m.trackChange("filter", func(t *TableModel) { applied = t.FilterBySelectedValue() })
		if applied {
			m.info = "Filter applied from selected value"
		} else {
			m.info = "No filterable value in selected cell"
		}
	case key.Matches(msg, m.keys.EditFilter):
		cmd := m.startInput(inputColumn)
		return m, cmd
	case key.Matches(msg, m.keys.Search):
		cmd := m.startInput(inputGlobal)
		return m, cmd
	case key.Matches(msg, m.keys.SearchMode):
		mode := t.ToggleSearchMode()
		m.info = fmt.Sprintf("Search mode: %s", mode)

	case key.Matches(msg, m.keys.ClearFilters):
		cleared := false
		m.trackChange("clear filters", func(t *TableModel) { cleared = t.ClearFilters() })
		if cleared {
			m.info = "Filters cleared"
		} else {
			m.info = "No filters to clear"
		}
	case key.Matches(msg, m.keys.SortNeutral):
		m.trackChange("load order", func(t *TableModel) { t.ClearSort() })
		m.info = "Sorting cleared, rows in load order"
		m.persistTablePrefs()
	case key.Matches(msg, m.keys.ResetAll):
		changed := false
		m.trackChange("reset", func(t *TableModel) { changed = t.ResetAll() })
		if changed {
			m.info = "Filters and sorting reset"
		} else {
			m.info = "Table already in load order"
		}
		m.persistTablePrefs()

	case key.Matches(msg, m.keys.Undo):
		m.undo()
		m.persistTablePrefs()
	case key.Matches(msg, m.keys.Redo):
		m.redo()
		m.persistTablePrefs()
	}

	return m, nil
}

func (m *Model) startInput(target inputTarget) tea.Cmd {
	m.mode = model.ModeInsert
	m.inputTarget = target
	m.inputBefore = m.table.Snapshot()
	if target == inputColumn {
		m.input.SetValue(m.table.ActiveFilter())
	} else {
		m.input.SetValue(m.table.GlobalFilter())
	}
	m.input.CursorEnd()
	return m.input.Focus()
}

// handleInsertMode edits a filter. The table is re-filtered on every
// keystroke; esc puts the state back as it was.
func (m Model) handleInsertMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.inputKeys.Cancel):
		m.table.Restore(m.inputBefore)
		m.endInput()
		m.info = "Filter cancelled"
		return m, nil
	case key.Matches(msg, m.inputKeys.Apply):
		after := m.table.Snapshot()
		if !statesEqual(m.inputBefore, after) {
			label := "search"
			if m.inputTarget == inputColumn {
				label = "filter " + m.table.ActiveColumnName()
			}
			m.pushUndoAction(undoAction{label: label, table: m.table.Name(), before: m.inputBefore, after: after})
		}
		m.endInput()
		m.info = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.inputTarget == inputColumn {
		m.table.SetActiveFilter(m.input.Value())
	} else {
		m.table.SetGlobalFilter(m.input.Value())
	}
	return m, cmd
}

func (m *Model) endInput() {
	m.mode = model.ModeNav
	m.inputBefore = nil
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) persistTablePrefs() {
	if m.table == nil {
		return
	}
	m.prefs.Tables[m.table.Name()] = m.table.Prefs()
	if err := saveUIPreferences(m.opts.ConfigDir, m.prefs); err != nil {
		m.logger.Warn().Err(err).Msg("failed to save preferences")
	}
}

// Commands

func loadTablesCmd(database *sql.DB) tea.Cmd {
	return func() tea.Msg {
		tables, err := db.ListTables(database)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.TablesLoadedMsg{Tables: tables}
	}
}

func loadDatasetCmd(database *sql.DB, table string, limit int) tea.Cmd {
	return func() tea.Msg {
		ds, err := db.LoadTable(database, table, limit)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load table: %w", err)}
		}
		return model.DatasetLoadedMsg{Dataset: ds}
	}
}
