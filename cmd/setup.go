package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"sift/internal/grid"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// shouldRunSetup reports whether the first-run setup should be shown: it has
// never completed, no database is known yet and a user is at the terminal.
func shouldRunSetup(config *Config, file FileConfig) bool {
	if file.SetupDone || config.DBPath != "" {
		return false
	}
	return stdinIsTerminal()
}

// runSetup asks for a default database and search mode, then saves them to
// config.yaml.
func runSetup(configDir string, file FileConfig) (FileConfig, error) {
	p := tea.NewProgram(newSetupModel(file), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return file, err
	}

	result := final.(setupModel)
	file = result.apply(file)
	if err := saveFileConfig(configDir, file); err != nil {
		return file, err
	}
	if result.status != "" {
		fmt.Fprintln(os.Stderr, result.status)
	}
	return file, nil
}

// applySetup carries the answers saved by setup into config for this run,
// unless a flag or the environment already decided them.
func applySetup(config *Config, file FileConfig, flags flagValues) error {
	if config.DBPath == "" {
		config.DBPath = file.Database
	}
	if flags.searchMode == "" {
		mode, err := grid.ParseSearchMode(file.SearchMode)
		if err != nil {
			return err
		}
		config.SearchMode = mode
	}
	return nil
}

type setupStep int

const (
	stepSearch setupStep = iota
	stepDatabase
	stepDone
)

type setupModel struct {
	step      setupStep
	fuzzy     bool
	pathInput textinput.Model
	database  string
	cancelled bool
	status    string
	width     int
	height    int
}

var (
	suColorMuted  = lipgloss.Color("#7E8C80")
	suColorText   = lipgloss.Color("#D6E0D3")
	suColorAccent = lipgloss.Color("#8FA082")
	suColorDanger = lipgloss.Color("#f38ba8")

	suTitleStyle = lipgloss.NewStyle().
			Foreground(suColorAccent).
			Bold(true)

	suHeaderStyle = lipgloss.NewStyle().
			Foreground(suColorAccent).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(suColorMuted)

	suPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(suColorMuted).
			Padding(1, 2)

	suLabelStyle = lipgloss.NewStyle().
			Foreground(suColorAccent).
			Bold(true)

	suMutedStyle = lipgloss.NewStyle().
			Foreground(suColorMuted)

	suOptionStyle = lipgloss.NewStyle().
			Foreground(suColorText)

	suOptionSelected = lipgloss.NewStyle().
				Foreground(suColorAccent).
				Bold(true)

	suWarnStyle = lipgloss.NewStyle().
			Foreground(suColorDanger)

	suFooterStyle = lipgloss.NewStyle().
			Foreground(suColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(suColorMuted)
)

func newSetupModel(file FileConfig) setupModel {
	in := textinput.New()
	in.Placeholder = "/path/to/database.db"
	in.CharLimit = 1024
	in.Prompt = "db> "
	in.TextStyle = lipgloss.NewStyle().Foreground(suColorText)
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(suColorMuted)
	in.SetValue(file.Database)

	return setupModel{
		step:      stepSearch,
		fuzzy:     file.SearchMode == string(grid.SearchFuzzy),
		pathInput: in,
	}
}

func (m setupModel) Init() tea.Cmd { return nil }

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			m.status = "Setup cancelled."
			m.step = stepDone
			return m, tea.Quit
		}

		switch m.step {
		case stepSearch:
			switch msg.String() {
			case "up", "k", "left", "h":
				m.fuzzy = false
			case "down", "j", "right", "l":
				m.fuzzy = true
			case "enter":
				m.step = stepDatabase
				cmd := m.pathInput.Focus()
				return m, cmd
			case "q", "esc":
				m.cancelled = true
				m.status = "Setup cancelled."
				m.step = stepDone
				return m, tea.Quit
			}
			return m, nil

		case stepDatabase:
			switch msg.String() {
			case "enter":
				path := strings.TrimSpace(m.pathInput.Value())
				if path != "" {
					if _, err := os.Stat(path); err != nil {
						m.status = fmt.Sprintf("Cannot read %s", path)
						return m, nil
					}
				}
				m.database = path
				m.status = "Setup saved."
				m.step = stepDone
				return m, tea.Quit
			case "esc":
				m.status = "Skipped default database."
				m.step = stepDone
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.pathInput, cmd = m.pathInput.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// apply merges the answers into file. A cancelled setup still counts as done
// so it is not shown again.
func (m setupModel) apply(file FileConfig) FileConfig {
	file.SetupDone = true
	if m.cancelled {
		return file
	}
	file.SearchMode = string(grid.SearchSmart)
	if m.fuzzy {
		file.SearchMode = string(grid.SearchFuzzy)
	}
	if m.database != "" {
		file.Database = m.database
	}
	return file
}

func (m setupModel) View() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 28
	}

	left := "  " + suTitleStyle.Render("sift") + " " + suMutedStyle.Render("› Setup")
	right := suMutedStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "
	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	header := suHeaderStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)

	var body, footer string
	switch m.step {
	case stepSearch:
		options := []struct {
			label    string
			selected bool
		}{
			{"Smart: every word must appear in the row", !m.fuzzy},
			{"Fuzzy: letters in order, gaps allowed", m.fuzzy},
		}
		lines := []string{suLabelStyle.Render("How should global search match rows?"), ""}
		for _, o := range options {
			if o.selected {
				lines = append(lines, "  "+suOptionSelected.Render("→ "+o.label))
			} else {
				lines = append(lines, "    "+suOptionStyle.Render(o.label))
			}
		}
		body = strings.Join(lines, "\n")
		footer = "↑↓/jk to choose  enter to confirm  q cancel"
	case stepDatabase:
		lines := []string{
			suLabelStyle.Render("Default database"),
			suMutedStyle.Render("Opened when sift runs without --db. Leave empty to skip."),
			"",
			m.pathInput.View(),
		}
		if m.status != "" {
			lines = append(lines, "", suWarnStyle.Render(m.status))
		}
		body = strings.Join(lines, "\n")
		footer = "enter save  esc skip  ctrl+c cancel"
	default:
		body = m.status
		footer = "Setup complete"
	}

	cardWidth := min(92, width-6)
	content := lipgloss.NewStyle().
		Height(max(8, height-6)).
		Padding(1, 2).
		Render(suPanelStyle.Width(cardWidth).Render(body))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		content,
		suFooterStyle.Width(width).Render(footer),
	)
}
