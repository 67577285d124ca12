// Package tui implements the interactive rule browser.
package tui

import (
	"github.com/Veraticus/armine/internal/model"
	"github.com/Veraticus/armine/internal/report"
	"github.com/Veraticus/armine/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current state of the TUI.
type State int

const (
	StateBrowse State = iota
	StateFilter
)

const (
	numberColumnWidth = 11
	minTextColumn     = 12
	chromeLines       = 4 // title, status, help and filter lines
	detailLines       = 10
)

// Model holds the rule browser state.
type Model struct {
	theme      themes.Theme
	filterErr  error
	keymap     KeyMap
	help       help.Model
	filter     textinput.Model
	config     Config
	records    []report.Record
	visible    []int
	query      string
	table      table.Model
	width      int
	height     int
	state      State
	showDetail bool
	quitting   bool
}

// newModel creates a browser over rules.
func newModel(rules model.RuleSet, cfg Config) Model {
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "items or lift>1.5 confidence>=0.8"
	filter.CharLimit = 200

	t := table.New(table.WithFocused(true))
	styles := table.DefaultStyles()
	styles.Header = cfg.Theme.Header
	styles.Selected = cfg.Theme.Selected
	t.SetStyles(styles)

	m := Model{
		theme:      cfg.Theme,
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		filter:     filter,
		config:     cfg,
		records:    report.Records(rules, cfg.Tabular),
		table:      t,
		width:      cfg.Width,
		height:     cfg.Height,
		state:      StateBrowse,
		showDetail: cfg.ShowDetail,
	}
	m.visible = allIndices(len(m.records))
	m.resize()
	m.refreshRows()
	return m
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.state == StateFilter {
			return m.updateFilter(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Filter):
		m.state = StateFilter
		m.filter.SetValue(m.query)
		m.filter.CursorEnd()
		m.resize()
		return m, m.filter.Focus()

	case key.Matches(msg, m.keymap.ClearFilter):
		m.applyQuery("")
		return m, nil

	case key.Matches(msg, m.keymap.ToggleDetail):
		m.showDetail = !m.showDetail
		m.resize()
		return m, nil

	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ApplyFilter):
		m.state = StateBrowse
		m.filter.Blur()
		m.resize()
		return m, nil

	case key.Matches(msg, m.keymap.ClearFilter):
		m.state = StateBrowse
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyQuery("")
		m.resize()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyQuery(m.filter.Value())
	return m, cmd
}

// applyQuery narrows the table to rules matching query. An unparsable
// query keeps the previous selection and records the error.
func (m *Model) applyQuery(query string) {
	visible, err := filterRecords(m.records, query)
	if err != nil {
		m.filterErr = err
		return
	}
	m.filterErr = nil
	m.query = query
	m.visible = visible
	m.refreshRows()
	m.table.SetCursor(0)
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, 0, len(m.visible))
	for _, idx := range m.visible {
		rows = append(rows, m.records[idx].Row())
	}
	m.table.SetRows(rows)
}

// resize fits the table columns and height to the terminal.
func (m *Model) resize() {
	numbers := len(report.Headers) - 2
	text := max(m.width-numbers*numberColumnWidth-4, 2*minTextColumn)
	antecedent := text * 3 / 5
	consequent := text - antecedent

	columns := make([]table.Column, len(report.Headers))
	for i, title := range report.Headers {
		width := numberColumnWidth
		switch i {
		case 0:
			width = antecedent
		case 1:
			width = consequent
		}
		columns[i] = table.Column{Title: title, Width: width}
	}
	m.table.SetColumns(columns)
	m.table.SetWidth(m.width)

	height := m.height - chromeLines
	if m.showDetail {
		height -= detailLines
	}
	if m.help.ShowAll {
		height -= len(m.keymap.FullHelp()[0])
	}
	m.table.SetHeight(max(height, 3))
	m.help.Width = m.width
}

// SelectedRecord returns the rule under the cursor.
func (m Model) SelectedRecord() (report.Record, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return report.Record{}, false
	}
	return m.records[m.visible[cursor]], true
}

// Visible returns how many rules pass the current filter.
func (m Model) Visible() int {
	return len(m.visible)
}

// Query returns the applied filter query.
func (m Model) Query() string {
	return m.query
}
