// Package picker is the interactive source picker behind "grab sources
// --pick". It renders the enumerated sources as a navigable list with a
// substring filter.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akv004/grab/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CBA6F7"))
	countStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))
	idStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#585B70"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// Model is the picker program state.
type Model struct {
	title     string
	all       []model.CaptureSource
	filtered  []model.CaptureSource
	input     textinput.Model
	filtering bool
	cursor    int
	offset    int
	height    int
	chosen    model.CaptureSource
	done      bool
}

// New builds a picker over sources.
func New(title string, sources []model.CaptureSource) Model {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40

	return Model{
		title:    title,
		all:      sources,
		filtered: sources,
		input:    ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.filtering {
			return m.updateFiltering(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m Model) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.input.Blur()
		m.input.SetValue("")
		m.applyFilter()
		return m, nil
	case "enter":
		m.filtering = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "enter":
		if m.cursor >= 0 && m.cursor < len(m.filtered) {
			m.chosen = m.filtered[m.cursor]
			m.done = true
		}
		return m, tea.Quit
	case "/":
		m.filtering = true
		return m, m.input.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.ensureVisible()
		}
	case "home", "g":
		m.cursor = 0
		m.offset = 0
	case "end", "G":
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
			m.ensureVisible()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	header := titleStyle.Render(m.title) + " " +
		countStyle.Render(fmt.Sprintf("(%d)", len(m.filtered)))
	b.WriteString(header + "\n")

	if m.filtering || m.input.Value() != "" {
		b.WriteString(m.input.View() + "\n")
	}
	b.WriteString("\n")

	if len(m.filtered) == 0 {
		b.WriteString(countStyle.Render("  nothing matches") + "\n")
	} else {
		visible := m.visibleRows()
		end := m.offset + visible
		if end > len(m.filtered) {
			end = len(m.filtered)
		}
		for i := m.offset; i < end; i++ {
			src := m.filtered[i]
			id := idStyle.Render("[" + src.ID + "]")
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> "+src.Name) + " " + id + "\n")
			} else {
				b.WriteString(itemStyle.Render("  "+src.Name) + " " + id + "\n")
			}
		}
		if len(m.filtered) > visible {
			b.WriteString(countStyle.Render(fmt.Sprintf(" %d/%d ", m.cursor+1, len(m.filtered))) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("Enter: select - /: filter - Esc: cancel") + "\n")
	return b.String()
}

// Chosen returns the picked source once the program finished.
func (m Model) Chosen() (model.CaptureSource, bool) {
	return m.chosen, m.done
}

func (m *Model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if query == "" {
		m.filtered = m.all
	} else {
		filtered := make([]model.CaptureSource, 0, len(m.all))
		for _, src := range m.all {
			if strings.Contains(strings.ToLower(src.Name), query) ||
				strings.Contains(strings.ToLower(src.ID), query) {
				filtered = append(filtered, src)
			}
		}
		m.filtered = filtered
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.offset = 0
	m.ensureVisible()
}

func (m *Model) visibleRows() int {
	rows := m.height - 6
	if rows < 1 {
		rows = 10
	}
	return rows
}

func (m *Model) ensureVisible() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// Run shows the picker and reports the selection. ok is false when the
// user cancelled or there was nothing to pick from.
func Run(title string, sources []model.CaptureSource) (model.CaptureSource, bool, error) {
	if len(sources) == 0 {
		return model.CaptureSource{}, false, nil
	}

	p := tea.NewProgram(New(title, sources))
	out, err := p.Run()
	if err != nil {
		return model.CaptureSource{}, false, err
	}

	final, ok := out.(Model)
	if !ok {
		return model.CaptureSource{}, false, nil
	}
	chosen, picked := final.Chosen()
	return chosen, picked, nil
}
