package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/labelsheet/pkg/geometry"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PresetListModel - Interactive label stock selection
// =============================================================================

// PresetListModel is the bubbletea model for interactive preset selection.
type PresetListModel struct {
	Presets  []geometry.Preset
	Cursor   int
	Selected *geometry.Preset
}

// NewPresetListModel creates a preset list with the cursor on current.
func NewPresetListModel(presets []geometry.Preset, current string) PresetListModel {
	m := PresetListModel{Presets: presets}
	for i, p := range presets {
		if p.Name == current {
			m.Cursor = i
		}
	}
	return m
}

func (m PresetListModel) Init() tea.Cmd {
	return nil
}

func (m PresetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Presets)-1 {
				m.Cursor++
			}
		case "enter":
			if len(m.Presets) == 0 {
				return m, tea.Quit
			}
			p := m.Presets[m.Cursor]
			m.Selected = &p
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m PresetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Label Stock"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, p := range m.Presets {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		g := p.Geometry
		line := fmt.Sprintf("%s%-22s %dx%d  %s", cursor, p.Name, g.Columns, g.Rows,
			listDimStyle.Render(p.Description))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pickPreset runs the picker and returns the chosen preset name, or "" if
// the user quit without choosing.
func pickPreset(reg *geometry.Registry, current string) (string, error) {
	final, err := tea.NewProgram(NewPresetListModel(reg.Presets(), current)).Run()
	if err != nil {
		return "", fmt.Errorf("preset picker: %w", err)
	}
	m, ok := final.(PresetListModel)
	if !ok || m.Selected == nil {
		return "", nil
	}
	return m.Selected.Name, nil
}
