package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/labelsheet/pkg/geometry"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPresetListModel(t *testing.T) {
	presets := geometry.NewRegistry().Presets()
	if len(presets) < 2 {
		t.Fatalf("need at least 2 presets, got %d", len(presets))
	}

	m := NewPresetListModel(presets, presets[1].Name)
	if m.Cursor != 1 {
		t.Fatalf("Cursor = %d, want 1", m.Cursor)
	}

	var model tea.Model = m
	model, _ = model.Update(key("up"))
	model, _ = model.Update(key("up")) // stays at top
	if got := model.(PresetListModel).Cursor; got != 0 {
		t.Errorf("Cursor after up = %d, want 0", got)
	}

	model, _ = model.Update(key("j"))
	model, cmd := model.Update(key("enter"))
	if cmd == nil {
		t.Error("enter should quit")
	}
	sel := model.(PresetListModel).Selected
	if sel == nil || sel.Name != presets[1].Name {
		t.Errorf("Selected = %v, want %s", sel, presets[1].Name)
	}
}

func TestPresetListModelQuit(t *testing.T) {
	m := NewPresetListModel(geometry.NewRegistry().Presets(), "")
	model, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
	if model.(PresetListModel).Selected != nil {
		t.Error("quit should not select")
	}
}

func TestPresetListView(t *testing.T) {
	m := NewPresetListModel(geometry.NewRegistry().Presets(), geometry.DefaultPreset)
	view := m.View()
	if !strings.Contains(view, geometry.DefaultPreset) {
		t.Errorf("view does not list %s:\n%s", geometry.DefaultPreset, view)
	}
}
