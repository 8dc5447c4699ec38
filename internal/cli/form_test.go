package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/dressform/pkg/measure"
)

func press(m FigureFormModel, keys ...tea.KeyMsg) (FigureFormModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(FigureFormModel)
	}
	return m, cmd
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestFigureFormStartsNeutral(t *testing.T) {
	m := NewFigureFormModel(measure.FigureOptions{})
	if !m.Options.IsNeutral() {
		t.Errorf("Options = %s, want neutral", m.Options)
	}
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
}

func TestFigureFormCyclesValues(t *testing.T) {
	m := NewFigureFormModel(measure.FigureOptions{})

	m, _ = press(m, keyDown, keyRight)
	if m.Options.Posture != measure.PostureStooped {
		t.Errorf("Posture = %q, want stooped", m.Options.Posture)
	}

	m, _ = press(m, keyRight, keyRight)
	if m.Options.Posture != measure.PostureNormal {
		t.Errorf("Posture = %q, want wrap to normal", m.Options.Posture)
	}

	m, _ = press(m, keyLeft)
	if m.Options.Posture != measure.PostureErect {
		t.Errorf("Posture = %q, want erect", m.Options.Posture)
	}
}

func TestFigureFormCursorBounds(t *testing.T) {
	m := NewFigureFormModel(measure.FigureOptions{})
	m, _ = press(m, keyUp)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after up at top", m.Cursor)
	}
	for range 10 {
		m, _ = press(m, keyDown)
	}
	if m.Cursor != len(measure.Axes)-1 {
		t.Errorf("Cursor = %d, want %d", m.Cursor, len(measure.Axes)-1)
	}
}

func TestFigureFormConfirmAndQuit(t *testing.T) {
	m := NewFigureFormModel(measure.FigureOptions{})
	m, cmd := press(m, keyEnter)
	if !m.Confirmed || cmd == nil {
		t.Error("enter should confirm and quit")
	}

	m = NewFigureFormModel(measure.FigureOptions{})
	m, cmd = press(m, keyQuit)
	if m.Confirmed || cmd == nil {
		t.Error("q should quit without confirming")
	}
}

func TestFigureFormView(t *testing.T) {
	m := NewFigureFormModel(measure.FigureOptions{})
	view := m.View()
	if !strings.Contains(view, "neutral figure") {
		t.Error("neutral form should say no adjustments apply")
	}

	m, _ = press(m, keyDown, keyDown, keyRight, keyRight) // bust: full
	view = m.View()
	for _, want := range []string{"posture", "full", "front", "+1.0", "bust_dart", "+1.5"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
