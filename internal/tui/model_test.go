package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fiblike/internal/config"
	"github.com/agbru/fiblike/internal/engine"
	apperrors "github.com/agbru/fiblike/internal/errors"
	"github.com/agbru/fiblike/internal/orchestration"
	"github.com/agbru/fiblike/internal/sequence"
	"github.com/agbru/fiblike/internal/ui"
)

func TestMain(m *testing.M) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	initTUIStyles()
	m.Run()
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	f := engine.NewDefaultFactory()
	engines, err := f.Resolve("all")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	cfg := config.AppConfig{
		Mode:    config.ModeTerm,
		Numeric: "big",
		Seed:    engine.DefaultSeed,
		Timeout: 5 * time.Second,
		MaxN:    10_000,
	}
	return NewModel(context.Background(), engines, cfg, "v1.0.0")
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(m Model, s string) Model {
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

// submit presses enter and runs the resulting computation synchronously.
func submit(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		return m
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func TestModel_ComputesTerm(t *testing.T) {
	m := submit(t, typeText(newTestModel(t), "15"))

	if m.running {
		t.Fatal("computation should be finished")
	}
	if m.result == nil || m.result.Value != "610" {
		t.Fatalf("result = %+v, want 610", m.result)
	}
	if m.ExitCode() != apperrors.ExitSuccess {
		t.Errorf("ExitCode() = %d", m.ExitCode())
	}
	view := m.View()
	for _, want := range []string{`The "15" number of the fibonacci sequence is:`, "610"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_TabTogglesMode(t *testing.T) {
	m := newTestModel(t)
	want := []string{config.ModeFind, config.ModeList, config.ModeTerm}
	for _, mode := range want {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
		if m.cfg.Mode != mode {
			t.Fatalf("mode = %q, want %q", m.cfg.Mode, mode)
		}
	}
}

func TestModel_FindNotFound(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = submit(t, typeText(m, "4"))

	if !errors.Is(m.err, sequence.ErrNotFound) {
		t.Fatalf("err = %v, want not found", m.err)
	}
	if m.ExitCode() != apperrors.ExitErrorNotFound {
		t.Errorf("ExitCode() = %d, want %d", m.ExitCode(), apperrors.ExitErrorNotFound)
	}
	if !strings.Contains(m.View(), "Status: Not found. value 4 does not appear in the sequence") {
		t.Errorf("view:\n%s", m.View())
	}
}

func TestModel_FindPosition(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = submit(t, typeText(m, "610"))
	if m.result == nil || m.result.Position != 15 {
		t.Fatalf("result = %+v, want position 15", m.result)
	}
}

func TestModel_CyclesBackend(t *testing.T) {
	m := newTestModel(t)
	first := m.engines[m.current].Name()
	if first != "big" {
		t.Fatalf("initial backend = %q, want big", first)
	}
	for range m.engines {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	}
	if got := m.engines[m.current].Name(); got != first {
		t.Errorf("after a full cycle backend = %q, want %q", got, first)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	m = submit(t, typeText(m, "93"))
	if m.result == nil || m.result.Name == "big" {
		t.Fatalf("result = %+v, want a fixed-width backend", m.result)
	}
}

func TestModel_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"empty", "", config.MsgMissingNumber},
		{"letters", "abc", config.MsgInvalidNumber},
		{"zero", "0", config.MsgPositionZero},
		{"above limit", "10001", "exceeds the maximum allowed value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := press(typeText(newTestModel(t), tt.input), tea.KeyMsg{Type: tea.KeyEnter})
			if cmd != nil {
				t.Error("no computation should start")
			}
			if m.err == nil || !strings.Contains(m.err.Error(), tt.msg) {
				t.Errorf("err = %v, want %q", m.err, tt.msg)
			}
		})
	}
}

func TestModel_IgnoresStaleResults(t *testing.T) {
	m := newTestModel(t)
	m.generation = 2
	next, _ := m.Update(ResultMsg{Generation: 1, Result: orchestration.CalculationResult{Value: "1"}})
	if next.(Model).result != nil {
		t.Error("stale result should be ignored")
	}
}

func TestModel_ProgressWhileRunning(t *testing.T) {
	m := typeText(newTestModel(t), "20")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.running {
		t.Fatal("computation should be running")
	}

	next, _ := m.Update(ProgressMsg{Generation: m.generation, Value: 0.5, ETA: time.Second})
	m = next.(Model)
	if !strings.Contains(m.View(), "50.0%") {
		t.Errorf("view should show the progress:\n%s", m.View())
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.cfg.Mode != config.ModeTerm {
		t.Error("mode must not change while computing")
	}
	m.cancel()
}

func TestModel_Quit(t *testing.T) {
	_, cmd := press(newTestModel(t), tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
}

func TestModel_WindowSize(t *testing.T) {
	next, _ := newTestModel(t).Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if m := next.(Model); m.width != 100 || m.help.Width != 100 {
		t.Errorf("width = %d, help width = %d", m.width, m.help.Width)
	}
}

func TestModel_ViewShowsHeader(t *testing.T) {
	view := newTestModel(t).View()
	for _, want := range []string{"fiblike v1.0.0", "seed (1, 1)", "Mode:", "term", "Backend:", "big", "enter", "compute"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
