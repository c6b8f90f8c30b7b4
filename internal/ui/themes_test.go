package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSetTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"solarized", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) selected %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestColorsDisabled(t *testing.T) {
	var buf bytes.Buffer

	if !ColorsDisabled(true, os.Stdout) {
		t.Error("--no-color must disable colours")
	}
	if !ColorsDisabled(false, &buf) {
		t.Error("a non-terminal writer must disable colours")
	}

	t.Setenv("NO_COLOR", "1")
	if !ColorsDisabled(false, os.Stdout) {
		t.Error("NO_COLOR must disable colours")
	}
}

func TestInitTheme_NonTerminal(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetCurrentTheme(DarkTheme)
	InitTheme(false, &bytes.Buffer{})
	if GetCurrentTheme().Name != "none" {
		t.Errorf("expected no-colour theme for a buffer, got %q", GetCurrentTheme().Name)
	}
	if _, ok := GetCurrentTUITheme().Accent.(lipgloss.NoColor); !ok {
		t.Error("TUI palette should follow the no-colour theme")
	}
}

func TestColors(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetCurrentTheme(DarkTheme)
	c := Colors{}
	if c.Yellow() != DarkTheme.Warning || c.Reset() != DarkTheme.Reset {
		t.Error("Colors should expose the active theme's codes")
	}
	SetCurrentTheme(NoColorTheme)
	if c.Yellow() != "" || c.Reset() != "" {
		t.Error("Colors should be empty with the no-colour theme")
	}
}

func TestIsTerminal_Buffer(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a bytes.Buffer is not a terminal")
	}
}
