package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestBgStyle_SpreadFillsWidth(t *testing.T) {
	bg := NewBgStyle(defaultTheme().Surface)
	line := bg.Spread("left", "right", 30)

	if got := lipgloss.Width(line); got != 30 {
		t.Fatalf("width = %d, want 30", got)
	}
	if !strings.HasPrefix(strings.TrimSpace(line), "left") || !strings.Contains(line, "right") {
		t.Errorf("line = %q", line)
	}
	if strings.Index(line, "right") <= strings.Index(line, "left") {
		t.Errorf("right part not after left part: %q", line)
	}
}

