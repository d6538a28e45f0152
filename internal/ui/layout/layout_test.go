package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{200, 60, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(30); got != 24 {
		t.Errorf("ContentHeight(30) = %d", got)
	}
	if got := ContentHeight(4); got != 0 {
		t.Errorf("ContentHeight(4) = %d", got)
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Practice", "Series", 100)
	for _, want := range []string{"circuitz", "Practice", "Series"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q:\n%s", want, h)
		}
	}
	if lipgloss.Height(h) != HeaderHeight {
		t.Errorf("header height = %d, want %d", lipgloss.Height(h), HeaderHeight)
	}
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("Home", "", 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	frame := RenderFrame(header, "hello", footer, 80, 24)
	if got := lipgloss.Height(frame); got != 24 {
		t.Errorf("frame height = %d, want 24", got)
	}
	if !strings.Contains(frame, "Esc") || !strings.Contains(frame, "hello") {
		t.Errorf("frame missing content:\n%s", frame)
	}
}
