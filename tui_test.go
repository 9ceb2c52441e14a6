package main

import (
	"image/color"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTermColorDropsAlpha(t *testing.T) {
	tests := []struct {
		in   color.Color
		want lipgloss.Color
	}{
		{color.NRGBA{0x1e, 0x1e, 0x1e, 0xcc}, "#1e1e1e"},
		{color.NRGBA{0xff, 0xd7, 0x00, 0xff}, "#ffd700"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := termColor(tt.in); got != tt.want {
			t.Errorf("termColor(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("monitor unavailable: no keyboard", 12)
	want := []string{"monitor", "unavailable:", "no keyboard"}
	if len(got) != len(want) {
		t.Fatalf("wrapText = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
