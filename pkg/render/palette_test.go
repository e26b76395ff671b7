package render

import (
	"image/color"
	"testing"
)

func TestResolveColor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"white", "#ffffff"},
		{"lightgray", "#d3d3d3"},
		{"LightBlue", "#add8e6"},
		{"light green", "#90ee90"},
		{"  red  ", "#ff0000"},
		{"#FFCC00", "#ffcc00"},
		{"#fc0", "#ffcc00"},
		{"#12345", "#ffffff"},
		{"#zzzzzz", "#ffffff"},
		{"not-a-colour", "#ffffff"},
		{"", "#ffffff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveColor(tt.name); got != tt.want {
				t.Errorf("ResolveColor(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestKnownColor(t *testing.T) {
	if !KnownColor("orange") {
		t.Error("orange should be known")
	}
	if KnownColor("blurple") {
		t.Error("blurple should not be known")
	}
}

func TestTextColor(t *testing.T) {
	black := color.RGBA{A: 0xff}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	if got := TextColor(RGBA("lightgray")); got != black {
		t.Errorf("TextColor(lightgray) = %v, want black", got)
	}
	if got := TextColor(RGBA("navy")); got != white {
		t.Errorf("TextColor(navy) = %v, want white", got)
	}
}
