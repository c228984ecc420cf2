package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var banner string

// RenderBanner returns the startup banner, centered to the terminal and
// colored. Width detection failing (pipes, dumb terminals) just means a
// left-ish banner, never an error.
func RenderBanner() string {
	width := 80
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		width = w
	}
	art := strings.TrimRight(banner, "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, BannerStyle.Render(art))
}
