// Package overlay provides utilities for rendering modal content on
// top of background views without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the center of the viewport.
	Center Position = iota
	// Top places the overlay at the top center of the viewport.
	Top
	// Bottom places the overlay at the bottom center of the viewport.
	Bottom
)

// Config controls overlay rendering behavior.
type Config struct {
	// Width and Height are the total viewport dimensions.
	Width  int
	Height int
	// Position specifies where to place the overlay.
	Position Position
	// PadY adds vertical padding from the edge for Top/Bottom.
	PadY int
}

// Place renders foreground content on top of background, preserving
// ANSI styling in both.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x := (cfg.Width - lipgloss.Width(fg)) / 2
	if x < 0 {
		x = 0
	}
	y := 0
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - len(fgLines) - cfg.PadY
	default:
		y = (cfg.Height - len(fgLines)) / 2
	}
	if y < 0 {
		y = 0
	}

	for i, fgLine := range fgLines {
		if y+i >= len(bgLines) {
			break
		}
		bgLines[y+i] = splice(bgLines[y+i], x, fgLine)
	}
	return strings.Join(bgLines, "\n")
}

// splice overwrites bg starting at visual column x with fg, keeping
// whatever background remains visible to the right. All measurement
// and cutting is ANSI-aware.
func splice(bg string, x int, fg string) string {
	left := ansi.Truncate(bg, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}

	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}
