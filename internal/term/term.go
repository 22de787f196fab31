// Package term owns the terminal color state and TTY detection.
//
// Styles are package-level because logging and display both render through
// them. [Configure] sets the color profile once during startup; with colors
// disabled every style renders its input unchanged.
package term

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/backmassage/vidsqueeze/internal/config"
)

var renderer = lipgloss.NewRenderer(os.Stdout)

// Level and accent styles. Rebuilt by [Configure].
var (
	Red     lipgloss.Style
	Green   lipgloss.Style
	Yellow  lipgloss.Style
	Blue    lipgloss.Style
	Cyan    lipgloss.Style
	Magenta lipgloss.Style
	Faint   lipgloss.Style
)

var enabled bool

func init() { Configure(config.ColorNever) }

// Configure resolves mode against the environment and rebuilds the styles.
func Configure(mode config.ColorMode) {
	enabled = resolve(mode)
	if enabled {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	Red = color("9")
	Green = color("10")
	Yellow = color("11")
	Blue = color("12")
	Cyan = color("14")
	Magenta = color("13")
	Faint = renderer.NewStyle().Faint(true)
}

func color(c string) lipgloss.Style {
	return renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(c))
}

// Renderer returns the renderer all styles are bound to, for callers that
// build their own (tables, boxes).
func Renderer() *lipgloss.Renderer { return renderer }

// Enabled reports whether colors are currently active.
func Enabled() bool { return enabled }

// resolve honors NO_COLOR (https://no-color.org) and TERM=dumb in auto mode.
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return IsTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a terminal, including Cygwin
// and MSYS pseudo-terminals.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
