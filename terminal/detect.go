package terminal

import (
	"os"
	"strings"

	"github.com/n3xta/heat-abnormal-terminal-animation/canvas"
)

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() canvas.ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return canvas.ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return canvas.ColorModeTrueColor
	}

	term := os.Getenv("TERM")
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return canvas.ColorModeTrueColor
	}

	return canvas.ColorMode256
}
