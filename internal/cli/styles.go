package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary   = lipgloss.Color("#FF79C6")
	ColorSecondary = lipgloss.Color("#8BE9FD")
	ColorSuccess   = lipgloss.Color("#50FA7B")
	ColorError     = lipgloss.Color("#FF5555")
	ColorWarning   = lipgloss.Color("#FFB86C")
	ColorMuted     = lipgloss.Color("#6272A4")
	ColorWhite     = lipgloss.Color("#F8F8F2")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	// StarStyle colors review ratings.
	StarStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconStar    = "★"
)

// IsTTY returns true if stdout is a terminal
func IsTTY() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

func RenderSuccess(msg string) string {
	return SuccessStyle.Render(IconSuccess+" ") + msg
}

func RenderError(msg string) string {
	return ErrorStyle.Render(IconError+" ") + msg
}

func RenderWarning(msg string) string {
	return WarningStyle.Render(IconWarning+" ") + msg
}

// RenderStars draws n filled stars out of five.
func RenderStars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return StarStyle.Render(strings.Repeat(IconStar, n)) + MutedStyle.Render(strings.Repeat("☆", 5-n))
}

// RenderRating formats an average rating, which is nil until a spot is reviewed.
func RenderRating(avg *float64, count int) string {
	if avg == nil {
		return MutedStyle.Render("new")
	}
	return StarStyle.Render(fmt.Sprintf("%s %.2f", IconStar, *avg)) + MutedStyle.Render(fmt.Sprintf(" (%d)", count))
}
