package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel is a bubbletea yes/no prompt.
type ConfirmModel struct {
	prompt       string
	defaultValue bool
	value        bool
	done         bool
	quitting     bool
}

func NewConfirm(prompt string, defaultValue bool) ConfirmModel {
	return ConfirmModel{
		prompt:       prompt,
		defaultValue: defaultValue,
		value:        defaultValue,
	}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "y", "Y":
		m.value = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.value = false
		m.done = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "left", "h":
		m.value = true
	case "right", "l":
		m.value = false
	case "tab":
		m.value = !m.value
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.quitting {
		return ""
	}
	if m.done {
		answer := "No"
		if m.value {
			answer = "Yes"
		}
		return PromptStyle.Render(m.prompt) + " " + SuccessStyle.Render(answer)
	}

	var b strings.Builder
	b.WriteString(PromptStyle.Render(m.prompt))
	b.WriteString(" ")

	yesStyle, noStyle := UnselectedStyle, SelectedStyle
	if m.value {
		yesStyle, noStyle = SelectedStyle, UnselectedStyle
	}
	b.WriteString(yesStyle.Render("Yes"))
	b.WriteString(MutedStyle.Render(" / "))
	b.WriteString(noStyle.Render("No"))
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render("y/n select • ←/→ toggle • enter confirm"))
	return b.String()
}

func (m ConfirmModel) Value() bool {
	return m.value
}

func (m ConfirmModel) Cancelled() bool {
	return m.quitting
}

// RunConfirm asks a yes/no question, falling back to survey off a terminal.
func RunConfirm(prompt string, defaultValue bool) (bool, error) {
	if !IsTTY() {
		return runConfirmSurvey(prompt, defaultValue)
	}

	final, err := tea.NewProgram(NewConfirm(prompt, defaultValue)).Run()
	if err != nil {
		return false, fmt.Errorf("confirm error: %w", err)
	}
	result, ok := final.(ConfirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected model type")
	}
	if result.Cancelled() {
		return false, fmt.Errorf("confirm cancelled")
	}
	fmt.Println()
	return result.Value(), nil
}

func runConfirmSurvey(prompt string, defaultValue bool) (bool, error) {
	var value bool
	if err := survey.AskOne(&survey.Confirm{Message: prompt, Default: defaultValue}, &value); err != nil {
		return false, err
	}
	return value, nil
}
