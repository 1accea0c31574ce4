package ui

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AndersSaints/FightcadeRank/internal/ui/styles"
)

var (
	errInvalidURL    = errors.New("invalid URL")
	errInvalidNumber = errors.New("invalid number")
	errEmptyValue    = errors.New("cannot be empty")
)

type inputValidator interface {
	Validate(string) error
}

func newValidatingTextInputModel(label string, value string, placeholder string, validators ...inputValidator) *validatingTextInputModel {
	input := newTextInputModel(value, placeholder)

	if len(validators) > 0 {
		input.Validate = func(s string) error {
			for _, validator := range validators {
				if err := validator.Validate(s); err != nil {
					return err //nolint:wrapcheck
				}
			}

			return nil
		}
	}

	return &validatingTextInputModel{input: input, label: label}
}

type validatingTextInputModel struct {
	label string
	input textinput.Model
}

func (m *validatingTextInputModel) Init() tea.Cmd {
	return nil
}

func (m *validatingTextInputModel) Update(msg tea.Msg) (*validatingTextInputModel, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *validatingTextInputModel) View() string {
	var errRow string
	if m.input.Err != nil {
		errRow = lipgloss.NewStyle().Foreground(styles.Red).Render("Validation Error: " + m.input.Err.Error())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.HelpStyle.Render(m.label+": "),
		lipgloss.JoinVertical(lipgloss.Top, m.input.View(), errRow))
}

func (m *validatingTextInputModel) focus() tea.Cmd {
	m.input.PromptStyle = styles.FocusedStyle
	m.input.TextStyle = styles.FocusedStyle

	return m.input.Focus()
}

func (m *validatingTextInputModel) blur() {
	m.input.PromptStyle = styles.NoStyle
	m.input.TextStyle = styles.NoStyle
	m.input.Blur()
}

type urlValidator struct{}

func (v urlValidator) Validate(value string) error {
	if value == "" {
		return errInvalidURL
	}

	parsed, errParse := url.Parse(value)
	if errParse != nil {
		return errors.Join(errParse, errInvalidURL)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errInvalidURL
	}

	return nil
}

type notEmptyValidator struct{}

func (v notEmptyValidator) Validate(value string) error {
	if value == "" {
		return errEmptyValue
	}

	return nil
}

type positiveIntValidator struct{}

func (v positiveIntValidator) Validate(value string) error {
	num, errParse := strconv.Atoi(value)
	if errParse != nil {
		return errors.Join(errParse, errInvalidNumber)
	}

	if num <= 0 {
		return fmt.Errorf("%w: must be > 0", errInvalidNumber)
	}

	return nil
}
