package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FormKeyMap defines the keybindings for the contact form
type FormKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
	Help   key.Binding
}

// DefaultFormKeyMap returns the default keybindings
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^S", "send"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("^G", "help"),
		),
	}
}

func (k FormKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.Help}
}

func (k FormKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Submit, k.Cancel, k.Help},
	}
}

// FormValues are the raw field contents.
type FormValues struct {
	Name    string
	Email   string
	Message string
}

// FormResult is returned when the form closes.
type FormResult struct {
	Values    FormValues
	Submitted bool
}

// Field names as used in validation error maps.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

var fieldOrder = []string{FieldName, FieldEmail, FieldMessage}

// FormModel is the bubbletea model for the contact form. Validate is
// called on submit; a non-empty map keeps the form open and shows the
// messages under their fields.
type FormModel struct {
	name     textinput.Model
	email    textinput.Model
	message  textarea.Model
	help     help.Model
	keymap   FormKeyMap
	validate func(FormValues) map[string]string
	errors   map[string]string
	focus    int
	width    int

	submitted bool
	quitting  bool
}

// NewForm creates the contact form, prefilled with initial.
func NewForm(initial FormValues, validate func(FormValues) map[string]string) FormModel {
	s := S()

	name := textinput.New()
	name.Placeholder = "Your name"
	name.SetValue(initial.Name)
	name.PromptStyle = s.Accent
	name.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.SetValue(initial.Email)
	email.PromptStyle = s.Accent

	msg := textarea.New()
	msg.Placeholder = "What would you like to talk about?"
	msg.SetValue(initial.Message)
	msg.ShowLineNumbers = false
	msg.SetHeight(6)
	msg.FocusedStyle.CursorLine = lipgloss.NewStyle()

	return FormModel{
		name:     name,
		email:    email,
		message:  msg,
		help:     help.New(),
		keymap:   DefaultFormKeyMap(),
		validate: validate,
		errors:   map[string]string{},
	}
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FormModel) setFocus(i int) tea.Cmd {
	m.focus = (i + len(fieldOrder)) % len(fieldOrder)
	m.name.Blur()
	m.email.Blur()
	m.message.Blur()
	switch fieldOrder[m.focus] {
	case FieldName:
		return m.name.Focus()
	case FieldEmail:
		return m.email.Focus()
	default:
		return m.message.Focus()
	}
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.name.Width = msg.Width - 4
		m.email.Width = msg.Width - 4
		m.message.SetWidth(msg.Width - 2)
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Cancel):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Submit):
			if m.validate != nil {
				m.errors = m.validate(m.Values())
			}
			if len(m.errors) == 0 {
				m.submitted = true
				m.quitting = true
				return m, tea.Quit
			}
			for i, f := range fieldOrder {
				if _, bad := m.errors[f]; bad {
					return m, m.setFocus(i)
				}
			}
			return m, nil

		case key.Matches(msg, m.keymap.Next):
			return m, m.setFocus(m.focus + 1)

		case key.Matches(msg, m.keymap.Prev):
			return m, m.setFocus(m.focus - 1)

		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch fieldOrder[m.focus] {
	case FieldName:
		m.name, cmd = m.name.Update(msg)
	case FieldEmail:
		m.email, cmd = m.email.Update(msg)
	default:
		m.message, cmd = m.message.Update(msg)
	}
	return m, cmd
}

func (m FormModel) View() string {
	if m.quitting {
		return ""
	}
	s := S()

	var b strings.Builder
	b.WriteString(s.Header.Render("Get in touch"))
	b.WriteString("\n\n")

	field := func(label, id, view string) {
		b.WriteString(s.Title.Render(label))
		b.WriteString("\n")
		b.WriteString(view)
		b.WriteString("\n")
		if e, ok := m.errors[id]; ok {
			b.WriteString(s.Error.Render("  " + e))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	field("Name", FieldName, m.name.View())
	field("Email", FieldEmail, m.email.View())
	field("Message", FieldMessage, m.message.View())

	b.WriteString(s.Muted.Render(m.help.View(m.keymap)))
	return b.String()
}

// Values returns the current field contents.
func (m FormModel) Values() FormValues {
	return FormValues{
		Name:    m.name.Value(),
		Email:   m.email.Value(),
		Message: m.message.Value(),
	}
}

// Result returns the form result after quitting
func (m FormModel) Result() FormResult {
	return FormResult{Values: m.Values(), Submitted: m.submitted}
}

// RunForm shows the contact form and returns once it is sent or cancelled.
func RunForm(initial FormValues, validate func(FormValues) map[string]string) (FormResult, error) {
	p := tea.NewProgram(NewForm(initial, validate))
	finalModel, err := p.Run()
	if err != nil {
		return FormResult{}, err
	}

	m, ok := finalModel.(FormModel)
	if !ok {
		return FormResult{}, fmt.Errorf("unexpected model type")
	}
	return m.Result(), nil
}
