package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type PagerKeyMap struct {
	Down key.Binding
	Up   key.Binding
	Quit key.Binding
}

func DefaultPagerKeyMap() PagerKeyMap {
	return PagerKeyMap{
		Down: key.NewBinding(key.WithKeys("j", "down", "pgdown", " "), key.WithHelp("j/space", "down")),
		Up:   key.NewBinding(key.WithKeys("k", "up", "pgup"), key.WithHelp("k", "up")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k PagerKeyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Down, k.Up, k.Quit} }
func (k PagerKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// PagerModel shows pre-rendered content in a scrollable viewport.
type PagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	help     help.Model
	keymap   PagerKeyMap
	ready    bool
}

func NewPager(title, content string) PagerModel {
	return PagerModel{
		title:   title,
		content: content,
		help:    help.New(),
		keymap:  DefaultPagerKeyMap(),
	}
}

func (m PagerModel) Init() tea.Cmd { return nil }

func (m PagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		// Header and footer take one line each.
		height := max(msg.Height-2, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.help.Width = msg.Width
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m PagerModel) View() string {
	if !m.ready {
		return ""
	}
	s := S()
	header := s.Header.Render(m.title)
	percent := s.Muted.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100))
	footer := lipgloss.JoinHorizontal(lipgloss.Top,
		s.Muted.Render(m.help.View(m.keymap)),
		strings.Repeat(" ", max(m.viewport.Width-VisibleLen(m.help.View(m.keymap))-VisibleLen(percent), 1)),
		percent,
	)
	return header + "\n" + m.viewport.View() + "\n" + footer
}

// RunPager shows content full screen until the user quits.
func RunPager(title, content string) error {
	_, err := tea.NewProgram(NewPager(title, content), tea.WithAltScreen()).Run()
	return err
}
