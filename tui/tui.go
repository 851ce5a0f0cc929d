// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-elect/stv"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#6BCB77")).
			MarginBottom(1)

	rankingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6B6B")).
			Padding(0, 1)
)

// choiceItem wraps a Choice for the list display
type choiceItem struct {
	choice stv.Choice
}

func (i choiceItem) Title() string { return i.choice.String() }
func (i choiceItem) Description() string {
	if i.choice.IsStop() {
		return "finish the ballot here"
	}
	return "candidate"
}
func (i choiceItem) FilterValue() string { return i.choice.String() }

// Model asks the voter for one choice per round until the session is done.
type Model struct {
	session   *stv.Session
	title     string
	choices   list.Model
	errorMsg  string
	cancelled bool
}

// New creates a ballot model for a started session
func New(session *stv.Session, title string) *Model {
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(2)
	delegate.SetSpacing(0)
	choices := list.New([]list.Item{}, delegate, 0, 0)
	choices.SetShowStatusBar(false)
	choices.SetFilteringEnabled(false)

	m := &Model{
		session: session,
		title:   title,
		choices: choices,
	}
	m.refresh()
	return m
}

// Cancelled reports whether the voter quit before finishing the ballot.
func (m *Model) Cancelled() bool { return m.cancelled }

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		listHeight := msg.Height - 6
		if listHeight < 5 {
			listHeight = msg.Height
		}
		m.choices.SetSize(msg.Width, listHeight)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.choices, cmd = m.choices.Update(msg)
	return m, cmd
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	item, ok := m.choices.SelectedItem().(choiceItem)
	if !ok {
		return m, nil
	}
	if err := m.session.Submit(item.choice); err != nil {
		m.errorMsg = err.Error()
		return m, nil
	}
	m.errorMsg = ""
	if m.session.Done() {
		return m, tea.Quit
	}
	return m, m.refresh()
}

// refresh loads the current round's choices into the list
func (m *Model) refresh() tea.Cmd {
	choices := m.session.Choices()
	items := make([]list.Item, len(choices))
	for i, c := range choices {
		items[i] = choiceItem{choice: c}
	}
	round := len(m.session.Ballot().Ranking()) + 1
	m.choices.Title = fmt.Sprintf("Select your %s choice", humanize.Ordinal(round))
	m.choices.Select(0)
	return m.choices.SetItems(items)
}

func (m *Model) View() string {
	if m.session.Done() {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Ballot for " + m.title))
	b.WriteString("\n")
	if ranking := m.session.Ballot().Ranking(); len(ranking) > 0 {
		b.WriteString(rankingStyle.Render("So far: " + strings.Join(ranking, ", ")))
		b.WriteString("\n")
	}
	b.WriteString(m.choices.View())
	if m.errorMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errorMsg))
	}
	return b.String()
}

// Run drives the session on the given terminal. It returns once the ballot is
// complete or the voter quits; check session.Done to tell the two apart.
func Run(session *stv.Session, title string, in io.Reader, out io.Writer) error {
	if err := session.Start(); err != nil {
		return err
	}
	if session.Done() {
		return nil
	}

	p := tea.NewProgram(
		New(session, title),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ballot interface failed: %w", err)
	}
	return nil
}
