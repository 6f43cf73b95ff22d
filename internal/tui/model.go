package tui

import (
	"context"
	"ranking-dashboard/internal/domain"
	"ranking-dashboard/internal/viewmodel"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type focus int

const (
	focusTable focus = iota
	focusName
	focusTag
)

type Model struct {
	ctx    context.Context
	vm     *viewmodel.ViewModel
	logger zerolog.Logger
	region string

	// nil when the session has no local browser (SSH); the URL is shown instead
	openURL func(string) error

	width   int
	height  int
	cursor  int
	focus   focus
	pending int
	notice  string

	name textinput.Model
	tag  textinput.Model
}

type Option func(*Model)

func WithURLOpener(open func(string) error) Option {
	return func(m *Model) { m.openURL = open }
}

func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

func New(ctx context.Context, vm *viewmodel.ViewModel, region string, logger zerolog.Logger, opts ...Option) Model {
	name := textinput.New()
	name.Placeholder = "Name (e.g. Faker)"
	name.Prompt = ""
	name.CharLimit = 32
	name.Width = 20

	tag := textinput.New()
	tag.Placeholder = "TAG"
	tag.Prompt = ""
	tag.CharLimit = 8
	tag.Width = 8

	m := Model{
		ctx:    ctx,
		vm:     vm,
		logger: logger,
		region: region,
		name:   name,
		tag:    tag,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(refreshCmd(m.ctx, m.vm), textinput.Blink)
}

func (m Model) loading() bool {
	return m.pending > 0 || m.vm.Loading()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshedMsg:
		m.pending = max(0, m.pending-1)
		m.clampCursor()
		if msg.err == nil {
			m.notice = ""
		}
		return m, nil

	case submittedMsg:
		m.pending = max(0, m.pending-1)
		// the draft survives a rejected submit and is cleared once the backend accepts it
		m.syncInputs()
		if msg.err == nil {
			m.notice = "player added"
			m.logger.Info().Msg("player added from dashboard")
		}
		m.clampCursor()
		return m, nil

	case profileOpenedMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Str("url", msg.url).Msg("failed to open profile")
			m.notice = "profile: " + msg.url
		}
		return m, nil

	case tea.KeyMsg:
		if _, open := m.vm.Selected(); open {
			return m.updateModal(msg)
		}
		if m.focus == focusTable {
			return m.updateTable(msg)
		}
		return m.updateForm(msg)
	}

	// cursor blink and friends
	return m.updateInputs(msg)
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q", "enter", "t", "h":
		m.vm.ClearSelection()
	}
	return m, nil
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.vm.TableRows()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(0, len(rows)-1)
	case "enter":
		if m.cursor < len(rows) {
			url := rows[m.cursor].ProfileURL(m.region)
			if m.openURL == nil {
				m.notice = "profile: " + url
				return m, nil
			}
			return m, openProfileCmd(m.openURL, url)
		}
	case "t", "h":
		if m.cursor < len(rows) {
			m.vm.SelectPlayer(rows[m.cursor])
		}
	case "r":
		m.pending++
		m.notice = ""
		return m, refreshCmd(m.ctx, m.vm)
	case "a", "tab":
		return m.setFocus(focusName)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m.setFocus(focusTable)
	case "tab", "shift+tab":
		if m.focus == focusName {
			return m.setFocus(focusTag)
		}
		return m.setFocus(focusName)
	case "enter":
		// the form is disabled while a request is running
		if m.loading() {
			m.notice = "busy, try again in a moment"
			return m, nil
		}
		if !m.vm.Draft().Complete() {
			m.notice = "name and tag are required"
			return m, nil
		}
		m.pending++
		m.notice = ""
		return m, submitCmd(m.ctx, m.vm)
	}

	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var nameCmd, tagCmd tea.Cmd
	m.name, nameCmd = m.name.Update(msg)
	m.tag, tagCmd = m.tag.Update(msg)

	if _, ok := msg.(tea.KeyMsg); ok {
		name, tag := m.name.Value(), m.tag.Value()
		m.vm.UpdateDraft(draftPatch(name, tag))
	}
	return m, tea.Batch(nameCmd, tagCmd)
}

func (m Model) setFocus(f focus) (tea.Model, tea.Cmd) {
	m.focus = f
	m.name.Blur()
	m.tag.Blur()

	var cmd tea.Cmd
	switch f {
	case focusName:
		cmd = m.name.Focus()
	case focusTag:
		cmd = m.tag.Focus()
	}
	return m, cmd
}

func draftPatch(name, tag string) domain.DraftPatch {
	return domain.DraftPatch{Name: &name, Tag: &tag}
}

// syncInputs mirrors the view model draft back into the text inputs.
func (m *Model) syncInputs() {
	d := m.vm.Draft()
	m.name.SetValue(d.Name)
	m.tag.SetValue(d.Tag)
}

func (m *Model) clampCursor() {
	n := len(m.vm.TableRows())
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}
