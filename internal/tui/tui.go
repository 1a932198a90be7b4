// Package tui is a full-screen terminal front-end for a TodoClient.
package tui

import (
	"context"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mdayat/todo-app/configs"
	"github.com/mdayat/todo-app/internal/todoclient"
)

type mode int

const (
	modeList mode = iota
	modeInput
	modeConfirm
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// Model is the bubbletea model. Store operations run as commands against the
// TodoClient; the list shown is always the client's view model.
type Model struct {
	ctx     context.Context
	client  *todoclient.TodoClient
	ui      configs.UI
	mode    mode
	cursor  int
	input   []rune
	alerts  []string
	pending todoclient.ID
	busy    int
}

// syncedMsg reports that an operation started by the model has finished.
type syncedMsg struct {
	created bool
}

func New(ctx context.Context, client *todoclient.TodoClient, ui configs.UI) *Model {
	return &Model{
		ctx:    ctx,
		client: client,
		ui:     ui,
	}
}

// Run starts the program on the alternate screen and blocks until the user
// quits or ctx is done.
func Run(ctx context.Context, client *todoclient.TodoClient, ui configs.UI) error {
	program := tea.NewProgram(New(ctx, client, ui), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.run(false, m.client.Load)
}

func (m *Model) run(created bool, op func(ctx context.Context)) tea.Cmd {
	m.busy++
	ctx := m.ctx
	return func() tea.Msg {
		op(ctx)
		return syncedMsg{created: created}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case syncedMsg:
		m.busy--
		m.alerts = m.client.View().DrainAlerts()
		m.clampCursor()
		if msg.created {
			m.input = []rune(m.client.View().Input())
			if len(m.input) == 0 {
				m.mode = modeList
			}
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.client.View().Items()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case " ", "space", "t":
		if item, ok := m.selected(items); ok {
			return m, m.run(false, func(ctx context.Context) { m.client.Toggle(ctx, item.ID) })
		}
	case "d":
		if item, ok := m.selected(items); ok {
			m.pending = item.ID
			m.mode = modeConfirm
		}
	case "a", "i":
		m.mode = modeInput
		m.alerts = nil
	case "r":
		return m, m.run(false, m.client.Load)
	}
	return m, nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var accepted bool
	switch msg.String() {
	case "y", "Y":
		accepted = true
	case "n", "N", "esc":
	default:
		return m, nil
	}

	id := m.pending
	m.pending = ""
	m.mode = modeList
	return m, m.run(false, func(ctx context.Context) {
		m.client.Delete(todoclient.WithConfirmation(ctx, accepted), id)
	})
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
	case tea.KeyEnter:
		text := string(m.input)
		m.client.View().SetInput(text)
		return m, m.run(true, func(ctx context.Context) { m.client.Create(ctx, text) })
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

// selected returns the row under the cursor. A reload may have shrunk the
// list before its message arrived, so the cursor is clamped first.
func (m *Model) selected(items []todoclient.Todo) (todoclient.Todo, bool) {
	if len(items) == 0 {
		return todoclient.Todo{}, false
	}
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	return items[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.client.View().Items())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.ui.Title))
	b.WriteString("\n")

	for _, alert := range m.alerts {
		b.WriteString(alertStyle.Render("! "+Sanitize(alert)) + "\n")
	}

	switch {
	case m.mode == modeInput:
		b.WriteString("> " + string(m.input) + cursorStyle.Render("█") + "\n\n")
	case len(m.input) > 0:
		b.WriteString("> " + string(m.input) + "\n\n")
	default:
		b.WriteString(dimStyle.Render("> "+m.ui.Placeholder) + "\n\n")
	}

	b.WriteString(RenderRows(m.client.View().Items(), m.cursor, m.ui.EmptyMessage))

	if m.mode == modeConfirm {
		b.WriteString("\n" + confirmStyle.Render(m.ui.ConfirmDelete+" (y/n)") + "\n")
	}

	b.WriteString("\n" + dimStyle.Render(m.help()) + "\n")
	return b.String()
}

func (m *Model) help() string {
	status := ""
	if m.busy > 0 {
		status = "syncing… "
	}
	if m.mode == modeInput {
		return status + "enter add • esc cancel"
	}
	return status + "↑/↓ move • space toggle • d delete • a add • r reload • q quit"
}

// RenderRows lays out one line per item in order, or emptyMessage when there
// are none. The selected row is marked.
func RenderRows(items []todoclient.Todo, selected int, emptyMessage string) string {
	if len(items) == 0 {
		return dimStyle.Render(emptyMessage) + "\n"
	}

	var b strings.Builder
	for i, item := range items {
		marker := "  "
		if i == selected {
			marker = cursorStyle.Render("›") + " "
		}

		check := "[ ]"
		task := Sanitize(item.Task)
		if item.Completed {
			check = "[x]"
			task = doneStyle.Render(task)
		}

		b.WriteString(marker + check + " " + task + "\n")
	}
	return b.String()
}

// Sanitize makes text safe to print on a terminal: escape sequences are
// removed and line breaks become spaces so one item stays on one line.
func Sanitize(text string) string {
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		return r
	}, text)

	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, ansi.Strip(text))
}
