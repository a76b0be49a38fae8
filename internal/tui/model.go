// Package tui is the Bubble Tea front end for an interview session. It draws
// the session view model and turns key presses into dispatcher commands that
// run off the update loop.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"alfredoptarigan/interview-coach/internal/session"
)

const activityLines = 6

type startedMsg struct{ err error }

type submittedMsg struct{ err error }

type summaryMsg struct{ err error }

// Model is the root Bubble Tea model.
type Model struct {
	ctx        context.Context
	dispatcher *session.Dispatcher
	selection  session.RawSelection
	keys       KeyMap

	answer   textarea.Model
	spinner  spinner.Model
	viewport viewport.Model

	// inflight covers the gap between a key press and the controller
	// marking itself pending inside the command goroutine.
	inflight bool
	loading  bool
	status   string
	statusOK bool

	width  int
	height int
}

// New builds the model. ctx bounds every request the UI issues.
func New(ctx context.Context, dispatcher *session.Dispatcher, selection session.RawSelection) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your answer here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(5)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = warningStyle

	return Model{
		ctx:        ctx,
		dispatcher: dispatcher,
		selection:  selection,
		keys:       DefaultKeyMap,
		answer:     ta,
		spinner:    sp,
		viewport:   viewport.New(80, 20),
		width:      80,
		height:     30,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case startedMsg:
		m.inflight = false
		m.report(msg.err, "Interview started.")
		if msg.err == nil {
			m.answer.Reset()
			cmds = append(cmds, m.answer.Focus())
		}

	case submittedMsg:
		m.inflight = false
		done := "Answer submitted."
		if m.dispatcher.State().Phase == session.PhaseCompleted {
			done = "Interview complete."
			m.answer.Blur()
		}
		m.report(msg.err, done)
		if msg.err == nil {
			m.answer.Reset()
		}

	case summaryMsg:
		m.loading = false
		m.report(msg.err, "Session summary updated.")

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	default:
		var cmd tea.Cmd
		m.answer, cmd = m.answer.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.refresh()
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vm := m.dispatcher.View()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Start):
		if !vm.CanStart || m.inflight {
			return m, nil
		}
		m.inflight = true
		m.setStatus("Starting interview...", true)
		m.refresh()
		return m, tea.Batch(m.spinner.Tick, m.startCmd())

	case key.Matches(msg, m.keys.Submit):
		if !vm.CanSubmit || m.inflight {
			return m, nil
		}
		answer := m.answer.Value()
		if strings.TrimSpace(answer) == "" {
			// Surfaced through the dispatcher so it lands in the activity log.
			m.report(m.dispatcher.SubmitAnswer(m.ctx, answer), "")
			m.refresh()
			return m, nil
		}
		m.inflight = true
		m.setStatus("Evaluating answer...", true)
		m.refresh()
		return m, tea.Batch(m.spinner.Tick, m.submitCmd(answer))

	case key.Matches(msg, m.keys.Summary):
		if !vm.CanLoadSummary || m.loading {
			return m, nil
		}
		m.loading = true
		m.setStatus("Loading summary...", true)
		m.refresh()
		return m, tea.Batch(m.spinner.Tick, m.summaryCmd())

	case key.Matches(msg, m.keys.Reset):
		m.dispatcher.Reset()
		m.inflight = false
		m.loading = false
		m.answer.Reset()
		m.answer.Blur()
		m.setStatus("Reset.", true)
		m.refresh()
		return m, nil
	}

	// Page keys always scroll; other keys scroll only when no answer is being typed.
	if s := msg.String(); s == "pgup" || s == "pgdown" || !vm.Panels.Interview {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.answer, cmd = m.answer.Update(msg)
	return m, cmd
}

func (m Model) startCmd() tea.Cmd {
	d, ctx, sel := m.dispatcher, m.ctx, m.selection
	return func() tea.Msg {
		return startedMsg{err: d.Start(ctx, sel)}
	}
}

func (m Model) submitCmd(answer string) tea.Cmd {
	d, ctx := m.dispatcher, m.ctx
	return func() tea.Msg {
		return submittedMsg{err: d.SubmitAnswer(ctx, answer)}
	}
}

func (m Model) summaryCmd() tea.Cmd {
	d, ctx := m.dispatcher, m.ctx
	return func() tea.Msg {
		return summaryMsg{err: d.LoadSummary(ctx)}
	}
}

// report turns a command result into the status line. Results discarded
// after a reset leave the status alone.
func (m *Model) report(err error, success string) {
	switch {
	case errors.Is(err, session.ErrStaleResult):
	case err != nil:
		m.setStatus(err.Error(), false)
	case success != "":
		m.setStatus(success, true)
	}
}

func (m *Model) setStatus(s string, ok bool) {
	m.status, m.statusOK = s, ok
}

func (m Model) busy() bool {
	return m.inflight || m.loading || m.dispatcher.View().Busy
}

func (m *Model) layout() {
	m.answer.SetWidth(max(20, m.width-4))
	m.viewport.Width = m.width
	m.refresh()
}

// refresh re-renders the scrollable body and sizes it to what the fixed
// parts of the screen leave over.
func (m *Model) refresh() {
	vm := m.dispatcher.View()

	fixed := lipgloss.Height(renderHeader(vm, m.selection)) +
		lipgloss.Height(m.footer(vm)) + 2
	if vm.Panels.Interview {
		fixed += m.answer.Height() + 2
	}
	m.viewport.Height = max(3, m.height-fixed)
	m.viewport.SetContent(renderBody(vm, m.width))
}

func (m Model) footer(vm session.ViewModel) string {
	status := m.status
	switch {
	case m.busy():
		status = m.spinner.View() + " " + warningStyle.Render(status)
	case status == "":
	case m.statusOK:
		status = successStyle.Render(status)
	default:
		status = errorStyle.Render(status)
	}

	return statusBarStyle.Width(m.width).Render(status) + "\n" +
		renderActivity(m.dispatcher.Activity(), activityLines) + "\n" +
		renderHelp(m.keys.helpFor(vm, m.inflight))
}

func (m Model) View() string {
	vm := m.dispatcher.View()

	var b strings.Builder
	b.WriteString(renderHeader(vm, m.selection))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if vm.Panels.Interview {
		b.WriteString(titleStyle.Render("Your answer"))
		b.WriteString("\n")
		b.WriteString(m.answer.View())
		b.WriteString("\n")
	}
	b.WriteString(m.footer(vm))
	return b.String()
}
