package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"alfredoptarigan/interview-coach/internal/session"
)

// KeyMap holds the session commands. Plain keys go to the answer editor, so
// every command uses a control chord.
type KeyMap struct {
	Start   key.Binding
	Submit  key.Binding
	Summary key.Binding
	Reset   key.Binding
	Quit    key.Binding
}

var DefaultKeyMap = KeyMap{
	Start: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "start"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "submit answer"),
	),
	Summary: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "summary"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reset"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// helpFor lists the bindings usable in the given view.
func (k KeyMap) helpFor(vm session.ViewModel, inflight bool) []key.Binding {
	var out []key.Binding
	if vm.CanStart && !inflight {
		out = append(out, k.Start)
	}
	if vm.CanSubmit && !inflight {
		out = append(out, k.Submit)
	}
	if vm.CanLoadSummary {
		out = append(out, k.Summary)
	}
	return append(out, k.Reset, k.Quit)
}
