package common

import tea "github.com/charmbracelet/bubbletea"

// Scope says which part of the screen a command was issued for.
type Scope int

const (
	PageScope Scope = iota
	ModalScope
)

// ScopedMsg is a result tagged with the generation that requested it.
type ScopedMsg struct {
	Scope Scope
	Gen   uint64
	Msg   tea.Msg
}

// Scoped tags every message cmd produces, including each message of a batch,
// with scope and gen.
func Scoped(scope Scope, gen uint64, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		switch msg := cmd().(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			wrapped := make([]tea.Cmd, 0, len(msg))
			for _, c := range msg {
				wrapped = append(wrapped, Scoped(scope, gen, c))
			}
			return tea.BatchMsg(wrapped)
		default:
			return ScopedMsg{Scope: scope, Gen: gen, Msg: msg}
		}
	}
}
