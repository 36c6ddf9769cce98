package create

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/ui/common"
)

const FailureFallback = "Failed to create punishment. Ensure player exists."

type field int

const (
	fieldTarget field = iota
	fieldType
	fieldDuration
	fieldByIP
	fieldReason
	fieldSubmit
	fieldCount
)

type submittedMsg struct {
	api.Result[domain.CreatePunishmentResponse]
}

// Model is the punishment creation form.
type Model struct {
	deps common.Deps
	ctx  context.Context

	Target     textinput.Model
	Duration   textinput.Model
	Reason     textarea.Model
	Type       domain.PunishmentType
	ByIP       bool
	rules      domain.FieldRules
	focus      field
	Submitting bool
}

func newInput(placeholder string) textinput.Model {
	t := textinput.New()
	t.Placeholder = placeholder
	t.CharLimit = 64
	t.Width = 32
	t.Prompt = ""
	t.Cursor.SetMode(cursor.CursorBlink)
	return t
}

func New(ctx context.Context, deps common.Deps) Model {
	reason := textarea.New()
	reason.Placeholder = "Reason"
	reason.ShowLineNumbers = false
	reason.CharLimit = 256
	reason.SetWidth(40)
	reason.SetHeight(3)

	m := Model{
		deps:     deps,
		ctx:      ctx,
		Target:   newInput("Player name"),
		Duration: newInput("e.g. 7d, 12h, permanent"),
		Reason:   reason,
		Type:     domain.PunishmentTypes[0],
	}
	m.applyRules()
	m.Target.Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Form snapshots the inputs.
func (m Model) Form() domain.CreateForm {
	return domain.CreateForm{
		Target:   strings.TrimSpace(m.Target.Value()),
		Type:     m.Type,
		Duration: strings.TrimSpace(m.Duration.Value()),
		ByIP:     m.ByIP,
		Reason:   strings.TrimSpace(m.Reason.Value()),
	}
}

func (m *Model) applyRules() {
	form := m.Form()
	m.rules = form.Apply()
	if !m.rules.Duration {
		m.Duration.SetValue("")
	}
	m.ByIP = form.ByIP
}

func (m Model) enabled(f field) bool {
	switch f {
	case fieldDuration:
		return m.rules.Duration
	case fieldByIP:
		return m.rules.ByIP
	case fieldTarget, fieldType, fieldReason, fieldSubmit:
		return true
	case fieldCount:
		return false
	}
	panic("unreachable form field")
}

func (m *Model) move(step int) tea.Cmd {
	next := m.focus
	for {
		next = (next + field(step) + fieldCount) % fieldCount
		if m.enabled(next) {
			break
		}
	}
	return m.setFocus(next)
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	m.Target.Blur()
	m.Duration.Blur()
	m.Reason.Blur()
	switch f {
	case fieldTarget:
		return m.Target.Focus()
	case fieldDuration:
		return m.Duration.Focus()
	case fieldReason:
		return m.Reason.Focus()
	}
	return nil
}

func (m *Model) cycleType(step int) {
	idx := 0
	for i, t := range domain.PunishmentTypes {
		if t == m.Type {
			idx = i
		}
	}
	n := len(domain.PunishmentTypes)
	m.Type = domain.PunishmentTypes[(idx+step+n)%n]
	m.applyRules()
}

func submit(ctx context.Context, deps common.Deps, form domain.CreateForm) tea.Cmd {
	return func() tea.Msg {
		res := deps.Backend.CreatePunishment(ctx, form)
		outcome := api.Describe(res.Failure())
		if res.OK() {
			outcome = fmt.Sprintf("%s on %s", strings.ToUpper(res.Value.Type), res.Value.Target)
		}
		req := form.Request(deps.Session.AdminName())
		deps.Record(ctx, domain.JournalEntry{
			Action:    domain.ActionPunish,
			Target:    req.Target,
			Detail:    strings.TrimSpace(fmt.Sprintf("%s %s: %s", req.Type, req.Duration, req.Reason)),
			Succeeded: res.OK(),
			Outcome:   outcome,
		})
		return submittedMsg{res}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		m.Submitting = false
		if !msg.OK() {
			text := api.ServerMessage(msg.Failure())
			if text == "" {
				text = FailureFallback
			}
			return m, common.Toast(common.ToastError, text)
		}
		created := common.PunishmentCreatedMsg{
			Type:   strings.ToUpper(msg.Value.Type),
			Target: msg.Value.Target,
		}
		return m, func() tea.Msg { return created }

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return common.CloseModalMsg{} }
		case "ctrl+s":
			return m.trySubmit()
		case "tab", "down":
			return m, m.move(1)
		case "shift+tab", "up":
			return m, m.move(-1)
		}

		switch m.focus {
		case fieldType:
			switch msg.String() {
			case "left", "h":
				m.cycleType(-1)
			case "right", "l", " ":
				m.cycleType(1)
			case "enter":
				return m, m.move(1)
			}
			return m, nil
		case fieldByIP:
			switch msg.String() {
			case " ", "x":
				m.ByIP = !m.ByIP
				m.applyRules()
			case "enter":
				return m, m.move(1)
			}
			return m, nil
		case fieldSubmit:
			if msg.String() == "enter" {
				return m.trySubmit()
			}
			return m, nil
		case fieldTarget, fieldDuration:
			if msg.String() == "enter" {
				return m, m.move(1)
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTarget:
		m.Target, cmd = m.Target.Update(msg)
	case fieldDuration:
		m.Duration, cmd = m.Duration.Update(msg)
	case fieldReason:
		m.Reason, cmd = m.Reason.Update(msg)
	}
	return m, cmd
}

func (m Model) trySubmit() (Model, tea.Cmd) {
	if m.Submitting {
		return m, nil
	}
	m.applyRules()
	m.Submitting = true
	return m, submit(m.ctx, m.deps, m.Form())
}

var disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(common.COLOR_DIM)).Italic(true)

func (m Model) label(f field, text string) string {
	prefix := common.ListUnselectedPrefix
	if m.focus == f {
		prefix = common.ListSelectedPrefix
	}
	return prefix + common.LabelStyle.Render(text)
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(common.CaptionStyle.Render("new punishment"))
	s.WriteString("\n\n")

	s.WriteString(m.label(fieldTarget, "Target") + " " + m.Target.View() + "\n")

	typeText := fmt.Sprintf("‹ %s ›", m.Type.Label())
	s.WriteString(m.label(fieldType, "Type") + " " + common.Badge(typeText, domain.TypeTone(m.Type)) + "\n")

	if m.rules.Duration {
		s.WriteString(m.label(fieldDuration, "Duration") + " " + m.Duration.View() + "\n")
	} else {
		s.WriteString(m.label(fieldDuration, "Duration") + " " + disabledStyle.Render("not used for "+m.Type.String()) + "\n")
	}

	box := "[ ]"
	if m.ByIP {
		box = "[x]"
	}
	if m.rules.ByIP {
		s.WriteString(m.label(fieldByIP, "By IP") + " " + box + "\n")
	} else {
		s.WriteString(m.label(fieldByIP, "By IP") + " " + disabledStyle.Render(box+" not used for "+m.Type.String()) + "\n")
	}

	s.WriteString(m.label(fieldReason, "Reason") + "\n")
	s.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(m.Reason.View()))
	s.WriteString("\n\n")

	button := "[ Execute ]"
	if m.Submitting {
		button = "[ Submitting… ]"
	}
	if m.focus == fieldSubmit {
		button = common.ListItemSelectedStyle.Render(button)
	}
	s.WriteString("  " + button + "\n\n")
	s.WriteString(common.ListBadgeStyle.Render("tab: next field • ←/→: type • space: toggle • ctrl+s: submit • esc: cancel"))

	return common.ModalStyle.Render(s.String())
}
