package common

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/domain"
)

// ToastDuration is how long a notification stays on screen.
const ToastDuration = 4 * time.Second

type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
	ToastWarning
	ToastInfo
)

// ToastMsg asks the router to show a transient notification.
type ToastMsg struct {
	Kind ToastKind
	Text string
}

func Toast(kind ToastKind, text string) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Kind: kind, Text: text}
	}
}

// Failable is implemented by every message carrying an api.Result.
type Failable interface {
	Failure() error
}

// OpenCreateMsg opens the creation form.
type OpenCreateMsg struct{}

// CloseModalMsg closes whatever modal is open.
type CloseModalMsg struct{}

// PunishmentDetailsMsg carries a fetched punishment for the detail modal.
type PunishmentDetailsMsg struct {
	api.Result[domain.PunishmentDetails]
}

// ReportDetailsMsg carries a fetched report for the report modal.
type ReportDetailsMsg struct {
	api.Result[domain.Report]
}

// PunishmentCreatedMsg tells the router a creation succeeded.
type PunishmentCreatedMsg struct {
	Type   string
	Target string
}

func FetchPunishmentCmd(ctx context.Context, backend Backend, id string) tea.Cmd {
	return func() tea.Msg {
		return PunishmentDetailsMsg{backend.GetPunishment(ctx, id)}
	}
}

func FetchReportCmd(ctx context.Context, backend Backend, id string) tea.Cmd {
	return func() tea.Msg {
		return ReportDetailsMsg{backend.GetReport(ctx, id)}
	}
}
