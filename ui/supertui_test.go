package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/ui/common"
	"github.com/deemkeen/crownconsole/ui/uitest"
)

func newTestModel(t *testing.T) (*uitest.Backend, MainModel) {
	t.Helper()
	sess := uitest.MustSession("tok", "Alice", "8667ba71-b85a-4004-af54-457a9734eed7")
	backend := uitest.NewBackend(sess)
	deps := common.Deps{Session: sess, Backend: backend, Journal: &uitest.Journal{}}
	return backend, NewModel(context.Background(), deps, 140, 40)
}

// drive feeds every message cmd produces back into m, following the
// commands those updates return. Spinner ticks are not followed.
func drive(m MainModel, cmd tea.Cmd) MainModel {
	for depth := 0; cmd != nil && depth < 10; depth++ {
		var next []tea.Cmd
		for _, msg := range uitest.Collect(cmd) {
			if _, ok := msg.(spinner.TickMsg); ok {
				continue
			}
			updated, c := m.Update(msg)
			m = updated.(MainModel)
			next = append(next, c)
		}
		cmd = tea.Batch(next...)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m MainModel, s string) (MainModel, tea.Cmd) {
	updated, cmd := m.Update(key(s))
	return updated.(MainModel), cmd
}

func TestMainModel_LoadingBeforeResults(t *testing.T) {
	_, m := newTestModel(t)

	if !strings.Contains(m.View(), "Loading...") {
		t.Errorf("Expected loading indicator before the first fetch resolves, got:\n%s", m.View())
	}

	m = drive(m, m.initCmd)
	if m.dashboardModel.Loading {
		t.Error("Expected dashboard to finish loading")
	}
	if !strings.Contains(m.View(), "No recent activity") {
		t.Errorf("Expected empty dashboard, got:\n%s", m.View())
	}
}

func TestMainModel_DropsStaleResults(t *testing.T) {
	backend, m := newTestModel(t)
	backend.Punishments = api.Ok([]domain.Punishment{
		{ID: "P1", PlayerName: "Steve", Type: domain.TypeBan},
	})

	m, stale := m.ShowPage(common.PunishmentsPage)
	m, _ = m.ShowPage(common.ReportsPage)
	m = drive(m, stale)

	if len(m.punishmentsModel.Punishments) != 0 {
		t.Errorf("Expected stale punishments to be dropped, got %d", len(m.punishmentsModel.Punishments))
	}
	if m.page != common.ReportsPage {
		t.Errorf("Expected reports page, got %s", m.page)
	}
}

func TestMainModel_AppliesCurrentResults(t *testing.T) {
	backend, m := newTestModel(t)
	backend.Punishments = api.Ok([]domain.Punishment{
		{ID: "P1", PlayerName: "Steve", Type: domain.TypeBan},
	})

	m, cmd := m.ShowPage(common.PunishmentsPage)
	m = drive(m, cmd)

	if len(m.punishmentsModel.Punishments) != 1 {
		t.Fatalf("Expected 1 punishment, got %d", len(m.punishmentsModel.Punishments))
	}
	if !strings.Contains(m.View(), "Steve") {
		t.Errorf("Expected punishment row in view, got:\n%s", m.View())
	}
}

func TestMainModel_UnauthorizedShowsAlert(t *testing.T) {
	backend, m := newTestModel(t)
	backend.Reports = api.Fail[[]domain.Report](&api.HTTPError{StatusCode: 401})

	m, cmd := m.ShowPage(common.ReportsPage)
	m = drive(m, cmd)

	if m.alert != "Unauthorized! Check your token." {
		t.Errorf("Expected unauthorized alert, got %q", m.alert)
	}
	if !m.reportsModel.Loading {
		t.Error("Expected the page not to receive the unauthorized result")
	}
	if !strings.Contains(m.View(), "Unauthorized! Check your token.") {
		t.Errorf("Expected alert in view, got:\n%s", m.View())
	}

	m, _ = press(m, "x")
	if m.alert != "" {
		t.Errorf("Expected any key to dismiss the alert, got %q", m.alert)
	}
	if m.page != common.ReportsPage {
		t.Errorf("Expected dismissing the alert not to navigate, got %s", m.page)
	}
}

func TestMainModel_NavigationKeys(t *testing.T) {
	_, m := newTestModel(t)

	tests := []struct {
		key  string
		want common.Page
	}{
		{"tab", common.PunishmentsPage},
		{"tab", common.ReportsPage},
		{"shift+tab", common.PunishmentsPage},
		{"4", common.ModeratorsPage},
		{"tab", common.DashboardPage},
		{"shift+tab", common.ModeratorsPage},
		{"1", common.DashboardPage},
	}
	gen := m.pageGen
	for _, tt := range tests {
		m, _ = press(m, tt.key)
		if m.page != tt.want {
			t.Errorf("After %q expected %s, got %s", tt.key, tt.want, m.page)
		}
		if m.headerModel.Current != tt.want {
			t.Errorf("After %q expected header on %s, got %s", tt.key, tt.want, m.headerModel.Current)
		}
		if m.pageGen != gen+1 {
			t.Errorf("After %q expected generation %d, got %d", tt.key, gen+1, m.pageGen)
		}
		gen = m.pageGen
	}
}

func TestMainModel_QuitKeys(t *testing.T) {
	_, m := newTestModel(t)

	for _, k := range []string{"q"} {
		_, cmd := press(m, k)
		if cmd == nil {
			t.Fatalf("Expected quit command for %q", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("Expected QuitMsg for %q", k)
		}
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected ctrl+c to quit")
	}
}

func TestMainModel_CreateSuccessNavigates(t *testing.T) {
	_, m := newTestModel(t)

	updated, _ := m.Update(common.ScopedMsg{Scope: common.PageScope, Gen: m.pageGen, Msg: common.OpenCreateMsg{}})
	m = updated.(MainModel)
	if m.modal != common.CreateModal {
		t.Fatalf("Expected create modal, got %d", m.modal)
	}

	// keys belong to the modal while it is open
	m, _ = press(m, "2")
	if m.page != common.DashboardPage {
		t.Errorf("Expected page keys to be captured by the modal, got %s", m.page)
	}

	gen := m.pageGen
	updated, _ = m.Update(common.ScopedMsg{
		Scope: common.ModalScope,
		Gen:   m.modalGen,
		Msg:   common.PunishmentCreatedMsg{Type: "BAN", Target: "Steve"},
	})
	m = updated.(MainModel)

	if m.modal != common.NoModal {
		t.Errorf("Expected modal to close, got %d", m.modal)
	}
	if m.page != common.PunishmentsPage || m.pageGen != gen+1 {
		t.Errorf("Expected navigation to punishments, got %s gen %d", m.page, m.pageGen)
	}
	if len(m.toasts) != 1 || m.toasts[0].text != "Punishment executed successfully: BAN on Steve" {
		t.Errorf("Expected success toast, got %+v", m.toasts)
	}
	if m.toasts[0].kind != common.ToastSuccess {
		t.Errorf("Expected success kind, got %d", m.toasts[0].kind)
	}
}

func TestMainModel_UnauthorizedSubmitClosesForm(t *testing.T) {
	backend, m := newTestModel(t)
	backend.Created = api.Fail[domain.CreatePunishmentResponse](&api.HTTPError{StatusCode: 401})

	updated, _ := m.Update(common.ScopedMsg{Scope: common.PageScope, Gen: m.pageGen, Msg: common.OpenCreateMsg{}})
	m = updated.(MainModel)
	for _, r := range "Steve" {
		m, _ = press(m, string(r))
	}
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(MainModel)
	if !m.createModal.Submitting {
		t.Fatal("Expected the form to be submitting")
	}
	m = drive(m, cmd)

	if len(backend.CreatedForms) != 1 {
		t.Fatalf("Expected one submission, got %d", len(backend.CreatedForms))
	}
	if m.alert != "Unauthorized! Check your token." {
		t.Errorf("Expected unauthorized alert, got %q", m.alert)
	}
	if m.modal != common.NoModal {
		t.Errorf("Expected the form to close, got modal %d", m.modal)
	}

	// dismiss the alert and open a fresh form
	m, _ = press(m, "x")
	updated, _ = m.Update(common.ScopedMsg{Scope: common.PageScope, Gen: m.pageGen, Msg: common.OpenCreateMsg{}})
	m = updated.(MainModel)
	if m.createModal.Submitting || strings.Contains(m.View(), "Submitting") {
		t.Error("Expected a reopened form to accept input")
	}
}

func TestMainModel_DropsClosedModalResults(t *testing.T) {
	_, m := newTestModel(t)

	updated, _ := m.Update(common.ScopedMsg{Scope: common.PageScope, Gen: m.pageGen, Msg: common.OpenCreateMsg{}})
	m = updated.(MainModel)
	oldGen := m.modalGen

	m, cmd := press(m, "esc")
	m = drive(m, cmd)
	if m.modal != common.NoModal {
		t.Fatalf("Expected modal to be closed, got %d", m.modal)
	}

	updated, _ = m.Update(common.ScopedMsg{
		Scope: common.ModalScope,
		Gen:   oldGen,
		Msg:   common.PunishmentCreatedMsg{Type: "BAN", Target: "Steve"},
	})
	m = updated.(MainModel)
	if m.page != common.DashboardPage || len(m.toasts) != 0 {
		t.Errorf("Expected result of closed modal to be ignored, got page %s toasts %+v", m.page, m.toasts)
	}
}

func TestMainModel_DetailsFailureToasts(t *testing.T) {
	backend, m := newTestModel(t)
	backend.Details = api.Fail[domain.PunishmentDetails](&api.HTTPError{StatusCode: 500, Message: "boom"})

	m = drive(m, common.Scoped(common.PageScope, m.pageGen,
		common.FetchPunishmentCmd(context.Background(), backend, "P1")))

	if m.modal != common.NoModal {
		t.Errorf("Expected no modal on failure, got %d", m.modal)
	}
	if len(m.toasts) != 1 || m.toasts[0].kind != common.ToastError {
		t.Fatalf("Expected one error toast, got %+v", m.toasts)
	}
	if !strings.Contains(m.toasts[0].text, "boom") {
		t.Errorf("Expected server message in toast, got %q", m.toasts[0].text)
	}
}

func TestMainModel_DetailsOpenModal(t *testing.T) {
	backend, m := newTestModel(t)
	backend.Details = api.Ok(domain.PunishmentDetails{
		Punishment: domain.Punishment{ID: "P1", PlayerName: "Steve", Type: domain.TypeBan},
	})
	backend.Report = api.Ok(domain.Report{ID: "R1", TargetName: "Alex", Status: domain.ReportOpen})

	m = drive(m, common.Scoped(common.PageScope, m.pageGen,
		common.FetchPunishmentCmd(context.Background(), backend, "P1")))
	if m.modal != common.PunishmentModal {
		t.Fatalf("Expected punishment modal, got %d", m.modal)
	}
	if !strings.Contains(m.View(), "P1") {
		t.Errorf("Expected modal in view, got:\n%s", m.View())
	}

	m = drive(m, common.Scoped(common.PageScope, m.pageGen,
		common.FetchReportCmd(context.Background(), backend, "R1")))
	if m.modal != common.ReportModal {
		t.Errorf("Expected report modal to replace the punishment modal, got %d", m.modal)
	}
}

func TestMainModel_ToastExpiry(t *testing.T) {
	_, m := newTestModel(t)

	updated, cmd := m.Update(common.ToastMsg{Kind: common.ToastInfo, Text: "hello"})
	m = updated.(MainModel)
	if cmd == nil {
		t.Fatal("Expected expiry timer")
	}
	updated, _ = m.Update(common.ToastMsg{Kind: common.ToastWarning, Text: "second"})
	m = updated.(MainModel)
	if len(m.toasts) != 2 {
		t.Fatalf("Expected 2 toasts, got %d", len(m.toasts))
	}

	updated, _ = m.Update(toastExpiredMsg{id: m.toasts[0].id})
	m = updated.(MainModel)
	if len(m.toasts) != 1 || m.toasts[0].text != "second" {
		t.Errorf("Expected only the second toast to remain, got %+v", m.toasts)
	}
}

func TestMainModel_TerminalTooSmall(t *testing.T) {
	_, m := newTestModel(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = updated.(MainModel)
	if !strings.Contains(m.View(), "Terminal too small!") {
		t.Errorf("Expected size warning, got:\n%s", m.View())
	}
}
