package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/ui/common"
	"github.com/deemkeen/crownconsole/ui/uitest"
)

func newModel(backend *uitest.Backend) Model {
	return InitialModel(common.Deps{Session: backend.Sess, Backend: backend}, 120, 40)
}

// load runs Load and feeds every resulting message back until the page settles.
func load(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := m.Load(context.Background())
	for cmd != nil {
		msgs := uitest.Collect(cmd)
		cmd = nil
		for _, msg := range msgs {
			var next tea.Cmd
			m, next = m.Update(msg)
			if next != nil {
				cmd = next
			}
		}
	}
	return m
}

func TestDashboard_EmptyActivity(t *testing.T) {
	backend := uitest.NewBackend(uitest.MustSession("tok", "", ""))
	m := load(t, newModel(backend))

	view := m.View()
	if !strings.Contains(view, "No recent activity") {
		t.Errorf("Expected empty activity text, got:\n%s", view)
	}
	if strings.Contains(view, "distribution") {
		t.Error("Expected no chart for empty list")
	}
	if len(backend.PunishmentQueries) != 1 || backend.PunishmentQueries[0].Limit != 5 {
		t.Errorf("Expected one query with limit 5, got %+v", backend.PunishmentQueries)
	}
}

func TestDashboard_TwoPhasePendingCount(t *testing.T) {
	backend := uitest.NewBackend(uitest.MustSession("tok", "", ""))
	backend.Punishments = api.Ok([]domain.Punishment{
		{ID: "1", Type: domain.TypeBan, PlayerName: "Steve"},
		{ID: "2", Type: domain.TypeMute, PlayerName: "Alex"},
	})
	backend.Reports = api.Ok([]domain.Report{{ID: "R1", Status: domain.ReportOpen}, {ID: "R2", Status: domain.ReportOpen}})

	m := newModel(backend)
	m, cmd := m.Load(context.Background())
	if !strings.Contains(m.View(), "...") {
		t.Error("Expected placeholder while loading")
	}

	msgs := uitest.Collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(msgs))
	}
	m, cmd = m.Update(msgs[0])
	if m.pendingLabel() != "..." {
		t.Errorf("Expected pending placeholder before second fetch, got %s", m.pendingLabel())
	}
	if cmd == nil {
		t.Fatal("Expected pending report fetch")
	}

	for _, msg := range uitest.Collect(cmd) {
		m, _ = m.Update(msg)
	}
	if m.pendingLabel() != "2" {
		t.Errorf("Expected 2 pending reports, got %s", m.pendingLabel())
	}
	if len(backend.ReportQueries) != 1 || backend.ReportQueries[0] != domain.ReportOpen {
		t.Errorf("Expected OPEN report query, got %v", backend.ReportQueries)
	}
	if !strings.Contains(m.View(), "distribution") {
		t.Error("Expected chart for non-empty list")
	}
}

func TestDashboard_Failure(t *testing.T) {
	backend := uitest.NewBackend(uitest.MustSession("tok", "", ""))
	backend.Punishments = api.Fail[[]domain.Punishment](api.ErrTransport)
	backend.Reports = api.Ok([]domain.Report{{ID: "r7", Status: domain.ReportOpen}})

	m := load(t, newModel(backend))
	view := m.View()
	if !strings.Contains(view, "Could not load recent activity") {
		t.Errorf("Expected failure text, got:\n%s", view)
	}
	if strings.Contains(view, "No recent activity") {
		t.Error("Failure must not render as empty")
	}
	if len(backend.ReportQueries) != 1 || backend.ReportQueries[0] != domain.ReportOpen {
		t.Errorf("Expected one OPEN report query, got %v", backend.ReportQueries)
	}
	if m.pendingLabel() != "1" {
		t.Errorf("Expected pending count 1, got %s", m.pendingLabel())
	}
}

func TestDashboard_PendingFailure(t *testing.T) {
	backend := uitest.NewBackend(uitest.MustSession("tok", "", ""))
	backend.Reports = api.Fail[[]domain.Report](api.ErrTransport)

	m := load(t, newModel(backend))
	if m.pendingLabel() != "?" {
		t.Errorf("Expected ? for pending count, got %s", m.pendingLabel())
	}
}

func TestDashboard_UnknownTypeLegend(t *testing.T) {
	backend := uitest.NewBackend(uitest.MustSession("tok", "", ""))
	backend.Punishments = api.Ok([]domain.Punishment{
		{ID: "1", PlayerName: "Steve", RawType: "jail"},
		{ID: "2", PlayerName: "Alex", Type: domain.TypeBan, RawType: "ban"},
	})

	view := load(t, newModel(backend)).View()
	if !strings.Contains(view, "JAIL") {
		t.Errorf("Expected backend type name in view, got:\n%s", view)
	}
	if strings.Contains(view, "UNKNOWN") {
		t.Errorf("Expected no UNKNOWN label, got:\n%s", view)
	}
}

func TestDashboard_StaleSeqIgnored(t *testing.T) {
	backend := uitest.NewBackend(uitest.MustSession("tok", "", ""))
	m := newModel(backend)
	m, _ = m.Load(context.Background())
	m, _ = m.Load(context.Background())

	m, _ = m.Update(recentLoadedMsg{seq: 1, Result: api.Fail[[]domain.Punishment](errors.New("old"))})
	if m.Err != nil || !m.Loading {
		t.Error("Expected stale result to be ignored")
	}
}

func TestRenderRing(t *testing.T) {
	if out := renderRing(nil, ringRadius); out != "" {
		t.Errorf("Expected empty chart, got %q", out)
	}
	out := renderRing([]domain.TypeCount{{Type: domain.TypeBan, Label: "BAN", Count: 3}, {Type: domain.TypeWarn, Label: "WARN", Count: 1}}, 4)
	if !strings.Contains(out, "BAN") || !strings.Contains(out, "75%") {
		t.Errorf("Expected legend with BAN 75%%, got:\n%s", out)
	}
	if !strings.Contains(out, "█") {
		t.Error("Expected ring cells")
	}
}
