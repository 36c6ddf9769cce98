package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/domain"
)

func TestReports(t *testing.T) {
	handler, backend, _, output := newTestHandler("")
	backend.Reports = api.Ok([]domain.Report{
		{ID: "R1", TargetName: "Steve", Category: "CHAT", Reason: "slurs", Status: domain.ReportOpen},
	})

	if err := handler.Execute([]string{"reports", "-s", "open"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(backend.ReportQueries) != 1 || backend.ReportQueries[0] != domain.ReportOpen {
		t.Errorf("Expected one OPEN query, got %v", backend.ReportQueries)
	}
	if !strings.Contains(output.String(), "1 report(s)") {
		t.Errorf("Expected report count, got: %s", output.String())
	}
}

func TestReports_AllByDefault(t *testing.T) {
	handler, backend, _, output := newTestHandler("")

	if err := handler.Execute([]string{"reports"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if backend.ReportQueries[0] != domain.ReportUnknown {
		t.Errorf("Expected unfiltered query, got %v", backend.ReportQueries[0])
	}
	if !strings.Contains(output.String(), "No reports found.") {
		t.Errorf("Expected empty message, got: %s", output.String())
	}
}

func TestResolve(t *testing.T) {
	handler, backend, journal, output := newTestHandler("")

	if err := handler.Execute([]string{"resolve", "R1", "rejected", "--json"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(backend.Updates) != 1 || backend.Updates[0].Status != domain.ReportRejected {
		t.Errorf("Expected one REJECTED update, got %+v", backend.Updates)
	}
	var resp ResolveResponse
	if err := json.Unmarshal(output.Bytes(), &resp); err != nil {
		t.Fatalf("Expected valid JSON, got error: %v", err)
	}
	if !resp.Updated || resp.Status != "REJECTED" {
		t.Errorf("Expected updated REJECTED, got %+v", resp)
	}
	if len(journal.entries) != 1 || journal.entries[0].Action != domain.ActionResolve {
		t.Errorf("Expected resolve journal entry, got %+v", journal.entries)
	}
}

func TestResolve_InvalidStatus(t *testing.T) {
	handler, backend, _, _ := newTestHandler("")

	for _, status := range []string{"open", "maybe"} {
		if err := handler.Execute([]string{"resolve", "R1", status}); err == nil {
			t.Errorf("Expected error for status %q", status)
		}
	}
	if len(backend.Updates) != 0 {
		t.Errorf("Expected no backend calls, got %+v", backend.Updates)
	}
}

func TestResolve_BackendFalse(t *testing.T) {
	handler, backend, _, output := newTestHandler("")
	backend.Update = api.Fail[bool](&api.RejectedError{})

	if err := handler.Execute([]string{"resolve", "R1", "resolved"}); err == nil {
		t.Error("Expected error when backend reports failure")
	}
	if !strings.Contains(output.String(), "Error:") {
		t.Errorf("Expected error output, got: %s", output.String())
	}
}
