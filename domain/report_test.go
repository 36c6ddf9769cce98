package domain

import (
	"encoding/json"
	"testing"
)

func TestReportJSON(t *testing.T) {
	raw := `[{"reportId":"R1","targetName":"Alex","category":"CHAT","reason":"spam","status":"OPEN","timestamp":1700000000000},
		{"reportId":"R2","targetUUID":"u-2","status":"resolved"},
		{"reportId":"R3","status":"ESCALATED"}]`

	var reports []Report
	if err := json.Unmarshal([]byte(raw), &reports); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !reports[0].Actionable() {
		t.Error("Expected open report to be actionable")
	}
	if reports[1].Status != ReportResolved || reports[1].Actionable() {
		t.Errorf("Expected resolved non-actionable report, got %s", reports[1].Status)
	}
	if reports[1].Target() != "u-2" {
		t.Errorf("Expected uuid fallback, got %s", reports[1].Target())
	}
	if reports[2].Status != ReportUnknown {
		t.Errorf("Expected unknown status, got %s", reports[2].Status)
	}
	if reports[1].StatusLabel() != "RESOLVED" {
		t.Errorf("Expected RESOLVED label, got %s", reports[1].StatusLabel())
	}
	if reports[2].StatusLabel() != "ESCALATED" {
		t.Errorf("Expected unknown status shown as received, got %s", reports[2].StatusLabel())
	}
}

func TestReportStatusResolution(t *testing.T) {
	tests := []struct {
		status ReportStatus
		want   bool
	}{
		{ReportOpen, false},
		{ReportResolved, true},
		{ReportRejected, true},
		{ReportUnknown, false},
	}
	for _, tt := range tests {
		if got := tt.status.Resolution(); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.status, tt.want, got)
		}
	}
}
