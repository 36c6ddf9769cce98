package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/domain"
)

func TestPunishments(t *testing.T) {
	handler, backend, _, output := newTestHandler("")
	backend.Punishments = api.Ok([]domain.Punishment{
		{ID: "P1", PlayerName: "Steve", Type: domain.TypeBan, Reason: "griefing", Active: true},
		{ID: "P2", PlayerName: "Alex", Type: domain.TypeKick, Reason: "spam"},
	})

	if err := handler.Execute([]string{"punishments", "-n", "5", "-t", "ban"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(backend.PunishmentQueries) != 1 {
		t.Fatalf("Expected one query, got %d", len(backend.PunishmentQueries))
	}
	q := backend.PunishmentQueries[0]
	if q.Limit != 5 || q.Type != domain.TypeBan {
		t.Errorf("Expected limit 5 type BAN, got %+v", q)
	}
	result := output.String()
	if !strings.Contains(result, "Steve") || !strings.Contains(result, "2 punishment(s)") {
		t.Errorf("Expected listing, got: %s", result)
	}
}

func TestPunishments_PlayerAndModeratorFilters(t *testing.T) {
	handler, backend, _, _ := newTestHandler("")
	backend.Punishments = api.Ok([]domain.Punishment{})

	if err := handler.Execute([]string{"punishments", "-p", "Steve", "-m", "Notch"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(backend.PunishmentQueries) != 1 {
		t.Fatalf("Expected one query, got %d", len(backend.PunishmentQueries))
	}
	q := backend.PunishmentQueries[0]
	if q.Target != "Steve" || q.Moderator != "Notch" {
		t.Errorf("Expected target Steve and moderator Notch, got %+v", q)
	}
}

func TestPunishments_UnknownType(t *testing.T) {
	handler, backend, _, _ := newTestHandler("")

	if err := handler.Execute([]string{"punishments", "-t", "smite"}); err == nil {
		t.Error("Expected error for unknown type")
	}
	if len(backend.PunishmentQueries) != 0 {
		t.Error("Expected no backend call for an invalid filter")
	}
}

func TestPunishments_EmptyJSON(t *testing.T) {
	handler, _, _, output := newTestHandler("")

	if err := handler.Execute([]string{"punishments", "-j"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	var resp PunishmentsResponse
	if err := json.Unmarshal(output.Bytes(), &resp); err != nil {
		t.Fatalf("Expected valid JSON, got error: %v", err)
	}
	if resp.Count != 0 || resp.Punishments == nil {
		t.Errorf("Expected empty non-null list, got %+v", resp)
	}
}

func TestPunishment_Detail(t *testing.T) {
	handler, backend, _, output := newTestHandler("")
	backend.Details = api.Ok(domain.PunishmentDetails{
		Punishment: domain.Punishment{ID: "P1", PlayerName: "Steve", Type: domain.TypeWarn, Reason: "language"},
		PlayerInfo: &domain.PlayerInfo{Location: "Berlin", Ping: 42},
	})

	if err := handler.Execute([]string{"punishment", "P1"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	result := output.String()
	for _, want := range []string{"WARN", "Duration:  N/A", "Moderator: Console", "Berlin", "42 ms", "Hidden/Not Logged"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in output, got: %s", want, result)
		}
	}
}

func TestPunishment_Usage(t *testing.T) {
	handler, _, _, _ := newTestHandler("")
	if err := handler.Execute([]string{"punishment"}); err == nil {
		t.Error("Expected usage error")
	}
}

func TestParsePunishArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		want      domain.CreateForm
		wantStdin bool
		wantErr   bool
	}{
		{
			name: "ban with duration and ip",
			args: []string{"Steve", "ban", "-d", "7d", "--ip", "griefing", "spawn"},
			want: domain.CreateForm{Target: "Steve", Type: domain.TypeBan, Duration: "7d", ByIP: true, Reason: "griefing spawn"},
		},
		{
			name:      "reason from stdin",
			args:      []string{"Steve", "mute", "-"},
			want:      domain.CreateForm{Target: "Steve", Type: domain.TypeMute},
			wantStdin: true,
		},
		{
			name:    "unknown type",
			args:    []string{"Steve", "smite", "because"},
			wantErr: true,
		},
		{
			name:    "too few arguments",
			args:    []string{"Steve", "ban"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, stdin, err := parsePunishArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr {
				return
			}
			if form != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, form)
			}
			if stdin != tt.wantStdin {
				t.Errorf("Expected stdin %v, got %v", tt.wantStdin, stdin)
			}
		})
	}
}

func TestPunish_DropsUnusedFields(t *testing.T) {
	handler, backend, journal, output := newTestHandler("")
	backend.Created = api.Ok(domain.CreatePunishmentResponse{Success: true, ID: "P9", Type: "warn", Target: "Steve"})

	err := handler.Execute([]string{"punish", "Steve", "warn", "-d", "7d", "--ip", "language"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(backend.CreatedForms) != 1 {
		t.Fatalf("Expected one create call, got %d", len(backend.CreatedForms))
	}
	form := backend.CreatedForms[0]
	if form.Duration != "" || form.ByIP {
		t.Errorf("Expected duration and byIP cleared for warn, got %+v", form)
	}
	if !strings.Contains(output.String(), "Punishment executed successfully: WARN on Steve") {
		t.Errorf("Expected success line, got: %s", output.String())
	}
	if len(journal.entries) != 1 || !journal.entries[0].Succeeded || journal.entries[0].AdminName != "Alice" {
		t.Errorf("Expected a successful journal entry by Alice, got %+v", journal.entries)
	}
}

func TestPunish_ReasonFromStdin(t *testing.T) {
	handler, backend, _, _ := newTestHandler("  spamming chat \n")
	backend.Created = api.Ok(domain.CreatePunishmentResponse{Success: true, ID: "P9", Type: "mute", Target: "Steve"})

	if err := handler.Execute([]string{"punish", "Steve", "mute", "-"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got := backend.CreatedForms[0].Reason; got != "spamming chat" {
		t.Errorf("Expected reason from stdin, got %q", got)
	}
}

func TestPunish_EmptyReason(t *testing.T) {
	handler, backend, _, _ := newTestHandler("   ")

	if err := handler.Execute([]string{"punish", "Steve", "ban", "-"}); err == nil {
		t.Error("Expected error for empty reason")
	}
	if len(backend.CreatedForms) != 0 {
		t.Error("Expected no create call")
	}
}

func TestPunish_Rejected(t *testing.T) {
	handler, backend, journal, output := newTestHandler("")
	backend.Created = api.Fail[domain.CreatePunishmentResponse](&api.RejectedError{Message: "Player not found"})

	err := handler.Execute([]string{"punish", "Nobody", "kick", "afk"})
	if err == nil {
		t.Fatal("Expected error for rejected punishment")
	}
	if !strings.Contains(output.String(), "Player not found") {
		t.Errorf("Expected server message, got: %s", output.String())
	}
	if len(journal.entries) != 1 || journal.entries[0].Succeeded {
		t.Errorf("Expected a failed journal entry, got %+v", journal.entries)
	}
}
