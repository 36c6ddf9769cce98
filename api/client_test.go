package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deemkeen/crownconsole/domain"
)

func testSession(t *testing.T, adminUUID string) domain.Session {
	t.Helper()
	s, err := domain.NewSession("test-token", "Alice", adminUUID)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return s
}

func newTestClient(t *testing.T, handler http.HandlerFunc, adminUUID string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/api", testSession(t, adminUUID), Options{Timeout: 2 * time.Second})
}

func TestClient_SendsHeaders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Expected bearer token, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Expected JSON content type, got %q", got)
		}
		if r.URL.Path != "/api/punishments" || r.URL.Query().Get("limit") != "5" {
			t.Errorf("Unexpected request %s", r.URL)
		}
		w.Write([]byte(`[]`))
	}, "")

	res := client.ListPunishments(context.Background(), PunishmentQuery{Limit: 5})
	if !res.OK() {
		t.Fatalf("Expected success, got %v", res.Failure())
	}
	if res.Value == nil || len(res.Value) != 0 {
		t.Errorf("Expected empty non-nil list, got %v", res.Value)
	}
}

func TestClient_TypeFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "mute" {
			t.Errorf("Expected type=mute, got %q", got)
		}
		w.Write([]byte(`[{"punishmentId":"1","type":"mute"}]`))
	}, "")

	res := client.ListPunishments(context.Background(), PunishmentQuery{Limit: 50, Type: domain.TypeMute})
	if !res.OK() || len(res.Value) != 1 {
		t.Fatalf("Expected one punishment, got %v (%v)", res.Value, res.Failure())
	}
}

func TestClient_TargetAndModeratorFilters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if got := query.Get("target"); got != "Steve" {
			t.Errorf("Expected target=Steve, got %q", got)
		}
		if got := query.Get("moderator"); got != "Notch" {
			t.Errorf("Expected moderator=Notch, got %q", got)
		}
		if query.Has("type") {
			t.Errorf("Expected no type parameter, got %q", query.Get("type"))
		}
		w.Write([]byte(`[]`))
	}, "")

	res := client.ListPunishments(context.Background(), PunishmentQuery{Target: "Steve", Moderator: "Notch"})
	if !res.OK() || len(res.Value) != 0 {
		t.Fatalf("Expected empty success, got %v (%v)", res.Value, res.Failure())
	}
}

func TestClient_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "")

	res := client.ListReports(context.Background(), domain.ReportUnknown)
	if !errors.Is(res.Failure(), ErrUnauthorized) {
		t.Fatalf("Expected ErrUnauthorized, got %v", res.Failure())
	}
	if Describe(res.Failure()) != "Unauthorized! Check your token." {
		t.Errorf("Unexpected description %q", Describe(res.Failure()))
	}
}

func TestClient_DecodeFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}, "")

	res := client.ListPunishments(context.Background(), PunishmentQuery{Limit: 5})
	if !errors.Is(res.Failure(), ErrDecode) {
		t.Errorf("Expected ErrDecode, got %v", res.Failure())
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	client := NewClient(base, testSession(t, ""), Options{Timeout: time.Second})
	res := client.GetPunishment(context.Background(), "X")
	if !errors.Is(res.Failure(), ErrTransport) {
		t.Errorf("Expected ErrTransport, got %v", res.Failure())
	}
}

func TestClient_CreatePunishment(t *testing.T) {
	t.Run("success body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("Expected POST, got %s", r.Method)
			}
			var body domain.CreatePunishmentRequest
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Type != "warn" || body.Duration != "" || body.ByIP {
				t.Errorf("Expected rules applied, got %+v", body)
			}
			if body.AdminName != "Alice" {
				t.Errorf("Expected admin name Alice, got %s", body.AdminName)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"AB12"}`))
		}, "")

		form := domain.CreateForm{Target: "Steve", Type: domain.TypeWarn, Duration: "7d", ByIP: true, Reason: "spam"}
		res := client.CreatePunishment(context.Background(), form)
		if !res.OK() {
			t.Fatalf("Expected success, got %v", res.Failure())
		}
		if res.Value.Type != "warn" || res.Value.Target != "Steve" {
			t.Errorf("Expected type and target filled from request, got %+v", res.Value)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"message":"Target bypassed"}`))
		}, "")
		res := client.CreatePunishment(context.Background(), domain.CreateForm{Target: "Steve", Type: domain.TypeBan})
		if !errors.Is(res.Failure(), ErrRejected) {
			t.Fatalf("Expected ErrRejected, got %v", res.Failure())
		}
		if ServerMessage(res.Failure()) != "Target bypassed" {
			t.Errorf("Expected server message, got %q", ServerMessage(res.Failure()))
		}
	})

	t.Run("plain text error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid target"))
		}, "")
		res := client.CreatePunishment(context.Background(), domain.CreateForm{Target: "Nobody", Type: domain.TypeBan})
		if ServerMessage(res.Failure()) != "Invalid target" {
			t.Errorf("Expected plain text message, got %q", ServerMessage(res.Failure()))
		}
	})
}

func TestClient_UpdateReportStatus(t *testing.T) {
	const admin = "8667ba71-b85a-4004-af54-457a9734eed7"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/reports/R1/status" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		want := `{"status":"RESOLVED","moderatorUuid":"` + admin + `"}`
		if string(data) != want {
			t.Errorf("Expected %s, got %s", want, data)
		}
		w.Write([]byte(`{"success":true}`))
	}, admin)

	res := client.UpdateReportStatus(context.Background(), "R1", domain.ReportResolved)
	if !res.OK() || !res.Value {
		t.Errorf("Expected success, got %v", res.Failure())
	}
}

func TestClient_UpdateReportStatusFalse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	}, "")

	res := client.UpdateReportStatus(context.Background(), "R1", domain.ReportRejected)
	if !errors.Is(res.Failure(), ErrRejected) {
		t.Errorf("Expected ErrRejected, got %v", res.Failure())
	}
}

func TestClient_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Punishment not found"))
	}, "")

	res := client.GetPunishment(context.Background(), "nope")
	if !errors.Is(res.Failure(), ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", res.Failure())
	}
	if !strings.Contains(Describe(res.Failure()), "not found") {
		t.Errorf("Unexpected description %q", Describe(res.Failure()))
	}
}
