package middleware

import (
	"errors"
	"strings"
	"testing"

	"github.com/deemkeen/crownconsole/domain"
)

func TestSessionFor(t *testing.T) {
	tests := []struct {
		name      string
		command   []string
		fallback  domain.LaunchParams
		wantToken string
		wantAdmin string
		wantRest  []string
		wantErr   error
	}{
		{
			name:      "interactive with token",
			command:   []string{"token=abc", "adminName=Alice"},
			wantToken: "abc",
			wantAdmin: "Alice",
		},
		{
			name:      "cli command after params",
			command:   []string{"token=abc", "reports", "-s", "open"},
			wantToken: "abc",
			wantAdmin: domain.DefaultAdminName,
			wantRest:  []string{"reports", "-s", "open"},
		},
		{
			name:      "fallback token",
			command:   []string{"punishments"},
			fallback:  domain.LaunchParams{Token: "env-token", AdminName: "Ops"},
			wantToken: "env-token",
			wantAdmin: "Ops",
			wantRest:  []string{"punishments"},
		},
		{
			name:      "client overrides fallback",
			command:   []string{"token=mine"},
			fallback:  domain.LaunchParams{Token: "env-token"},
			wantToken: "mine",
			wantAdmin: domain.DefaultAdminName,
		},
		{
			name:    "no token anywhere",
			command: []string{"reports"},
			wantErr: domain.ErrMissingToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, rest, err := sessionFor(tt.command, tt.fallback)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if sess.Token() != tt.wantToken {
				t.Errorf("Expected token %q, got %q", tt.wantToken, sess.Token())
			}
			if sess.AdminName() != tt.wantAdmin {
				t.Errorf("Expected admin %q, got %q", tt.wantAdmin, sess.AdminName())
			}
			if strings.Join(rest, " ") != strings.Join(tt.wantRest, " ") {
				t.Errorf("Expected rest %v, got %v", tt.wantRest, rest)
			}
		})
	}
}

func TestSessionError(t *testing.T) {
	if msg := sessionError(domain.ErrMissingToken); !strings.Contains(msg, "token=<token>") {
		t.Errorf("Expected connection hint, got %q", msg)
	}
	if msg := sessionError(errors.New("bad uuid")); msg != "Error: bad uuid" {
		t.Errorf("Expected plain error, got %q", msg)
	}
}
