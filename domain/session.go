package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const DefaultAdminName = "WebAdmin"

var ErrMissingToken = errors.New("no API token supplied")

// Session is the admin context for one console run. It is built once and
// never changed afterwards; pass it by value.
type Session struct {
	token     string
	adminName string
	adminUUID uuid.UUID
	hasUUID   bool
}

// NewSession validates launch parameters. A token is mandatory.
func NewSession(token, adminName, adminUUID string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrMissingToken
	}
	s := Session{token: token, adminName: strings.TrimSpace(adminName)}
	if s.adminName == "" {
		s.adminName = DefaultAdminName
	}
	if adminUUID = strings.TrimSpace(adminUUID); adminUUID != "" {
		id, err := uuid.Parse(adminUUID)
		if err != nil {
			return Session{}, fmt.Errorf("admin uuid %q: %w", adminUUID, err)
		}
		s.adminUUID = id
		s.hasUUID = true
	}
	return s, nil
}

func (s Session) Token() string     { return s.token }
func (s Session) AdminName() string { return s.adminName }

// AdminUUID returns the admin identifier and whether one was supplied.
func (s Session) AdminUUID() (uuid.UUID, bool) {
	return s.adminUUID, s.hasUUID
}

// LaunchParams are the raw session inputs before validation.
type LaunchParams struct {
	Token     string
	AdminName string
	AdminUUID string
}

// ParseLaunchParams reads key=value arguments (token, adminUuid, adminName)
// and fills gaps from fallback. Unrecognised arguments are returned as rest.
func ParseLaunchParams(args []string, fallback LaunchParams) (LaunchParams, []string) {
	p := fallback
	var rest []string
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			rest = append(rest, arg)
			continue
		}
		switch strings.ToLower(key) {
		case "token":
			p.Token = value
		case "adminuuid", "admin-uuid":
			p.AdminUUID = value
		case "adminname", "admin-name":
			p.AdminName = value
		default:
			rest = append(rest, arg)
		}
	}
	return p, rest
}

func (p LaunchParams) Session() (Session, error) {
	return NewSession(p.Token, p.AdminName, p.AdminUUID)
}
