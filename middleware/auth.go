package middleware

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/deemkeen/crownconsole/util"
	gossh "golang.org/x/crypto/ssh"
)

// LoadAuthorizedKeys reads an OpenSSH authorized_keys file.
func LoadAuthorizedKeys(path string) ([]ssh.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseAuthorizedKeys(string(data))
}

func ParseAuthorizedKeys(data string) ([]ssh.PublicKey, error) {
	var keys []ssh.PublicKey
	for n, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, _, _, _, err := gossh.ParseAuthorizedKey([]byte(line))
		if err != nil {
			return nil, fmt.Errorf("authorized keys line %d: %w", n+1, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func keyAllowed(keys []ssh.PublicKey, key ssh.PublicKey) bool {
	if key == nil {
		return false
	}
	for _, k := range keys {
		if ssh.KeysEqual(k, key) {
			return true
		}
	}
	return false
}

// PublicKeyAuth admits keys on the allowlist. An empty list admits every key.
func PublicKeyAuth(keys []ssh.PublicKey) ssh.PublicKeyHandler {
	return func(_ ssh.Context, key ssh.PublicKey) bool {
		return len(keys) == 0 || keyAllowed(keys, key)
	}
}

func AuthMiddleware(keys []ssh.PublicKey) wish.Middleware {
	return func(h ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			ip := extractIP(s.RemoteAddr().String())

			if len(keys) > 0 && !keyAllowed(keys, s.PublicKey()) {
				util.Logger().Warn("Blocked session from unlisted key", "ip", ip, "user", s.User())
				s.Write([]byte("Your key is not authorized for this console.\n"))
				s.Close()
				return
			}

			fingerprint := "none"
			if key := s.PublicKey(); key != nil {
				fingerprint = gossh.FingerprintSHA256(key)
			}
			util.Logger().Info("Session opened", "ip", ip, "user", s.User(), "key", fingerprint)
			h(s)
		}
	}
}

// extractIP strips the port from a remote address
func extractIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
