package util

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

//go:embed version.txt
var embeddedVersion string

func GetVersion() string {
	return strings.TrimSpace(embeddedVersion)
}

func GetNameAndVersion() string {
	return fmt.Sprintf("%s / %s", Name, GetVersion())
}

// GetConfigDir returns the per-user config directory, creating it if needed.
func GetConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// ResolveFilePath prefers a file in the working directory and falls back to
// the user config directory.
func ResolveFilePath(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	dir, err := GetConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, name)
}

func DateTimeFormat() string {
	return "2006-01-02 15:04"
}

func DateFormat() string {
	return "2006-01-02"
}

// Truncate shortens s to at most width terminal cells, adding an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Pad truncates or right-pads s to exactly width cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

// FormatTimeAgo returns a human-readable time difference
func FormatTimeAgo(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	duration := time.Since(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		mins := int(duration.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case duration < 30*24*time.Hour:
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("Jan 2, 2006")
	}
}
