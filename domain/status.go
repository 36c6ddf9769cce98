package domain

import (
	"strconv"
	"strings"
)

// PunishmentStatus is the lifecycle state shown for a punishment.
type PunishmentStatus int

const (
	StatusUnknown PunishmentStatus = iota
	StatusActive
	StatusExpired
	StatusRemoved
	StatusNotApplicable
)

func ParsePunishmentStatus(s string) PunishmentStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive
	case "expired":
		return StatusExpired
	case "removed":
		return StatusRemoved
	case "n/a":
		return StatusNotApplicable
	default:
		return StatusUnknown
	}
}

// Tone is a colour band used for badges.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGreen
	ToneGray
	ToneRed
	ToneOrange
	ToneYellow
	TonePurple
	ToneSlate
	ToneBlue
)

// StatusLabel derives the status text for a row. Kicks and freezes are
// always N/A; otherwise an explicit status wins over the active flag.
func StatusLabel(t PunishmentType, status string, active bool) string {
	if t.Instant() {
		return "N/A"
	}
	if status != "" {
		return status
	}
	if active {
		return "Active"
	}
	return "Removed"
}

func StatusTone(t PunishmentType, status string, active bool) Tone {
	if t.Instant() {
		return ToneNeutral
	}
	switch ParsePunishmentStatus(StatusLabel(t, status, active)) {
	case StatusActive:
		return ToneGreen
	case StatusExpired:
		return ToneGray
	case StatusRemoved:
		return ToneRed
	case StatusNotApplicable, StatusUnknown:
		return ToneNeutral
	}
	panic("unreachable punishment status")
}

func TypeTone(t PunishmentType) Tone {
	switch t {
	case TypeBan:
		return ToneRed
	case TypeMute:
		return ToneOrange
	case TypeWarn:
		return ToneYellow
	case TypeSoftban:
		return TonePurple
	case TypeKick, TypeUnknown:
		return ToneSlate
	case TypeFreeze:
		return ToneBlue
	}
	panic("unreachable punishment type")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
