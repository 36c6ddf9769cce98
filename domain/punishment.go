package domain

import (
	"encoding/json"
	"strings"
)

// PunishmentType is the closed set of moderation actions the console knows.
type PunishmentType int

const (
	TypeUnknown PunishmentType = iota
	TypeBan
	TypeMute
	TypeSoftban
	TypeWarn
	TypeKick
	TypeFreeze
)

// PunishmentTypes lists the selectable types in form and filter order.
var PunishmentTypes = []PunishmentType{TypeBan, TypeMute, TypeSoftban, TypeWarn, TypeKick, TypeFreeze}

func ParsePunishmentType(s string) PunishmentType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ban":
		return TypeBan
	case "mute":
		return TypeMute
	case "softban":
		return TypeSoftban
	case "warn":
		return TypeWarn
	case "kick":
		return TypeKick
	case "freeze":
		return TypeFreeze
	default:
		return TypeUnknown
	}
}

func (t PunishmentType) String() string {
	switch t {
	case TypeBan:
		return "ban"
	case TypeMute:
		return "mute"
	case TypeSoftban:
		return "softban"
	case TypeWarn:
		return "warn"
	case TypeKick:
		return "kick"
	case TypeFreeze:
		return "freeze"
	case TypeUnknown:
		return "unknown"
	}
	panic("unreachable punishment type")
}

// Label is the upper-case badge text.
func (t PunishmentType) Label() string {
	return strings.ToUpper(t.String())
}

// Instant reports whether the type has no lifetime: kicks and freezes carry
// no meaningful status or duration.
func (t PunishmentType) Instant() bool {
	switch t {
	case TypeKick, TypeFreeze:
		return true
	case TypeBan, TypeMute, TypeSoftban, TypeWarn, TypeUnknown:
		return false
	}
	panic("unreachable punishment type")
}

func (t PunishmentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *PunishmentType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParsePunishmentType(s)
	return nil
}

// Punishment is a moderation record as served by the backend.
type Punishment struct {
	ID             string         `json:"punishmentId"`
	PlayerUUID     string         `json:"playerUUID"`
	PlayerName     string         `json:"playerName"`
	Type           PunishmentType `json:"type"`
	Reason         string         `json:"reason"`
	Status         string         `json:"status"`
	Active         bool           `json:"active"`
	DurationString string         `json:"durationString"`
	PunisherName   string         `json:"punisherName"`
	PunisherUUID   string         `json:"punisherUuid"`
	ByIP           bool           `json:"byIp"`
	Timestamp      Timestamp      `json:"timestamp"`

	// RawType is the type string as the backend sent it.
	RawType string `json:"-"`
}

func (p *Punishment) UnmarshalJSON(data []byte) error {
	type plain Punishment
	var aux struct {
		plain
		RawType string `json:"type"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Punishment(aux.plain)
	p.RawType = aux.RawType
	p.Type = ParsePunishmentType(aux.RawType)
	return nil
}

// TypeLabel is the badge text. Types outside the known set keep the
// backend's own name.
func (p Punishment) TypeLabel() string {
	if raw := strings.TrimSpace(p.RawType); p.Type == TypeUnknown && raw != "" {
		return strings.ToUpper(raw)
	}
	return p.Type.Label()
}

// Target returns the best display name for the punished player.
func (p Punishment) Target() string {
	if p.PlayerName != "" {
		return p.PlayerName
	}
	if p.PlayerUUID != "" {
		return p.PlayerUUID
	}
	return "Unknown"
}

func (p Punishment) Moderator() string {
	if p.PunisherName == "" {
		return "Console"
	}
	return p.PunisherName
}

func (p Punishment) StatusLabel() string {
	return StatusLabel(p.Type, p.Status, p.Active)
}

func (p Punishment) StatusTone() Tone {
	return StatusTone(p.Type, p.Status, p.Active)
}

func (p Punishment) DurationLabel() string {
	if p.Type.Instant() || p.DurationString == "" {
		return "N/A"
	}
	return p.DurationString
}

func (p Punishment) Method() string {
	if p.ByIP {
		return "IP"
	}
	return "Local"
}

// PunisherAvatarID is the avatar id for the issuing moderator. The console
// has no skin, so it gets the default one.
func (p Punishment) PunisherAvatarID() string {
	if p.PunisherName == "Console" || p.PunisherUUID == "" {
		return "steve"
	}
	return p.PunisherUUID
}

func (p Punishment) PlayerAvatarID() string {
	if p.PlayerUUID == "" {
		return "steve"
	}
	return p.PlayerUUID
}

// PlayerInfo holds the technical details the backend logged for a player.
// Every field is optional.
type PlayerInfo struct {
	IP       string `json:"ip"`
	Location string `json:"location"`
	Gamemode string `json:"gamemode"`
	Ping     int    `json:"ping"`
}

func (i *PlayerInfo) IPLabel() string {
	if i == nil || i.IP == "" {
		return "Hidden/Not Logged"
	}
	return i.IP
}

func (i *PlayerInfo) LocationLabel() string {
	if i == nil || i.Location == "" {
		return "Unknown"
	}
	return i.Location
}

func (i *PlayerInfo) GamemodeLabel() string {
	if i == nil || i.Gamemode == "" {
		return "Unknown"
	}
	return i.Gamemode
}

func (i *PlayerInfo) PingLabel() string {
	if i == nil {
		return "0 ms"
	}
	return itoa(i.Ping) + " ms"
}

type PunishmentDetails struct {
	Punishment Punishment  `json:"punishment"`
	PlayerInfo *PlayerInfo `json:"playerInfo"`
}
