package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/deemkeen/crownconsole/domain"
)

// Output handles formatting responses in text or JSON format
type Output struct {
	writer   io.Writer
	jsonMode bool
}

// NewOutput creates a new output handler
func NewOutput(w io.Writer, jsonMode bool) *Output {
	return &Output{
		writer:   w,
		jsonMode: jsonMode,
	}
}

// IsJSON returns true if output is in JSON mode
func (o *Output) IsJSON() bool {
	return o.jsonMode
}

// Error outputs an error message
func (o *Output) Error(err error) {
	if o.jsonMode {
		o.writeJSON(map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		fmt.Fprintf(o.writer, "Error: %v\n", err)
	}
}

// Print outputs formatted text (text mode only)
func (o *Output) Print(format string, args ...interface{}) {
	if !o.jsonMode {
		fmt.Fprintf(o.writer, format, args...)
	}
}

// Println outputs a line with newline (text mode only)
func (o *Output) Println(text string) {
	if !o.jsonMode {
		fmt.Fprintln(o.writer, text)
	}
}

// JSON outputs any value as JSON
func (o *Output) JSON(v interface{}) {
	if o.jsonMode {
		o.writeJSON(v)
	}
}

func (o *Output) writeJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(o.writer, `{"error":"failed to marshal JSON: %s"}`+"\n", err.Error())
		return
	}
	fmt.Fprintln(o.writer, string(data))
}

// PunishmentItem represents a punishment in output
type PunishmentItem struct {
	ID        string    `json:"id"`
	Target    string    `json:"target"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason"`
	Duration  string    `json:"duration"`
	Method    string    `json:"method"`
	Moderator string    `json:"moderator"`
	CreatedAt time.Time `json:"created_at"`
}

func newPunishmentItem(p domain.Punishment) PunishmentItem {
	return PunishmentItem{
		ID:        p.ID,
		Target:    p.Target(),
		Type:      p.TypeLabel(),
		Status:    p.StatusLabel(),
		Reason:    p.Reason,
		Duration:  p.DurationLabel(),
		Method:    p.Method(),
		Moderator: p.Moderator(),
		CreatedAt: p.Timestamp.Time,
	}
}

// PunishmentsResponse represents the punishments output
type PunishmentsResponse struct {
	Punishments []PunishmentItem `json:"punishments"`
	Count       int              `json:"count"`
}

// PlayerInfoItem is the live player data attached to a punishment
type PlayerInfoItem struct {
	IP       string `json:"ip"`
	Location string `json:"location"`
	Gamemode string `json:"gamemode"`
	Ping     string `json:"ping"`
}

// PunishmentDetailResponse represents the punishment output
type PunishmentDetailResponse struct {
	PunishmentItem
	ByIP       bool            `json:"by_ip"`
	PlayerInfo *PlayerInfoItem `json:"player_info"`
}

// PunishResponse represents the punish output
type PunishResponse struct {
	Status  string `json:"status"`
	ID      string `json:"id"`
	Type    string `json:"type"`
	Target  string `json:"target"`
	Message string `json:"message,omitempty"`
}

// ReportItem represents a report in output
type ReportItem struct {
	ID        string    `json:"id"`
	Target    string    `json:"target"`
	Category  string    `json:"category"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportsResponse represents the reports output
type ReportsResponse struct {
	Reports []ReportItem `json:"reports"`
	Count   int          `json:"count"`
}

// ResolveResponse represents the resolve output
type ResolveResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Updated bool   `json:"updated"`
}

// HistoryItem represents a journal entry in output
type HistoryItem struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Admin     string    `json:"admin"`
	Target    string    `json:"target"`
	Detail    string    `json:"detail"`
	Succeeded bool      `json:"succeeded"`
	Outcome   string    `json:"outcome,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryResponse represents the history output
type HistoryResponse struct {
	Entries []HistoryItem `json:"entries"`
	Count   int           `json:"count"`
}

// HelpCommand represents a command in help output
type HelpCommand struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Usage       string   `json:"usage"`
	Flags       []string `json:"flags,omitempty"`
}

// HelpResponse represents the help output
type HelpResponse struct {
	Version     string        `json:"version"`
	Commands    []HelpCommand `json:"commands"`
	GlobalFlags []string      `json:"global_flags"`
}
