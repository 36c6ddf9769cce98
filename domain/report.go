package domain

import (
	"encoding/json"
	"strings"
)

type ReportStatus int

const (
	ReportUnknown ReportStatus = iota
	ReportOpen
	ReportResolved
	ReportRejected
)

func ParseReportStatus(s string) ReportStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OPEN":
		return ReportOpen
	case "RESOLVED":
		return ReportResolved
	case "REJECTED":
		return ReportRejected
	default:
		return ReportUnknown
	}
}

func (s ReportStatus) String() string {
	switch s {
	case ReportOpen:
		return "OPEN"
	case ReportResolved:
		return "RESOLVED"
	case ReportRejected:
		return "REJECTED"
	case ReportUnknown:
		return "UNKNOWN"
	}
	panic("unreachable report status")
}

// Tone is the badge colour for the status.
func (s ReportStatus) Tone() Tone {
	switch s {
	case ReportOpen:
		return ToneOrange
	case ReportResolved:
		return ToneGreen
	case ReportRejected:
		return ToneRed
	case ReportUnknown:
		return ToneNeutral
	}
	panic("unreachable report status")
}

// Resolution reports whether s is a valid outcome for an open report.
func (s ReportStatus) Resolution() bool {
	switch s {
	case ReportResolved, ReportRejected:
		return true
	case ReportOpen, ReportUnknown:
		return false
	}
	panic("unreachable report status")
}

func (s ReportStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ReportStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = ParseReportStatus(str)
	return nil
}

// Report is a player-submitted complaint.
type Report struct {
	ID         string       `json:"reportId"`
	TargetUUID string       `json:"targetUUID"`
	TargetName string       `json:"targetName"`
	Category   string       `json:"category"`
	Reason     string       `json:"reason"`
	Status     ReportStatus `json:"status"`
	Timestamp  Timestamp    `json:"timestamp"`

	// RawStatus is the status string as the backend sent it.
	RawStatus string `json:"-"`
}

func (r *Report) UnmarshalJSON(data []byte) error {
	type plain Report
	var aux struct {
		plain
		RawStatus string `json:"status"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Report(aux.plain)
	r.RawStatus = aux.RawStatus
	r.Status = ParseReportStatus(aux.RawStatus)
	return nil
}

// StatusLabel is the status as shown. Unknown statuses are shown as received.
func (r Report) StatusLabel() string {
	if raw := strings.TrimSpace(r.RawStatus); r.Status == ReportUnknown && raw != "" {
		return raw
	}
	return r.Status.String()
}

func (r Report) Target() string {
	if r.TargetName != "" {
		return r.TargetName
	}
	if r.TargetUUID != "" {
		return r.TargetUUID
	}
	return "Unknown"
}

// Actionable reports whether resolve/reject controls apply.
func (r Report) Actionable() bool {
	return r.Status == ReportOpen
}
