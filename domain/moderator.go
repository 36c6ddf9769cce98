package domain

import "time"

type ModeratorSession struct {
	LoginAt  Timestamp `json:"loginAt"`
	LogoutAt Timestamp `json:"logoutAt"`
	Playtime int64     `json:"playtime"`
}

// ModeratorStats is the per-moderator summary served by the backend.
type ModeratorStats struct {
	TotalPunishments int                `json:"totalPunishments"`
	AveragePlaytime  int64              `json:"averagePlaytime"`
	Sessions         []ModeratorSession `json:"sessions"`
	Punishments      []Punishment       `json:"punishments"`
}

// AveragePlaytimeDuration converts the backend's millisecond average.
func (s ModeratorStats) AveragePlaytimeDuration() time.Duration {
	return time.Duration(s.AveragePlaytime) * time.Millisecond
}
