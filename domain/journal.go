package domain

import (
	"time"

	"github.com/google/uuid"
)

type JournalAction string

const (
	ActionPunish  JournalAction = "punish"
	ActionResolve JournalAction = "resolve"
)

// JournalEntry is one action submitted from this console.
type JournalEntry struct {
	Id        uuid.UUID
	Action    JournalAction
	AdminName string
	Target    string
	Detail    string
	Succeeded bool
	Outcome   string
	CreatedAt time.Time
}
