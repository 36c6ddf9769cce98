// Package uitest holds fakes shared by the console's UI tests.
package uitest

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/domain"
)

type StatusUpdate struct {
	ID     string
	Status domain.ReportStatus
}

// Backend is an in-memory stand-in for the REST API.
type Backend struct {
	mu sync.Mutex

	Sess        domain.Session
	Punishments api.Result[[]domain.Punishment]
	Details     api.Result[domain.PunishmentDetails]
	Created     api.Result[domain.CreatePunishmentResponse]
	Reports     api.Result[[]domain.Report]
	Report      api.Result[domain.Report]
	Update      api.Result[bool]
	Stats       api.Result[domain.ModeratorStats]

	PunishmentQueries []api.PunishmentQuery
	ReportQueries     []domain.ReportStatus
	CreatedForms      []domain.CreateForm
	Updates           []StatusUpdate
}

func NewBackend(sess domain.Session) *Backend {
	return &Backend{
		Sess:        sess,
		Punishments: api.Ok([]domain.Punishment{}),
		Reports:     api.Ok([]domain.Report{}),
		Update:      api.Ok(true),
	}
}

func (b *Backend) Session() domain.Session { return b.Sess }

func (b *Backend) ListPunishments(_ context.Context, q api.PunishmentQuery) api.Result[[]domain.Punishment] {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.PunishmentQueries = append(b.PunishmentQueries, q)
	return b.Punishments
}

func (b *Backend) GetPunishment(_ context.Context, _ string) api.Result[domain.PunishmentDetails] {
	return b.Details
}

func (b *Backend) CreatePunishment(_ context.Context, form domain.CreateForm) api.Result[domain.CreatePunishmentResponse] {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.CreatedForms = append(b.CreatedForms, form)
	return b.Created
}

func (b *Backend) ListReports(_ context.Context, status domain.ReportStatus) api.Result[[]domain.Report] {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ReportQueries = append(b.ReportQueries, status)
	return b.Reports
}

func (b *Backend) GetReport(_ context.Context, _ string) api.Result[domain.Report] {
	return b.Report
}

func (b *Backend) UpdateReportStatus(_ context.Context, id string, status domain.ReportStatus) api.Result[bool] {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Updates = append(b.Updates, StatusUpdate{ID: id, Status: status})
	return b.Update
}

func (b *Backend) ModeratorStats(_ context.Context, _ string) api.Result[domain.ModeratorStats] {
	return b.Stats
}

// Journal records entries in memory.
type Journal struct {
	mu      sync.Mutex
	Entries []domain.JournalEntry
}

func (j *Journal) RecordAction(_ context.Context, e domain.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Entries = append(j.Entries, e)
	return nil
}

// Avatars returns a fixed string for every head.
type Avatars struct{}

func (Avatars) Avatar(_ context.Context, id string, _, _ int) (string, error) {
	return "[" + id + "]", nil
}

// Collect runs cmd and returns the messages it produces, flattening batches.
// Commands that block (ticks, cursor blinks) are abandoned after a short wait.
func Collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(200 * time.Millisecond):
		return nil
	}

	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, Collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func MustSession(token, name, adminUUID string) domain.Session {
	s, err := domain.NewSession(token, name, adminUUID)
	if err != nil {
		panic(err)
	}
	return s
}
