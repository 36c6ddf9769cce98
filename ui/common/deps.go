package common

import (
	"context"

	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/util"
)

// Backend is the REST surface the console uses. *api.Client implements it.
type Backend interface {
	Session() domain.Session
	ListPunishments(ctx context.Context, q api.PunishmentQuery) api.Result[[]domain.Punishment]
	GetPunishment(ctx context.Context, id string) api.Result[domain.PunishmentDetails]
	CreatePunishment(ctx context.Context, form domain.CreateForm) api.Result[domain.CreatePunishmentResponse]
	ListReports(ctx context.Context, status domain.ReportStatus) api.Result[[]domain.Report]
	GetReport(ctx context.Context, id string) api.Result[domain.Report]
	UpdateReportStatus(ctx context.Context, id string, status domain.ReportStatus) api.Result[bool]
	ModeratorStats(ctx context.Context, moderator string) api.Result[domain.ModeratorStats]
}

// Journal records actions submitted from the console.
type Journal interface {
	RecordAction(ctx context.Context, entry domain.JournalEntry) error
}

// AvatarSource renders player heads.
type AvatarSource interface {
	Avatar(ctx context.Context, id string, cols, rows int) (string, error)
}

// Deps is handed to every page and modal. Journal and Avatars may be nil.
type Deps struct {
	Session domain.Session
	Backend Backend
	Journal Journal
	Avatars AvatarSource
}

// Record writes to the journal when one is configured.
func (d Deps) Record(ctx context.Context, entry domain.JournalEntry) {
	if d.Journal == nil {
		return
	}
	if entry.AdminName == "" {
		entry.AdminName = d.Session.AdminName()
	}
	// journal writes outlive a cancelled page
	if err := d.Journal.RecordAction(context.WithoutCancel(ctx), entry); err != nil {
		util.Logger().Warn("journal write failed", "err", err)
	}
}
