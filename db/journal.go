package db

import (
	"context"
	"fmt"
	"time"

	"github.com/deemkeen/crownconsole/domain"
	"github.com/google/uuid"
)

const (
	sqlCreateJournalTable = `CREATE TABLE IF NOT EXISTS journal (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		admin_name TEXT NOT NULL,
		target TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		succeeded INTEGER NOT NULL,
		outcome TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`
	sqlCreateJournalIndices = `CREATE INDEX IF NOT EXISTS idx_journal_created_at ON journal(created_at DESC)`

	sqlInsertJournal = `INSERT INTO journal (id, action, admin_name, target, detail, succeeded, outcome, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	sqlSelectJournal = `SELECT id, action, admin_name, target, detail, succeeded, outcome, created_at
		FROM journal ORDER BY created_at DESC, rowid DESC LIMIT ?`
)

// RecordAction appends an entry, filling id and time when unset.
func (d *DB) RecordAction(ctx context.Context, entry domain.JournalEntry) error {
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := d.db.ExecContext(ctx, sqlInsertJournal,
		entry.Id.String(),
		string(entry.Action),
		entry.AdminName,
		entry.Target,
		entry.Detail,
		entry.Succeeded,
		entry.Outcome,
		entry.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// ReadRecentActions returns up to limit entries, newest first.
func (d *DB) ReadRecentActions(ctx context.Context, limit int) (error, *[]domain.JournalEntry) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.db.QueryContext(ctx, sqlSelectJournal, limit)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var (
			e         domain.JournalEntry
			id        string
			action    string
			createdAt int64
		)
		if err := rows.Scan(&id, &action, &e.AdminName, &e.Target, &e.Detail, &e.Succeeded, &e.Outcome, &createdAt); err != nil {
			return err, nil
		}
		e.Id, err = uuid.Parse(id)
		if err != nil {
			return fmt.Errorf("journal id %q: %w", id, err), nil
		}
		e.Action = domain.JournalAction(action)
		e.CreatedAt = time.UnixMilli(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return err, nil
	}
	return nil, &entries
}
