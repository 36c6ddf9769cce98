package db

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/deemkeen/crownconsole/util"
	_ "modernc.org/sqlite"
)

const dbFileName = "crownconsole.db"

type DB struct {
	db *sql.DB
}

var (
	dbInstance *DB
	dbOnce     sync.Once
	dbErr      error
)

// GetDB opens the console journal once per process. path may be empty, in
// which case the database lives in the user config directory.
func GetDB(path string) (*DB, error) {
	dbOnce.Do(func() {
		if strings.TrimSpace(path) == "" {
			path = util.ResolveFilePath(dbFileName)
		}
		dbInstance, dbErr = Open(path)
	})
	return dbInstance, dbErr
}

// Open opens a sqlite database at path and creates the schema.
func Open(path string) (*DB, error) {
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	d := &DB{db: sqlDB}
	if err := d.CreateDB(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) CreateDB() error {
	for _, stmt := range []string{sqlCreateJournalTable, sqlCreateJournalIndices} {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}
