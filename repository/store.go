package repository

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-session"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// entry is one persisted key-value pair of the session store.
type entry struct {
	bun.BaseModel `bun:"table:session_store,alias:ss"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value,notnull"`
}

// Store is a bun/sqlite-backed session.TokenStore for desktop and headless
// clients, the durable analog of browser localStorage. Per the TokenStore
// contract every operation is best-effort: failures are logged and
// swallowed, reads fall back to absence.
type Store struct {
	db     *bun.DB
	logger session.Logger
}

var _ session.TokenStore = (*Store)(nil)

// New wraps an existing bun DB. The session_store table must exist; use
// Open when you want the store to manage its own database file.
func New(db *bun.DB) *Store {
	return &Store{db: db, logger: nopLogger{}}
}

// Open creates (or opens) a sqlite-backed store at dsn, e.g. a file path or
// "file::memory:?cache=shared" for tests.
func Open(dsn string) (*Store, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if _, err := db.NewCreateTable().
		Model((*entry)(nil)).
		IfNotExists().
		Exec(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return New(db), nil
}

func (s *Store) WithLogger(logger session.Logger) *Store {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(key string) (string, bool) {
	e := &entry{}

	err := s.db.NewSelect().
		Model(e).
		Where("key = ?", key).
		Scan(context.Background())
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Warn("session store read failed: %v", err)
		}
		return "", false
	}

	return e.Value, true
}

func (s *Store) Set(key, value string) {
	e := &entry{Key: key, Value: value}

	_, err := s.db.NewInsert().
		Model(e).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(context.Background())
	if err != nil {
		s.logger.Warn("session store write failed: %v", err)
	}
}

func (s *Store) Remove(key string) {
	_, err := s.db.NewDelete().
		Model((*entry)(nil)).
		Where("key = ?", key).
		Exec(context.Background())
	if err != nil {
		s.logger.Warn("session store delete failed: %v", err)
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
