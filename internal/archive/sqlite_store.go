package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/tOgg1/chrono/internal/logging"
	"github.com/tOgg1/chrono/internal/timeline"
)

// SQLiteStore keeps records in a SQLite database. Each row stores the record as
// JSON next to the columns used for ordering.
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
}

// Open opens (creating if needed) the store at path.
func Open(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database dir: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to archive database: %w", err)
	}

	store := &SQLiteStore{db: db, path: path, log: logging.Component("archive")}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			title TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS records_order_idx ON records(date, title)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize archive schema: %w", err)
		}
	}
	return nil
}

// Import upserts records by id in one transaction. Records without an id get a
// fresh UUID. It returns the number of records written.
func (s *SQLiteStore) Import(ctx context.Context, records []Record) (int, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("archive store unavailable")
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (id, date, title, json, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			title = excluded.title,
			json = excluded.json,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare record upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, rec := range records {
		rec.ID = strings.TrimSpace(rec.ID)
		if rec.ID == "" {
			rec.ID = derivedID(rec)
		}
		raw, err := sonic.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("encode record %s: %w", rec.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, strings.TrimSpace(rec.Date), strings.TrimSpace(rec.Title), string(raw), now); err != nil {
			return 0, fmt.Errorf("failed to upsert record %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	s.log.Debug().Str("path", s.path).Int("records", len(records)).Msg("records imported")
	return len(records), nil
}

var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("chrono://timeline/records"))

// derivedID names a record without an id by its content, so importing the same
// file twice updates rows instead of duplicating them.
func derivedID(rec Record) string {
	key := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(rec.Type)),
		strings.TrimSpace(rec.Date),
		strings.TrimSpace(rec.Title),
		Slugify(rec.Slug),
	}, "\x1f")
	return uuid.NewSHA1(recordNamespace, []byte(key)).String()
}

// Records returns every stored record.
func (s *SQLiteStore) Records(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT json FROM records ORDER BY date, title, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		var rec Record
		if err := sonic.UnmarshalString(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode stored record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return out, nil
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]timeline.Item, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	items, rejected := Normalize(records)
	logRejected(s.log, s.path, len(records), items, rejected)
	return items, nil
}
