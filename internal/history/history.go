// Package history persists confirmed selections to a local sqlite
// database. It is strictly opt-in and sits outside the core: a history
// failure never changes what tabsel prints or how it exits.
package history

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Entry is one confirmed selection.
type Entry struct {
	Session string
	Mode    string
	Row     int
	Col     int
	Format  string
	Value   string
	At      time.Time
}

// Store wraps the sqlite history database. Each Store carries a session id
// so one picker invocation's records can be correlated.
type Store struct {
	db      *sql.DB
	session string
}

// Open opens (creating if needed) the history database at path and applies
// pending migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir history dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}

	return &Store{db: db, session: uuid.NewString()}, nil
}

// Session returns this invocation's session id.
func (s *Store) Session() string { return s.session }

// Record inserts one confirmed selection.
func (s *Store) Record(e Entry) error {
	if e.Session == "" {
		e.Session = s.session
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC().Truncate(time.Second)
	}
	_, err := s.db.Exec(`
		INSERT INTO selections (session, mode, row_idx, col_idx, output_format, value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.Session, e.Mode, e.Row, e.Col, e.Format, e.Value, e.At.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert selection: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT session, mode, row_idx, col_idx, output_format, value, created_at
		FROM selections ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query selections: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.Session, &e.Mode, &e.Row, &e.Col, &e.Format, &e.Value, &at); err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		e.At, _ = time.Parse(time.RFC3339, at)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	err = m.Up()
	if err == migrate.ErrNoChange {
		return nil
	}
	return err
}
