package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"finecron/pkg/logx"
	"finecron/schedule"
)

//go:embed migrations.sql
var migrationsFS embed.FS

var ErrNotFound = errors.New("definition not found")

// Config configures the definition store.
type Config struct {
	Path        string
	BusyTimeout time.Duration // 0 means the driver default
}

// Definition is one stored named schedule definition.
type Definition struct {
	Name      string
	Expr      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists definitions in a SQLite database file.
type Store struct {
	db  *sql.DB
	log logx.Logger
}

func Open(cfg Config, log logx.Logger) (*Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("store path is required")
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if cfg.BusyTimeout > 0 {
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds()))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	st := &Store{db: db, log: log}
	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *Store) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put validates expr and inserts or updates the named definition. On
// update the creation timestamp is preserved.
func (s *Store) Put(ctx context.Context, name, expr string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	if _, err := schedule.Parse(expr); err != nil {
		return fmt.Errorf("expression %q: %w", expr, err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO definitions(name, expr, created_at, updated_at)
		 VALUES(?,?,?,?)
		 ON CONFLICT(name) DO UPDATE SET expr=excluded.expr, updated_at=excluded.updated_at`,
		name, expr, now, now,
	)
	return err
}

func (s *Store) Get(ctx context.Context, name string) (Definition, error) {
	var (
		def              Definition
		created, updated string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT name, expr, created_at, updated_at FROM definitions WHERE name = ?`, name,
	).Scan(&def.Name, &def.Expr, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Definition{}, ErrNotFound
	}
	if err != nil {
		return Definition{}, err
	}
	def.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	def.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return def, nil
}

func (s *Store) List(ctx context.Context) ([]Definition, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, expr, created_at, updated_at FROM definitions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []Definition
	for rows.Next() {
		var (
			def              Definition
			created, updated string
		)
		if err := rows.Scan(&def.Name, &def.Expr, &created, &updated); err != nil {
			return nil, err
		}
		def.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		def.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// Delete removes the named definition; ErrNotFound if it does not exist.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM definitions WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
