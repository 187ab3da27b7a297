package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"
	"time"
)

//go:embed *.sql
var migrationsFS embed.FS

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// Migration is one numbered schema step with its inverse.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

const schemaTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at TEXT NOT NULL
)`

// RunMigrations brings db up to the newest embedded version.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	all, err := Load()
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	applied, err := AppliedVersions(ctx, db)
	if err != nil {
		return fmt.Errorf("read applied versions: %w", err)
	}

	for _, m := range all {
		if applied[m.Version] {
			continue
		}
		err := inTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.Up); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
				m.Version, m.Name, time.Now().UTC().Format(time.RFC3339))
			return err
		})
		if err != nil {
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
	}
	return nil
}

// Rollback reverts every applied migration newer than target, newest first.
func Rollback(ctx context.Context, db *sql.DB, target int) error {
	all, err := Load()
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	applied, err := AppliedVersions(ctx, db)
	if err != nil {
		return fmt.Errorf("read applied versions: %w", err)
	}

	for _, m := range slices.Backward(all) {
		if m.Version <= target || !applied[m.Version] {
			continue
		}
		err := inTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.Down); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = ?", m.Version)
			return err
		})
		if err != nil {
			return fmt.Errorf("revert %s: %w", m.Name, err)
		}
	}
	return nil
}

// Load reads the embedded migrations sorted by version. Every up file
// needs a matching down file.
func Load() ([]Migration, error) {
	ups, err := fs.Glob(migrationsFS, "*"+upSuffix)
	if err != nil {
		return nil, err
	}

	out := make([]Migration, 0, len(ups))
	for _, file := range ups {
		version := extractVersion(file)
		if version == 0 {
			continue
		}
		name := strings.TrimSuffix(file, upSuffix)

		up, err := fs.ReadFile(migrationsFS, file)
		if err != nil {
			return nil, err
		}
		down, err := fs.ReadFile(migrationsFS, name+downSuffix)
		if err != nil {
			return nil, fmt.Errorf("%s has no down migration: %w", name, err)
		}
		out = append(out, Migration{Version: version, Name: name, Up: string(up), Down: string(down)})
	}

	slices.SortFunc(out, func(a, b Migration) int { return a.Version - b.Version })
	return out, nil
}

// AppliedVersions returns the versions recorded in schema_migrations.
func AppliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := map[int]bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions[v] = true
	}
	return versions, rows.Err()
}

func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// extractVersion parses the leading digits of a file name; zero means none.
func extractVersion(filename string) int {
	prefix, _, ok := strings.Cut(filename, "_")
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(prefix)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
