package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"time-riches/internal/errors"
	"time-riches/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Repository defines the interface for record storage
type Repository interface {
	Get(ctx context.Context, key string) (*Record, error)
	Put(ctx context.Context, record *Record) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]*Record, error)
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite repository instance. Missing parent
// directories of dbPath are created.
func New(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, errors.NewStorageError("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	// A single connection keeps ":memory:" databases shared and
	// serialises writers on file databases.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Get retrieves the record stored under key.
func (r *SQLiteRepository) Get(ctx context.Context, key string) (*Record, error) {
	query := `
	SELECT key, value, updated_at
	FROM records
	WHERE key = ?`

	return QuerySingle(ctx, r.db, query, ScanRecord, "record", key, key)
}

// Put inserts or replaces the record. A zero UpdatedAt is stamped with the
// current time.
func (r *SQLiteRepository) Put(ctx context.Context, record *Record) error {
	if record == nil || record.Key == "" {
		return errors.NewInvalidInputError("key", "", "record key is required")
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = r.now()
	}

	query := `
	INSERT INTO records (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = excluded.updated_at`

	return Execute(ctx, r.db, "put record "+record.Key, query, record.Key, record.Value, FormatTimeForDB(record.UpdatedAt))
}

// Delete removes the record stored under key.
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM records WHERE key = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "record", key, key)
}

// List retrieves all records ordered by key.
func (r *SQLiteRepository) List(ctx context.Context) ([]*Record, error) {
	query := `
	SELECT key, value, updated_at
	FROM records
	ORDER BY key ASC`

	return QueryMultiple(ctx, r.db, query, ScanRecords, "records")
}
