package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoad(t *testing.T) {
	migrations, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "000001_create_records", migrations[0].Name)
	assert.Contains(t, migrations[0].Up, "CREATE TABLE IF NOT EXISTS records")
	assert.Contains(t, migrations[0].Down, "DROP TABLE")
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))

	applied, err := AppliedVersions(ctx, db)
	require.NoError(t, err)
	assert.True(t, applied[1])

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	_, err = db.Exec("INSERT INTO records (key, value, updated_at) VALUES ('k', 'v', '2026-01-01T00:00:00Z')")
	assert.NoError(t, err)
}

func TestRollback(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	require.NoError(t, RunMigrations(ctx, db))

	require.NoError(t, Rollback(ctx, db, 0))

	applied, err := AppliedVersions(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, applied)

	_, err = db.Exec("SELECT key FROM records")
	assert.Error(t, err)

	require.NoError(t, RunMigrations(ctx, db))
	applied, err = AppliedVersions(ctx, db)
	require.NoError(t, err)
	assert.True(t, applied[1])
}

func TestExtractVersion(t *testing.T) {
	cases := map[string]int{
		"000001_create_records.up.sql": 1,
		"000012_x.up.sql":              12,
		"readme.sql":                   0,
		"abc_def.up.sql":               0,
	}
	for file, want := range cases {
		assert.Equal(t, want, extractVersion(file), file)
	}
}
