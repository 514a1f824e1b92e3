package migrations

import (
	"database/sql"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func columnNames(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM pragma_table_info(?)", table)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestRegisteredMigrationsAreOrdered(t *testing.T) {
	migrations := Registered()
	require.NotEmpty(t, migrations)
	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}
}

func TestRunMigrations_CreatesKVTable(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))

	assert.Equal(t, []string{"key", "value", "updated_at"}, columnNames(t, db, "kv"))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, len(Registered()), count)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, len(Registered()), count)
}

func TestUpdatedAtBackfill(t *testing.T) {
	db := openTestDB(t)

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, Up_000001_create_kv(tx))
	_, err = tx.Exec(`INSERT INTO kv (key, value) VALUES ('items', '[]'), ('projects', '[]')`)
	require.NoError(t, err)
	require.NoError(t, Up_000002_add_kv_updated_at(tx))
	require.NoError(t, tx.Commit())

	rfc3339re := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)
	rows, err := db.Query("SELECT key, updated_at FROM kv ORDER BY key")
	require.NoError(t, err)
	defer rows.Close()

	for rows.Next() {
		var key, updatedAt string
		require.NoError(t, rows.Scan(&key, &updatedAt))
		assert.Truef(t, rfc3339re.MatchString(updatedAt), "not RFC3339 for %s: %s", key, updatedAt)
	}
	require.NoError(t, rows.Err())
}

func TestRollback(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	require.NoError(t, Rollback(db))
	assert.Equal(t, []string{"key", "value"}, columnNames(t, db, "kv"))

	require.NoError(t, RunMigrations(db))
	assert.Equal(t, []string{"key", "value", "updated_at"}, columnNames(t, db, "kv"))
}

func TestRunMigrations_DirtyDatabase(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`
		CREATE TABLE migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			dirty BOOLEAN DEFAULT FALSE
		)
	`)
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO migrations (version, dirty) VALUES (1, TRUE)")
	require.NoError(t, err)

	err = RunMigrations(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is in a dirty state")
	assert.Contains(t, err.Error(), "failed migration(s): [1]")
}
