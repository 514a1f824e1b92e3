package migrations

import (
	"database/sql"
	"time"
)

func init() {
	RegisterGoMigration(2, "add_kv_updated_at", Up_000002_add_kv_updated_at, Down_000002_add_kv_updated_at)
}

// Up_000002_add_kv_updated_at records when each key was last written.
// Rows that predate the column are stamped with the migration time.
func Up_000002_add_kv_updated_at(tx *sql.Tx) error {
	if _, err := tx.Exec(`ALTER TABLE kv ADD COLUMN updated_at TEXT`); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := tx.Exec(`UPDATE kv SET updated_at = ? WHERE updated_at IS NULL`, now)
	return err
}

func Down_000002_add_kv_updated_at(tx *sql.Tx) error {
	_, err := tx.Exec(`ALTER TABLE kv DROP COLUMN updated_at`)
	return err
}
