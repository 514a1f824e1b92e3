package migrations

import "database/sql"

func init() {
	RegisterGoMigration(1, "create_kv", Up_000001_create_kv, Down_000001_create_kv)
}

// Up_000001_create_kv creates the key-value table holding the serialized containers
func Up_000001_create_kv(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	return err
}

func Down_000001_create_kv(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS kv`)
	return err
}
