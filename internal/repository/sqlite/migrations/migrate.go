package migrations

import (
	"database/sql"
	"fmt"
	"sort"
)

// MigrationFunc applies or reverts one schema change inside a transaction
type MigrationFunc func(tx *sql.Tx) error

// Migration is one versioned schema step of the kv store.
type Migration struct {
	Version int
	Name    string
	Up      MigrationFunc
	Down    MigrationFunc
}

var registry = map[int]Migration{}

// RegisterGoMigration is called from the init of each numbered file.
// A duplicate version is a programming error and panics.
func RegisterGoMigration(version int, name string, up, down MigrationFunc) {
	if prev, ok := registry[version]; ok {
		panic(fmt.Sprintf("migration %d (%s) clashes with %s", version, name, prev.Name))
	}
	registry[version] = Migration{Version: version, Name: name, Up: up, Down: down}
}

// Registered returns every registered migration ordered by version
func Registered() []Migration {
	out := make([]Migration, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}

const schemaTable = `
CREATE TABLE IF NOT EXISTS migrations (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	dirty BOOLEAN DEFAULT FALSE
)`

// ledger is what the migrations table says about the schema.
type ledger struct {
	applied map[int]bool
	dirty   []int
}

func readLedger(db *sql.DB) (*ledger, error) {
	rows, err := db.Query(`SELECT version, dirty FROM migrations ORDER BY version`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	l := &ledger{applied: map[int]bool{}}
	for rows.Next() {
		var (
			version int
			dirty   bool
		)
		if err := rows.Scan(&version, &dirty); err != nil {
			return nil, err
		}
		if dirty {
			l.dirty = append(l.dirty, version)
			continue
		}
		l.applied[version] = true
	}
	return l, rows.Err()
}

func inTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// RunMigrations brings the schema up to the newest registered version.
// It refuses to run on top of a migration that previously failed.
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(schemaTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	l, err := readLedger(db)
	if err != nil {
		return fmt.Errorf("failed to read migration state: %w", err)
	}
	if len(l.dirty) > 0 {
		return fmt.Errorf("database is in a dirty state; failed migration(s): %v", l.dirty)
	}

	for _, m := range Registered() {
		if l.applied[m.Version] {
			continue
		}
		err := inTx(db, func(tx *sql.Tx) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			_, err := tx.Exec(`INSERT INTO migrations (version) VALUES (?)`, m.Version)
			return err
		})
		if err != nil {
			db.Exec(`INSERT OR REPLACE INTO migrations (version, dirty) VALUES (?, TRUE)`, m.Version)
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// Rollback reverts the newest applied migration, if any.
func Rollback(db *sql.DB) error {
	l, err := readLedger(db)
	if err != nil {
		return fmt.Errorf("failed to read migration state: %w", err)
	}

	all := Registered()
	for i := len(all) - 1; i >= 0; i-- {
		m := all[i]
		if !l.applied[m.Version] {
			continue
		}
		err := inTx(db, func(tx *sql.Tx) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			_, err := tx.Exec(`DELETE FROM migrations WHERE version = ?`, m.Version)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to roll back migration %d: %w", m.Version, err)
		}
		return nil
	}
	return nil
}
