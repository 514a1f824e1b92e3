package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"todo-list/internal/errors"
	"todo-list/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

const upsertQuery = `
	INSERT INTO kv (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// Options tunes per-operation timeouts
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// DefaultOptions returns the timeouts used when none are configured
func DefaultOptions() Options {
	return Options{
		QueryTimeout: 10 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// Repository is a synchronous key-value store for serialized blobs
type Repository interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, key string, value []byte) error
	// PutMany writes all entries in one transaction.
	PutMany(ctx context.Context, entries []Entry) error
	Delete(ctx context.Context, key string) error
	ListKeys(ctx context.Context) ([]string, error)

	Close() error
}

// SQLiteRepository keeps blobs in a single kv table.
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
	now  func() time.Time
}

// New creates a new SQLite repository instance with default timeouts
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, DefaultOptions())
}

// NewWithOptions creates a new SQLite repository instance
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// One connection: ":memory:" databases are per-connection and SQLite has a single writer.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = DefaultOptions().QueryTimeout
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = DefaultOptions().WriteTimeout
	}

	return &SQLiteRepository{db: db, opts: opts, now: time.Now}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Get returns the entry stored under key, or a NotFound error.
func (r *SQLiteRepository) Get(ctx context.Context, key string) (*Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	e, err := scanEntry(r.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM kv WHERE key = ?`, key))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("key", key)
		}
		return nil, dbError("get "+key, err)
	}
	return e, nil
}

// Put stores value under key, replacing any previous value.
func (r *SQLiteRepository) Put(ctx context.Context, key string, value []byte) error {
	return r.PutMany(ctx, []Entry{{Key: key, Value: value}})
}

// PutMany writes every entry in one transaction with a shared timestamp.
// Either all keys change or none do.
func (r *SQLiteRepository) PutMany(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return dbError("begin transaction", err)
	}
	defer tx.Rollback()

	stamp := formatStamp(r.now())
	for _, e := range entries {
		if _, err := exec(ctx, tx, "put "+e.Key, upsertQuery, e.Key, string(e.Value), stamp); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return dbError("commit transaction", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	res, err := exec(ctx, r.db, "delete "+key, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return err
	}
	return touchedKey(res, key)
}

// ListKeys returns all stored keys in lexical order.
func (r *SQLiteRepository) ListKeys(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key ASC`)
	if err != nil {
		return nil, dbError("list keys", err)
	}
	defer rows.Close()

	keys, err := scanKeys(rows)
	if err != nil {
		return nil, dbError("list keys", err)
	}
	return keys, nil
}
