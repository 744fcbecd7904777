// Package sqlite implements the repository interfaces on an embedded SQLite file.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of SQLite, so the binary needs no C toolchain and
// cross-compiles like any other Go program.
//
// DOCUMENT SEMANTICS ON TOP OF SQL:
// The API was designed against a document store, so this backend mimics one:
//   - ids are 12-byte ObjectIDs (generated from xid, which shares the layout)
//     stored as 24-char hex TEXT
//   - timestamps are unix milliseconds (the precision of a BSON Date), which also
//     makes createdAt range filters plain integer comparisons
//   - there are no foreign keys: deleting a user or category never touches the
//     documents that reference it
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/rs/xid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/blog-api/internal/repository"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

var _ repository.Store = (*DB)(nil)

// DB wraps a sql.DB connection pool and hands out the per-collection stores.
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// New opens the SQLite database at dbPath and applies pending migrations.
//
// dbPath examples:
//   - "data/blog.db" → file-based database (persistent)
//   - ":memory:"     → in-memory database (tests)
//
// The pool is limited to one connection. SQLite serialises writers anyway, and
// every new connection to ":memory:" would otherwise open a fresh, empty database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn, now: time.Now}

	if err := db.migrate(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// migrate applies the embedded goose migrations.
func (db *DB) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("opening embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db.conn, fsys)
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	return nil
}

func (db *DB) Users() repository.UserRepository {
	return &UserDB{db: db}
}

func (db *DB) Categories() repository.CategoryRepository {
	return &CategoryDB{db: db}
}

func (db *DB) Blogs() repository.BlogRepository {
	return &BlogDB{db: db}
}

// newID returns a fresh ObjectID. xid.ID and primitive.ObjectID are both [12]byte
// with the same time/machine/pid/counter layout, so the conversion is direct.
func newID() primitive.ObjectID {
	return primitive.ObjectID(xid.New())
}

// timestamp returns the current time at the store's millisecond precision.
func (db *DB) timestamp() time.Time {
	return db.now().UTC().Truncate(time.Millisecond)
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// parseHex converts a stored id column back to an ObjectID.
func parseHex(column, value string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("sqlite: corrupt %s %q: %w", column, value, err)
	}
	return id, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
