// ABOUTME: SQL database connection and lifecycle management.
// ABOUTME: Supports SQLite (modernc.org/sqlite, pure Go) and PostgreSQL (lib/pq).
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL flavor behind a DB.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB wraps a pooled database connection. Inside InTx, a DB is bound to the
// transaction instead of the pool.
type DB struct {
	sqlDB   *sql.DB
	q       querier
	tx      *sql.Tx
	dialect Dialect
	dbPath  string
}

// sqlitePragmas are applied to every pooled connection through the DSN.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
}

// Open opens or creates a SQLite database at the given path.
func Open(dbPath string) (*DB, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Set file permissions
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	d := &DB{sqlDB: db, q: db, dialect: SQLite, dbPath: dbPath}

	if err := d.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return d, nil
}

// sqliteDSN builds a DSN that applies pragmas per connection and starts
// write transactions immediately, so concurrent writers queue on
// busy_timeout instead of failing on lock upgrade.
func sqliteDSN(dbPath string) string {
	params := make([]string, 0, len(sqlitePragmas)+1)
	for _, p := range sqlitePragmas {
		params = append(params, "_pragma="+p)
	}
	params = append(params, "_txlock=immediate")
	return "file:" + dbPath + "?" + strings.Join(params, "&")
}

// OpenPostgres connects to PostgreSQL and ensures the schema exists.
func OpenPostgres(connStr string) (*DB, error) {
	if strings.TrimSpace(connStr) == "" {
		return nil, fmt.Errorf("open database: empty connection string")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !strings.Contains(connStr, "sslmode") {
			return nil, fmt.Errorf("connect to database: %w (hint: try adding sslmode=disable to your connection string)", err)
		}
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	d := &DB{sqlDB: db, q: db, dialect: Postgres}
	if err := d.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return d, nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "recomp")
}

// DefaultDBPath returns the default database path following XDG spec.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "recomp.db")
}

// Dialect reports which SQL flavor this DB speaks.
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Close closes the database connection. Closing a transaction-bound DB is a no-op.
func (d *DB) Close() error {
	if d.tx != nil {
		return nil
	}
	if d.sqlDB != nil {
		return d.sqlDB.Close()
	}
	return nil
}

// InTx runs fn inside a transaction. The Store passed to fn is bound to the
// transaction; it commits when fn returns nil and rolls back otherwise.
// Calling InTx on a transaction-bound Store reuses the open transaction.
func (d *DB) InTx(ctx context.Context, fn func(Store) error) error {
	if d.tx != nil {
		return fn(d)
	}

	tx, err := d.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txDB := &DB{sqlDB: d.sqlDB, q: tx, tx: tx, dialect: d.dialect, dbPath: d.dbPath}
	if err := fn(txDB); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (d *DB) rebind(query string) string {
	if d.dialect != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// forUpdate returns a row-locking suffix where the dialect supports it.
// SQLite transactions already hold the database write lock.
func (d *DB) forUpdate() string {
	if d.dialect == Postgres {
		return " FOR UPDATE"
	}
	return ""
}

func (d *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.q.ExecContext(ctx, d.rebind(query), args...)
}

func (d *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.q.QueryContext(ctx, d.rebind(query), args...)
}

func (d *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return d.q.QueryRowContext(ctx, d.rebind(query), args...)
}

// insertIfAbsent runs an INSERT ... ON CONFLICT DO NOTHING and reports whether a row was written.
func (d *DB) insertIfAbsent(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := d.exec(ctx, query+" ON CONFLICT DO NOTHING", args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
