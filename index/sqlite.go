package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// lookupQuery is the single statement the read path needs.
const lookupQuery = `SELECT shard, offset, size, crc32c FROM files WHERE path = ?`

// walkQuery enumerates all entries in physical order, so a full-archive scan
// reads each shard file front to back.
const walkQuery = `SELECT path, shard, offset, size, crc32c FROM files ORDER BY shard, offset`

// SQLiteResolver resolves paths against the archive's native SQLite index.
// The database is opened read-only and a single prepared lookup statement is
// reused for all queries; database/sql makes it safe for concurrent use.
type SQLiteResolver struct {
	db     *sql.DB
	lookup *sql.Stmt
}

var (
	_ Resolver = (*SQLiteResolver)(nil)
	_ Walker   = (*SQLiteResolver)(nil)
)

// OpenSQLite opens the index database at the given path read-only. Preparing
// the lookup statement eagerly forces a connection, so a missing or corrupt
// index fails here rather than on the first read.
func OpenSQLite(path string) (*SQLiteResolver, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("index: open %s: %w", path, err)
	}
	lookup, err := db.Prepare(lookupQuery)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("index: open %s: %w", path, err)
	}
	return &SQLiteResolver{db: db, lookup: lookup}, nil
}

// Resolve returns the location stored for the given archive path.
func (r *SQLiteResolver) Resolve(path string) (Location, error) {
	var (
		loc Location
		crc sql.NullInt64
	)
	err := r.lookup.QueryRow(NormalizePath(path)).Scan(&loc.Shard, &loc.Offset, &loc.Size, &crc)
	if errors.Is(err, sql.ErrNoRows) {
		return Location{}, fmt.Errorf("%q: %w", path, ErrNotFound)
	}
	if err != nil {
		return Location{}, fmt.Errorf("index: resolve %q: %w", path, err)
	}
	if crc.Valid {
		loc.CRC32C = uint32(crc.Int64)
		loc.HasCRC32C = true
	}
	return loc, nil
}

// Walk calls fn for every entry in the index, in physical order. It stops at
// the first error fn returns and propagates it.
func (r *SQLiteResolver) Walk(ctx context.Context, fn func(Entry) error) error {
	rows, err := r.db.QueryContext(ctx, walkQuery)
	if err != nil {
		return fmt.Errorf("index: walk: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e   Entry
			crc sql.NullInt64
		)
		if err := rows.Scan(&e.Path, &e.Shard, &e.Offset, &e.Size, &crc); err != nil {
			return fmt.Errorf("index: walk: %w", err)
		}
		if crc.Valid {
			e.CRC32C = uint32(crc.Int64)
			e.HasCRC32C = true
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("index: walk: %w", err)
	}
	return nil
}

// Close releases the prepared statement and the database connection.
func (r *SQLiteResolver) Close() error {
	var firstErr error
	if err := r.lookup.Close(); err != nil {
		firstErr = err
	}
	if err := r.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
