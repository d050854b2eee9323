package journal

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectEntryFields contains the standard field list for SELECT queries.
const selectEntryFields = `id, at_unix_nano, orcid, api_version, scope, endpoint,
	ok, status_code, reason, payload_bytes, response_bytes`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS submissions (
			id TEXT PRIMARY KEY,
			at_unix_nano INTEGER NOT NULL,
			orcid TEXT NOT NULL,
			api_version TEXT NOT NULL,
			scope TEXT NOT NULL,
			endpoint TEXT,
			ok INTEGER NOT NULL,
			status_code INTEGER,
			reason TEXT,
			payload_bytes INTEGER NOT NULL,
			response_bytes INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_submissions_scope ON submissions(scope);
		CREATE INDEX IF NOT EXISTS idx_submissions_at ON submissions(at_unix_nano);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	entries, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM submissions"); err != nil {
		return 0, fmt.Errorf("clearing submissions table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO submissions (` + selectEntryFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.Exec(
			e.ID, e.At.UnixNano(), e.ORCID, e.APIVersion, e.Scope, e.Endpoint,
			e.OK, e.StatusCode, e.Reason, e.PayloadBytes, e.ResponseBytes,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting entry %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}

	return len(entries), nil
}

// Filter narrows a Query. Zero values mean no restriction.
type Filter struct {
	Scope      string
	ORCID      string
	FailedOnly bool
	Limit      int
}

// Query returns matching entries, newest first.
func (d *DB) Query(f Filter) ([]Entry, error) {
	var conds []string
	var args []any

	if f.Scope != "" {
		conds = append(conds, "scope = ?")
		args = append(args, f.Scope)
	}
	if f.ORCID != "" {
		conds = append(conds, "orcid = ?")
		args = append(args, f.ORCID)
	}
	if f.FailedOnly {
		conds = append(conds, "ok = 0")
	}

	query := `SELECT ` + selectEntryFields + ` FROM submissions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY at_unix_nano DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			atNano   int64
			endpoint sql.NullString
			reason   sql.NullString
			status   sql.NullInt64
			respSize sql.NullInt64
		)
		if err := rows.Scan(
			&e.ID, &atNano, &e.ORCID, &e.APIVersion, &e.Scope, &endpoint,
			&e.OK, &status, &reason, &e.PayloadBytes, &respSize,
		); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		e.At = time.Unix(0, atNano).UTC()
		e.Endpoint = endpoint.String
		e.Reason = reason.String
		e.StatusCode = int(status.Int64)
		e.ResponseBytes = int(respSize.Int64)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Count returns the number of entries in the database.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM submissions").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting submissions: %w", err)
	}
	return n, nil
}
