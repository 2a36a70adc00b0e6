// storage.go implements the SQLite-backed persistence for audit entries.
//
// Separated from auditlog.go so the public Builder/Entry types stay free
// of SQL, while this file owns the schema and best-effort write path.
package auditlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Logger writes audit log entries to a SQLite database.
type Logger struct {
	db *sql.DB
}

func open(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Logger{db: db}, nil
}

func (l *Logger) close() {
	l.db.Close()
}

func (l *Logger) log(e Entry) {
	success := 0
	if e.Success {
		success = 1
	}
	_, err := l.db.Exec(`
		INSERT INTO runs (start, end, printer, files, chunks, matches, success, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, e.Printer, e.Files, e.Chunks, e.Matches, success, nilIfEmpty(e.Error),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hgrep: audit log write failed: %v\n", err)
	}
}

func (l *Logger) recent(n int) ([]Entry, error) {
	if n <= 0 {
		n = 20
	}
	rows, err := l.db.Query(`
		SELECT start, end, printer, files, chunks, matches, success, error
		FROM runs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var success int
		var errStr sql.NullString
		if err := rows.Scan(&e.Start, &e.End, &e.Printer, &e.Files, &e.Chunks, &e.Matches, &success, &errStr); err != nil {
			return nil, err
		}
		e.Success = success == 1
		e.Error = errStr.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// dbPathFunc returns the database path. Tests override this to use a temp directory.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".cache", "hgrep", "hgrep-log.db")
	}
	return filepath.Join(dir, "hgrep", "hgrep-log.db")
}

func dbPath() string {
	return dbPathFunc()
}

// DBPath returns the path to the audit log database.
func DBPath() string {
	return dbPath()
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			start   INTEGER NOT NULL,
			end     INTEGER NOT NULL,
			printer TEXT NOT NULL,
			files   INTEGER NOT NULL,
			chunks  INTEGER NOT NULL,
			matches INTEGER NOT NULL,
			success INTEGER NOT NULL,
			error   TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_runs_start ON runs(start);
	`)
	return err
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
