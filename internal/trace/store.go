package trace

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/mirpass/internal/mir"
)

//go:embed schema.sql
var schemaSQL string

// Store persists body dumps to SQLite. Uses WAL mode so dumps can be
// read (and diffed) while a compile is still writing.
//
// Every Store gets a fresh session ID; rows from different compiles of
// the same crate never collide, and a session's rows form one complete
// pipeline trace.
type Store struct {
	db      *sql.DB
	session string
}

// Open creates or opens the dump database at path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//
// Idempotent: the schema applies with IF NOT EXISTS.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open dump database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect dump database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY on the write path.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply dump schema: %w", err)
	}

	return &Store{db: db, session: uuid.NewString()}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Session returns this store's session ID.
func (s *Store) Session() string {
	return s.session
}

// Dump implements Sink, writing under a background context. The runner
// has no context to thread; callers that do should use WriteDump.
func (s *Store) Dump(unit mir.UnitID, pass string, seq int, body *mir.Body) error {
	return s.WriteDump(context.Background(), unit, pass, seq, body)
}

// WriteDump inserts one body dump row for the current session.
// ON CONFLICT DO NOTHING makes re-dumping the same pipeline position
// idempotent; the pipeline is deterministic, so a duplicate key always
// carries identical content.
func (s *Store) WriteDump(ctx context.Context, unit mir.UnitID, pass string, seq int, body *mir.Body) error {
	text := mir.FormatBody(body)
	fp := mir.Fingerprint(body)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO body_dumps (session, unit, pass, seq, fingerprint, dump)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		s.session,
		string(unit),
		pass,
		seq,
		fp,
		text,
	)
	if err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	return nil
}

// Record is one persisted dump row.
type Record struct {
	Session     string
	Unit        mir.UnitID
	Pass        string
	Seq         int
	Fingerprint string
	Dump        string
}

// ReadDumps returns this session's dumps for one unit, in pipeline
// order.
func (s *Store) ReadDumps(ctx context.Context, unit mir.UnitID) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session, unit, pass, seq, fingerprint, dump
		FROM body_dumps
		WHERE session = ? AND unit = ?
		ORDER BY seq, pass
	`, s.session, string(unit))
	if err != nil {
		return nil, fmt.Errorf("read dumps: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var u string
		if err := rows.Scan(&r.Session, &u, &r.Pass, &r.Seq, &r.Fingerprint, &r.Dump); err != nil {
			return nil, fmt.Errorf("scan dump row: %w", err)
		}
		r.Unit = mir.UnitID(u)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read dumps: %w", err)
	}
	return records, nil
}

// ReadByFingerprint returns every row carrying the given fingerprint,
// across sessions. Used when diffing runs: equal fingerprints prove two
// pipeline positions produced structurally identical bodies.
func (s *Store) ReadByFingerprint(ctx context.Context, fingerprint string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session, unit, pass, seq, fingerprint, dump
		FROM body_dumps
		WHERE fingerprint = ?
		ORDER BY session, unit, seq, pass
	`, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("read dumps by fingerprint: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var u string
		if err := rows.Scan(&r.Session, &u, &r.Pass, &r.Seq, &r.Fingerprint, &r.Dump); err != nil {
			return nil, fmt.Errorf("scan dump row: %w", err)
		}
		r.Unit = mir.UnitID(u)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read dumps by fingerprint: %w", err)
	}
	return records, nil
}
