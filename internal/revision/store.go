// Package revision journals every configuration revision the daemon accepts:
// when it was loaded, the content hash, and the git commit of the repository
// holding the config file (when there is one).
package revision

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Revision is one accepted configuration load.
type Revision struct {
	ID         string    `json:"id"`
	LoadedAt   time.Time `json:"loaded_at"`
	SourcePath string    `json:"source_path"`
	SHA256     string    `json:"sha256"`
	GitCommit  string    `json:"git_commit,omitempty"`
	Warnings   []string  `json:"warnings,omitempty"`
}

// NewRevision builds a revision record for the given config content.
func NewRevision(sourcePath string, content []byte, gitCommit string, warnings []string) Revision {
	return Revision{
		ID:         uuid.NewString(),
		LoadedAt:   time.Now(),
		SourcePath: sourcePath,
		SHA256:     HashContent(content),
		GitCommit:  gitCommit,
		Warnings:   warnings,
	}
}

// HashContent returns the hex sha256 of config file content.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Store persists revisions in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore opens (or creates) the revision journal.
// Use ":memory:" for an in-memory database, or a file path for persistence.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS revisions (
		id TEXT PRIMARY KEY,
		loaded_at INTEGER NOT NULL,
		source_path TEXT NOT NULL,
		sha256 TEXT NOT NULL,
		git_commit TEXT,
		warnings TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_loaded_at ON revisions(loaded_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records a new revision.
func (s *Store) Append(ctx context.Context, rev Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var warningsJSON []byte
	if len(rev.Warnings) > 0 {
		var err error
		warningsJSON, err = json.Marshal(rev.Warnings)
		if err != nil {
			return fmt.Errorf("marshal warnings: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO revisions (id, loaded_at, source_path, sha256, git_commit, warnings) VALUES (?, ?, ?, ?, ?, ?)",
		rev.ID, rev.LoadedAt.UnixNano(), rev.SourcePath, rev.SHA256, rev.GitCommit, warningsJSON,
	)
	if err != nil {
		return fmt.Errorf("insert revision: %w", err)
	}

	return nil
}

// Tail returns the most recent n revisions, newest first.
func (s *Store) Tail(ctx context.Context, n int) ([]Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// rowid breaks same-instant ties by insertion order, keeping the tail
	// deterministic.
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, loaded_at, source_path, sha256, git_commit, warnings FROM revisions ORDER BY loaded_at DESC, rowid DESC LIMIT ?",
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer rows.Close()

	return scanRevisions(rows)
}

// Latest returns the most recent revision, or nil when the journal is empty.
func (s *Store) Latest(ctx context.Context) (*Revision, error) {
	revs, err := s.Tail(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(revs) == 0 {
		return nil, nil
	}
	return &revs[0], nil
}

func scanRevisions(rows *sql.Rows) ([]Revision, error) {
	var revs []Revision
	for rows.Next() {
		var r Revision
		var loadedAtNanos int64
		var gitCommit sql.NullString
		var warningsJSON []byte

		if err := rows.Scan(&r.ID, &loadedAtNanos, &r.SourcePath, &r.SHA256, &gitCommit, &warningsJSON); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}

		r.LoadedAt = time.Unix(0, loadedAtNanos)
		r.GitCommit = gitCommit.String

		if len(warningsJSON) > 0 {
			if err := json.Unmarshal(warningsJSON, &r.Warnings); err != nil {
				return nil, fmt.Errorf("unmarshal warnings: %w", err)
			}
		}

		revs = append(revs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return revs, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
