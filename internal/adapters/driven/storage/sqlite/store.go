package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nomad-labs/nomad-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/nomad-labs/nomad-cli/internal/core/domain"
	"github.com/nomad-labs/nomad-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// vector collections and the session store through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.nomad/data/nomad.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".nomad", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "nomad.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Collection returns a VectorCollection interface backed by this store.
func (s *Store) Collection(name domain.Collection) driven.VectorCollection {
	return &vectorCollection{store: s, name: name}
}

// SessionStore returns a SessionStore interface backed by this store.
func (s *Store) SessionStore() driven.SessionStore {
	return &sessionStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Vector Collection ====================

// docMetadata is the typed payload stored alongside a document row.
type docMetadata struct {
	FAQ  *domain.FAQEntry `json:"faq,omitempty"`
	Trip *domain.Trip     `json:"trip,omitempty"`
}

// vectorCollection implements driven.VectorCollection with a brute-force
// cosine scan. Catalogues here are hundreds of rows, not millions; a full
// scan per query stays well under a millisecond and needs no index.
type vectorCollection struct {
	store *Store
	name  domain.Collection
}

var _ driven.VectorCollection = (*vectorCollection)(nil)

// Name returns the collection this store backs.
func (c *vectorCollection) Name() domain.Collection {
	return c.name
}

// Upsert stores a document and its embedding.
func (c *vectorCollection) Upsert(ctx context.Context, doc domain.Document, embedding []float32) error {
	if doc.ID == "" {
		return domain.ErrInvalidInput
	}

	metadataJSON, err := json.Marshal(docMetadata{FAQ: doc.FAQ, Trip: doc.Trip})
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	_, err = c.store.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, text, metadata, embedding)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			text = excluded.text,
			metadata = excluded.metadata,
			embedding = excluded.embedding
	`, string(c.name), doc.ID, doc.Text, string(metadataJSON), float32SliceToBytes(embedding))

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Query returns the n nearest documents by ascending cosine distance.
func (c *vectorCollection) Query(ctx context.Context, embedding []float32, n int) ([]domain.Candidate, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := c.store.db.QueryContext(ctx, `
		SELECT id, text, metadata, embedding
		FROM documents WHERE collection = ?
	`, string(c.name))
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var candidates []domain.Candidate //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			doc           domain.Document
			metadataJSON  sql.NullString
			embeddingBlob []byte
		)
		if err := rows.Scan(&doc.ID, &doc.Text, &metadataJSON, &embeddingBlob); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.Collection = c.name

		if metadataJSON.Valid && metadataJSON.String != "" {
			var meta docMetadata
			if err := json.Unmarshal([]byte(metadataJSON.String), &meta); err != nil {
				return nil, fmt.Errorf("unmarshaling metadata: %w", err)
			}
			doc.FAQ = meta.FAQ
			doc.Trip = meta.Trip
		}

		candidates = append(candidates, domain.Candidate{
			Document: doc,
			Distance: cosineDistance(embedding, bytesToFloat32Slice(embeddingBlob)),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates, nil
}

// Count returns the number of documents in the collection.
func (c *vectorCollection) Count(ctx context.Context) (int, error) {
	var count int
	err := c.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE collection = ?", string(c.name)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return count, nil
}

// Close is a no-op; the owning Store holds the connection.
func (c *vectorCollection) Close() error {
	return nil
}

// ==================== Session Store ====================

// sessionStore implements driven.SessionStore. Sessions are stored
// whole as JSON, keyed by conversation id.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// Upsert inserts or replaces a stored session.
func (s *sessionStore) Upsert(ctx context.Context, session domain.Session) error {
	if session.ConversationID == "" {
		return domain.ErrInvalidInput
	}

	fullBody, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO chat_history (uuid, create_date, full_body)
		VALUES (?, ?, ?)
		ON CONFLICT(uuid) DO UPDATE SET
			full_body = excluded.full_body
	`, session.ConversationID, session.CreatedAt.UTC(), string(fullBody))

	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// ReadAll returns every stored session.
func (s *sessionStore) ReadAll(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT full_body FROM chat_history")
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session //nolint:prealloc // size unknown from query
	for rows.Next() {
		var fullBody string
		if err := rows.Scan(&fullBody); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}

		var session domain.Session
		if err := json.Unmarshal([]byte(fullBody), &session); err != nil {
			return nil, fmt.Errorf("unmarshaling session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}

	return sessions, nil
}

// Close is a no-op; the owning Store holds the connection.
func (s *sessionStore) Close() error {
	return nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineDistance returns 1 minus the cosine similarity of a and b.
// Mismatched or zero-magnitude vectors score the maximum distance so
// they sort last instead of poisoning results.
func cosineDistance(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 2
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 2
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
