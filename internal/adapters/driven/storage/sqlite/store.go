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
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/matcha-labs/matcha-mcp/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all entity store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.matcha/data/marketplace.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".matcha", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "marketplace.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
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

// ProfileStore returns a ProfileStore interface backed by this store.
func (s *Store) ProfileStore() driven.ProfileStore {
	return &profileStore{store: s}
}

// RequestStore returns a RequestStore interface backed by this store.
func (s *Store) RequestStore() driven.RequestStore {
	return &requestStore{store: s}
}

// InterestStore returns an InterestStore interface backed by this store.
func (s *Store) InterestStore() driven.InterestStore {
	return &interestStore{store: s}
}

// ChatStore returns a ChatStore interface backed by this store.
func (s *Store) ChatStore() driven.ChatStore {
	return &chatStore{store: s}
}

// DealStore returns a DealStore interface backed by this store.
func (s *Store) DealStore() driven.DealStore {
	return &dealStore{store: s}
}

// ContractStore returns a ContractStore interface backed by this store.
func (s *Store) ContractStore() driven.ContractStore {
	return &contractStore{store: s}
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

// ==================== Profile Store ====================

// profileStore implements driven.ProfileStore.
type profileStore struct {
	store *Store
}

var _ driven.ProfileStore = (*profileStore)(nil)

// Save stores or updates a profile.
func (s *profileStore) Save(ctx context.Context, profile domain.Profile) error {
	tags, err := json.Marshal(profile.NicheTags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}
	langs, err := json.Marshal(profile.Languages)
	if err != nil {
		return fmt.Errorf("marshalling languages: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO profiles (id, user_id, bio, niche_tags, location, languages, embedding, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			bio = excluded.bio,
			niche_tags = excluded.niche_tags,
			location = excluded.location,
			languages = excluded.languages,
			embedding = excluded.embedding,
			status = excluded.status,
			updated_at = excluded.updated_at
	`, profile.ID, profile.UserID, profile.Bio, string(tags), profile.Location, string(langs),
		float32SliceToBytes(profile.Embedding), string(profile.Status),
		profile.CreatedAt, profile.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

const profileColumns = `id, user_id, bio, niche_tags, location, languages, embedding, status, created_at, updated_at`

// Get retrieves a profile by ID.
func (s *profileStore) Get(ctx context.Context, id string) (*domain.Profile, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	return scanProfile(row)
}

// GetByUser retrieves the profile owned by userID.
func (s *profileStore) GetByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`, userID)
	return scanProfile(row)
}

// List returns all profiles.
func (s *profileStore) List(ctx context.Context) ([]domain.Profile, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*domain.Profile, error) {
	var p domain.Profile
	var tags, langs, status string
	var embedding []byte
	if err := row.Scan(&p.ID, &p.UserID, &p.Bio, &tags, &p.Location, &langs,
		&embedding, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &p.NicheTags); err != nil {
		return nil, fmt.Errorf("unmarshalling tags: %w", err)
	}
	if err := json.Unmarshal([]byte(langs), &p.Languages); err != nil {
		return nil, fmt.Errorf("unmarshalling languages: %w", err)
	}
	p.Embedding = bytesToFloat32Slice(embedding)
	p.Status = domain.ProfileStatus(status)
	return &p, nil
}

// ==================== Request Store ====================

// requestStore implements driven.RequestStore.
type requestStore struct {
	store *Store
}

var _ driven.RequestStore = (*requestStore)(nil)

// Save stores or updates a request.
func (s *requestStore) Save(ctx context.Context, request domain.Request) error {
	deliverables, err := json.Marshal(request.Deliverables)
	if err != nil {
		return fmt.Errorf("marshalling deliverables: %w", err)
	}
	tags, err := json.Marshal(request.NicheTags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO requests (id, brand_id, title, description, budget_min, budget_max,
			timeline, deliverables, niche_tags, embedding, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			budget_min = excluded.budget_min,
			budget_max = excluded.budget_max,
			timeline = excluded.timeline,
			deliverables = excluded.deliverables,
			niche_tags = excluded.niche_tags,
			embedding = excluded.embedding,
			status = excluded.status,
			updated_at = excluded.updated_at
	`, request.ID, request.BrandID, request.Title, request.Description,
		request.BudgetMin, request.BudgetMax, request.Timeline,
		string(deliverables), string(tags), float32SliceToBytes(request.Embedding),
		string(request.Status), request.CreatedAt, request.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving request: %w", err)
	}
	return nil
}

const requestColumns = `id, brand_id, title, description, budget_min, budget_max,
	timeline, deliverables, niche_tags, embedding, status, created_at, updated_at`

// Get retrieves a request by ID.
func (s *requestStore) Get(ctx context.Context, id string) (*domain.Request, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE id = ?`, id)
	return scanRequest(row)
}

// ListByBrand returns all requests posted by brandID.
func (s *requestStore) ListByBrand(ctx context.Context, brandID string) ([]domain.Request, error) {
	return s.list(ctx, `SELECT `+requestColumns+` FROM requests WHERE brand_id = ? ORDER BY created_at`, brandID)
}

// ListActive returns all requests still open for matching.
func (s *requestStore) ListActive(ctx context.Context) ([]domain.Request, error) {
	return s.list(ctx, `SELECT `+requestColumns+` FROM requests WHERE status = ? ORDER BY created_at`, string(domain.RequestActive))
}

func (s *requestStore) list(ctx context.Context, query string, args ...any) ([]domain.Request, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *r)
	}
	return requests, rows.Err()
}

func scanRequest(row scanner) (*domain.Request, error) {
	var r domain.Request
	var deliverables, tags, status string
	var embedding []byte
	if err := row.Scan(&r.ID, &r.BrandID, &r.Title, &r.Description,
		&r.BudgetMin, &r.BudgetMax, &r.Timeline, &deliverables, &tags,
		&embedding, &status, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning request: %w", err)
	}
	if err := json.Unmarshal([]byte(deliverables), &r.Deliverables); err != nil {
		return nil, fmt.Errorf("unmarshalling deliverables: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &r.NicheTags); err != nil {
		return nil, fmt.Errorf("unmarshalling tags: %w", err)
	}
	r.Embedding = bytesToFloat32Slice(embedding)
	r.Status = domain.RequestStatus(status)
	return &r, nil
}

// ==================== Interest Store ====================

// interestStore implements driven.InterestStore.
type interestStore struct {
	store *Store
}

var _ driven.InterestStore = (*interestStore)(nil)

// Save stores an interest. The (creator_id, request_id) unique constraint
// backs the one-interest-per-pair invariant under concurrent retries.
func (s *interestStore) Save(ctx context.Context, interest domain.Interest) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO interests (id, creator_id, request_id, status, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET status = excluded.status
	`, interest.ID, interest.CreatorID, interest.RequestID,
		string(interest.Status), interest.CreatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("saving interest: %w", err)
	}
	return nil
}

// Get retrieves an interest by ID.
func (s *interestStore) Get(ctx context.Context, id string) (*domain.Interest, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT id, creator_id, request_id, status, created_at FROM interests WHERE id = ?`, id)
	return scanInterest(row)
}

// GetByPair retrieves the unique interest for a (creatorID, requestID) pair.
func (s *interestStore) GetByPair(ctx context.Context, creatorID, requestID string) (*domain.Interest, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT id, creator_id, request_id, status, created_at
		 FROM interests WHERE creator_id = ? AND request_id = ?`, creatorID, requestID)
	return scanInterest(row)
}

// ListByCreator returns all interests expressed by creatorID.
func (s *interestStore) ListByCreator(ctx context.Context, creatorID string) ([]domain.Interest, error) {
	return s.list(ctx,
		`SELECT id, creator_id, request_id, status, created_at
		 FROM interests WHERE creator_id = ? ORDER BY created_at`, creatorID)
}

// ListByRequest returns all interests targeting requestID.
func (s *interestStore) ListByRequest(ctx context.Context, requestID string) ([]domain.Interest, error) {
	return s.list(ctx,
		`SELECT id, creator_id, request_id, status, created_at
		 FROM interests WHERE request_id = ? ORDER BY created_at`, requestID)
}

func (s *interestStore) list(ctx context.Context, query string, args ...any) ([]domain.Interest, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing interests: %w", err)
	}
	defer rows.Close()

	var interests []domain.Interest
	for rows.Next() {
		in, err := scanInterest(rows)
		if err != nil {
			return nil, err
		}
		interests = append(interests, *in)
	}
	return interests, rows.Err()
}

func scanInterest(row scanner) (*domain.Interest, error) {
	var in domain.Interest
	var status string
	if err := row.Scan(&in.ID, &in.CreatorID, &in.RequestID, &status, &in.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning interest: %w", err)
	}
	in.Status = domain.InterestStatus(status)
	return &in, nil
}

// ==================== Chat Store ====================

// chatStore implements driven.ChatStore.
type chatStore struct {
	store *Store
}

var _ driven.ChatStore = (*chatStore)(nil)

// SaveWindow stores or updates a chat window.
func (s *chatStore) SaveWindow(ctx context.Context, window domain.ChatWindow) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO chat_windows (id, brand_id, creator_id, request_id, created_at, expires_at, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET status = excluded.status
	`, window.ID, window.BrandID, window.CreatorID, window.RequestID,
		window.CreatedAt, window.ExpiresAt, string(window.Status))

	if err != nil {
		return fmt.Errorf("saving window: %w", err)
	}
	return nil
}

// GetWindow retrieves a window by ID.
func (s *chatStore) GetWindow(ctx context.Context, id string) (*domain.ChatWindow, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT id, brand_id, creator_id, request_id, created_at, expires_at, status
		 FROM chat_windows WHERE id = ?`, id)
	return scanWindow(row)
}

// ActiveWindow retrieves the active window for a triple.
func (s *chatStore) ActiveWindow(ctx context.Context, brandID, creatorID, requestID string) (*domain.ChatWindow, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT id, brand_id, creator_id, request_id, created_at, expires_at, status
		 FROM chat_windows
		 WHERE brand_id = ? AND creator_id = ? AND request_id = ? AND status = ?`,
		brandID, creatorID, requestID, string(domain.ChatActive))
	return scanWindow(row)
}

// ListWindows returns all windows involving userID as either party.
// An empty userID returns every window.
func (s *chatStore) ListWindows(ctx context.Context, userID string) ([]domain.ChatWindow, error) {
	query := `SELECT id, brand_id, creator_id, request_id, created_at, expires_at, status FROM chat_windows`
	var args []any
	if userID != "" {
		query += ` WHERE brand_id = ? OR creator_id = ?`
		args = append(args, userID, userID)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing windows: %w", err)
	}
	defer rows.Close()

	var windows []domain.ChatWindow
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, err
		}
		windows = append(windows, *w)
	}
	return windows, rows.Err()
}

// AppendMessage appends a message and assigns the next per-window
// sequence number inside a transaction.
func (s *chatStore) AppendMessage(ctx context.Context, msg domain.Message) (domain.Message, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Message{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM chat_windows WHERE id = ?`, msg.ChatID).Scan(&exists); err != nil {
		return domain.Message{}, fmt.Errorf("checking window: %w", err)
	}
	if exists == 0 {
		return domain.Message{}, domain.ErrNotFound
	}

	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE chat_id = ?`, msg.ChatID).Scan(&msg.Seq); err != nil {
		return domain.Message{}, fmt.Errorf("assigning sequence: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO messages (id, chat_id, sender_id, content, sent_at, seq)
		VALUES (?, ?, ?, ?, ?, ?)
	`, msg.ID, msg.ChatID, msg.SenderID, msg.Content, msg.SentAt, msg.Seq); err != nil {
		return domain.Message{}, fmt.Errorf("inserting message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Message{}, fmt.Errorf("committing message: %w", err)
	}
	return msg, nil
}

// ListMessages returns a window's messages ordered by SentAt then Seq.
func (s *chatStore) ListMessages(ctx context.Context, chatID string) ([]domain.Message, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT id, chat_id, sender_id, content, sent_at, seq
		 FROM messages WHERE chat_id = ? ORDER BY sent_at, seq`, chatID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Content, &m.SentAt, &m.Seq); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// CountMessages counts messages sent by userID since the given time.
func (s *chatStore) CountMessages(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM messages WHERE sender_id = ? AND sent_at >= ?`,
		userID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting messages: %w", err)
	}
	return count, nil
}

func scanWindow(row scanner) (*domain.ChatWindow, error) {
	var w domain.ChatWindow
	var status string
	if err := row.Scan(&w.ID, &w.BrandID, &w.CreatorID, &w.RequestID,
		&w.CreatedAt, &w.ExpiresAt, &status); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning window: %w", err)
	}
	w.Status = domain.ChatStatus(status)
	return &w, nil
}

// ==================== Deal Store ====================

// dealStore implements driven.DealStore.
type dealStore struct {
	store *Store
}

var _ driven.DealStore = (*dealStore)(nil)

// Save stores or updates a deal.
func (s *dealStore) Save(ctx context.Context, deal domain.Deal) error {
	terms, err := json.Marshal(deal.Terms)
	if err != nil {
		return fmt.Errorf("marshalling terms: %w", err)
	}
	confirmations, err := json.Marshal(deal.Confirmations)
	if err != nil {
		return fmt.Errorf("marshalling confirmations: %w", err)
	}

	var finalized any
	if !deal.FinalizedAt.IsZero() {
		finalized = deal.FinalizedAt
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO deals (id, request_id, brand_id, creator_id, terms, confirmations, status, created_at, finalized_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			terms = excluded.terms,
			confirmations = excluded.confirmations,
			status = excluded.status,
			finalized_at = excluded.finalized_at
	`, deal.ID, deal.RequestID, deal.BrandID, deal.CreatorID,
		string(terms), string(confirmations), string(deal.Status),
		deal.CreatedAt, finalized)

	if err != nil {
		return fmt.Errorf("saving deal: %w", err)
	}
	return nil
}

const dealColumns = `id, request_id, brand_id, creator_id, terms, confirmations, status, created_at, finalized_at`

// Get retrieves a deal by ID.
func (s *dealStore) Get(ctx context.Context, id string) (*domain.Deal, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+dealColumns+` FROM deals WHERE id = ?`, id)
	return scanDeal(row)
}

// ListByParty returns deals where userID is the brand or the creator.
func (s *dealStore) ListByParty(ctx context.Context, userID string) ([]domain.Deal, error) {
	return s.list(ctx,
		`SELECT `+dealColumns+` FROM deals WHERE brand_id = ? OR creator_id = ? ORDER BY created_at`,
		userID, userID)
}

// ListOpen returns deals still in proposed or pending state.
func (s *dealStore) ListOpen(ctx context.Context) ([]domain.Deal, error) {
	return s.list(ctx,
		`SELECT `+dealColumns+` FROM deals WHERE status IN (?, ?) ORDER BY created_at`,
		string(domain.DealProposed), string(domain.DealPending))
}

func (s *dealStore) list(ctx context.Context, query string, args ...any) ([]domain.Deal, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}
	defer rows.Close()

	var deals []domain.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, *d)
	}
	return deals, rows.Err()
}

func scanDeal(row scanner) (*domain.Deal, error) {
	var d domain.Deal
	var terms, confirmations, status string
	var finalized sql.NullTime
	if err := row.Scan(&d.ID, &d.RequestID, &d.BrandID, &d.CreatorID,
		&terms, &confirmations, &status, &d.CreatedAt, &finalized); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning deal: %w", err)
	}
	if err := json.Unmarshal([]byte(terms), &d.Terms); err != nil {
		return nil, fmt.Errorf("unmarshalling terms: %w", err)
	}
	if err := json.Unmarshal([]byte(confirmations), &d.Confirmations); err != nil {
		return nil, fmt.Errorf("unmarshalling confirmations: %w", err)
	}
	d.Status = domain.DealStatus(status)
	if finalized.Valid {
		d.FinalizedAt = finalized.Time
	}
	return &d, nil
}

// ==================== Contract Store ====================

// contractStore implements driven.ContractStore.
type contractStore struct {
	store *Store
}

var _ driven.ContractStore = (*contractStore)(nil)

// Save stores a contract record.
func (s *contractStore) Save(ctx context.Context, contract domain.Contract) error {
	sections, err := json.Marshal(contract.Sections)
	if err != nil {
		return fmt.Errorf("marshalling sections: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO contracts (id, deal_id, language, sections, url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, contract.ID, contract.DealID, contract.Language, string(sections),
		contract.URL, contract.CreatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("saving contract: %w", err)
	}
	return nil
}

// Get retrieves a contract by ID.
func (s *contractStore) Get(ctx context.Context, id string) (*domain.Contract, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT id, deal_id, language, sections, url, created_at FROM contracts WHERE id = ?`, id)
	return scanContract(row)
}

// GetByDeal retrieves the contract rendered for a deal, if any.
func (s *contractStore) GetByDeal(ctx context.Context, dealID string) (*domain.Contract, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT id, deal_id, language, sections, url, created_at FROM contracts WHERE deal_id = ?`, dealID)
	return scanContract(row)
}

func scanContract(row scanner) (*domain.Contract, error) {
	var c domain.Contract
	var sections string
	if err := row.Scan(&c.ID, &c.DealID, &c.Language, &sections, &c.URL, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning contract: %w", err)
	}
	if err := json.Unmarshal([]byte(sections), &c.Sections); err != nil {
		return nil, fmt.Errorf("unmarshalling sections: %w", err)
	}
	return &c, nil
}

// ==================== Helpers ====================

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
	if len(data) == 0 || len(data)%4 != 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
