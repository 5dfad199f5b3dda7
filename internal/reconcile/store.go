// Package reconcile owns the in-memory record list and keeps it in step with
// the persisted JSON blob.
package reconcile

import (
	"context"       // Request scoped cancellation
	"encoding/json" // Blob encoding
	"errors"        // Sentinel errors
	"fmt"           // Error wrapping
	"strings"       // Id trimming
	"sync"          // Mutation lock
	"time"          // Clock

	"sentinel_engine/internal/codec"   // CSV row normalization
	"sentinel_engine/internal/domain"  // Record model
	"sentinel_engine/internal/storage" // Persistence backends

	"github.com/sirupsen/logrus" // Logging library
)

var (
	// ErrCorruptState is returned by Load when the persisted blob is not a
	// JSON record list. The store falls back to the seed list.
	ErrCorruptState = errors.New("persisted state is corrupt")
	ErrNotFound     = errors.New("record not found")
)

// Seed is the built-in list used when nothing has been persisted yet.
func Seed() []domain.Transaction {
	return []domain.Transaction{
		{
			ID:       "TX1002",
			User:     "Alice Smith",
			Amount:   "$12,400",
			Status:   domain.StatusFlagged,
			Risk:     domain.RiskHigh,
			Method:   "Wire Transfer",
			Date:     "1/14/2026, 9:42:17 AM",
			Location: "Zurich, CH",
		},
		{
			ID:       "TX1003",
			User:     "Bob Jones",
			Amount:   "$45.00",
			Status:   domain.StatusVerified,
			Risk:     domain.RiskLow,
			Method:   "Card Payment",
			Date:     "1/14/2026, 11:05:03 AM",
			Location: "Austin, US",
		},
	}
}

// ImportResult reports what ImportMerge added.
type ImportResult struct {
	Records []domain.Transaction // Added records, in file order
	Rekeyed int                  // Supplied ids replaced because they collided
}

// Store is the authoritative record list. All methods are safe for
// concurrent use; mutations are applied one at a time.
type Store struct {
	mu      sync.Mutex
	backend storage.Storage
	key     string
	now     func() time.Time
	intn    func(n int) int
	records []domain.Transaction
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRandom replaces the id generator's random source.
func WithRandom(intn func(n int) int) Option {
	return func(s *Store) { s.intn = intn }
}

// New returns an empty store. Call Load before serving reads.
func New(backend storage.Storage, key string, opts ...Option) *Store {
	s := &Store{backend: backend, key: key, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted one. When nothing is
// stored the seed list is used. On a read failure or a corrupt blob the
// store still ends up on the seed list and the error is returned; the blob
// itself is left untouched.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.backend.Get(ctx, s.key)
	if err != nil {
		s.records = Seed()
		return fmt.Errorf("reading %s: %w", s.key, err)
	}
	if !found || strings.TrimSpace(raw) == "" {
		s.records = Seed()
		return nil
	}

	var stored []domain.Transaction
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.records = Seed()
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if len(stored) == 0 {
		s.records = Seed()
		return nil
	}

	now := s.now()
	for i := range stored {
		stored[i] = domain.WithDefaults(stored[i], now)
	}

	assigned := map[string]bool{}
	ids := s.generator(stored, assigned)
	seen := make(map[string]bool, len(stored))
	rekeyed := 0
	for i := range stored {
		if id := stored[i].ID; id == "" || seen[id] {
			next, err := ids.Next()
			if err != nil {
				s.records = Seed()
				return fmt.Errorf("re-keying record %d: %w", i+1, err)
			}
			stored[i].ID = next
			assigned[next] = true
			rekeyed++
		}
		seen[stored[i].ID] = true
	}
	if rekeyed > 0 {
		logrus.WithField("rekeyed", rekeyed).Warn("Persisted records had blank or duplicate ids")
	}
	s.records = stored
	return nil
}

// List returns a copy of the current records, newest first.
func (s *Store) List() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Transaction(nil), s.records...)
}

// Get returns the record with id.
func (s *Store) Get(id string) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Transaction{}, ErrNotFound
}

// Add prepends a manually entered record and returns it.
func (s *Store) Add(ctx context.Context, input domain.Transaction) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := domain.NewManual(input, s.now(), s.generator(s.records, nil))
	if err != nil {
		return domain.Transaction{}, err
	}

	next := make([]domain.Transaction, 0, len(s.records)+1)
	next = append(next, rec)
	next = append(next, s.records...)
	if err := s.commit(ctx, next); err != nil {
		return domain.Transaction{}, err
	}

	logrus.WithFields(logrus.Fields{"id": rec.ID, "risk": rec.Risk}).Info("Record added")
	return rec, nil
}

// ImportMerge normalizes parsed CSV rows and prepends them, in the given
// order, ahead of the existing list. A supplied id that matches an existing
// record or an earlier row of the batch is replaced with a generated one.
func (s *Store) ImportMerge(ctx context.Context, rows []codec.Row) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	batch := make(map[string]bool, len(rows))
	ids := s.generator(s.records, batch)
	existing := idSet(s.records)

	result := ImportResult{Records: make([]domain.Transaction, 0, len(rows))}
	for i, row := range rows {
		if id := strings.TrimSpace(row[codec.ColID]); id != "" && (existing[id] || batch[id]) {
			row = row.Without(codec.ColID)
			result.Rekeyed++
		}
		rec, err := codec.Normalize(row, now, ids)
		if err != nil {
			return ImportResult{}, fmt.Errorf("record %d: %w", i+1, err)
		}
		batch[rec.ID] = true
		result.Records = append(result.Records, rec)
	}
	if len(result.Records) == 0 {
		return result, nil
	}

	next := make([]domain.Transaction, 0, len(result.Records)+len(s.records))
	next = append(next, result.Records...)
	next = append(next, s.records...)
	if err := s.commit(ctx, next); err != nil {
		return ImportResult{}, err
	}

	logrus.WithFields(logrus.Fields{
		"imported": len(result.Records),
		"rekeyed":  result.Rekeyed,
	}).Info("Records imported")
	return result, nil
}

// Remove deletes the record with id. It reports false, and persists
// nothing, when no record matched.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	removed, err := s.RemoveMany(ctx, []string{id})
	return removed > 0, err
}

// RemoveMany deletes every record whose id is in ids, keeping the order of
// the survivors, and returns how many were removed.
func (s *Store) RemoveMany(ctx context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	next := make([]domain.Transaction, 0, len(s.records))
	for _, r := range s.records {
		if !drop[r.ID] {
			next = append(next, r)
		}
	}
	removed := len(s.records) - len(next)
	if removed == 0 {
		return 0, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}

	logrus.WithField("removed", removed).Info("Records deleted")
	return removed, nil
}

// commit persists next and, only if that succeeds, makes it current.
// Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next []domain.Transaction) error {
	if err := s.persist(ctx, next); err != nil {
		logrus.WithError(err).Error("Failed to persist records")
		return err
	}
	s.records = next
	return nil
}

// persist writes the full list. An empty list is never written: the last
// non-empty blob survives, and a store that never persisted reloads the seed.
func (s *Store) persist(ctx context.Context, list []domain.Transaction) error {
	if len(list) == 0 {
		return nil
	}
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("writing %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) generator(list []domain.Transaction, batch map[string]bool) *domain.IDGenerator {
	existing := idSet(list)
	return domain.NewIDGenerator(s.intn, func(id string) bool {
		return existing[id] || batch[id]
	})
}

func idSet(list []domain.Transaction) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, r := range list {
		set[r.ID] = true
	}
	return set
}
