package glossary

import (
	"fmt"
	"sync"
	"time"

	apperrors "glossary-backend/pkg/errors"
)

// Store holds the authoritative ordered collection of terms plus the
// identifier counter. A single RWMutex serializes mutations: readers may run
// concurrently with each other but never with a writer, so lost updates and
// duplicate identifiers cannot occur under concurrent request handling.
type Store struct {
	mu     sync.RWMutex
	terms  []*Term
	nextID int
}

// NewStore creates an empty store. Call Load before serving requests.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Load replaces the in-memory collection with the given seed records and sets
// the identifier counter to one greater than the maximum id present (1 when
// empty). Records carrying a positive id keep it; the rest are assigned
// sequentially. Zero timestamps are stamped at load time.
//
// Any record violating the field bounds, or a duplicate id, yields a
// MalformedSeed error and leaves the store untouched.
func (s *Store) Load(seed []Term) error {
	loaded := make([]*Term, 0, len(seed))
	seen := make(map[int]struct{}, len(seed))
	maxID := 0
	now := time.Now()

	for i, t := range seed {
		if violations := ValidateFields(t.Title, t.Definition); len(violations) > 0 {
			return apperrors.NewMalformedSeed(
				fmt.Sprintf("seed record %d (%q): %s", i, t.Title, violations[0]))
		}
		if t.ID > 0 {
			if _, dup := seen[t.ID]; dup {
				return apperrors.NewMalformedSeed(
					fmt.Sprintf("seed record %d (%q): duplicate id %d", i, t.Title, t.ID))
			}
			seen[t.ID] = struct{}{}
			if t.ID > maxID {
				maxID = t.ID
			}
		}
		if t.Category == "" {
			t.Category = DefaultCategory
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		if t.UpdatedAt.IsZero() {
			t.UpdatedAt = t.CreatedAt
		}
		record := t
		loaded = append(loaded, &record)
	}

	// Assign ids to records that arrived without one.
	for _, t := range loaded {
		if t.ID <= 0 {
			maxID++
			t.ID = maxID
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms = loaded
	s.nextID = maxID + 1
	return nil
}

// NextID returns the current counter value and increments it. Identifiers are
// monotonic for the process lifetime and never reused, including after
// deletions.
func (s *Store) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocID()
}

func (s *Store) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

// Len returns the number of terms in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.terms)
}

// All returns a snapshot of the full collection in insertion order.
func (s *Store) All() []Term {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Term, len(s.terms))
	for i, t := range s.terms {
		out[i] = *t
	}
	return out
}

// FindByID returns the term with the matching id.
func (s *Store) FindByID(id int) (Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := s.findLocked(id)
	if t == nil {
		return Term{}, notFound(id)
	}
	return *t, nil
}

// Insert appends a new term with a freshly assigned id and both timestamps
// stamped to now. The incoming id and timestamps are ignored. The caller is
// responsible for validating the fields beforehand.
func (s *Store) Insert(t Term) (Term, error) {
	if violations := ValidateFields(t.Title, t.Definition); len(violations) > 0 {
		return Term{}, apperrors.NewValidation("term validation failed", violations)
	}
	if t.Category == "" {
		t.Category = DefaultCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	t.ID = s.allocID()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.terms = append(s.terms, &t)
	return t, nil
}

// ReplaceFields applies only the fields present in the patch to the term with
// the matching id. The merged result is re-validated before anything is
// committed; on a validation failure the stored record is left unchanged.
// UpdatedAt is stamped on success.
func (s *Store) ReplaceFields(id int, patch TermPatch) (Term, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.findLocked(id)
	if current == nil {
		return Term{}, notFound(id)
	}

	merged := patch.apply(*current)
	if violations := ValidateFields(merged.Title, merged.Definition); len(violations) > 0 {
		return Term{}, apperrors.NewValidation("term validation failed", violations)
	}

	merged.ID = current.ID
	merged.CreatedAt = current.CreatedAt
	merged.UpdatedAt = time.Now()
	*current = merged
	return merged, nil
}

// Remove deletes the term with the matching id and returns the removed id.
// The identifier is never reused.
func (s *Store) Remove(id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.terms {
		if t.ID == id {
			s.terms = append(s.terms[:i], s.terms[i+1:]...)
			return id, nil
		}
	}
	return 0, notFound(id)
}

func (s *Store) findLocked(id int) *Term {
	for _, t := range s.terms {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func notFound(id int) error {
	return apperrors.NewNotFound(fmt.Sprintf("term with id %d not found", id))
}
