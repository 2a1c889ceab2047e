// Package session keeps completed decomposition results addressable by an
// opaque id, so repeated mix requests avoid recomputation.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-pca/pca"
)

// ErrSessionNotFound indicates an unknown session id.
var ErrSessionNotFound = errors.New("session: not found")

// Store maps opaque session ids to decomposition results.
//
// Entries persist for the lifetime of the store; there is no expiry or
// deletion. Results are stored by reference and treated as immutable, so
// concurrent readers need no further synchronization once retrieved.
// Construct a Store explicitly and inject it into handlers; the package
// holds no global state.
type Store struct {
	mu      sync.RWMutex
	results map[string]*pca.Result
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{results: make(map[string]*pca.Result)}
}

// Put stores a result and returns a fresh unique session id.
func (s *Store) Put(result *pca.Result) string {
	id := uuid.NewString()

	s.mu.Lock()
	s.results[id] = result
	s.mu.Unlock()

	return id
}

// Get returns the result for the given session id, or ErrSessionNotFound.
func (s *Store) Get(id string) (*pca.Result, error) {
	s.mu.RLock()
	result, ok := s.results[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	return result, nil
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
