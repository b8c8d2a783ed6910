package intake

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"projectai/internal/shared/metrics"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("intake session not found")

type storedSession struct {
	mu      sync.Mutex
	session *Session
}

// Store keeps HTTP intake sessions in an expiring LRU. Each session has its
// own mutex; sessions never share state.
type Store struct {
	cache *expirable.LRU[string, *storedSession]
	live  atomic.Int64
}

// NewStore holds up to size sessions, each expiring ttl after last write.
func NewStore(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = 1024
	}
	st := &Store{}
	st.cache = expirable.NewLRU[string, *storedSession](size, st.onEvict, ttl)
	return st
}

// Create stores s under a fresh id.
func (st *Store) Create(s *Session) string {
	id := uuid.NewString()
	metrics.SetIntakeSessions(int(st.live.Add(1)))
	st.cache.Add(id, &storedSession{session: s})
	return id
}

// With runs fn on the session while holding its lock. The session's expiry
// is refreshed afterwards.
func (st *Store) With(id string, fn func(*Session) error) error {
	entry, ok := st.cache.Get(id)
	if !ok {
		return ErrSessionNotFound
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	err := fn(entry.session)
	if _, still := st.cache.Peek(id); still {
		st.cache.Add(id, entry)
	}
	return err
}

// Delete removes a session. It reports whether the id existed.
func (st *Store) Delete(id string) bool {
	return st.cache.Remove(id)
}

// onEvict runs for removals, capacity evictions and expiry. The LRU lock is
// held, so the gauge is driven by the counter rather than cache.Len.
func (st *Store) onEvict(string, *storedSession) {
	metrics.SetIntakeSessions(int(st.live.Add(-1)))
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	return st.cache.Len()
}

func (st *Store) tracked() int {
	return int(st.live.Load())
}
