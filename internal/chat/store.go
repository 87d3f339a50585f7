package chat

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/teetime/internal/llm"
)

// DefaultIdleTimeout is how long a conversation survives without activity
const DefaultIdleTimeout = 30 * time.Minute

// Entry is one user's live conversation
type Entry struct {
	UserID       string
	Conversation llm.Conversation
	LastActivity time.Time
}

// Store owns the per-user conversation table
type Store interface {
	// Get returns the user's entry if it exists and is not idle-expired
	Get(userID string) (Entry, bool)
	// Put creates or replaces the user's entry with lastActivity = now
	Put(userID string, conv llm.Conversation) Entry
	// Touch sets lastActivity = now; it reports false when there is no entry
	Touch(userID string) bool
	Delete(userID string) bool
	// SweepExpired removes every idle-expired entry and returns how many were removed
	SweepExpired() int
	Len() int
}

// StoreOption configures a MemoryStore
type StoreOption func(*MemoryStore)

// WithClock replaces the wall clock used for activity stamps
func WithClock(clock clockwork.Clock) StoreOption {
	return func(s *MemoryStore) { s.clock = clock }
}

// WithEvictHook registers fn to run for every entry that leaves the store
// through Delete, replacement or a sweep. Panics in fn are recovered per entry.
func WithEvictHook(fn func(Entry)) StoreOption {
	return func(s *MemoryStore) { s.onEvict = fn }
}

// MemoryStore is an in-process Store guarded by a mutex
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	idle    time.Duration
	clock   clockwork.Clock
	onEvict func(Entry)
}

// NewMemoryStore creates a store whose entries expire after idle
func NewMemoryStore(idle time.Duration, opts ...StoreOption) *MemoryStore {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	s := &MemoryStore{
		entries: make(map[string]*Entry),
		idle:    idle,
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Get(userID string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[userID]
	if !ok || s.expired(e, s.clock.Now()) {
		return Entry{}, false
	}
	return *e, true
}

func (s *MemoryStore) Put(userID string, conv llm.Conversation) Entry {
	s.mu.Lock()
	old, replaced := s.entries[userID]
	e := &Entry{UserID: userID, Conversation: conv, LastActivity: s.clock.Now()}
	s.entries[userID] = e
	s.mu.Unlock()

	if replaced {
		s.evict([]Entry{*old})
	}
	return *e
}

func (s *MemoryStore) Touch(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userID]
	if !ok {
		return false
	}
	e.LastActivity = s.clock.Now()
	return true
}

func (s *MemoryStore) Delete(userID string) bool {
	s.mu.Lock()
	e, ok := s.entries[userID]
	delete(s.entries, userID)
	s.mu.Unlock()

	if ok {
		s.evict([]Entry{*e})
	}
	return ok
}

func (s *MemoryStore) SweepExpired() int {
	now := s.clock.Now()

	s.mu.Lock()
	var removed []Entry
	for id, e := range s.entries {
		if s.expired(e, now) {
			removed = append(removed, *e)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	s.evict(removed)
	return len(removed)
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) expired(e *Entry, now time.Time) bool {
	return now.Sub(e.LastActivity) > s.idle
}

// evict runs outside the lock so a slow hook never blocks other users
func (s *MemoryStore) evict(entries []Entry) {
	if s.onEvict == nil {
		return
	}
	for _, e := range entries {
		s.runHook(e)
	}
}

func (s *MemoryStore) runHook(e Entry) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("user_id", e.UserID).Interface("panic", r).Msg("Conversation evict hook panicked")
		}
	}()
	s.onEvict(e)
}
