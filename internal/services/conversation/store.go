// File: internal/services/conversation/store.go
package conversation

import (
	"sync"
	"time"
)

// MaxEntries caps each session's history; the oldest entries are evicted
// first once the cap is reached.
const MaxEntries = 20

// Entry is one turn of a volatile conversation.
type Entry struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Store keeps per-session conversation history in process memory. There is
// no persistence and no ownership concept: any caller holding a session id
// can read or mutate it. All methods are safe for concurrent use.
type Store struct {
	mu            sync.Mutex
	conversations map[string][]Entry
	now           func() time.Time
}

// NewStore creates an empty conversation store.
func NewStore() *Store {
	return &Store{
		conversations: make(map[string][]Entry),
		now:           time.Now,
	}
}

// Get returns the session's history, creating an empty one if needed. The
// returned slice is a copy; callers cannot mutate stored state through it.
func (s *Store) Get(sessionID string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[sessionID]; !ok {
		s.conversations[sessionID] = []Entry{}
	}

	entries := s.conversations[sessionID]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Append pushes a new entry with a wall-clock timestamp and truncates the
// history to the most recent MaxEntries.
func (s *Store) Append(sessionID, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.conversations[sessionID], Entry{
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	})

	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}
	s.conversations[sessionID] = entries
}

// Clear empties the session's history.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[sessionID]; ok {
		s.conversations[sessionID] = []Entry{}
	}
}

// Sessions reports the number of known sessions, for the health endpoint.
func (s *Store) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conversations)
}
