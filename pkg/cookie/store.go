package cookie

import (
	"net/http"
	"sync"
	"time"
)

// Store is the narrow cookie substrate the client-state stores depend on.
type Store interface {
	Set(name, value string, days int) error
	Get(name string) (string, bool)
	Delete(name string)
}

// Jar is a request-scoped Store. Reads after a write or delete in the same
// request observe the pending change instead of the incoming header.
type Jar struct {
	m *Manager
	w http.ResponseWriter
	r *http.Request

	mu      sync.Mutex
	pending map[string]*string
}

func NewJar(m *Manager, w http.ResponseWriter, r *http.Request) *Jar {
	return &Jar{m: m, w: w, r: r, pending: make(map[string]*string)}
}

func (j *Jar) Set(name, value string, days int) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.m.Set(j.w, j.r, name, value, days); err != nil {
		return err
	}
	j.pending[name] = &value
	return nil
}

func (j *Jar) Get(name string) (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if v, ok := j.pending[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	return Lookup(j.r, name)
}

func (j *Jar) Delete(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.m.Delete(j.w, name)
	j.pending[name] = nil
}

type memoryEntry struct {
	value   string
	expires time.Time
}

// MemoryStore is an in-process Store for callers without an HTTP exchange.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Set(name, value string, days int) error {
	if name == "" {
		return ErrInvalidName
	}
	if err := checkSize(name, value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := memoryEntry{value: value}
	if days > 0 {
		e.expires = s.now().Add(time.Duration(days) * day)
	}
	s.entries[name] = e
	return nil
}

func (s *MemoryStore) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[name]
	if !ok {
		return "", false
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		return "", false
	}
	return e.value, true
}

func (s *MemoryStore) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, name)
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
