package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gestao-municipal/painel/internal/auth/domain"
)

type memoryEntry struct {
	session   domain.Session
	expiresAt time.Time
}

// MemoryRepository is the in-process session store used when no Redis
// address is configured. Expired entries are dropped on read and by Sweep.
type MemoryRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if !r.now().Before(e.expiresAt) {
		delete(r.entries, id)
		return nil, domain.ErrSessionNotFound
	}

	s := e.session
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return &s, nil
}

func (r *MemoryRepository) Set(_ context.Context, session *domain.Session, ttl time.Duration) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session id is required")
	}
	if ttl <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", ttl)
	}

	s := *session
	if s.User != nil {
		u := *s.User
		s.User = &u
	}

	r.mu.Lock()
	r.entries[s.ID] = memoryEntry{session: s, expiresAt: r.now().Add(ttl)}
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Ping(context.Context) error {
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (r *MemoryRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, e := range r.entries {
		if !now.Before(e.expiresAt) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired or not.
func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
