package service

import (
	"sync"
	"time"
)

// Resource names used as view state keys.
const (
	ResourceSecretarias = "secretarias"
	ResourceProjetos    = "projetos"
	ResourceDashboard   = "dashboard"
)

// ViewState remembers, per session, the last value successfully fetched for
// each resource. A failed fetch falls back to it.
type ViewState struct {
	mu      sync.Mutex
	entries map[string]*sessionView
	now     func() time.Time
}

type sessionView struct {
	values  map[string]any
	touched time.Time
}

func NewViewState() *ViewState {
	return &ViewState{
		entries: make(map[string]*sessionView),
		now:     time.Now,
	}
}

func (v *ViewState) get(sessionID, resource string) (any, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	e, ok := v.entries[sessionID]
	if !ok {
		return nil, false
	}
	e.touched = v.now()
	val, ok := e.values[resource]
	return val, ok
}

func (v *ViewState) put(sessionID, resource string, value any) {
	v.mu.Lock()
	defer v.mu.Unlock()

	e, ok := v.entries[sessionID]
	if !ok {
		e = &sessionView{values: make(map[string]any)}
		v.entries[sessionID] = e
	}
	e.values[resource] = value
	e.touched = v.now()
}

// Forget drops everything cached for sessionID.
func (v *ViewState) Forget(sessionID string) {
	v.mu.Lock()
	delete(v.entries, sessionID)
	v.mu.Unlock()
}

// Sweep removes sessions not used for olderThan and returns how many went.
func (v *ViewState) Sweep(olderThan time.Duration) int {
	v.mu.Lock()
	defer v.mu.Unlock()

	cutoff := v.now().Add(-olderThan)
	removed := 0
	for id, e := range v.entries {
		if e.touched.Before(cutoff) {
			delete(v.entries, id)
			removed++
		}
	}
	return removed
}

// Len is the number of sessions with cached views.
func (v *ViewState) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.entries)
}
