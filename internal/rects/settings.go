package rects

import "sync"

// DefaultRectsPerPixel is the density used when the caller does not choose one.
const DefaultRectsPerPixel = 0.1

// Settings controls a single run.
type Settings struct {
	// RectsPerPixel is the number of rectangles allocated per unit of
	// accumulated darkness (one fully black pixel).
	RectsPerPixel float64
}

// DefaultSettings returns Settings with DefaultRectsPerPixel.
func DefaultSettings() Settings {
	return Settings{RectsPerPixel: DefaultRectsPerPixel}
}

// Store holds Settings that may be changed by one goroutine while others
// read them. Readers take a Snapshot once per run and never look back.
type Store struct {
	mu       sync.RWMutex
	settings Settings
}

// NewStore creates a Store holding s.
func NewStore(s Settings) *Store {
	return &Store{settings: s}
}

// Snapshot returns a copy of the current settings.
func (st *Store) Snapshot() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.settings
}

// SetRectsPerPixel replaces the density and returns the previous value.
func (st *Store) SetRectsPerPixel(v float64) float64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	old := st.settings.RectsPerPixel
	st.settings.RectsPerPixel = v
	return old
}
