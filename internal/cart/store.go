package cart

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Store keeps one cart per session for the lifetime of that session.
type Store interface {
	// Get returns the session's cart, empty when none exists yet.
	Get(ctx context.Context, sessionID string) (*Cart, error)

	// Save persists the session's cart.
	Save(ctx context.Context, sessionID string, cart *Cart) error

	// Clear discards the session's cart.
	Clear(ctx context.Context, sessionID string) error
}

// Mutate loads a session's cart, applies fn to it and saves the result.
// Stores serialise Mutate calls per store, so cart operations observe the
// same happens-before ordering as UI actions on a single thread.
func Mutate(ctx context.Context, store Store, sessionID string, fn func(*Cart)) (*Cart, error) {
	if ms, ok := store.(*MemoryStore); ok {
		return ms.mutate(ctx, sessionID, fn)
	}

	cart, err := store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fn(cart)
	if err := store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

type memoryEntry struct {
	cart     *Cart
	lastSeen time.Time
}

// MemoryStore is the in-process cart store: a mutex-guarded map with a
// janitor that drops carts idle past the TTL.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	done    chan struct{}
	logger  zerolog.Logger
}

// NewMemoryStore creates an in-memory cart store. Carts idle for longer
// than ttl are evicted.
func NewMemoryStore(ttl time.Duration, logger zerolog.Logger) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
		logger:  logger.With().Str("component", "cart_memory_store").Logger(),
	}
	go s.janitor()
	return s
}

// Get returns a copy of the session's cart, empty when none exists.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok {
		return &Cart{}, nil
	}
	entry.lastSeen = time.Now()
	return copyCart(entry.cart), nil
}

// Save persists a copy of the cart for the session.
func (s *MemoryStore) Save(ctx context.Context, sessionID string, cart *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = &memoryEntry{cart: copyCart(cart), lastSeen: time.Now()}
	return nil
}

// Clear discards the session's cart.
func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
	return nil
}

// Close stops the janitor.
func (s *MemoryStore) Close() {
	close(s.done)
}

// mutate applies fn under the store lock so concurrent requests for the same
// session cannot interleave between load and save.
func (s *MemoryStore) mutate(ctx context.Context, sessionID string, fn func(*Cart)) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok {
		entry = &memoryEntry{cart: &Cart{}}
		s.entries[sessionID] = entry
	}
	fn(entry.cart)
	entry.lastSeen = time.Now()
	return copyCart(entry.cart), nil
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.evictStale()
		}
	}
}

func (s *MemoryStore) evictStale() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.ttl)
	evicted := 0
	for id, entry := range s.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.logger.Debug().Int("evicted", evicted).Msg("evicted stale carts")
	}
}

func copyCart(cart *Cart) *Cart {
	out := &Cart{}
	if len(cart.Items) > 0 {
		out.Items = make([]Item, len(cart.Items))
		copy(out.Items, cart.Items)
	}
	return out
}
