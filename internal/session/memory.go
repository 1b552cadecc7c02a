package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/graniteware/storefront/internal/domain"
)

type memorySession struct {
	cart     domain.Cart
	userID   uuid.UUID
	hasUser  bool
	deadline time.Time
}

type memoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]*memorySession
	idleTimeout time.Duration
	now         func() time.Time
}

// NewMemoryStore creates an in-process session store. Used in development
// mode and in tests; expired sessions are evicted lazily on access.
func NewMemoryStore(idleTimeout time.Duration) *memoryStore {
	return &memoryStore{
		sessions:    make(map[string]*memorySession),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

func (s *memoryStore) LoadCart(ctx context.Context, token string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live(token)
	if !ok {
		return domain.Cart{State: domain.CartStateEmpty}, nil
	}

	sess.deadline = s.now().Add(s.idleTimeout)

	// Copy the entries so callers never alias stored state.
	cart := domain.Cart{
		Entries: append([]domain.CartEntry(nil), sess.cart.Entries...),
		State:   sess.cart.State,
	}
	return cart, nil
}

func (s *memoryStore) SaveCart(ctx context.Context, token string, cart domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live(token)
	if !ok {
		sess = &memorySession{}
		s.sessions[token] = sess
	}

	sess.cart = domain.Cart{
		Entries: append([]domain.CartEntry(nil), cart.Entries...),
		State:   cart.State,
	}
	sess.deadline = s.now().Add(s.idleTimeout)
	return nil
}

func (s *memoryStore) SetUserID(ctx context.Context, token string, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live(token)
	if !ok {
		sess = &memorySession{}
		s.sessions[token] = sess
	}

	sess.userID = userID
	sess.hasUser = true
	sess.deadline = s.now().Add(s.idleTimeout)
	return nil
}

func (s *memoryStore) UserID(ctx context.Context, token string) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live(token)
	if !ok || !sess.hasUser {
		return uuid.Nil, false, nil
	}

	sess.deadline = s.now().Add(s.idleTimeout)
	return sess.userID, true, nil
}

func (s *memoryStore) Clear(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

// live returns the session if it exists and has not passed its deadline,
// evicting it otherwise. Callers must hold the lock.
func (s *memoryStore) live(token string) (*memorySession, bool) {
	sess, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	if s.now().After(sess.deadline) {
		delete(s.sessions, token)
		return nil, false
	}
	return sess, true
}
