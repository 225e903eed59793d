package mem

import (
	"sync"
	"time"
)

type RevokedTokenStore interface {
	// Revoke remembers a token id until expiresAt; after that the token is
	// rejected by its own expiry anyway.
	Revoke(tokenID string, expiresAt time.Time)

	IsRevoked(tokenID string) bool

	// RevokeUser rejects every token issued to userID before at. The cutoff
	// is kept until until, the latest expiry such a token can have.
	RevokeUser(userID string, at, until time.Time)

	// UserRevokedAt returns the cutoff set by RevokeUser, zero when none.
	UserRevokedAt(userID string) time.Time

	// Purge drops entries whose expiry has passed and returns how many.
	Purge() int
}

type userCutoff struct {
	at    time.Time
	until time.Time
}

type RevokedTokens struct {
	mu    sync.RWMutex
	data  map[string]time.Time
	users map[string]userCutoff
	now   func() time.Time
}

func NewRevokedTokens() *RevokedTokens {
	return &RevokedTokens{
		data:  make(map[string]time.Time),
		users: make(map[string]userCutoff),
		now:   time.Now,
	}
}

func (s *RevokedTokens) Revoke(tokenID string, expiresAt time.Time) {
	if tokenID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[tokenID] = expiresAt
}

func (s *RevokedTokens) IsRevoked(tokenID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiresAt, ok := s.data[tokenID]
	if !ok {
		return false
	}
	return s.now().Before(expiresAt)
}

func (s *RevokedTokens) RevokeUser(userID string, at, until time.Time) {
	if userID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = userCutoff{at: at, until: until}
}

func (s *RevokedTokens) UserRevokedAt(userID string) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.users[userID]
	if !ok || !s.now().Before(c.until) {
		return time.Time{}
	}
	return c.at
}

func (s *RevokedTokens) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, expiresAt := range s.data {
		if !now.Before(expiresAt) {
			delete(s.data, id)
			removed++
		}
	}
	for id, c := range s.users {
		if !now.Before(c.until) {
			delete(s.users, id)
			removed++
		}
	}
	return removed
}

func (s *RevokedTokens) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data) + len(s.users)
}
