package identity

import "sync"

// Session holds at most one current Identity for the running application.
// It is an explicit, injected object (never a package global) and is safe
// for concurrent use. Sessions are not persisted: every fresh process starts
// unauthenticated.
type Session struct {
	mu            sync.RWMutex
	identity      Identity
	authenticated bool
	scopeKey      string // memoized by the ScopeResolver
}

func NewSession() *Session {
	return &Session{}
}

// Login replaces the current Identity wholesale. Any scope key memoized for
// a previous identity is discarded.
func (s *Session) Login(identity Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
	s.authenticated = true
	s.scopeKey = ""
}

// Logout clears the session. It is idempotent: logging out an already
// logged-out session is a no-op.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = Identity{}
	s.authenticated = false
	s.scopeKey = ""
}

// Current returns the authenticated Identity, if any.
func (s *Session) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.authenticated {
		return Identity{}, false
	}
	return s.identity, true
}

func (s *Session) cachedScopeKey() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scopeKey, s.scopeKey != ""
}

// cacheScopeKey memoizes the resolved key, unless the session identity has
// changed since resolution started.
func (s *Session) cacheScopeKey(identityID, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authenticated && s.identity.ID == identityID {
		s.scopeKey = key
	}
}
