package auth

import "sync"

// Sessions is the session manager: Anonymous until a successful Login,
// Anonymous again after Logout. The state is never persisted.
type Sessions struct {
	mu      sync.RWMutex
	store   *Store
	current *CredentialRecord
}

// NewSessions creates an anonymous session manager backed by store
func NewSessions(store *Store) *Sessions {
	return &Sessions{store: store}
}

// Register validates and stores a new credential without touching the session
func (s *Sessions) Register(identifier, secret string) (CredentialRecord, error) {
	if err := ValidateCredentials(identifier, secret); err != nil {
		return CredentialRecord{}, err
	}
	return s.store.Register(identifier, secret)
}

// Login establishes a session. On any failure the state stays Anonymous.
func (s *Sessions) Login(identifier, secret string) (CredentialRecord, error) {
	if err := ValidateCredentials(identifier, secret); err != nil {
		return CredentialRecord{}, err
	}
	if s.Authenticated() {
		return CredentialRecord{}, ErrAlreadyAuthenticated
	}

	record, err := s.store.Verify(identifier, secret)
	if err != nil {
		return CredentialRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return CredentialRecord{}, ErrAlreadyAuthenticated
	}
	s.current = &record
	return record, nil
}

// Logout ends the session unconditionally and reports whether one was active
func (s *Sessions) Logout() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.current != nil
	s.current = nil
	return active
}

// Current returns the authenticated identity, if any
func (s *Sessions) Current() (CredentialRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return CredentialRecord{}, false
	}
	return *s.current, true
}

// Authenticated reports whether a session is established
func (s *Sessions) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}
