package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UsersKey is the key-value entry holding the serialized credential list
const UsersKey = "edu_users"

// KeyValue is the local key-value storage the store persists into.
// *db.DB satisfies it.
type KeyValue interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// CredentialRecord is a registered user. Records are never mutated or deleted.
type CredentialRecord struct {
	ID          string    `json:"id"`
	Identifier  string    `json:"username"`
	DisplayName string    `json:"display_name"`
	SecretHash  string    `json:"secret_hash"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is the persisted identifier → credential mapping. Every successful
// mutation rewrites the full list synchronously.
type Store struct {
	mu       sync.Mutex
	kv       KeyValue
	hashCost int

	dummyOnce sync.Once
	dummyHash []byte
}

// Option configures a Store
type Option func(*Store)

// WithHashCost sets the bcrypt cost; values outside bcrypt's range fall back
// to bcrypt.DefaultCost
func WithHashCost(cost int) Option {
	return func(s *Store) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.hashCost = cost
		}
	}
}

// NewStore creates a credential store on top of kv
func NewStore(kv KeyValue, opts ...Option) *Store {
	s := &Store{kv: kv, hashCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register appends a new record. The identifier match is exact and
// case-sensitive. A failed call leaves the persisted list untouched.
func (s *Store) Register(identifier, secret string) (CredentialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return CredentialRecord{}, err
	}
	if _, ok := find(records, identifier); ok {
		return CredentialRecord{}, ErrDuplicateIdentifier
	}

	hash, err := bcrypt.GenerateFromPassword(prehash(secret), s.hashCost)
	if err != nil {
		return CredentialRecord{}, fmt.Errorf("hash secret: %w", err)
	}

	record := CredentialRecord{
		ID:          uuid.NewString(),
		Identifier:  identifier,
		DisplayName: identifier,
		SecretHash:  string(hash),
		CreatedAt:   time.Now(),
	}
	if err := s.save(append(records, record)); err != nil {
		return CredentialRecord{}, err
	}
	return record, nil
}

// Verify returns the record matching both identifier and secret. Unknown
// identifiers and wrong secrets produce the same error.
func (s *Store) Verify(identifier, secret string) (CredentialRecord, error) {
	s.mu.Lock()
	records, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return CredentialRecord{}, err
	}

	record, ok := find(records, identifier)
	if !ok {
		// Spend the same time as a real comparison
		_ = bcrypt.CompareHashAndPassword(s.dummy(), prehash(secret))
		return CredentialRecord{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.SecretHash), prehash(secret)); err != nil {
		return CredentialRecord{}, ErrInvalidCredentials
	}
	return record, nil
}

// Count returns the number of registered records
func (s *Store) Count() (int, error) {
	records, err := s.Records()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Records returns all registered records in registration order
func (s *Store) Records() ([]CredentialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() ([]CredentialRecord, error) {
	raw, found, err := s.kv.Get(UsersKey)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if !found || raw == "" {
		return []CredentialRecord{}, nil
	}

	var records []CredentialRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	return records, nil
}

func (s *Store) save(records []CredentialRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := s.kv.Set(UsersKey, string(data)); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (s *Store) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword(prehash("edu-messenger-dummy"), s.hashCost)
	})
	return s.dummyHash
}

// prehash condenses the secret to 44 bytes so bcrypt's 72-byte input limit
// never truncates or rejects it
func prehash(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func find(records []CredentialRecord, identifier string) (CredentialRecord, bool) {
	for _, record := range records {
		if record.Identifier == identifier {
			return record, true
		}
	}
	return CredentialRecord{}, false
}
