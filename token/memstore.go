package token

import (
	"sort"
	"sync"
)

// MemStore is an in-memory Store for tests and embedding.
type MemStore struct {
	mu     sync.RWMutex
	tokens map[TokenID]*Token
	owners map[AccountID]map[TokenID]bool
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		tokens: make(map[TokenID]*Token),
		owners: make(map[AccountID]map[TokenID]bool),
	}
}

// clone copies a record so callers cannot alias store state.
func clone(t *Token) *Token {
	c := &Token{
		TokenID:            t.TokenID,
		OwnerID:            t.OwnerID,
		ApprovedAccountIDs: make(map[AccountID]uint64, len(t.ApprovedAccountIDs)),
		NextApprovalID:     t.NextApprovalID,
		Royalty:            make(map[AccountID]uint32, len(t.Royalty)),
	}
	for k, v := range t.ApprovedAccountIDs {
		c.ApprovedAccountIDs[k] = v
	}
	for k, v := range t.Royalty {
		c.Royalty[k] = v
	}
	return c
}

// GetToken returns the record for id.
func (s *MemStore) GetToken(id TokenID) (*Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tokens[id]
	if !ok {
		return nil, ErrTokenNotFound
	}
	return clone(t), nil
}

// PutToken replaces the record for t.TokenID.
func (s *MemStore) PutToken(t *Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[t.TokenID] = clone(t)
	return nil
}

// CreateToken stores a new record and indexes it under its owner.
func (s *MemStore) CreateToken(t *Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[t.TokenID]; ok {
		return ErrTokenExists
	}
	s.tokens[t.TokenID] = clone(t)
	s.addToOwner(t.OwnerID, t.TokenID)
	return nil
}

func (s *MemStore) addToOwner(account AccountID, id TokenID) {
	set := s.owners[account]
	if set == nil {
		set = make(map[TokenID]bool)
		s.owners[account] = set
	}
	set[id] = true
}

// TransferToken re-records t under its new owner and moves the index
// entry from `from`, under one lock.
func (s *MemStore) TransferToken(from AccountID, t *Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[t.TokenID]; !ok {
		return ErrTokenNotFound
	}
	set := s.owners[from]
	delete(set, t.TokenID)
	if len(set) == 0 {
		delete(s.owners, from)
	}
	s.addToOwner(t.OwnerID, t.TokenID)
	s.tokens[t.TokenID] = clone(t)
	return nil
}

// TokenCount returns the total number of tokens.
func (s *MemStore) TokenCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens), nil
}

// ListTokens returns a page of token ids in lexicographic order.
func (s *MemStore) ListTokens(from, limit int) ([]TokenID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]TokenID, 0, len(s.tokens))
	for id := range s.tokens {
		ids = append(ids, id)
	}
	return pageIDs(ids, from, limit), nil
}

// OwnerTokenCount returns how many tokens account owns.
func (s *MemStore) OwnerTokenCount(account AccountID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.owners[account]), nil
}

// ListOwnerTokens returns a page of account's token ids in
// lexicographic order.
func (s *MemStore) ListOwnerTokens(account AccountID, from, limit int) ([]TokenID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.owners[account]
	ids := make([]TokenID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return pageIDs(ids, from, limit), nil
}

func pageIDs(ids []TokenID, from, limit int) []TokenID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if from < 0 {
		from = 0
	}
	if from >= len(ids) {
		return nil
	}
	end := from + limit
	if limit <= 0 || end > len(ids) {
		end = len(ids)
	}
	return ids[from:end]
}
