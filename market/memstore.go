package market

import (
	"math/big"
	"sync"
)

// MemSaleStore is an in-memory SaleStore for tests and embedding.
type MemSaleStore struct {
	mu    sync.RWMutex
	sales map[string]*Sale
}

// Compile-time interface check.
var _ SaleStore = (*MemSaleStore)(nil)

// NewMemSaleStore creates an empty in-memory sale store.
func NewMemSaleStore() *MemSaleStore {
	return &MemSaleStore{sales: make(map[string]*Sale)}
}

func cloneSale(s *Sale) *Sale {
	c := *s
	c.Price = new(big.Int).Set(s.Price)
	return &c
}

// GetSale returns the listing stored under key.
func (s *MemSaleStore) GetSale(key string) (*Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sale, ok := s.sales[key]
	if !ok {
		return nil, ErrSaleNotFound
	}
	return cloneSale(sale), nil
}

// PutSale stores or replaces the listing under key.
func (s *MemSaleStore) PutSale(key string, sale *Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales[key] = cloneSale(sale)
	return nil
}

// DeleteSale removes and returns the listing under key.
func (s *MemSaleStore) DeleteSale(key string) (*Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale, ok := s.sales[key]
	if !ok {
		return nil, ErrSaleNotFound
	}
	delete(s.sales, key)
	return sale, nil
}

// SaleCount returns the number of active listings.
func (s *MemSaleStore) SaleCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sales), nil
}
