package market

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/dgraph-io/badger/v3"
)

var salePrefix = []byte("sale:")

// BadgerSaleStore persists listings in a badger database.
type BadgerSaleStore struct {
	db *badger.DB
}

// Compile-time interface check.
var _ SaleStore = (*BadgerSaleStore)(nil)

// OpenBadgerSaleStore opens or creates the badger database at path.
func OpenBadgerSaleStore(path string) (*BadgerSaleStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("market: open badger db: %w", err)
	}
	return &BadgerSaleStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BadgerSaleStore) Close() error { return s.db.Close() }

func saleKeyBytes(key string) []byte {
	return append(salePrefix[:len(salePrefix):len(salePrefix)], key...)
}

func encodeSale(sale *Sale) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(sale); err != nil {
		return nil, fmt.Errorf("badgerstore: encode sale: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeSale(data []byte) (*Sale, error) {
	var sale Sale
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&sale); err != nil {
		return nil, fmt.Errorf("badgerstore: decode sale: %w", err)
	}
	return &sale, nil
}

// GetSale returns the listing stored under key.
func (s *BadgerSaleStore) GetSale(key string) (*Sale, error) {
	var sale *Sale
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(saleKeyBytes(key))
		if err == badger.ErrKeyNotFound {
			return ErrSaleNotFound
		} else if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			sale, err = decodeSale(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// PutSale stores or replaces the listing under key.
func (s *BadgerSaleStore) PutSale(key string, sale *Sale) error {
	data, err := encodeSale(sale)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(saleKeyBytes(key), data)
	})
}

// DeleteSale removes and returns the listing under key. Read and delete
// happen in one transaction, so a sale is handed out at most once.
func (s *BadgerSaleStore) DeleteSale(key string) (*Sale, error) {
	var sale *Sale
	err := s.db.Update(func(txn *badger.Txn) error {
		k := saleKeyBytes(key)
		item, err := txn.Get(k)
		if err == badger.ErrKeyNotFound {
			return ErrSaleNotFound
		} else if err != nil {
			return err
		}
		err = item.Value(func(val []byte) error {
			sale, err = decodeSale(val)
			return err
		})
		if err != nil {
			return err
		}
		return txn.Delete(k)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// SaleCount returns the number of active listings.
func (s *BadgerSaleStore) SaleCount() (int, error) {
	var n int
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = salePrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
