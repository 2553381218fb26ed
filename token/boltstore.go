package token

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/tokenmart/libtokenmart-go/event"
)

var (
	bucketTokens = []byte("tokens")
	bucketOwners = []byte("owners")
	bucketEvents = []byte("events")
)

// ownerKeySep joins owner and token id in the owner-index bucket. Zero
// byte so it cannot collide with account id characters.
const ownerKeySep = byte(0)

// BoltStore persists token records, the per-owner index and the event
// log in a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface checks.
var (
	_ Store      = (*BoltStore)(nil)
	_ event.Sink = (*BoltStore)(nil)
)

// OpenBoltStore opens or creates the bbolt database at dbPath. The
// parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("token: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("token: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketTokens, bucketOwners, bucketEvents} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("token: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

func encodeToken(t *Token) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(t); err != nil {
		return nil, fmt.Errorf("boltstore: encode token: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeToken(data []byte) (*Token, error) {
	var t Token
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&t); err != nil {
		return nil, fmt.Errorf("boltstore: decode token: %w", err)
	}
	if t.ApprovedAccountIDs == nil {
		t.ApprovedAccountIDs = make(map[AccountID]uint64)
	}
	return &t, nil
}

func ownerKey(account AccountID, id TokenID) []byte {
	k := make([]byte, 0, len(account)+1+len(id))
	k = append(k, account...)
	k = append(k, ownerKeySep)
	k = append(k, id...)
	return k
}

func ownerPrefix(account AccountID) []byte {
	return append([]byte(account), ownerKeySep)
}

// GetToken returns the record for id.
func (s *BoltStore) GetToken(id TokenID) (*Token, error) {
	var t *Token
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTokens).Get([]byte(id))
		if data == nil {
			return ErrTokenNotFound
		}
		var err error
		t, err = decodeToken(data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// PutToken replaces the record for t.TokenID.
func (s *BoltStore) PutToken(t *Token) error {
	data, err := encodeToken(t)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTokens).Put([]byte(t.TokenID), data)
	})
}

// CreateToken stores a new record and indexes it under its owner.
func (s *BoltStore) CreateToken(t *Token) error {
	data, err := encodeToken(t)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		tb := tx.Bucket(bucketTokens)
		if tb.Get([]byte(t.TokenID)) != nil {
			return ErrTokenExists
		}
		if err := tb.Put([]byte(t.TokenID), data); err != nil {
			return fmt.Errorf("boltstore: put token: %w", err)
		}
		return tx.Bucket(bucketOwners).Put(ownerKey(t.OwnerID, t.TokenID), nil)
	})
}

// TransferToken re-records t under its new owner and moves the index
// entry from `from`. One transaction, so a failure rolls the record
// and both index entries back together.
func (s *BoltStore) TransferToken(from AccountID, t *Token) error {
	data, err := encodeToken(t)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		tb := tx.Bucket(bucketTokens)
		if tb.Get([]byte(t.TokenID)) == nil {
			return ErrTokenNotFound
		}
		if err := tb.Put([]byte(t.TokenID), data); err != nil {
			return fmt.Errorf("boltstore: put token: %w", err)
		}
		ob := tx.Bucket(bucketOwners)
		if err := ob.Delete(ownerKey(from, t.TokenID)); err != nil {
			return fmt.Errorf("boltstore: drop owner index: %w", err)
		}
		return ob.Put(ownerKey(t.OwnerID, t.TokenID), nil)
	})
}

// TokenCount returns the total number of tokens.
func (s *BoltStore) TokenCount() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketTokens).Stats().KeyN
		return nil
	})
	return n, err
}

// ListTokens returns a page of token ids in key order.
func (s *BoltStore) ListTokens(from, limit int) ([]TokenID, error) {
	var ids []TokenID
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketTokens).Cursor()
		i := 0
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if i >= from {
				ids = append(ids, TokenID(k))
				if limit > 0 && len(ids) >= limit {
					break
				}
			}
			i++
		}
		return nil
	})
	return ids, err
}

// OwnerTokenCount returns how many tokens account owns.
func (s *BoltStore) OwnerTokenCount(account AccountID) (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketOwners).Cursor()
		prefix := ownerPrefix(account)
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// ListOwnerTokens returns a page of account's token ids in key order.
func (s *BoltStore) ListOwnerTokens(account AccountID, from, limit int) ([]TokenID, error) {
	var ids []TokenID
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketOwners).Cursor()
		prefix := ownerPrefix(account)
		i := 0
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			if i >= from {
				ids = append(ids, TokenID(k[len(prefix):]))
				if limit > 0 && len(ids) >= limit {
					break
				}
			}
			i++
		}
		return nil
	})
	return ids, err
}

// Append writes a log entry to the events bucket under the next
// sequence number.
func (s *BoltStore) Append(l *event.Log) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		eb := tx.Bucket(bucketEvents)
		seq, err := eb.NextSequence()
		if err != nil {
			return fmt.Errorf("boltstore: event sequence: %w", err)
		}
		k := make([]byte, 8)
		binary.BigEndian.PutUint64(k, seq)
		return eb.Put(k, []byte(l.String()))
	})
}

// Events returns every logged entry in append order, in wire form.
func (s *BoltStore) Events() ([]string, error) {
	var out []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketEvents).ForEach(func(_, v []byte) error {
			out = append(out, string(v))
			return nil
		})
	})
	return out, err
}
