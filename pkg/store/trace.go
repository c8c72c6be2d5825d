// Package store persists sandbox execution traces in an embedded bbolt
// database, so a scenario run can be inspected or replayed later.
package store

import (
	"encoding/binary"
	"encoding/json"

	"github.com/go-faster/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/tonionlabs/ledgerkit/pkg/sandbox"
)

var traceBucket = []byte("transactions")

type TraceStore struct {
	db *bolt.DB
}

func Open(path string) (*TraceStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open trace db")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(traceBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create trace bucket")
	}
	return &TraceStore{db: db}, nil
}

func (s *TraceStore) Close() error {
	return s.db.Close()
}

// Append stores transactions in processing order after everything already
// persisted.
func (s *TraceStore) Append(txs []sandbox.Transaction) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(traceBucket)
		for _, t := range txs {
			seq, err := bucket.NextSequence()
			if err != nil {
				return errors.Wrap(err, "next sequence")
			}
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, seq)
			value, err := json.Marshal(t)
			if err != nil {
				return errors.Wrap(err, "marshal transaction")
			}
			if err := bucket.Put(key, value); err != nil {
				return errors.Wrap(err, "put transaction")
			}
		}
		return nil
	})
}

// Load returns the full persisted trace in order.
func (s *TraceStore) Load() ([]sandbox.Transaction, error) {
	var txs []sandbox.Transaction
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(traceBucket).ForEach(func(k, v []byte) error {
			var t sandbox.Transaction
			if err := json.Unmarshal(v, &t); err != nil {
				return errors.Wrap(err, "unmarshal transaction")
			}
			txs = append(txs, t)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return txs, nil
}
