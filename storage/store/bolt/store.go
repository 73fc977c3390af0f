// Package boltstore provides an embedded file-backed core.RecordStore.
// Each collection maps to a bucket; documents are stored as JSON under
// uuid keys, carrying the bucket sequence number assigned at insert so
// queries can replay insertion order.
package boltstore

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/boltdb/bolt"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/walimu/core"
)

type Store struct {
	db *bolt.DB
}

var _ core.RecordStore = (*Store)(nil)

// envelope wraps stored fields with the insertion sequence. Bucket cursors
// walk keys in byte order, which is meaningless for uuid keys.
type envelope struct {
	Seq    uint64      `json:"seq"`
	Fields core.Fields `json:"fields"`
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "opening bolt db")
	}
	return &Store{db: db}, nil
}

func (s *Store) Insert(_ context.Context, coll string, fields core.Fields) (string, error) {
	id := uuid.New().String()
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(coll))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(envelope{Seq: seq, Fields: fields})
		if err != nil {
			return err
		}
		return b.Put([]byte(id), data)
	})
	if err != nil {
		return "", errors.Wrapf(err, "inserting into %s", coll)
	}
	return id, nil
}

func (s *Store) Get(_ context.Context, coll, id string) (core.Fields, error) {
	var env envelope
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(coll))
		if b == nil {
			return core.ErrRecordNotFound
		}
		data := b.Get([]byte(id))
		if data == nil {
			return core.ErrRecordNotFound
		}
		return json.Unmarshal(data, &env)
	})
	if err != nil {
		if err == core.ErrRecordNotFound {
			return nil, err
		}
		return nil, errors.Wrapf(err, "fetching from %s", coll)
	}
	return env.Fields, nil
}

func (s *Store) Query(_ context.Context, coll string, terms ...core.Eq) ([]core.Document, error) {
	type ordered struct {
		seq uint64
		doc core.Document
	}
	matches := make([]ordered, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(coll))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var env envelope
			if err := json.Unmarshal(data, &env); err != nil {
				return err
			}
			if core.Match(env.Fields, terms) {
				matches = append(matches, ordered{seq: env.Seq, doc: core.Document{ID: string(id), Fields: env.Fields}})
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", coll)
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].seq < matches[j].seq })
	docs := make([]core.Document, 0, len(matches))
	for _, m := range matches {
		docs = append(docs, m.doc)
	}
	return docs, nil
}

func (s *Store) Update(_ context.Context, coll, id string, fields core.Fields) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(coll))
		if b == nil {
			return core.ErrRecordNotFound
		}
		data := b.Get([]byte(id))
		if data == nil {
			return core.ErrRecordNotFound
		}
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return err
		}
		for k, v := range fields {
			env.Fields[k] = v
		}
		merged, err := json.Marshal(env)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), merged)
	})
	if err == core.ErrRecordNotFound {
		return err
	}
	return errors.Wrapf(err, "updating %s", coll)
}

func (s *Store) Delete(_ context.Context, coll, id string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(coll))
		if b == nil {
			return nil // nothing to delete
		}
		return b.Delete([]byte(id))
	})
	return errors.Wrapf(err, "deleting from %s", coll)
}

func (s *Store) Close() error { return s.db.Close() }
