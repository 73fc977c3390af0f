// Package inmemstore provides a map-backed core.RecordStore for tests and
// local development.
package inmemstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/walimu/core"
)

type collection struct {
	order []string // insertion order
	docs  map[string]core.Fields
}

type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

var _ core.RecordStore = (*Store)(nil)

func Open() *Store {
	return &Store{collections: make(map[string]*collection)}
}

func (s *Store) Insert(_ context.Context, coll string, fields core.Fields) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[coll]
	if !ok {
		c = &collection{docs: make(map[string]core.Fields)}
		s.collections[coll] = c
	}
	id := uuid.New().String()
	c.docs[id] = clone(fields)
	c.order = append(c.order, id)
	return id, nil
}

func (s *Store) Get(_ context.Context, coll, id string) (core.Fields, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.collections[coll]; ok {
		if fields, ok := c.docs[id]; ok {
			return clone(fields), nil
		}
	}
	return nil, core.ErrRecordNotFound
}

func (s *Store) Query(_ context.Context, coll string, terms ...core.Eq) ([]core.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]core.Document, 0)
	c, ok := s.collections[coll]
	if !ok {
		return docs, nil
	}
	for _, id := range c.order {
		fields, ok := c.docs[id]
		if !ok {
			continue // deleted
		}
		if core.Match(fields, terms) {
			docs = append(docs, core.Document{ID: id, Fields: clone(fields)})
		}
	}
	return docs, nil
}

func (s *Store) Update(_ context.Context, coll, id string, fields core.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[coll]
	if !ok {
		return core.ErrRecordNotFound
	}
	doc, ok := c.docs[id]
	if !ok {
		return core.ErrRecordNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (s *Store) Delete(_ context.Context, coll, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.collections[coll]; ok {
		delete(c.docs, id)
	}
	return nil
}

func (s *Store) Close() error { return nil }

func clone(fields core.Fields) core.Fields {
	cp := make(core.Fields, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return cp
}
