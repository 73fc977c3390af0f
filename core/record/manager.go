// Package record implements the scoped record manager pattern shared by all
// teacher-owned collections (classes, documents, syllabus, publications).
// Every operation is narrowed to a resolved scope key: a manager never
// returns or mutates a record whose teacherId differs from the caller's key.
package record

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/walimu/core"
)

// KeyField is the foreign reference every owned record carries to its
// teacher record id.
const KeyField = "teacherId"

// NowFunc is mockable in tests.
var NowFunc = time.Now

// Manager performs list/create/update/delete on one owned collection,
// parameterized by the record shape T. T's json tags name the store fields;
// the `id` and `teacherId` fields are managed here and never client-set.
type Manager[T any] struct {
	store          core.RecordStore
	collection     string
	timestampField string // refreshed on create/update; "" for none
}

func NewManager[T any](store core.RecordStore, collection, timestampField string) *Manager[T] {
	return &Manager[T]{store: store, collection: collection, timestampField: timestampField}
}

// List returns all records owned by scopeKey, in the store's insertion
// order. An empty scope key means "no data", not an error.
func (m *Manager[T]) List(ctx context.Context, scopeKey string) ([]T, error) {
	if scopeKey == "" {
		return []T{}, nil
	}
	docs, err := m.store.Query(ctx, m.collection, core.Eq{Field: KeyField, Value: scopeKey})
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", m.collection)
	}
	recs := make([]T, 0, len(docs))
	for _, doc := range docs {
		rec, err := decode[T](doc.ID, doc.Fields)
		if err != nil {
			// stored data that no longer decodes into its declared shape
			// means the database is damaged; stop serving
			return nil, core.NewShutdownError("corrupt " + m.collection + " record " + doc.ID + ": " + err.Error())
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Create stamps the record with the caller's scope key (and a fresh
// timestamp where the collection declares one) and returns it with its
// newly assigned store id.
func (m *Manager[T]) Create(ctx context.Context, scopeKey string, rec T) (T, error) {
	var zero T
	fields, err := encode(rec)
	if err != nil {
		return zero, errors.Wrapf(err, "encoding %s record", m.collection)
	}
	delete(fields, "id")
	fields[KeyField] = scopeKey
	m.stampTimestamp(fields)

	id, err := m.store.Insert(ctx, m.collection, fields)
	if err != nil {
		return zero, errors.Wrapf(err, "inserting into %s", m.collection)
	}
	return decode[T](id, fields)
}

// Update overwrites the editable fields carried by patch, provided scopeKey
// owns the record; the record id and teacherId are stripped and can never
// change.
func (m *Manager[T]) Update(ctx context.Context, scopeKey, id string, patch interface{}) error {
	if err := m.checkOwner(ctx, scopeKey, id); err != nil {
		return err
	}
	fields, err := encode(patch)
	if err != nil {
		return errors.Wrapf(err, "encoding %s patch", m.collection)
	}
	delete(fields, "id")
	delete(fields, KeyField)
	m.stampTimestamp(fields)
	return errors.Wrapf(m.store.Update(ctx, m.collection, id, fields), "updating %s", m.collection)
}

// Delete removes an owned record by id. Deleting an already-deleted id is
// tolerated; a record held by another teacher is left untouched.
func (m *Manager[T]) Delete(ctx context.Context, scopeKey, id string) error {
	if err := m.checkOwner(ctx, scopeKey, id); err != nil {
		if errors.Cause(err) == core.ErrRecordNotFound {
			return nil
		}
		return err
	}
	return errors.Wrapf(m.store.Delete(ctx, m.collection, id), "deleting from %s", m.collection)
}

// checkOwner reports core.ErrRecordNotFound both for an absent record and
// for one held by another teacher, so foreign ids are indistinguishable from
// unknown ones.
func (m *Manager[T]) checkOwner(ctx context.Context, scopeKey, id string) error {
	if scopeKey == "" {
		return core.ErrRecordNotFound
	}
	fields, err := m.store.Get(ctx, m.collection, id)
	if err != nil {
		if errors.Cause(err) == core.ErrRecordNotFound {
			return err
		}
		return errors.Wrapf(err, "fetching from %s", m.collection)
	}
	if owner, _ := fields[KeyField].(string); owner != scopeKey {
		return core.ErrRecordNotFound
	}
	return nil
}

func (m *Manager[T]) stampTimestamp(fields core.Fields) {
	if m.timestampField != "" {
		fields[m.timestampField] = NowFunc().UTC().Format(time.RFC3339)
	}
}

func encode(rec interface{}) (core.Fields, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var fields core.Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func decode[T any](id string, fields core.Fields) (T, error) {
	var rec T
	body := make(core.Fields, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["id"] = id
	data, err := json.Marshal(body)
	if err != nil {
		return rec, err
	}
	err = json.Unmarshal(data, &rec)
	return rec, err
}
