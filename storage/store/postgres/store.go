// Package pgstore provides a PostgreSQL-backed core.RecordStore. All
// collections share one table; documents live in a JSONB column and
// equality terms are pushed down with the containment operator.
package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/pkg/errors"

	"github.com/trezcool/walimu/core"
)

type Store struct {
	db *sqlx.DB
}

var _ core.RecordStore = (*Store)(nil)

func Open(url string) (*Store, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}
	return &Store{db: db}, nil
}

// OpenDB wraps an existing connection, for the migration CLI and tests.
func OpenDB(db *sql.DB) *Store {
	return &Store{db: sqlx.NewDb(db, "postgres")}
}

func (s *Store) DB() *sql.DB { return s.db.DB }

func (s *Store) Insert(ctx context.Context, coll string, fields core.Fields) (string, error) {
	id := uuid.New().String()
	data, err := json.Marshal(fields)
	if err != nil {
		return "", errors.Wrap(err, "encoding fields")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO record (id, collection, fields) VALUES ($1, $2, $3)`,
		id, coll, data,
	)
	if err != nil {
		return "", errors.Wrapf(err, "inserting into %s", coll)
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, coll, id string) (core.Fields, error) {
	var data []byte
	err := s.db.QueryRowxContext(ctx,
		`SELECT fields FROM record WHERE collection = $1 AND id = $2`,
		coll, id,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, core.ErrRecordNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "fetching from %s", coll)
	}
	var fields core.Fields
	if err = json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrap(err, "decoding fields")
	}
	return fields, nil
}

func (s *Store) Query(ctx context.Context, coll string, terms ...core.Eq) ([]core.Document, error) {
	match := make(core.Fields, len(terms))
	for _, term := range terms {
		match[term.Field] = term.Value
	}
	filter, err := json.Marshal(match)
	if err != nil {
		return nil, errors.Wrap(err, "encoding terms")
	}

	rows, err := s.db.QueryxContext(ctx,
		`SELECT id, fields FROM record WHERE collection = $1 AND fields @> $2 ORDER BY seq`,
		coll, filter,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", coll)
	}
	defer rows.Close()

	docs := make([]core.Document, 0)
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err = rows.Scan(&id, &data); err != nil {
			return nil, errors.Wrapf(err, "scanning %s row", coll)
		}
		var fields core.Fields
		if err = json.Unmarshal(data, &fields); err != nil {
			return nil, errors.Wrap(err, "decoding fields")
		}
		docs = append(docs, core.Document{ID: id, Fields: fields})
	}
	return docs, errors.Wrapf(rows.Err(), "iterating %s rows", coll)
}

func (s *Store) Update(ctx context.Context, coll, id string, fields core.Fields) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return errors.Wrap(err, "encoding fields")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE record SET fields = fields || $3 WHERE collection = $1 AND id = $2`,
		coll, id, data,
	)
	if err != nil {
		return errors.Wrapf(err, "updating %s", coll)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrRecordNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, coll, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM record WHERE collection = $1 AND id = $2`,
		coll, id,
	)
	return errors.Wrapf(err, "deleting from %s", coll)
}

func (s *Store) Close() error { return s.db.Close() }
