package syllabus

import (
	"context"

	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/record"
)

// Service is the scoped record manager for syllabus entries. The
// lastUpdated timestamp is refreshed on every create and update.
type Service struct {
	mgr *record.Manager[Entry]
}

func NewService(store core.RecordStore) *Service {
	return &Service{mgr: record.NewManager[Entry](store, Collection, "lastUpdated")}
}

func (svc *Service) List(ctx context.Context, scopeKey string) ([]Entry, error) {
	return svc.mgr.List(ctx, scopeKey)
}

func (svc *Service) Create(ctx context.Context, scopeKey string, ne NewEntry) (Entry, error) {
	if err := ne.Validate(); err != nil {
		return Entry{}, err
	}
	return svc.mgr.Create(ctx, scopeKey, Entry{
		Subject:          ne.Subject,
		Topic:            ne.Topic,
		CompletionStatus: ne.CompletionStatus,
	})
}

func (svc *Service) Update(ctx context.Context, scopeKey, id string, ue UpdateEntry) error {
	if err := ue.Validate(); err != nil {
		return err
	}
	return svc.mgr.Update(ctx, scopeKey, id, ue)
}

func (svc *Service) Delete(ctx context.Context, scopeKey, id string) error {
	return svc.mgr.Delete(ctx, scopeKey, id)
}
