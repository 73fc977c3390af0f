package document

import (
	"context"

	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/record"
)

// Service is the scoped record manager for documents. The upload date is
// refreshed on every create and update.
type Service struct {
	mgr *record.Manager[Document]
}

func NewService(store core.RecordStore) *Service {
	return &Service{mgr: record.NewManager[Document](store, Collection, "uploadDate")}
}

func (svc *Service) List(ctx context.Context, scopeKey string) ([]Document, error) {
	return svc.mgr.List(ctx, scopeKey)
}

func (svc *Service) Create(ctx context.Context, scopeKey string, nd NewDocument) (Document, error) {
	if err := nd.Validate(); err != nil {
		return Document{}, err
	}
	return svc.mgr.Create(ctx, scopeKey, Document{
		Title:       nd.Title,
		Type:        nd.Type,
		Description: nd.Description,
		URL:         nd.URL,
	})
}

func (svc *Service) Update(ctx context.Context, scopeKey, id string, ud UpdateDocument) error {
	if err := ud.Validate(); err != nil {
		return err
	}
	return svc.mgr.Update(ctx, scopeKey, id, ud)
}

func (svc *Service) Delete(ctx context.Context, scopeKey, id string) error {
	return svc.mgr.Delete(ctx, scopeKey, id)
}
