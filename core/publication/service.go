package publication

import (
	"context"

	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/record"
)

// Service is the scoped record manager for publications. The publish date
// is refreshed on every create and update.
type Service struct {
	mgr *record.Manager[Publication]
}

func NewService(store core.RecordStore) *Service {
	return &Service{mgr: record.NewManager[Publication](store, Collection, "publishDate")}
}

func (svc *Service) List(ctx context.Context, scopeKey string) ([]Publication, error) {
	return svc.mgr.List(ctx, scopeKey)
}

func (svc *Service) Create(ctx context.Context, scopeKey string, np NewPublication) (Publication, error) {
	if err := np.Validate(); err != nil {
		return Publication{}, err
	}
	return svc.mgr.Create(ctx, scopeKey, Publication{
		Title:       np.Title,
		Type:        np.Type,
		Description: np.Description,
		URL:         np.URL,
	})
}

func (svc *Service) Update(ctx context.Context, scopeKey, id string, up UpdatePublication) error {
	if err := up.Validate(); err != nil {
		return err
	}
	return svc.mgr.Update(ctx, scopeKey, id, up)
}

func (svc *Service) Delete(ctx context.Context, scopeKey, id string) error {
	return svc.mgr.Delete(ctx, scopeKey, id)
}
