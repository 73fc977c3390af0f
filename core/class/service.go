package class

import (
	"context"

	"github.com/trezcool/walimu/core"
	"github.com/trezcool/walimu/core/record"
)

// Service is the scoped record manager for class sessions.
type Service struct {
	mgr *record.Manager[Session]
}

func NewService(store core.RecordStore) *Service {
	return &Service{mgr: record.NewManager[Session](store, Collection, "" /* no timestamp field */)}
}

func (svc *Service) List(ctx context.Context, scopeKey string) ([]Session, error) {
	return svc.mgr.List(ctx, scopeKey)
}

func (svc *Service) Create(ctx context.Context, scopeKey string, ns NewSession) (Session, error) {
	if err := ns.Validate(); err != nil {
		return Session{}, err
	}
	return svc.mgr.Create(ctx, scopeKey, Session{
		Subject:         ns.Subject,
		Date:            ns.Date,
		Period:          ns.Period,
		AttendanceCount: ns.AttendanceCount,
		TopicsCovered:   ns.TopicsCovered,
	})
}

func (svc *Service) Update(ctx context.Context, scopeKey, id string, us UpdateSession) error {
	if err := us.Validate(); err != nil {
		return err
	}
	return svc.mgr.Update(ctx, scopeKey, id, us)
}

func (svc *Service) Delete(ctx context.Context, scopeKey, id string) error {
	return svc.mgr.Delete(ctx, scopeKey, id)
}
