package queries

import (
	"context"

	"sponsorship-api/internal/domain/sponsorship"
	"sponsorship-api/internal/infra"
	"sponsorship-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidStatusFilter = errs.New("invalid status filter")

type RequestReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	List(ctx context.Context, status *string) ([]*RequestView, error)
}

type RequestQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	List(ctx context.Context, status *string) ([]*RequestView, error)
}

type requestQueriesImpl struct {
	store RequestReadStore
}

func NewRequestQueries(store RequestReadStore) RequestQueries {
	return &requestQueriesImpl{store: store}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RequestView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrRequestNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *requestQueriesImpl) List(ctx context.Context, status *string) ([]*RequestView, error) {
	if status != nil && !sponsorship.RequestStatus(*status).IsValid() {
		return nil, ErrInvalidStatusFilter
	}
	return q.store.List(ctx, status)
}
