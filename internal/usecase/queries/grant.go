package queries

import (
	"context"
	"time"

	"sponsorship-api/internal/domain/placement"
	"sponsorship-api/internal/infra"
	"sponsorship-api/internal/pkg/clock"
	"sponsorship-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type GrantReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*GrantView, error)
	ActiveAt(ctx context.Context, pl placement.Placement, slotIndex int, at time.Time) (*GrantView, error)
	ListBySlot(ctx context.Context, pl placement.Placement, slotIndex int) ([]*GrantView, error)
}

// GrantQueries serves the rendering layer and the admin console. Current is
// on the home-page hot path: one store read, nil when the slot is vacant.
type GrantQueries interface {
	Current(ctx context.Context, placementValue string, slotIndex int, at *time.Time) (*GrantView, error)
	ListBySlot(ctx context.Context, placementValue string, slotIndex int) ([]*GrantView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*GrantView, error)
}

type grantQueriesImpl struct {
	store GrantReadStore
	clock clock.Clock
}

func NewGrantQueries(store GrantReadStore, clk clock.Clock) GrantQueries {
	return &grantQueriesImpl{store: store, clock: clk}
}

func (q *grantQueriesImpl) Current(ctx context.Context, placementValue string, slotIndex int, at *time.Time) (*GrantView, error) {
	pl, err := placement.New(placementValue)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSlot)
	}
	if err := pl.ValidateSlot(slotIndex); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSlot)
	}

	instant := q.clock.Now()
	if at != nil {
		instant = *at
	}

	view, err := q.store.ActiveAt(ctx, pl, slotIndex, instant)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Vacant slot, not an error
			return nil, nil
		}
		return nil, err
	}
	return view, nil
}

func (q *grantQueriesImpl) ListBySlot(ctx context.Context, placementValue string, slotIndex int) ([]*GrantView, error) {
	pl, err := placement.New(placementValue)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSlot)
	}
	if err := pl.ValidateSlot(slotIndex); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSlot)
	}

	return q.store.ListBySlot(ctx, pl, slotIndex)
}

func (q *grantQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*GrantView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrGrantNotFound)
		}
		return nil, err
	}
	return view, nil
}
