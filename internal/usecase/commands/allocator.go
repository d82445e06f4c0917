package commands

import (
	"context"
	"log/slog"

	"sponsorship-api/internal/domain/placement"
	"sponsorship-api/internal/domain/sponsorship"
	"sponsorship-api/internal/infra"
	"sponsorship-api/internal/infra/db"
	"sponsorship-api/internal/pkg/clock"
	"sponsorship-api/internal/pkg/errs"
	"sponsorship-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AllocateParams describes one allocation ask. SlotIndex nil means "any
// available slot in the placement".
type AllocateParams struct {
	Placement      string
	SlotIndex      *int
	DurationDays   int
	ProductID      string
	AmountUSDCents *int64
	Source         sponsorship.GrantSource
}

// Allocator turns an allocation ask into a committed grant. Scheduling is
// FIFO-by-tail: the new window starts at max(now, slot tail), so a busy slot
// defers the grant instead of rejecting it. The commit relies on the grant
// store's overlap re-validation; on a lost race the whole computation is
// retried against fresh state, a bounded number of times.
type Allocator interface {
	// Allocate runs the allocation in its own transaction (checkout path).
	Allocate(ctx context.Context, params AllocateParams) (uuid.UUID, error)
	// AllocateIn runs a single attempt inside the caller's transaction; the
	// caller owns the retry loop (admin process path).
	AllocateIn(ctx context.Context, tx db.DBTX, params AllocateParams) (*sponsorship.Grant, error)
}

type allocatorImpl struct {
	grants      GrantRepository
	pool        *pgxpool.Pool
	clock       clock.Clock
	maxAttempts int
}

func NewAllocator(grants GrantRepository, pool *pgxpool.Pool, clk clock.Clock, maxAttempts int) Allocator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &allocatorImpl{
		grants:      grants,
		pool:        pool,
		clock:       clk,
		maxAttempts: maxAttempts,
	}
}

func (a *allocatorImpl) Allocate(ctx context.Context, params AllocateParams) (uuid.UUID, error) {
	var lastErr error
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		grant, err := shared.RunInTx(ctx, a.pool, func(tx db.DBTX) (*sponsorship.Grant, error) {
			return a.AllocateIn(ctx, tx, params)
		})
		if err == nil {
			return grant.ID(), nil
		}
		if !errs.Is(err, errs.ErrOverlapViolation) {
			return uuid.Nil, err
		}
		lastErr = err
		slog.Warn("allocation lost a slot race, recomputing",
			"placement", params.Placement,
			"attempt", attempt+1)
	}

	return uuid.Nil, errs.Mark(lastErr, errs.ErrOverlapViolation)
}

func (a *allocatorImpl) AllocateIn(ctx context.Context, tx db.DBTX, params AllocateParams) (*sponsorship.Grant, error) {
	pl, slotIndex, duration, product, err := a.validate(params)
	if err != nil {
		return nil, err
	}

	now := a.clock.Now()

	var choice sponsorship.SlotChoice
	if slotIndex != nil {
		tail, err := a.grants.SlotTail(ctx, tx, pl, *slotIndex)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		choice = sponsorship.SlotChoice{
			SlotIndex: *slotIndex,
			Window:    sponsorship.PlanWindow(now, tail, duration),
		}
	} else {
		tails, err := a.grants.SlotTails(ctx, tx, pl)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		choice = sponsorship.ChooseSlot(pl, now, tails, duration)
	}

	grant, err := sponsorship.NewGrant(pl, choice.SlotIndex, choice.Window, product, params.Source, params.AmountUSDCents)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSlot)
	}

	if _, err := a.grants.Insert(ctx, tx, grant); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, errs.ErrOverlapViolation)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return grant, nil
}

func (a *allocatorImpl) validate(params AllocateParams) (placement.Placement, *int, sponsorship.Duration, sponsorship.ProductRef, error) {
	pl, err := placement.New(params.Placement)
	if err != nil {
		return "", nil, sponsorship.Duration{}, sponsorship.ProductRef{}, errs.Mark(err, errs.ErrInvalidSlot)
	}
	if params.SlotIndex != nil {
		if err := pl.ValidateSlot(*params.SlotIndex); err != nil {
			return "", nil, sponsorship.Duration{}, sponsorship.ProductRef{}, errs.Mark(err, errs.ErrInvalidSlot)
		}
	}

	duration, err := sponsorship.NewDuration(params.DurationDays)
	if err != nil {
		return "", nil, sponsorship.Duration{}, sponsorship.ProductRef{}, errs.Mark(err, errs.ErrInvalidDuration)
	}

	product, err := sponsorship.NewProductRef(params.ProductID)
	if err != nil {
		return "", nil, sponsorship.Duration{}, sponsorship.ProductRef{}, errs.Mark(err, errs.ErrInvalidProduct)
	}

	return pl, params.SlotIndex, duration, product, nil
}
