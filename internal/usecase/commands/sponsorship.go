package commands

import (
	"context"
	"log/slog"

	"sponsorship-api/internal/domain/sponsorship"
	"sponsorship-api/internal/infra"
	"sponsorship-api/internal/infra/db"
	"sponsorship-api/internal/pkg/clock"
	"sponsorship-api/internal/pkg/errs"
	"sponsorship-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProcessParams carries the admin's allocation decision for a pending
// request. The admin may override placement/slot/duration relative to what
// the requester asked for; the request only records the ask.
type ProcessParams struct {
	RequestID      uuid.UUID
	ProductID      string
	Placement      string
	SlotIndex      *int
	DurationDays   int
	AmountUSDCents *int64
	Note           *string
}

type ProcessResult struct {
	RequestID uuid.UUID
	GrantID   uuid.UUID
}

// SponsorshipCommands is the admin action processor: the state machine that
// turns a pending request into a grant, or marks it rejected, plus the
// unconditional grant delete.
type SponsorshipCommands interface {
	Process(ctx context.Context, params ProcessParams) (*ProcessResult, error)
	Reject(ctx context.Context, requestID uuid.UUID, note *string) error
	DeleteGrant(ctx context.Context, grantID uuid.UUID) error
}

type sponsorshipCommandsImpl struct {
	requests    RequestRepository
	grants      GrantRepository
	allocator   Allocator
	pool        *pgxpool.Pool
	clock       clock.Clock
	maxAttempts int
}

func NewSponsorshipCommands(
	requests RequestRepository,
	grants GrantRepository,
	allocator Allocator,
	pool *pgxpool.Pool,
	clk clock.Clock,
	maxAttempts int,
) SponsorshipCommands {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &sponsorshipCommandsImpl{
		requests:    requests,
		grants:      grants,
		allocator:   allocator,
		pool:        pool,
		clock:       clk,
		maxAttempts: maxAttempts,
	}
}

// Process allocates a grant and flips the request to processed in one
// transaction, so a created grant can never be orphaned by a failed status
// update. Only an overlap race retries; every retry replans against the
// then-current slot tail.
func (s *sponsorshipCommandsImpl) Process(ctx context.Context, params ProcessParams) (*ProcessResult, error) {
	var lastErr error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		result, err := shared.RunInTx(ctx, s.pool, func(tx db.DBTX) (*ProcessResult, error) {
			return s.processOnce(ctx, tx, params)
		})
		if err == nil {
			return result, nil
		}
		if !errs.Is(err, errs.ErrOverlapViolation) {
			return nil, err
		}
		lastErr = err
		slog.Warn("request processing lost a slot race, recomputing",
			"request_id", params.RequestID,
			"attempt", attempt+1)
	}

	return nil, errs.Mark(lastErr, errs.ErrOverlapViolation)
}

func (s *sponsorshipCommandsImpl) processOnce(ctx context.Context, tx db.DBTX, params ProcessParams) (*ProcessResult, error) {
	request, err := s.requests.FindByIDForUpdate(ctx, tx, params.RequestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrRequestNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !request.IsPending() {
		return nil, errs.ErrAlreadyProcessed
	}

	grant, err := s.allocator.AllocateIn(ctx, tx, AllocateParams{
		Placement:      params.Placement,
		SlotIndex:      params.SlotIndex,
		DurationDays:   params.DurationDays,
		ProductID:      params.ProductID,
		AmountUSDCents: params.AmountUSDCents,
		Source:         sponsorship.SourceManual,
	})
	if err != nil {
		return nil, err
	}

	noteValue := ""
	if params.Note != nil {
		noteValue = *params.Note
	}
	if err := request.MarkProcessed(grant.ID(), sponsorship.NewNote(noteValue), s.clock.Now()); err != nil {
		return nil, errs.Mark(err, errs.ErrAlreadyProcessed)
	}
	if err := s.requests.SaveOutcome(ctx, tx, request); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &ProcessResult{RequestID: request.ID(), GrantID: grant.ID()}, nil
}

func (s *sponsorshipCommandsImpl) Reject(ctx context.Context, requestID uuid.UUID, note *string) error {
	_, err := shared.RunInTx(ctx, s.pool, func(tx db.DBTX) (struct{}, error) {
		request, err := s.requests.FindByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return struct{}{}, errs.Mark(err, errs.ErrRequestNotFound)
			}
			return struct{}{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		noteValue := ""
		if note != nil {
			noteValue = *note
		}
		if err := request.MarkRejected(sponsorship.NewNote(noteValue), s.clock.Now()); err != nil {
			return struct{}{}, errs.Mark(err, errs.ErrAlreadyProcessed)
		}

		if err := s.requests.SaveOutcome(ctx, tx, request); err != nil {
			return struct{}{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return struct{}{}, nil
	})
	return err
}

// DeleteGrant removes a grant without rescheduling anything else in the
// slot; later grants were planned against the tail known at their own
// allocation time.
func (s *sponsorshipCommandsImpl) DeleteGrant(ctx context.Context, grantID uuid.UUID) error {
	_, err := shared.RunInTx(ctx, s.pool, func(tx db.DBTX) (struct{}, error) {
		if err := s.grants.Delete(ctx, tx, grantID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return struct{}{}, errs.Mark(err, errs.ErrGrantNotFound)
			}
			return struct{}{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return struct{}{}, nil
	})
	return err
}
