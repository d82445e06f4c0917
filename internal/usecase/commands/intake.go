package commands

import (
	"context"

	"sponsorship-api/internal/domain/placement"
	"sponsorship-api/internal/domain/sponsorship"
	"sponsorship-api/internal/infra/db"
	"sponsorship-api/internal/pkg/errs"
	"sponsorship-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInvalidRequester = errs.New("invalid requester email")

type SubmitRequestParams struct {
	RequesterEmail string
	ProductRef     string
	Placement      string
	SlotIndex      *int
	DurationDays   int
	Note           *string
}

// IntakeCommands accepts raw sponsorship asks from the public submission
// form and stores them as pending requests for later admin action.
type IntakeCommands interface {
	Submit(ctx context.Context, params SubmitRequestParams) (uuid.UUID, error)
}

type intakeCommandsImpl struct {
	requests RequestRepository
	pool     *pgxpool.Pool
}

func NewIntakeCommands(requests RequestRepository, pool *pgxpool.Pool) IntakeCommands {
	return &intakeCommandsImpl{
		requests: requests,
		pool:     pool,
	}
}

func (i *intakeCommandsImpl) Submit(ctx context.Context, params SubmitRequestParams) (uuid.UUID, error) {
	request, err := i.toDomain(params)
	if err != nil {
		return uuid.Nil, err
	}

	return shared.RunInTx(ctx, i.pool, func(tx db.DBTX) (uuid.UUID, error) {
		id, err := i.requests.Create(ctx, tx, request)
		if err != nil {
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return id, nil
	})
}

func (i *intakeCommandsImpl) toDomain(params SubmitRequestParams) (*sponsorship.Request, error) {
	pl, err := placement.New(params.Placement)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSlot)
	}
	if params.SlotIndex != nil {
		if err := pl.ValidateSlot(*params.SlotIndex); err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidSlot)
		}
	}

	duration, err := sponsorship.NewDuration(params.DurationDays)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDuration)
	}

	product, err := sponsorship.NewProductRef(params.ProductRef)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidProduct)
	}

	noteValue := ""
	if params.Note != nil {
		noteValue = *params.Note
	}

	request, err := sponsorship.NewRequest(
		params.RequesterEmail,
		product,
		pl,
		params.SlotIndex,
		duration,
		sponsorship.NewNote(noteValue),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRequester)
	}

	return request, nil
}
