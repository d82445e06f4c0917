package repository

import (
	"context"

	"sponsorship-api/internal/domain/placement"
	"sponsorship-api/internal/domain/sponsorship"
	"sponsorship-api/internal/infra"
	"sponsorship-api/internal/infra/db"
	"sponsorship-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RequestRepository struct {
	db db.DBTX
}

func NewRequestRepository(pool db.DBTX) *RequestRepository {
	return &RequestRepository{db: pool}
}

const createRequestSQL = `
INSERT INTO sponsorship_requests (id, requester_email, product_ref, placement, slot_index, duration_days, note, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`

func (r *RequestRepository) Create(ctx context.Context, tx db.DBTX, req *sponsorship.Request) (uuid.UUID, error) {
	var note *string
	if !req.Note().IsEmpty() {
		v := req.Note().String()
		note = &v
	}

	var slotIndex pgtype.Int4
	if idx := req.SlotIndex(); idx != nil {
		v := int32(*idx)
		slotIndex = pgconv.Int32PtrToPgtype(&v)
	}

	var id uuid.UUID
	err := tx.QueryRow(ctx, createRequestSQL,
		req.ID(),
		req.RequesterEmail(),
		req.ProductRef().String(),
		req.Placement().String(),
		slotIndex,
		req.Duration().Days(),
		pgconv.StringPtrToPgtype(note),
		req.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create sponsorship request", err)
	}

	return id, nil
}

const findRequestForUpdateSQL = `
SELECT id, requester_email, product_ref, placement, slot_index, duration_days, note, status, processed_grant_id, created_at, updated_at
FROM sponsorship_requests
WHERE id = $1
FOR UPDATE
`

// FindByIDForUpdate loads a request and row-locks it so concurrent admin
// actions on the same request serialize on the pending check.
func (r *RequestRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*sponsorship.Request, error) {
	row := tx.QueryRow(ctx, findRequestForUpdateSQL, id)

	var (
		reqID            uuid.UUID
		requesterEmail   string
		productRef       string
		placementValue   string
		slotIndex        pgtype.Int4
		durationDays     int
		note             pgtype.Text
		status           string
		processedGrantID pgtype.UUID
		createdAt        pgtype.Timestamptz
		updatedAt        pgtype.Timestamptz
	)
	err := row.Scan(&reqID, &requesterEmail, &productRef, &placementValue, &slotIndex,
		&durationDays, &note, &status, &processedGrantID, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("sponsorship request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find sponsorship request", err)
	}

	pl, err := placement.New(placementValue)
	if err != nil {
		return nil, infra.WrapRepoErr("stored placement no longer valid", err)
	}
	product, err := sponsorship.NewProductRef(productRef)
	if err != nil {
		return nil, infra.WrapRepoErr("stored product ref no longer valid", err)
	}
	duration, err := sponsorship.NewDuration(durationDays)
	if err != nil {
		return nil, infra.WrapRepoErr("stored duration no longer valid", err)
	}

	var slotIdx *int
	if v := pgconv.Int32PtrFromPgtype(slotIndex); v != nil {
		i := int(*v)
		slotIdx = &i
	}

	noteValue := ""
	if v := pgconv.StringPtrFromPgtype(note); v != nil {
		noteValue = *v
	}

	return sponsorship.ReconstructRequest(
		reqID,
		requesterEmail,
		product,
		pl,
		slotIdx,
		duration,
		sponsorship.NewNote(noteValue),
		sponsorship.RequestStatus(status),
		pgconv.UUIDPtrFromPgtype(processedGrantID),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

const updateRequestOutcomeSQL = `
UPDATE sponsorship_requests
SET status = $2, processed_grant_id = $3, note = $4, updated_at = $5
WHERE id = $1
`

// SaveOutcome persists the terminal transition recorded on the entity.
func (r *RequestRepository) SaveOutcome(ctx context.Context, tx db.DBTX, req *sponsorship.Request) error {
	var note *string
	if !req.Note().IsEmpty() {
		v := req.Note().String()
		note = &v
	}

	tag, err := tx.Exec(ctx, updateRequestOutcomeSQL,
		req.ID(),
		req.Status().String(),
		pgconv.UUIDPtrToPgtype(req.ProcessedGrantID()),
		pgconv.StringPtrToPgtype(note),
		req.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update sponsorship request", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("sponsorship request not found", nil, infra.KindNotFound)
	}

	return nil
}
