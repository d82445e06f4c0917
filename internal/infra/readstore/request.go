package readstore

import (
	"context"

	"sponsorship-api/internal/infra"
	"sponsorship-api/internal/infra/db"
	"sponsorship-api/internal/pkg/pgconv"
	"sponsorship-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RequestReadStore struct {
	db db.DBTX
}

func NewRequestReadStore(pool db.DBTX) *RequestReadStore {
	return &RequestReadStore{db: pool}
}

const requestColumns = `id, requester_email, product_ref, placement, slot_index, duration_days, note, status, processed_grant_id, created_at, updated_at`

const findRequestByIDSQL = `
SELECT ` + requestColumns + `
FROM sponsorship_requests
WHERE id = $1
`

func (r *RequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	view, err := scanRequest(r.db.QueryRow(ctx, findRequestByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("sponsorship request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find sponsorship request by ID", err)
	}
	return view, nil
}

const listRequestsSQL = `
SELECT ` + requestColumns + `
FROM sponsorship_requests
WHERE ($1::text IS NULL OR status = $1)
ORDER BY created_at DESC
`

// List returns requests newest first, optionally filtered by status. The
// table is an audit trail, so terminal requests stay listable.
func (r *RequestReadStore) List(ctx context.Context, status *string) ([]*queries.RequestView, error) {
	rows, err := r.db.Query(ctx, listRequestsSQL, pgconv.StringPtrToPgtype(status))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list sponsorship requests", err)
	}
	defer rows.Close()

	var result []*queries.RequestView
	for rows.Next() {
		view, err := scanRequest(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan request row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate sponsorship requests", err)
	}

	return result, nil
}

func scanRequest(row rowScanner) (*queries.RequestView, error) {
	var (
		view             queries.RequestView
		slotIndex        pgtype.Int4
		note             pgtype.Text
		processedGrantID pgtype.UUID
		createdAt        pgtype.Timestamptz
		updatedAt        pgtype.Timestamptz
	)
	err := row.Scan(&view.ID, &view.RequesterEmail, &view.ProductRef, &view.Placement,
		&slotIndex, &view.DurationDays, &note, &view.Status, &processedGrantID,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	view.SlotIndex = pgconv.Int32PtrFromPgtype(slotIndex)
	view.Note = pgconv.StringPtrFromPgtype(note)
	view.ProcessedGrantID = pgconv.UUIDPtrFromPgtype(processedGrantID)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
