package readstore

import (
	"context"
	"time"

	"sponsorship-api/internal/domain/placement"
	"sponsorship-api/internal/infra"
	"sponsorship-api/internal/infra/db"
	"sponsorship-api/internal/pkg/pgconv"
	"sponsorship-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type GrantReadStore struct {
	db db.DBTX
}

func NewGrantReadStore(pool db.DBTX) *GrantReadStore {
	return &GrantReadStore{db: pool}
}

const grantColumns = `id, product_id, placement, slot_index, starts_at, ends_at, source, amount_usd_cents, created_at`

const findGrantByIDSQL = `
SELECT ` + grantColumns + `
FROM sponsorship_grants
WHERE id = $1
`

func (r *GrantReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.GrantView, error) {
	view, err := scanGrant(r.db.QueryRow(ctx, findGrantByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("grant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find grant by ID", err)
	}
	return view, nil
}

const activeGrantSQL = `
SELECT ` + grantColumns + `
FROM sponsorship_grants
WHERE placement = $1 AND slot_index = $2 AND starts_at <= $3 AND ends_at > $3
LIMIT 1
`

// ActiveAt returns the grant whose window contains the instant, or
// KindNotFound when the slot is unoccupied. At most one row can match
// because windows within a slot never overlap.
func (r *GrantReadStore) ActiveAt(ctx context.Context, pl placement.Placement, slotIndex int, at time.Time) (*queries.GrantView, error) {
	view, err := scanGrant(r.db.QueryRow(ctx, activeGrantSQL, pl.String(), slotIndex, at))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no active grant", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find active grant", err)
	}
	return view, nil
}

const listGrantsBySlotSQL = `
SELECT ` + grantColumns + `
FROM sponsorship_grants
WHERE placement = $1 AND slot_index = $2
ORDER BY starts_at ASC
`

func (r *GrantReadStore) ListBySlot(ctx context.Context, pl placement.Placement, slotIndex int) ([]*queries.GrantView, error) {
	rows, err := r.db.Query(ctx, listGrantsBySlotSQL, pl.String(), slotIndex)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list grants by slot", err)
	}
	defer rows.Close()

	var result []*queries.GrantView
	for rows.Next() {
		view, err := scanGrant(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan grant row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate grants", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGrant(row rowScanner) (*queries.GrantView, error) {
	var (
		view      queries.GrantView
		amount    pgtype.Int8
		createdAt pgtype.Timestamptz
	)
	err := row.Scan(&view.ID, &view.ProductID, &view.Placement, &view.SlotIndex,
		&view.StartsAt, &view.EndsAt, &view.Source, &amount, &createdAt)
	if err != nil {
		return nil, err
	}

	view.AmountUSDCents = pgconv.Int64PtrFromPgtype(amount)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.SlotLabel = placement.Placement(view.Placement).SlotLabel(view.SlotIndex)
	return &view, nil
}
