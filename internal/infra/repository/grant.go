package repository

import (
	"context"
	"time"

	"sponsorship-api/internal/domain/placement"
	"sponsorship-api/internal/domain/sponsorship"
	"sponsorship-api/internal/infra"
	"sponsorship-api/internal/infra/db"
	"sponsorship-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// GrantRepository is the write side of the grant store. Non-overlap is
// enforced by the sponsorship_grants exclusion constraint at commit time;
// Insert translates that violation into KindConflict so callers can retry
// with a freshly computed window.
type GrantRepository struct {
	db db.DBTX
}

func NewGrantRepository(pool db.DBTX) *GrantRepository {
	return &GrantRepository{db: pool}
}

const insertGrantSQL = `
INSERT INTO sponsorship_grants (id, product_id, placement, slot_index, starts_at, ends_at, source, amount_usd_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`

func (r *GrantRepository) Insert(ctx context.Context, tx db.DBTX, g *sponsorship.Grant) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertGrantSQL,
		g.ID(),
		g.ProductID().String(),
		g.Placement().String(),
		g.SlotIndex(),
		g.Window().Start(),
		g.Window().End(),
		g.Source().String(),
		pgconv.Int64PtrToPgtype(g.AmountUSDCents()),
	).Scan(&id)
	if err != nil {
		if kind, ok := infra.KindFromPgError(err); ok {
			return uuid.Nil, infra.WrapRepoErr("grant window overlaps existing grant", err, kind)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to insert grant", err)
	}

	return id, nil
}

const deleteGrantSQL = `DELETE FROM sponsorship_grants WHERE id = $1`

// Delete removes a grant unconditionally. Later grants in the same slot keep
// the schedule they were allocated against; nothing is recomputed.
func (r *GrantRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteGrantSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete grant", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("grant not found", nil, infra.KindNotFound)
	}
	return nil
}

const slotTailSQL = `
SELECT MAX(ends_at)
FROM sponsorship_grants
WHERE placement = $1 AND slot_index = $2
`

// SlotTail returns the latest ends_at among a slot's grants, or nil for an
// empty slot.
func (r *GrantRepository) SlotTail(ctx context.Context, tx db.DBTX, pl placement.Placement, slotIndex int) (*time.Time, error) {
	var tail *time.Time
	err := tx.QueryRow(ctx, slotTailSQL, pl.String(), slotIndex).Scan(&tail)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read slot tail", err)
	}
	return tail, nil
}

const slotTailsSQL = `
SELECT slot_index, MAX(ends_at)
FROM sponsorship_grants
WHERE placement = $1
GROUP BY slot_index
`

// SlotTails returns the tail of every occupied slot in a placement. Slots
// with no grants are absent from the map.
func (r *GrantRepository) SlotTails(ctx context.Context, tx db.DBTX, pl placement.Placement) (map[int]time.Time, error) {
	rows, err := tx.Query(ctx, slotTailsSQL, pl.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read slot tails", err)
	}
	defer rows.Close()

	tails := make(map[int]time.Time, pl.SlotCount())
	for rows.Next() {
		var idx int
		var tail time.Time
		if err := rows.Scan(&idx, &tail); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot tail row", err)
		}
		tails[idx] = tail
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot tails", err)
	}

	return tails, nil
}
