package commands

import (
	"context"
	"time"

	"sponsorship-api/internal/domain/placement"
	"sponsorship-api/internal/domain/sponsorship"
	"sponsorship-api/internal/infra/db"

	"github.com/google/uuid"
)

// Write-side repository ports. Implementations live in internal/infra/repository.

type GrantRepository interface {
	Insert(ctx context.Context, tx db.DBTX, g *sponsorship.Grant) (uuid.UUID, error)
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	SlotTail(ctx context.Context, tx db.DBTX, pl placement.Placement, slotIndex int) (*time.Time, error)
	SlotTails(ctx context.Context, tx db.DBTX, pl placement.Placement) (map[int]time.Time, error)
}

type RequestRepository interface {
	Create(ctx context.Context, tx db.DBTX, req *sponsorship.Request) (uuid.UUID, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*sponsorship.Request, error)
	SaveOutcome(ctx context.Context, tx db.DBTX, req *sponsorship.Request) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}
