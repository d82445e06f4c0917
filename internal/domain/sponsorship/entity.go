package sponsorship

import (
	"time"

	"sponsorship-api/internal/domain/placement"

	"github.com/google/uuid"
)

// Grant is a confirmed, time-bounded occupancy of one slot by one product.
// Grants are created only through the allocator; the only other mutation is
// an unconditional admin delete, which never reschedules neighbors.
type Grant struct {
	id             uuid.UUID
	productID      ProductRef
	placement      placement.Placement
	slotIndex      int
	window         Window
	source         GrantSource
	amountUSDCents *int64
	createdAt      time.Time
}

func NewGrant(
	pl placement.Placement,
	slotIndex int,
	window Window,
	productID ProductRef,
	source GrantSource,
	amountUSDCents *int64,
) (*Grant, error) {
	if err := pl.ValidateSlot(slotIndex); err != nil {
		return nil, err
	}
	if !source.IsValid() {
		return nil, ErrInvalidSource
	}

	return &Grant{
		id:             uuid.New(),
		productID:      productID,
		placement:      pl,
		slotIndex:      slotIndex,
		window:         window,
		source:         source,
		amountUSDCents: amountUSDCents,
	}, nil
}

func ReconstructGrant(
	id uuid.UUID,
	productID ProductRef,
	pl placement.Placement,
	slotIndex int,
	window Window,
	source GrantSource,
	amountUSDCents *int64,
	createdAt time.Time,
) *Grant {
	return &Grant{
		id:             id,
		productID:      productID,
		placement:      pl,
		slotIndex:      slotIndex,
		window:         window,
		source:         source,
		amountUSDCents: amountUSDCents,
		createdAt:      createdAt,
	}
}

func (g *Grant) IsActiveAt(t time.Time) bool {
	return g.window.Contains(t)
}

func (g *Grant) ID() uuid.UUID                  { return g.id }
func (g *Grant) ProductID() ProductRef          { return g.productID }
func (g *Grant) Placement() placement.Placement { return g.placement }
func (g *Grant) SlotIndex() int                 { return g.slotIndex }
func (g *Grant) Window() Window                 { return g.window }
func (g *Grant) Source() GrantSource            { return g.source }
func (g *Grant) AmountUSDCents() *int64         { return g.amountUSDCents }
func (g *Grant) CreatedAt() time.Time           { return g.createdAt }
