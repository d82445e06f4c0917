//go:build unit || e2e

package builder

import (
	"time"

	"sponsorship-api/internal/domain/placement"
	"sponsorship-api/internal/domain/sponsorship"
	"sponsorship-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type GrantBuilder struct {
	ProductID      string
	Placement      string
	SlotIndex      int
	StartsAt       time.Time
	EndsAt         time.Time
	Source         string
	AmountUSDCents *int64
}

func NewGrantBuilder() *GrantBuilder {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &GrantBuilder{
		ProductID: "prod-123",
		Placement: "home_top",
		SlotIndex: 0,
		StartsAt:  start,
		EndsAt:    start.AddDate(0, 0, 7),
		Source:    "manual",
	}
}

func (b *GrantBuilder) With(mutate func(*GrantBuilder)) *GrantBuilder {
	mutate(b)
	return b
}

func (b *GrantBuilder) BuildDomain() (*sponsorship.Grant, error) {
	pl, err := placement.New(b.Placement)
	if err != nil {
		return nil, err
	}
	window, err := sponsorship.NewWindow(b.StartsAt, b.EndsAt)
	if err != nil {
		return nil, err
	}
	product, err := sponsorship.NewProductRef(b.ProductID)
	if err != nil {
		return nil, err
	}
	return sponsorship.NewGrant(pl, b.SlotIndex, window, product, sponsorship.GrantSource(b.Source), b.AmountUSDCents)
}

func (b *GrantBuilder) BuildReadModel() *queries.GrantView {
	return &queries.GrantView{
		ID:             uuid.New(),
		ProductID:      b.ProductID,
		Placement:      b.Placement,
		SlotIndex:      b.SlotIndex,
		StartsAt:       b.StartsAt,
		EndsAt:         b.EndsAt,
		Source:         b.Source,
		AmountUSDCents: b.AmountUSDCents,
		CreatedAt:      b.StartsAt,
	}
}
