//go:build unit || e2e

package builder

import (
	"time"

	"sponsorship-api/internal/domain/placement"
	"sponsorship-api/internal/domain/sponsorship"
	"sponsorship-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type RequestBuilder struct {
	RequesterEmail string
	ProductRef     string
	Placement      string
	SlotIndex      *int
	DurationDays   int
	Note           string
}

func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		RequesterEmail: "maker@example.com",
		ProductRef:     "prod-123",
		Placement:      "home_right",
		SlotIndex:      nil,
		DurationDays:   7,
		Note:           "",
	}
}

func (b *RequestBuilder) With(mutate func(*RequestBuilder)) *RequestBuilder {
	mutate(b)
	return b
}

func (b *RequestBuilder) WithSlot(slot int) *RequestBuilder {
	b.SlotIndex = &slot
	return b
}

func (b *RequestBuilder) BuildDomain() (*sponsorship.Request, error) {
	pl, err := placement.New(b.Placement)
	if err != nil {
		return nil, err
	}
	duration, err := sponsorship.NewDuration(b.DurationDays)
	if err != nil {
		return nil, err
	}
	product, err := sponsorship.NewProductRef(b.ProductRef)
	if err != nil {
		return nil, err
	}
	return sponsorship.NewRequest(b.RequesterEmail, product, pl, b.SlotIndex, duration, sponsorship.NewNote(b.Note))
}

func (b *RequestBuilder) BuildReadModel() *queries.RequestView {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var slot *int32
	if b.SlotIndex != nil {
		v := int32(*b.SlotIndex)
		slot = &v
	}
	var note *string
	if b.Note != "" {
		note = &b.Note
	}
	return &queries.RequestView{
		ID:             uuid.New(),
		RequesterEmail: b.RequesterEmail,
		ProductRef:     b.ProductRef,
		Placement:      b.Placement,
		SlotIndex:      slot,
		DurationDays:   int32(b.DurationDays),
		Note:           note,
		Status:         "pending",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// BuildDTO shapes the public submission payload.
func (b *RequestBuilder) BuildDTO() map[string]any {
	m := map[string]any{
		"requester_email": b.RequesterEmail,
		"product_ref":     b.ProductRef,
		"placement":       b.Placement,
		"duration_days":   b.DurationDays,
	}
	if b.SlotIndex != nil {
		m["slot_index"] = *b.SlotIndex
	}
	if b.Note != "" {
		m["note"] = b.Note
	}
	return m
}
