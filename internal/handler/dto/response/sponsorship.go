package response

import (
	"time"

	"sponsorship-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type GrantResponse struct {
	ID             uuid.UUID `json:"id"`
	ProductID      string    `json:"productId"`
	Placement      string    `json:"placement"`
	SlotIndex      int       `json:"slotIndex"`
	SlotLabel      string    `json:"slotLabel,omitempty"`
	StartsAt       time.Time `json:"startsAt"`
	EndsAt         time.Time `json:"endsAt"`
	Source         string    `json:"source"`
	AmountUSDCents *int64    `json:"amountUsdCents,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type RequestResponse struct {
	ID               uuid.UUID  `json:"id"`
	RequesterEmail   string     `json:"requesterEmail"`
	ProductRef       string     `json:"productRef"`
	Placement        string     `json:"placement"`
	SlotIndex        *int32     `json:"slotIndex,omitempty"`
	DurationDays     int32      `json:"durationDays"`
	Note             *string    `json:"note,omitempty"`
	Status           string     `json:"status"`
	ProcessedGrantID *uuid.UUID `json:"processedGrantId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// CurrentSponsorResponse wraps the hot-path slot lookup; Grant is null when
// the slot is vacant so the renderer can fall back to house content.
type CurrentSponsorResponse struct {
	Placement string         `json:"placement"`
	SlotIndex int            `json:"slotIndex"`
	Grant     *GrantResponse `json:"grant"`
}

func FromGrantView(view *queries.GrantView) *GrantResponse {
	if view == nil {
		return nil
	}
	var resp GrantResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromGrantViews(views []*queries.GrantView) []*GrantResponse {
	result := make([]*GrantResponse, len(views))
	for i, v := range views {
		result[i] = FromGrantView(v)
	}
	return result
}

func FromRequestView(view *queries.RequestView) *RequestResponse {
	if view == nil {
		return nil
	}
	var resp RequestResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromRequestViews(views []*queries.RequestView) []*RequestResponse {
	result := make([]*RequestResponse, len(views))
	for i, v := range views {
		result[i] = FromRequestView(v)
	}
	return result
}
