package request

import "strings"

// SubmitSponsorshipRequest is the public submission form payload. SlotIndex
// omitted means "any available slot in the placement".
type SubmitSponsorshipRequest struct {
	RequesterEmail string  `json:"requester_email" binding:"required,email"`
	ProductRef     string  `json:"product_ref" binding:"required"`
	Placement      string  `json:"placement" binding:"required"`
	SlotIndex      *int    `json:"slot_index,omitempty"`
	DurationDays   int     `json:"duration_days" binding:"required"`
	Note           *string `json:"note,omitempty"`
}

func (r SubmitSponsorshipRequest) GetNote() *string {
	return trimmedOrNil(r.Note)
}

// ProcessRequestRequest is the admin console's allocation decision for a
// pending request.
type ProcessRequestRequest struct {
	ProductID      string  `json:"product_id" binding:"required"`
	Placement      string  `json:"placement" binding:"required"`
	SlotIndex      *int    `json:"slot_index,omitempty"`
	DurationDays   int     `json:"duration_days" binding:"required"`
	AmountUSDCents *int64  `json:"amount_usd_cents,omitempty"`
	Note           *string `json:"note,omitempty"`
}

type RejectRequestRequest struct {
	Note *string `json:"note,omitempty"`
}

// CheckoutGrantRequest is the server-to-server allocation issued by the
// payment collaborator once a checkout completes. Amount is pre-resolved by
// the caller.
type CheckoutGrantRequest struct {
	ProductID      string `json:"product_id" binding:"required"`
	Placement      string `json:"placement" binding:"required"`
	SlotIndex      *int   `json:"slot_index,omitempty"`
	DurationDays   int    `json:"duration_days" binding:"required"`
	AmountUSDCents int64  `json:"amount_usd_cents" binding:"required"`
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
