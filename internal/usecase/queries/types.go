package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type GrantView struct {
	ID             uuid.UUID `json:"id"`
	ProductID      string    `json:"product_id"`
	Placement      string    `json:"placement"`
	SlotIndex      int       `json:"slot_index"`
	SlotLabel      string    `json:"slot_label,omitempty"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	Source         string    `json:"source"`
	AmountUSDCents *int64    `json:"amount_usd_cents,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type RequestView struct {
	ID               uuid.UUID  `json:"id"`
	RequesterEmail   string     `json:"requester_email"`
	ProductRef       string     `json:"product_ref"`
	Placement        string     `json:"placement"`
	SlotIndex        *int32     `json:"slot_index,omitempty"`
	DurationDays     int32      `json:"duration_days"`
	Note             *string    `json:"note,omitempty"`
	Status           string     `json:"status"`
	ProcessedGrantID *uuid.UUID `json:"processed_grant_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type AuthorizedUserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// UserCredentialView is the login lookup; it never leaves the usecase layer.
type UserCredentialView struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}
