package sponsorship

import (
	"errors"
	"time"

	"sponsorship-api/internal/domain/placement"

	"github.com/google/uuid"
)

var (
	ErrAlreadyProcessed = errors.New("request already left the pending state")
	ErrInvalidEmail     = errors.New("requester email is required")
	ErrInvalidSource    = errors.New("invalid grant source")
)

// Request is an unconfirmed ask for a future grant, awaiting admin action.
// SlotIndex nil means "any available slot in the placement".
type Request struct {
	id               uuid.UUID
	requesterEmail   string
	productRef       ProductRef
	placement        placement.Placement
	slotIndex        *int
	duration         Duration
	note             Note
	status           RequestStatus
	processedGrantID *uuid.UUID
	createdAt        time.Time
	updatedAt        time.Time
}

func NewRequest(
	requesterEmail string,
	productRef ProductRef,
	pl placement.Placement,
	slotIndex *int,
	duration Duration,
	note Note,
) (*Request, error) {
	if requesterEmail == "" {
		return nil, ErrInvalidEmail
	}
	if slotIndex != nil {
		if err := pl.ValidateSlot(*slotIndex); err != nil {
			return nil, err
		}
	} else if !pl.IsValid() {
		return nil, placement.ErrUnknownPlacement
	}

	return &Request{
		id:             uuid.New(),
		requesterEmail: requesterEmail,
		productRef:     productRef,
		placement:      pl,
		slotIndex:      slotIndex,
		duration:       duration,
		note:           note,
		status:         StatusPending,
	}, nil
}

func ReconstructRequest(
	id uuid.UUID,
	requesterEmail string,
	productRef ProductRef,
	pl placement.Placement,
	slotIndex *int,
	duration Duration,
	note Note,
	status RequestStatus,
	processedGrantID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Request {
	return &Request{
		id:               id,
		requesterEmail:   requesterEmail,
		productRef:       productRef,
		placement:        pl,
		slotIndex:        slotIndex,
		duration:         duration,
		note:             note,
		status:           status,
		processedGrantID: processedGrantID,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// MarkProcessed transitions pending → processed, recording the grant the
// admin action produced. Any non-pending request is refused unchanged.
func (r *Request) MarkProcessed(grantID uuid.UUID, note Note, now time.Time) error {
	if r.status != StatusPending {
		return ErrAlreadyProcessed
	}
	r.status = StatusProcessed
	r.processedGrantID = &grantID
	if !note.IsEmpty() {
		r.note = note
	}
	r.updatedAt = now
	return nil
}

// MarkRejected transitions pending → rejected. No grant is touched.
func (r *Request) MarkRejected(note Note, now time.Time) error {
	if r.status != StatusPending {
		return ErrAlreadyProcessed
	}
	r.status = StatusRejected
	if !note.IsEmpty() {
		r.note = note
	}
	r.updatedAt = now
	return nil
}

func (r *Request) IsPending() bool {
	return r.status == StatusPending
}

func (r *Request) ID() uuid.UUID                  { return r.id }
func (r *Request) RequesterEmail() string         { return r.requesterEmail }
func (r *Request) ProductRef() ProductRef         { return r.productRef }
func (r *Request) Placement() placement.Placement { return r.placement }
func (r *Request) SlotIndex() *int                { return r.slotIndex }
func (r *Request) Duration() Duration             { return r.duration }
func (r *Request) Note() Note                     { return r.note }
func (r *Request) Status() RequestStatus          { return r.status }
func (r *Request) ProcessedGrantID() *uuid.UUID   { return r.processedGrantID }
func (r *Request) CreatedAt() time.Time           { return r.createdAt }
func (r *Request) UpdatedAt() time.Time           { return r.updatedAt }
