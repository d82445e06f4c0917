package sponsorship

// RequestStatus is the state of a SponsorshipRequest. A request is created
// pending and moves exactly once to a terminal state; rows are never deleted
// so the table doubles as an audit trail.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusProcessed RequestStatus = "processed"
	StatusRejected  RequestStatus = "rejected"
)

func (s RequestStatus) String() string {
	return string(s)
}

func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessed, StatusRejected:
		return true
	default:
		return false
	}
}

func (s RequestStatus) IsTerminal() bool {
	return s == StatusProcessed || s == StatusRejected
}

// GrantSource records which path created a grant: an admin processing a
// request, or a completed payment checkout calling the allocator directly.
type GrantSource string

const (
	SourceManual   GrantSource = "manual"
	SourceCheckout GrantSource = "checkout"
)

func (s GrantSource) String() string {
	return string(s)
}

func (s GrantSource) IsValid() bool {
	switch s {
	case SourceManual, SourceCheckout:
		return true
	default:
		return false
	}
}
