package quote

type Status string

const (
	StatusPending        Status = "pending"
	StatusCounterOffered Status = "counter_offered"
	StatusAccepted       Status = "accepted"
	StatusRejected       Status = "rejected"
	StatusExpired        Status = "expired"
	StatusCompleted      Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCounterOffered, StatusAccepted, StatusRejected, StatusExpired, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsActive reports whether the quote is still open for negotiation.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusCounterOffered
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusExpired, StatusCompleted:
		return true
	default:
		return false
	}
}

// Action identifies what a negotiation history entry records.
type Action string

const (
	ActionRequest Action = "request"
	ActionAccept  Action = "accept"
	ActionReject  Action = "reject"
	ActionCounter Action = "counter"
	ActionMessage Action = "message"
)

func (a Action) String() string {
	return string(a)
}

// Actor identifies which party performed an action. Expiration is not an
// Actor action; the sweeper transitions quotes without a history entry.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorArtisan  Actor = "artisan"
)

func (a Actor) String() string {
	return string(a)
}

// ResponseAction is the artisan's reply to an active quote.
type ResponseAction string

const (
	ResponseAccept  ResponseAction = "accept"
	ResponseReject  ResponseAction = "reject"
	ResponseCounter ResponseAction = "counter"
)

func (r ResponseAction) IsValid() bool {
	switch r {
	case ResponseAccept, ResponseReject, ResponseCounter:
		return true
	default:
		return false
	}
}
