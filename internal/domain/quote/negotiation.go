package quote

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NegotiationEntry is one immutable record of the audit trail. Entries are
// never updated or deleted; history is reconstructed by reading them in id
// order (ULIDs sort by creation time).
type NegotiationEntry struct {
	id            string
	quoteID       uuid.UUID
	action        Action
	actor         Actor
	previousPrice *Money
	newPrice      *Money
	message       *Message
	metadata      map[string]string
	createdAt     time.Time
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

func newEntryID(at time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(at), entropy).String()
}

func newEntry(quoteID uuid.UUID, action Action, actor Actor, at time.Time) *NegotiationEntry {
	return &NegotiationEntry{
		id:        newEntryID(at),
		quoteID:   quoteID,
		action:    action,
		actor:     actor,
		createdAt: at,
	}
}

func NewRequestEntry(quoteID uuid.UUID, requestedPrice *Money, message *Message, at time.Time) *NegotiationEntry {
	e := newEntry(quoteID, ActionRequest, ActorCustomer, at)
	e.newPrice = requestedPrice
	e.message = message
	return e
}

func NewAcceptEntry(quoteID uuid.UUID, previousPrice *Money, finalPrice *Money, message *Message, at time.Time) *NegotiationEntry {
	e := newEntry(quoteID, ActionAccept, ActorArtisan, at)
	e.previousPrice = previousPrice
	e.newPrice = finalPrice
	e.message = message
	return e
}

// NewRejectEntry records either an artisan rejection or a party cancellation;
// the actor tells them apart.
func NewRejectEntry(quoteID uuid.UUID, actor Actor, message *Message, at time.Time) *NegotiationEntry {
	e := newEntry(quoteID, ActionReject, actor, at)
	e.message = message
	return e
}

func NewCounterEntry(quoteID uuid.UUID, previousPrice *Money, offer Money, message *Message, at time.Time) *NegotiationEntry {
	e := newEntry(quoteID, ActionCounter, ActorArtisan, at)
	e.previousPrice = previousPrice
	e.newPrice = &offer
	e.message = message
	return e
}

func NewMessageEntry(quoteID uuid.UUID, actor Actor, message Message, at time.Time) *NegotiationEntry {
	e := newEntry(quoteID, ActionMessage, actor, at)
	e.message = &message
	return e
}

// WithMetadata attaches structured side-data (e.g. old/new status) before
// the entry is persisted. Entries are immutable once appended.
func (e *NegotiationEntry) WithMetadata(md map[string]string) *NegotiationEntry {
	e.metadata = md
	return e
}

func ReconstructNegotiationEntry(
	id string,
	quoteID uuid.UUID,
	action Action,
	actor Actor,
	previousPrice, newPrice *Money,
	message *Message,
	metadata map[string]string,
	createdAt time.Time,
) *NegotiationEntry {
	return &NegotiationEntry{
		id:            id,
		quoteID:       quoteID,
		action:        action,
		actor:         actor,
		previousPrice: previousPrice,
		newPrice:      newPrice,
		message:       message,
		metadata:      metadata,
		createdAt:     createdAt,
	}
}

func (e *NegotiationEntry) ID() string { return e.id }
func (e *NegotiationEntry) QuoteID() uuid.UUID { return e.quoteID }
func (e *NegotiationEntry) Action() Action { return e.action }
func (e *NegotiationEntry) Actor() Actor { return e.actor }
func (e *NegotiationEntry) PreviousPrice() *Money { return e.previousPrice }
func (e *NegotiationEntry) NewPrice() *Money { return e.newPrice }
func (e *NegotiationEntry) Message() *Message { return e.message }
func (e *NegotiationEntry) Metadata() map[string]string { return e.metadata }
func (e *NegotiationEntry) CreatedAt() time.Time { return e.createdAt }
