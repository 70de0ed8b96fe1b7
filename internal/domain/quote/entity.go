package quote

import (
	"errors"
	"time"

	"artisan-quotes/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrProductNotAvailable    = errors.New("product is not available")
	ErrProductNotCustomizable = errors.New("product is not customizable")
	ErrSelfQuote              = errors.New("customer cannot quote own product")
	ErrPriceBelowFloor        = errors.New("requested price below minimum floor")
	ErrQuoteNotActive         = errors.New("quote is not open for negotiation")
	ErrQuoteNotAccepted       = errors.New("quote is not accepted")
	ErrQuoteExpired           = errors.New("quote has expired")
	ErrNotQuoteParty          = errors.New("user is not a party to the quote")
)

// ProductStatusPublished is the catalog state required for quoting.
const ProductStatusPublished = "published"

// ProductSpec is the catalog snapshot a quote is validated against.
type ProductSpec struct {
	ID                 uuid.UUID
	SellerID           uuid.UUID
	PriceCents         int64
	DiscountPriceCents *int64
	IsCustomizable     bool
	Status             string
}

// EffectivePriceCents is the discounted price when a discount is set.
func (p ProductSpec) EffectivePriceCents() int64 {
	if p.DiscountPriceCents != nil {
		return *p.DiscountPriceCents
	}
	return p.PriceCents
}

type Services struct {
	Clock clock.Clock
}

// QuoteRequest is the negotiation aggregate. All transitions go through its
// methods so status, prices and timestamps never drift apart.
type QuoteRequest struct {
	id              uuid.UUID
	productID       uuid.UUID
	customerID      uuid.UUID
	artisanID       uuid.UUID
	requestedPrice  *Money
	counterOffer    *Money
	finalPrice      *Money
	specifications  Specifications
	customerMessage *Message
	artisanMessage  *Message
	status          Status
	expiresAt       time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

func NewQuoteRequest(
	services *Services,
	product ProductSpec,
	customerID uuid.UUID,
	requestedPrice *Money,
	specifications Specifications,
	message *Message,
	expiresIn ExpiryDays,
) (*QuoteRequest, error) {
	if product.Status != ProductStatusPublished {
		return nil, ErrProductNotAvailable
	}
	if !product.IsCustomizable {
		return nil, ErrProductNotCustomizable
	}
	if customerID == product.SellerID {
		return nil, ErrSelfQuote
	}
	if requestedPrice != nil && !requestedPrice.MeetsFloor(product.EffectivePriceCents()) {
		return nil, ErrPriceBelowFloor
	}

	now := services.Clock.Now()
	return &QuoteRequest{
		id:              uuid.New(),
		productID:       product.ID,
		customerID:      customerID,
		artisanID:       product.SellerID,
		requestedPrice:  requestedPrice,
		specifications:  specifications,
		customerMessage: message,
		status:          StatusPending,
		expiresAt:       now.Add(time.Duration(expiresIn.Int()) * 24 * time.Hour),
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructQuoteRequest(
	id, productID, customerID, artisanID uuid.UUID,
	requestedPrice, counterOffer, finalPrice *Money,
	specifications Specifications,
	customerMessage, artisanMessage *Message,
	status Status,
	expiresAt, createdAt, updatedAt time.Time,
) *QuoteRequest {
	return &QuoteRequest{
		id:              id,
		productID:       productID,
		customerID:      customerID,
		artisanID:       artisanID,
		requestedPrice:  requestedPrice,
		counterOffer:    counterOffer,
		finalPrice:      finalPrice,
		specifications:  specifications,
		customerMessage: customerMessage,
		artisanMessage:  artisanMessage,
		status:          status,
		expiresAt:       expiresAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (q *QuoteRequest) HasExpired(now time.Time) bool {
	return q.status.IsActive() && now.After(q.expiresAt)
}

func (q *QuoteRequest) IsParty(userID uuid.UUID) bool {
	return userID == q.customerID || userID == q.artisanID
}

func (q *QuoteRequest) ActorFor(userID uuid.UUID) (Actor, error) {
	switch userID {
	case q.customerID:
		return ActorCustomer, nil
	case q.artisanID:
		return ActorArtisan, nil
	default:
		return "", ErrNotQuoteParty
	}
}

// Accept closes the negotiation at the standing offer. Final price is
// resolved at acceptance time: counter-offer, then requested price, then
// the product's live price.
func (q *QuoteRequest) Accept(livePriceCents int64, now time.Time) error {
	if err := q.ensureRespondable(now); err != nil {
		return err
	}

	final := q.counterOffer
	if final == nil {
		final = q.requestedPrice
	}
	if final == nil {
		m, err := NewMoney(livePriceCents)
		if err != nil {
			return err
		}
		final = &m
	}

	q.finalPrice = final
	q.counterOffer = nil
	q.status = StatusAccepted
	q.updatedAt = now
	return nil
}

func (q *QuoteRequest) Reject(now time.Time) error {
	if err := q.ensureRespondable(now); err != nil {
		return err
	}
	q.counterOffer = nil
	q.status = StatusRejected
	q.updatedAt = now
	return nil
}

// Counter records the artisan's alternative price. A repeated counter while
// already counter-offered replaces the standing offer; the expiry clock is
// only set at creation and is not reset here.
func (q *QuoteRequest) Counter(offer Money, now time.Time) error {
	if err := q.ensureRespondable(now); err != nil {
		return err
	}
	q.counterOffer = &offer
	q.status = StatusCounterOffered
	q.updatedAt = now
	return nil
}

// Cancel is a party-initiated withdrawal of an active quote. It lands on
// rejected; history attribution distinguishes it from an artisan rejection.
func (q *QuoteRequest) Cancel(userID uuid.UUID, now time.Time) (Actor, error) {
	actor, err := q.ActorFor(userID)
	if err != nil {
		return "", err
	}
	if !q.status.IsActive() {
		return "", ErrQuoteNotActive
	}
	if q.HasExpired(now) {
		return "", ErrQuoteExpired
	}
	q.counterOffer = nil
	q.status = StatusRejected
	q.updatedAt = now
	return actor, nil
}

func (q *QuoteRequest) AddMessage(userID uuid.UUID, msg Message, now time.Time) (Actor, error) {
	actor, err := q.ActorFor(userID)
	if err != nil {
		return "", err
	}
	if q.status.IsTerminal() {
		return "", ErrQuoteNotActive
	}
	if q.HasExpired(now) {
		return "", ErrQuoteExpired
	}
	if actor == ActorCustomer {
		q.customerMessage = &msg
	} else {
		q.artisanMessage = &msg
	}
	q.updatedAt = now
	return actor, nil
}

// Complete marks an accepted quote as converted to an order.
func (q *QuoteRequest) Complete(now time.Time) error {
	if q.status != StatusAccepted {
		return ErrQuoteNotAccepted
	}
	q.status = StatusCompleted
	q.updatedAt = now
	return nil
}

// MarkExpired is the lazy-expiry flip applied when a response hits an
// overdue quote. The bulk sweep takes the same transition in SQL.
func (q *QuoteRequest) MarkExpired(now time.Time) error {
	if !q.status.IsActive() {
		return ErrQuoteNotActive
	}
	q.counterOffer = nil
	q.status = StatusExpired
	q.updatedAt = now
	return nil
}

func (q *QuoteRequest) ensureRespondable(now time.Time) error {
	if !q.status.IsActive() {
		return ErrQuoteNotActive
	}
	if q.HasExpired(now) {
		return ErrQuoteExpired
	}
	return nil
}

func (q *QuoteRequest) ID() uuid.UUID { return q.id }
func (q *QuoteRequest) ProductID() uuid.UUID { return q.productID }
func (q *QuoteRequest) CustomerID() uuid.UUID { return q.customerID }
func (q *QuoteRequest) ArtisanID() uuid.UUID { return q.artisanID }
func (q *QuoteRequest) RequestedPrice() *Money { return q.requestedPrice }
func (q *QuoteRequest) CounterOffer() *Money { return q.counterOffer }
func (q *QuoteRequest) FinalPrice() *Money { return q.finalPrice }
func (q *QuoteRequest) Specifications() Specifications { return q.specifications }
func (q *QuoteRequest) CustomerMessage() *Message { return q.customerMessage }
func (q *QuoteRequest) ArtisanMessage() *Message { return q.artisanMessage }
func (q *QuoteRequest) Status() Status { return q.status }
func (q *QuoteRequest) ExpiresAt() time.Time { return q.expiresAt }
func (q *QuoteRequest) CreatedAt() time.Time { return q.createdAt }
func (q *QuoteRequest) UpdatedAt() time.Time { return q.updatedAt }
