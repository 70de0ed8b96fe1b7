package shared

import (
	"time"

	"artisan-quotes/internal/domain/quote"

	"github.com/google/uuid"
)

// QuoteSnapshot is the command-side read of a quote row, sufficient to
// reconstruct the aggregate for a transition.
type QuoteSnapshot struct {
	ID                  uuid.UUID
	ProductID           uuid.UUID
	CustomerID          uuid.UUID
	ArtisanID           uuid.UUID
	RequestedPriceCents *int64
	CounterOfferCents   *int64
	FinalPriceCents     *int64
	Specifications      string
	CustomerMessage     *string
	ArtisanMessage      *string
	Status              quote.Status
	ExpiresAt           time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ExpiredQuote identifies a quote the sweep moved to expired, with the
// party ids the notification event carries.
type ExpiredQuote struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	ArtisanID  uuid.UUID
}

// ToDomain rebuilds the aggregate from the snapshot.
func (s *QuoteSnapshot) ToDomain() *quote.QuoteRequest {
	specs, _ := quote.NewSpecifications(s.Specifications)
	return quote.ReconstructQuoteRequest(
		s.ID, s.ProductID, s.CustomerID, s.ArtisanID,
		moneyPtr(s.RequestedPriceCents), moneyPtr(s.CounterOfferCents), moneyPtr(s.FinalPriceCents),
		specs,
		messagePtr(s.CustomerMessage), messagePtr(s.ArtisanMessage),
		s.Status,
		s.ExpiresAt, s.CreatedAt, s.UpdatedAt,
	)
}

func moneyPtr(cents *int64) *quote.Money {
	if cents == nil {
		return nil
	}
	m, err := quote.NewMoney(*cents)
	if err != nil {
		return nil
	}
	return &m
}

func messagePtr(s *string) *quote.Message {
	if s == nil {
		return nil
	}
	m, err := quote.NewMessage(*s)
	if err != nil {
		return nil
	}
	return &m
}
