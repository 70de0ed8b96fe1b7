//go:build unit || e2e

package builder

import (
	"time"

	reqdto "artisan-quotes/internal/handler/dto/request"
	"artisan-quotes/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type QuoteBuilder struct {
	ProductID           uuid.UUID
	CustomerID          uuid.UUID
	ArtisanID           uuid.UUID
	RequestedPriceCents int64
	Specifications      string
	Message             string
	Status              string
	ExpiresAt           time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func NewQuoteBuilder() *QuoteBuilder {
	now := time.Now()
	return &QuoteBuilder{
		ProductID:           uuid.New(),
		CustomerID:          uuid.New(),
		ArtisanID:           uuid.New(),
		RequestedPriceCents: 8000,
		Specifications:      "hand-carved walnut, 40cm",
		Message:             "Could you do this in walnut?",
		Status:              "pending",
		ExpiresAt:           now.Add(7 * 24 * time.Hour),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func (q *QuoteBuilder) With(mutate func(*QuoteBuilder)) *QuoteBuilder {
	mutate(q)
	return q
}

// Build methods
func (q *QuoteBuilder) BuildCreateRequestDTO() reqdto.CreateQuoteRequest {
	price := q.RequestedPriceCents
	message := q.Message
	return reqdto.CreateQuoteRequest{
		ProductID:           q.ProductID,
		RequestedPriceCents: &price,
		Specifications:      q.Specifications,
		Message:             &message,
	}
}

func (q *QuoteBuilder) BuildRespondRequestDTO(action string) reqdto.RespondToQuoteRequest {
	message := q.Message
	return reqdto.RespondToQuoteRequest{
		Action:  action,
		Message: &message,
	}
}

func (q *QuoteBuilder) BuildViewQuery() *queries.QuoteView {
	price := q.RequestedPriceCents
	message := q.Message
	return &queries.QuoteView{
		ID:                  uuid.New(),
		ProductID:           q.ProductID,
		CustomerID:          q.CustomerID,
		ArtisanID:           q.ArtisanID,
		RequestedPriceCents: &price,
		Specifications:      q.Specifications,
		CustomerMessage:     &message,
		Status:              q.Status,
		ExpiresAt:           q.ExpiresAt,
		CreatedAt:           q.CreatedAt,
		UpdatedAt:           q.UpdatedAt,
	}
}

func (q *QuoteBuilder) BuildListItemQuery() *queries.QuoteListItem {
	price := q.RequestedPriceCents
	return &queries.QuoteListItem{
		ID:                  uuid.New(),
		ProductID:           q.ProductID,
		CustomerID:          q.CustomerID,
		ArtisanID:           q.ArtisanID,
		RequestedPriceCents: &price,
		Status:              q.Status,
		ExpiresAt:           q.ExpiresAt,
		CreatedAt:           q.CreatedAt,
	}
}

func (q *QuoteBuilder) BuildEntryViewQuery(quoteID uuid.UUID, action string) *queries.NegotiationEntryView {
	price := q.RequestedPriceCents
	message := q.Message
	return &queries.NegotiationEntryView{
		ID:            ulid.Make().String(),
		QuoteID:       quoteID,
		Action:        action,
		Actor:         "customer",
		NewPriceCents: &price,
		Message:       &message,
		CreatedAt:     q.CreatedAt,
	}
}

func (q *QuoteBuilder) BuildStatsViewQuery() *queries.QuoteStatsView {
	return &queries.QuoteStatsView{
		TotalQuotes:                 10,
		PendingQuotes:               3,
		AcceptedQuotes:              4,
		RejectedQuotes:              2,
		ExpiredQuotes:               1,
		AverageNegotiationTimeHours: 12.5,
		ConversionRatePercent:       40,
	}
}
