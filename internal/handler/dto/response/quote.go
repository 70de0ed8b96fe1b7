package response

import (
	"time"

	"artisan-quotes/internal/usecase/queries"

	"github.com/google/uuid"
)

type QuoteResponse struct {
	ID                  uuid.UUID `json:"id"`
	ProductID           uuid.UUID `json:"productId"`
	CustomerID          uuid.UUID `json:"customerId"`
	ArtisanID           uuid.UUID `json:"artisanId"`
	RequestedPriceCents *int64    `json:"requestedPriceCents,omitempty"`
	CounterOfferCents   *int64    `json:"counterOfferCents,omitempty"`
	FinalPriceCents     *int64    `json:"finalPriceCents,omitempty"`
	Specifications      string    `json:"specifications,omitempty"`
	CustomerMessage     *string   `json:"customerMessage,omitempty"`
	ArtisanMessage      *string   `json:"artisanMessage,omitempty"`
	Status              string    `json:"status"`
	ExpiresAt           time.Time `json:"expiresAt"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type QuoteListItemResponse struct {
	ID                  uuid.UUID `json:"id"`
	ProductID           uuid.UUID `json:"productId"`
	CustomerID          uuid.UUID `json:"customerId"`
	ArtisanID           uuid.UUID `json:"artisanId"`
	RequestedPriceCents *int64    `json:"requestedPriceCents,omitempty"`
	FinalPriceCents     *int64    `json:"finalPriceCents,omitempty"`
	Status              string    `json:"status"`
	ExpiresAt           time.Time `json:"expiresAt"`
	CreatedAt           time.Time `json:"createdAt"`
}

type QuoteListResponse struct {
	Quotes     []*QuoteListItemResponse `json:"quotes"`
	NextCursor *string                  `json:"nextCursor,omitempty"`
}

type NegotiationEntryResponse struct {
	ID                 string            `json:"id"`
	Action             string            `json:"action"`
	Actor              string            `json:"actor"`
	PreviousPriceCents *int64            `json:"previousPriceCents,omitempty"`
	NewPriceCents      *int64            `json:"newPriceCents,omitempty"`
	Message            *string           `json:"message,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
}

type QuoteHistoryResponse struct {
	QuoteID uuid.UUID                   `json:"quoteId"`
	Entries []*NegotiationEntryResponse `json:"entries"`
}

type QuoteStatsResponse struct {
	TotalQuotes                 int64   `json:"totalQuotes"`
	PendingQuotes               int64   `json:"pendingQuotes"`
	AcceptedQuotes              int64   `json:"acceptedQuotes"`
	RejectedQuotes              int64   `json:"rejectedQuotes"`
	ExpiredQuotes               int64   `json:"expiredQuotes"`
	AverageNegotiationTimeHours float64 `json:"averageNegotiationTimeHours"`
	ConversionRatePercent       float64 `json:"conversionRatePercent"`
}

func FromQuoteView(v *queries.QuoteView) *QuoteResponse {
	return &QuoteResponse{
		ID:                  v.ID,
		ProductID:           v.ProductID,
		CustomerID:          v.CustomerID,
		ArtisanID:           v.ArtisanID,
		RequestedPriceCents: v.RequestedPriceCents,
		CounterOfferCents:   v.CounterOfferCents,
		FinalPriceCents:     v.FinalPriceCents,
		Specifications:      v.Specifications,
		CustomerMessage:     v.CustomerMessage,
		ArtisanMessage:      v.ArtisanMessage,
		Status:              v.Status,
		ExpiresAt:           v.ExpiresAt,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
}

func FromQuoteListItem(item *queries.QuoteListItem) *QuoteListItemResponse {
	return &QuoteListItemResponse{
		ID:                  item.ID,
		ProductID:           item.ProductID,
		CustomerID:          item.CustomerID,
		ArtisanID:           item.ArtisanID,
		RequestedPriceCents: item.RequestedPriceCents,
		FinalPriceCents:     item.FinalPriceCents,
		Status:              item.Status,
		ExpiresAt:           item.ExpiresAt,
		CreatedAt:           item.CreatedAt,
	}
}

func FromQuoteList(items []*queries.QuoteListItem, next *queries.Cursor) *QuoteListResponse {
	resp := &QuoteListResponse{
		Quotes: make([]*QuoteListItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Quotes = append(resp.Quotes, FromQuoteListItem(item))
	}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}

func FromNegotiationEntries(quoteID uuid.UUID, entries []*queries.NegotiationEntryView) *QuoteHistoryResponse {
	resp := &QuoteHistoryResponse{
		QuoteID: quoteID,
		Entries: make([]*NegotiationEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, &NegotiationEntryResponse{
			ID:                 e.ID,
			Action:             e.Action,
			Actor:              e.Actor,
			PreviousPriceCents: e.PreviousPriceCents,
			NewPriceCents:      e.NewPriceCents,
			Message:            e.Message,
			Metadata:           e.Metadata,
			CreatedAt:          e.CreatedAt,
		})
	}
	return resp
}

func FromStatsView(v *queries.QuoteStatsView) *QuoteStatsResponse {
	return &QuoteStatsResponse{
		TotalQuotes:                 v.TotalQuotes,
		PendingQuotes:               v.PendingQuotes,
		AcceptedQuotes:              v.AcceptedQuotes,
		RejectedQuotes:              v.RejectedQuotes,
		ExpiredQuotes:               v.ExpiredQuotes,
		AverageNegotiationTimeHours: v.AverageNegotiationTimeHours,
		ConversionRatePercent:       v.ConversionRatePercent,
	}
}
