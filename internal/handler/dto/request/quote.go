package request

import (
	"strings"

	"artisan-quotes/internal/domain/quote"
	"artisan-quotes/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateQuoteRequest struct {
	ProductID           uuid.UUID `json:"product_id" binding:"required"`
	RequestedPriceCents *int64    `json:"requested_price_cents,omitempty"`
	Specifications      string    `json:"specifications,omitempty"`
	Message             *string   `json:"message,omitempty"`
	ExpiryDays          *int      `json:"expiry_days,omitempty"`
}

func (r CreateQuoteRequest) ToInput() commands.CreateQuoteInput {
	return commands.CreateQuoteInput{
		ProductID:           r.ProductID,
		RequestedPriceCents: r.RequestedPriceCents,
		Specifications:      r.Specifications,
		Message:             trimmedOrNil(r.Message),
		ExpiryDays:          r.ExpiryDays,
	}
}

type RespondToQuoteRequest struct {
	Action            string  `json:"action" binding:"required,oneof=accept reject counter"`
	CounterOfferCents *int64  `json:"counter_offer_cents,omitempty"`
	Message           *string `json:"message,omitempty"`
}

func (r RespondToQuoteRequest) ToInput() commands.RespondInput {
	return commands.RespondInput{
		Action:            quote.ResponseAction(r.Action),
		CounterOfferCents: r.CounterOfferCents,
		Message:           trimmedOrNil(r.Message),
	}
}

type AddMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type CancelQuoteRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (r CancelQuoteRequest) GetReason() *string {
	return trimmedOrNil(r.Reason)
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
