package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"artisan-quotes/internal/domain/quote"
	"artisan-quotes/internal/infra"
	"artisan-quotes/internal/pkg/clock"
	"artisan-quotes/internal/pkg/errs"
	"artisan-quotes/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound         = errs.New("product not found")
	ErrQuoteNotFoundWrite      = errs.New("quote not found")
	ErrNotAssignedArtisan      = errs.New("quote belongs to a different artisan")
	ErrInvalidQuoteState       = errs.New("quote is not in a state that allows this action")
	ErrInvalidResponseAction   = errs.New("invalid response action")
	ErrInvalidCounterOffer     = errs.New("counter action requires a positive counter offer")
	ErrDuplicateActiveQuote    = errs.New("an active quote already exists for this product and customer")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateQuoteInput struct {
	ProductID           uuid.UUID
	RequestedPriceCents *int64
	Specifications      string
	Message             *string
	ExpiryDays          *int
}

type RespondInput struct {
	Action            quote.ResponseAction
	CounterOfferCents *int64
	Message           *string
}

type CreateQuoteResult struct {
	QuoteID uuid.UUID
}

type QuoteCommands interface {
	CreateQuote(ctx context.Context, input CreateQuoteInput, customerID uuid.UUID) (*CreateQuoteResult, error)
	RespondToQuote(ctx context.Context, quoteID uuid.UUID, artisanID uuid.UUID, input RespondInput) error
	AddMessage(ctx context.Context, quoteID uuid.UUID, userID uuid.UUID, text string) error
	CancelQuote(ctx context.Context, quoteID uuid.UUID, userID uuid.UUID, reason *string) error
	CompleteQuote(ctx context.Context, quoteID uuid.UUID) error
	SweepExpiredQuotes(ctx context.Context) (int, error)
}

type quoteUseCaseImpl struct {
	uow       shared.UnitOfWork
	products  ProductGateway
	publisher NotificationPublisher
	clock     clock.Clock
}

func NewQuoteUseCase(
	uow shared.UnitOfWork,
	products ProductGateway,
	publisher NotificationPublisher,
	clk clock.Clock,
) QuoteCommands {
	return &quoteUseCaseImpl{
		uow:       uow,
		products:  products,
		publisher: publisher,
		clock:     clk,
	}
}

func (uc *quoteUseCaseImpl) CreateQuote(ctx context.Context, input CreateQuoteInput, customerID uuid.UUID) (*CreateQuoteResult, error) {
	requestedPrice, err := optionalMoney(input.RequestedPriceCents)
	if err != nil {
		return nil, err
	}
	specs, err := quote.NewSpecifications(input.Specifications)
	if err != nil {
		return nil, err
	}
	message, err := optionalMessage(input.Message)
	if err != nil {
		return nil, err
	}
	expiry, err := quote.NewExpiryDays(input.ExpiryDays)
	if err != nil {
		return nil, err
	}

	product, err := uc.products.ProductByID(ctx, input.ProductID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrProductNotFound)
		}
		return nil, err
	}

	services := &quote.Services{Clock: uc.clock}
	agg, err := quote.NewQuoteRequest(services, *product, customerID, requestedPrice, specs, message, expiry)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Quotes().Create(ctx, tx.DB(), agg); derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return errs.Mark(derr, ErrDuplicateActiveQuote)
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		entry := quote.NewRequestEntry(agg.ID(), agg.RequestedPrice(), agg.CustomerMessage(), agg.CreatedAt())
		return tx.Negotiations().Append(ctx, tx.DB(), entry)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, EventQuoteCreated, agg, nil)
	return &CreateQuoteResult{QuoteID: agg.ID()}, nil
}

func (uc *quoteUseCaseImpl) RespondToQuote(ctx context.Context, quoteID uuid.UUID, artisanID uuid.UUID, input RespondInput) error {
	if !input.Action.IsValid() {
		return ErrInvalidResponseAction
	}
	message, err := optionalMessage(input.Message)
	if err != nil {
		return err
	}

	var counterOffer *quote.Money
	if input.Action == quote.ResponseCounter {
		if input.CounterOfferCents == nil {
			return ErrInvalidCounterOffer
		}
		m, merr := quote.NewMoney(*input.CounterOfferCents)
		if merr != nil {
			return errs.Mark(merr, ErrInvalidCounterOffer)
		}
		counterOffer = &m
	}

	var (
		agg     *quote.QuoteRequest
		expired bool
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().QuoteForUpdate(ctx, quoteID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, ErrQuoteNotFoundWrite)
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		agg = snap.ToDomain()
		if agg.ArtisanID() != artisanID {
			return ErrNotAssignedArtisan
		}

		now := uc.clock.Now()
		if agg.HasExpired(now) {
			if derr = agg.MarkExpired(now); derr != nil {
				return derr
			}
			expired = true
			return tx.Quotes().Update(ctx, tx.DB(), agg)
		}

		standing := agg.CounterOffer()
		if standing == nil {
			standing = agg.RequestedPrice()
		}

		// Mirror the message while the quote is still active; the transition
		// below may land on a terminal status.
		if message != nil {
			if _, derr = agg.AddMessage(artisanID, *message, now); derr != nil {
				return uc.mapTransitionErr(derr, agg)
			}
		}

		var entry *quote.NegotiationEntry
		switch input.Action {
		case quote.ResponseAccept:
			// A quote that never carried a price settles at the live catalog
			// price. Only that path pays the gateway call under the row lock.
			var livePriceCents int64
			if agg.CounterOffer() == nil && agg.RequestedPrice() == nil {
				product, perr := uc.products.ProductByID(ctx, agg.ProductID())
				if perr != nil {
					return perr
				}
				livePriceCents = product.EffectivePriceCents()
			}
			if derr = agg.Accept(livePriceCents, now); derr != nil {
				return uc.mapTransitionErr(derr, agg)
			}
			entry = quote.NewAcceptEntry(quoteID, standing, agg.FinalPrice(), message, now)
		case quote.ResponseReject:
			if derr = agg.Reject(now); derr != nil {
				return uc.mapTransitionErr(derr, agg)
			}
			entry = quote.NewRejectEntry(quoteID, quote.ActorArtisan, message, now)
		case quote.ResponseCounter:
			if derr = agg.Counter(*counterOffer, now); derr != nil {
				return uc.mapTransitionErr(derr, agg)
			}
			entry = quote.NewCounterEntry(quoteID, standing, *counterOffer, message, now)
		}

		if derr = tx.Quotes().Update(ctx, tx.DB(), agg); derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		return tx.Negotiations().Append(ctx, tx.DB(), entry)
	})
	if err != nil {
		return err
	}
	if expired {
		uc.publish(ctx, EventQuoteExpired, agg, nil)
		return quote.ErrQuoteExpired
	}

	eventType := EventQuoteResponded
	if input.Action == quote.ResponseAccept {
		eventType = EventQuoteAccepted
	}
	uc.publish(ctx, eventType, agg, agg.FinalPrice())
	return nil
}

func (uc *quoteUseCaseImpl) AddMessage(ctx context.Context, quoteID uuid.UUID, userID uuid.UUID, text string) error {
	msg, err := quote.NewMessage(text)
	if err != nil {
		return err
	}

	var (
		agg     *quote.QuoteRequest
		expired bool
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().QuoteForUpdate(ctx, quoteID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, ErrQuoteNotFoundWrite)
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		agg = snap.ToDomain()
		now := uc.clock.Now()
		if agg.HasExpired(now) {
			if _, derr = agg.ActorFor(userID); derr != nil {
				return derr
			}
			if derr = agg.MarkExpired(now); derr != nil {
				return derr
			}
			expired = true
			return tx.Quotes().Update(ctx, tx.DB(), agg)
		}

		actor, derr := agg.AddMessage(userID, msg, now)
		if derr != nil {
			return uc.mapTransitionErr(derr, agg)
		}
		if derr = tx.Quotes().Update(ctx, tx.DB(), agg); derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		entry := quote.NewMessageEntry(quoteID, actor, msg, now)
		return tx.Negotiations().Append(ctx, tx.DB(), entry)
	})
	if err != nil {
		return err
	}
	if expired {
		uc.publish(ctx, EventQuoteExpired, agg, nil)
		return quote.ErrQuoteExpired
	}
	return nil
}

func (uc *quoteUseCaseImpl) CancelQuote(ctx context.Context, quoteID uuid.UUID, userID uuid.UUID, reason *string) error {
	reasonMsg, err := optionalMessage(reason)
	if err != nil {
		return err
	}

	var (
		agg     *quote.QuoteRequest
		expired bool
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().QuoteForUpdate(ctx, quoteID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, ErrQuoteNotFoundWrite)
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		agg = snap.ToDomain()
		now := uc.clock.Now()
		if agg.HasExpired(now) {
			if _, derr = agg.ActorFor(userID); derr != nil {
				return derr
			}
			if derr = agg.MarkExpired(now); derr != nil {
				return derr
			}
			expired = true
			return tx.Quotes().Update(ctx, tx.DB(), agg)
		}

		actor, derr := agg.Cancel(userID, now)
		if derr != nil {
			return uc.mapTransitionErr(derr, agg)
		}
		if derr = tx.Quotes().Update(ctx, tx.DB(), agg); derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		entry := quote.NewRejectEntry(quoteID, actor, reasonMsg, now).
			WithMetadata(map[string]string{"cancelled": "true"})
		return tx.Negotiations().Append(ctx, tx.DB(), entry)
	})
	if err != nil {
		return err
	}
	if expired {
		uc.publish(ctx, EventQuoteExpired, agg, nil)
		return quote.ErrQuoteExpired
	}
	return nil
}

func (uc *quoteUseCaseImpl) CompleteQuote(ctx context.Context, quoteID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().QuoteForUpdate(ctx, quoteID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, ErrQuoteNotFoundWrite)
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		agg := snap.ToDomain()
		if derr = agg.Complete(uc.clock.Now()); derr != nil {
			return uc.mapTransitionErr(derr, agg)
		}
		if derr = tx.Quotes().Update(ctx, tx.DB(), agg); derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// SweepExpiredQuotes bulk-expires overdue active quotes and reports how many
// rows moved. Safe to run concurrently; each run claims a disjoint set.
func (uc *quoteUseCaseImpl) SweepExpiredQuotes(ctx context.Context) (int, error) {
	var swept []shared.ExpiredQuote
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired, derr := tx.Quotes().ExpireOverdue(ctx, tx.DB(), uc.clock.Now())
		if derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		swept = expired
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, e := range swept {
		event := QuoteEvent{
			Type:       EventQuoteExpired,
			QuoteID:    e.ID,
			CustomerID: e.CustomerID,
			ArtisanID:  e.ArtisanID,
			OccurredAt: uc.clock.Now(),
		}
		if perr := uc.publisher.Publish(ctx, event); perr != nil {
			slog.Warn("failed to publish expiry event", "quote_id", e.ID, "error", perr.Error())
		}
	}
	return len(swept), nil
}

func (uc *quoteUseCaseImpl) mapTransitionErr(err error, agg *quote.QuoteRequest) error {
	switch {
	case errors.Is(err, quote.ErrQuoteNotActive), errors.Is(err, quote.ErrQuoteNotAccepted):
		return errs.Mark(errs.Wrap(err, fmt.Sprintf("quote status is %s", agg.Status())), ErrInvalidQuoteState)
	default:
		return err
	}
}

func (uc *quoteUseCaseImpl) publish(ctx context.Context, eventType string, agg *quote.QuoteRequest, finalPrice *quote.Money) {
	event := QuoteEvent{
		Type:       eventType,
		QuoteID:    agg.ID(),
		ProductID:  agg.ProductID(),
		CustomerID: agg.CustomerID(),
		ArtisanID:  agg.ArtisanID(),
		OccurredAt: uc.clock.Now(),
	}
	if finalPrice != nil {
		cents := finalPrice.Cents()
		event.FinalPriceCents = &cents
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish quote event", "type", eventType, "quote_id", agg.ID(), "error", err.Error())
	}
}

func optionalMoney(cents *int64) (*quote.Money, error) {
	if cents == nil {
		return nil, nil
	}
	m, err := quote.NewMoney(*cents)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func optionalMessage(s *string) (*quote.Message, error) {
	if s == nil {
		return nil, nil
	}
	m, err := quote.NewMessage(*s)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
