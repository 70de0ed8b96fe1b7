//go:build e2e

package quote_test

import (
	"context"
	"net/http"
	"testing"

	"artisan-quotes/internal/domain/quote"
	"artisan-quotes/internal/domain/user"
	reqdto "artisan-quotes/internal/handler/dto/request"
	resdto "artisan-quotes/internal/handler/dto/response"
	"artisan-quotes/internal/infra/readstore"
	"artisan-quotes/internal/usecase/queries"
	"artisan-quotes/tests/common/dbtest"
	"artisan-quotes/tests/common/httptest"
	"artisan-quotes/tests/e2e"
	"artisan-quotes/tests/e2e/common/helper"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const quotesURL = "/api/quotes"

type QuoteSuite struct {
	e2e.SharedSuite
	jwt *helper.JWTTestHelper
}

func (s *QuoteSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = helper.NewJWTTestHelper(s.Config.JWT)
}

func TestQuoteSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(QuoteSuite))
}

// registerProduct puts a customizable, published product into the stub
// catalog and returns it.
func (s *QuoteSuite) registerProduct(priceCents int64) quote.ProductSpec {
	p := quote.ProductSpec{
		ID:             uuid.New(),
		SellerID:       uuid.New(),
		PriceCents:     priceCents,
		IsCustomizable: true,
		Status:         quote.ProductStatusPublished,
	}
	s.Catalog.Register(p)
	return p
}

func (s *QuoteSuite) createQuote(t *testing.T, token string, product quote.ProductSpec, priceCents int64) resdto.QuoteResponse {
	t.Helper()

	price := priceCents
	message := "Interested in a custom variant"
	body := reqdto.CreateQuoteRequest{
		ProductID:           product.ID,
		RequestedPriceCents: &price,
		Specifications:      "engraved initials, gift wrap",
		Message:             &message,
	}

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, quotesURL, body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created resdto.QuoteResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	require.NotEqual(t, uuid.Nil, created.ID)
	return created
}

// =============================================================================
// TestNegotiationLifecycle - full flows over HTTP
// =============================================================================

func (s *QuoteSuite) TestNegotiationLifecycle() {
	s.Run("counter then accept settles at the counter offer", func() {
		t := s.T()
		product := s.registerProduct(10000)
		customerID := uuid.New()
		customerToken := s.jwt.GenerateToken(t, customerID, user.RoleCustomer)
		artisanToken := s.jwt.GenerateToken(t, product.SellerID, user.RoleArtisan)

		created := s.createQuote(t, customerToken, product, 8000)
		require.Equal(t, "pending", created.Status)
		require.Equal(t, product.SellerID, created.ArtisanID)

		counter := int64(9000)
		counterMsg := "can do it for 90"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			quotesURL+"/"+created.ID.String()+"/respond",
			reqdto.RespondToQuoteRequest{Action: "counter", CounterOfferCents: &counter, Message: &counterMsg},
			artisanToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var countered resdto.QuoteResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &countered))
		require.Equal(t, "counter_offered", countered.Status)
		require.Equal(t, counter, *countered.CounterOfferCents)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			quotesURL+"/"+created.ID.String()+"/respond",
			reqdto.RespondToQuoteRequest{Action: "accept"}, artisanToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var accepted resdto.QuoteResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &accepted))
		require.Equal(t, "accepted", accepted.Status)
		require.Equal(t, counter, *accepted.FinalPriceCents)
		require.Nil(t, accepted.CounterOfferCents)

		// History carries the whole negotiation in order
		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			quotesURL+"/"+created.ID.String()+"/history", nil, customerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var history resdto.QuoteHistoryResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &history))

		var actions []string
		for _, entry := range history.Entries {
			actions = append(actions, entry.Action)
		}
		if diff := cmp.Diff([]string{"request", "counter", "accept"}, actions); diff != "" {
			t.Errorf("history actions mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("rejection ends the negotiation", func() {
		t := s.T()
		product := s.registerProduct(10000)
		customerToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)
		artisanToken := s.jwt.GenerateToken(t, product.SellerID, user.RoleArtisan)

		created := s.createQuote(t, customerToken, product, 8000)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			quotesURL+"/"+created.ID.String()+"/respond",
			reqdto.RespondToQuoteRequest{Action: "reject"}, artisanToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		status, err := dbtest.QuoteStatus(s.DB, created.ID)
		require.NoError(t, err)
		require.Equal(t, "rejected", status)

		// No further responses on a settled quote
		counter := int64(9000)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			quotesURL+"/"+created.ID.String()+"/respond",
			reqdto.RespondToQuoteRequest{Action: "counter", CounterOfferCents: &counter}, artisanToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("customer cancellation lands as an attributed rejection", func() {
		t := s.T()
		product := s.registerProduct(10000)
		customerID := uuid.New()
		customerToken := s.jwt.GenerateToken(t, customerID, user.RoleCustomer)

		created := s.createQuote(t, customerToken, product, 8000)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			quotesURL+"/"+created.ID.String()+"/cancel",
			reqdto.CancelQuoteRequest{}, customerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		status, err := dbtest.QuoteStatus(s.DB, created.ID)
		require.NoError(t, err)
		require.Equal(t, "rejected", status)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			quotesURL+"/"+created.ID.String()+"/history", nil, customerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var history resdto.QuoteHistoryResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &history))
		last := history.Entries[len(history.Entries)-1]
		require.Equal(t, "reject", last.Action)
		require.Equal(t, "customer", last.Actor)
		require.Equal(t, "true", last.Metadata["cancelled"])
	})

	s.Run("messages from both parties are mirrored onto the quote", func() {
		t := s.T()
		product := s.registerProduct(10000)
		customerID := uuid.New()
		customerToken := s.jwt.GenerateToken(t, customerID, user.RoleCustomer)
		artisanToken := s.jwt.GenerateToken(t, product.SellerID, user.RoleArtisan)

		created := s.createQuote(t, customerToken, product, 8000)
		messagesURL := quotesURL + "/" + created.ID.String() + "/messages"

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, messagesURL,
			reqdto.AddMessageRequest{Message: "when could you deliver?"}, customerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, messagesURL,
			reqdto.AddMessageRequest{Message: "about three weeks"}, artisanToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			quotesURL+"/"+created.ID.String(), nil, customerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var view resdto.QuoteResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))
		require.Equal(t, "when could you deliver?", *view.CustomerMessage)
		require.Equal(t, "about three weeks", *view.ArtisanMessage)

		n, err := dbtest.CountEntries(s.DB, created.ID)
		require.NoError(t, err)
		require.Equal(t, 3, n) // request + two messages
	})

	s.Run("admin completes an accepted quote", func() {
		t := s.T()
		product := s.registerProduct(10000)
		customerToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)
		artisanToken := s.jwt.GenerateToken(t, product.SellerID, user.RoleArtisan)
		adminToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleAdmin)

		created := s.createQuote(t, customerToken, product, 8000)
		completeURL := quotesURL + "/" + created.ID.String() + "/complete"

		// Not accepted yet
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, completeURL, nil, adminToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			quotesURL+"/"+created.ID.String()+"/respond",
			reqdto.RespondToQuoteRequest{Action: "accept"}, artisanToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, completeURL, nil, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		status, err := dbtest.QuoteStatus(s.DB, created.ID)
		require.NoError(t, err)
		require.Equal(t, "completed", status)
	})
}

// =============================================================================
// TestAccessControl
// =============================================================================

func (s *QuoteSuite) TestAccessControl() {
	s.Run("only the assigned artisan may respond", func() {
		t := s.T()
		product := s.registerProduct(10000)
		customerToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)
		otherArtisanToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleArtisan)

		created := s.createQuote(t, customerToken, product, 8000)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			quotesURL+"/"+created.ID.String()+"/respond",
			reqdto.RespondToQuoteRequest{Action: "accept"}, otherArtisanToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("third parties cannot read a quote", func() {
		t := s.T()
		product := s.registerProduct(10000)
		customerToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)
		strangerToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)

		created := s.createQuote(t, customerToken, product, 8000)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			quotesURL+"/"+created.ID.String(), nil, strangerToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("role gates on create, respond and complete", func() {
		t := s.T()
		product := s.registerProduct(10000)
		artisanToken := s.jwt.GenerateToken(t, product.SellerID, user.RoleArtisan)
		customerToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)

		price := int64(8000)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, quotesURL,
			reqdto.CreateQuoteRequest{ProductID: product.ID, RequestedPriceCents: &price}, artisanToken)
		require.Equal(t, http.StatusForbidden, w.Code, "artisans cannot open quotes")

		created := s.createQuote(t, customerToken, product, 8000)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			quotesURL+"/"+created.ID.String()+"/respond",
			reqdto.RespondToQuoteRequest{Action: "accept"}, customerToken)
		require.Equal(t, http.StatusForbidden, w.Code, "customers cannot respond")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			quotesURL+"/"+created.ID.String()+"/complete", nil, customerToken)
		require.Equal(t, http.StatusForbidden, w.Code, "only admins complete quotes")
	})

	s.Run("expired token is rejected", func() {
		t := s.T()
		token := s.jwt.CreateExpiredToken(t, uuid.New(), user.RoleCustomer)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, quotesURL, nil, token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestCreateValidation
// =============================================================================

func (s *QuoteSuite) TestCreateValidation() {
	s.Run("price below half the catalog price is rejected", func() {
		t := s.T()
		product := s.registerProduct(10000)
		token := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)

		price := int64(4999)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, quotesURL,
			reqdto.CreateQuoteRequest{ProductID: product.ID, RequestedPriceCents: &price}, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("unknown product yields 404", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, quotesURL,
			reqdto.CreateQuoteRequest{ProductID: uuid.New()}, token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("second active quote for the same product is a conflict", func() {
		t := s.T()
		product := s.registerProduct(10000)
		customerID := uuid.New()
		token := s.jwt.GenerateToken(t, customerID, user.RoleCustomer)

		s.createQuote(t, token, product, 8000)

		price := int64(8000)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, quotesURL,
			reqdto.CreateQuoteRequest{ProductID: product.ID, RequestedPriceCents: &price}, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		// A settled quote does not block a new one
		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			quotesURL+"/"+s.latestQuoteID(t, customerID).String()+"/cancel", nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, quotesURL,
			reqdto.CreateQuoteRequest{ProductID: product.ID, RequestedPriceCents: &price}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}

func (s *QuoteSuite) latestQuoteID(t *testing.T, customerID uuid.UUID) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := s.DB.QueryRow(context.Background(),
		"SELECT id FROM quotes WHERE customer_id = $1 ORDER BY created_at DESC LIMIT 1",
		customerID).Scan(&id)
	require.NoError(t, err)
	return id
}

// =============================================================================
// TestExpiration
// =============================================================================

func (s *QuoteSuite) TestExpiration() {
	s.Run("responding to an overdue quote returns 410 and persists the flip", func() {
		t := s.T()
		product := s.registerProduct(10000)
		customerToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)
		artisanToken := s.jwt.GenerateToken(t, product.SellerID, user.RoleArtisan)

		created := s.createQuote(t, customerToken, product, 8000)
		require.NoError(t, dbtest.ForceExpiry(s.DB, created.ID))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			quotesURL+"/"+created.ID.String()+"/respond",
			reqdto.RespondToQuoteRequest{Action: "accept"}, artisanToken)
		require.Equal(t, http.StatusGone, w.Code, w.Body.String())

		status, err := dbtest.QuoteStatus(s.DB, created.ID)
		require.NoError(t, err)
		require.Equal(t, "expired", status)
	})

	s.Run("overdue counter-offered quote expires and drops the standing offer", func() {
		t := s.T()
		product := s.registerProduct(10000)
		customerToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)
		artisanToken := s.jwt.GenerateToken(t, product.SellerID, user.RoleArtisan)

		created := s.createQuote(t, customerToken, product, 8000)

		counter := int64(7500)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			quotesURL+"/"+created.ID.String()+"/respond",
			reqdto.RespondToQuoteRequest{Action: "counter", CounterOfferCents: &counter}, artisanToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		require.NoError(t, dbtest.ForceExpiry(s.DB, created.ID))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			quotesURL+"/"+created.ID.String()+"/respond",
			reqdto.RespondToQuoteRequest{Action: "accept"}, artisanToken)
		require.Equal(t, http.StatusGone, w.Code, w.Body.String())

		status, err := dbtest.QuoteStatus(s.DB, created.ID)
		require.NoError(t, err)
		require.Equal(t, "expired", status)

		cents, err := dbtest.CounterOfferCents(s.DB, created.ID)
		require.NoError(t, err)
		require.Nil(t, cents)
	})

	s.Run("sweep expires every overdue quote exactly once", func() {
		t := s.T()
		customerToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)

		first := s.createQuote(t, customerToken, s.registerProduct(10000), 8000)
		second := s.createQuote(t, customerToken, s.registerProduct(12000), 9000)
		fresh := s.createQuote(t, customerToken, s.registerProduct(14000), 10000)

		require.NoError(t, dbtest.ForceExpiry(s.DB, first.ID))
		require.NoError(t, dbtest.ForceExpiry(s.DB, second.ID))

		count, err := s.Commands.SweepExpiredQuotes(t.Context())
		require.NoError(t, err)
		require.Equal(t, 2, count)

		for _, id := range []uuid.UUID{first.ID, second.ID} {
			status, err := dbtest.QuoteStatus(s.DB, id)
			require.NoError(t, err)
			require.Equal(t, "expired", status)
		}
		status, err := dbtest.QuoteStatus(s.DB, fresh.ID)
		require.NoError(t, err)
		require.Equal(t, "pending", status)

		// A second run claims nothing
		count, err = s.Commands.SweepExpiredQuotes(t.Context())
		require.NoError(t, err)
		require.Zero(t, count)
	})
}

// =============================================================================
// TestListAndStats
// =============================================================================

func (s *QuoteSuite) TestListAndStats() {
	s.Run("keyset pagination walks the customer's quotes", func() {
		t := s.T()
		customerID := uuid.New()
		token := s.jwt.GenerateToken(t, customerID, user.RoleCustomer)

		var createdIDs []string
		for range 3 {
			created := s.createQuote(t, token, s.registerProduct(10000), 8000)
			createdIDs = append(createdIDs, created.ID.String())
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, quotesURL+"?limit=2", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var firstPage resdto.QuoteListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &firstPage))
		require.Len(t, firstPage.Quotes, 2)
		require.NotNil(t, firstPage.NextCursor)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			quotesURL+"?limit=2&cursor="+*firstPage.NextCursor, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var secondPage resdto.QuoteListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &secondPage))
		require.Len(t, secondPage.Quotes, 1)

		var got []string
		for _, item := range append(firstPage.Quotes, secondPage.Quotes...) {
			got = append(got, item.ID.String())
		}
		require.ElementsMatch(t, createdIDs, got, "pages together cover every quote exactly once")
	})

	s.Run("status filter narrows the listing", func() {
		t := s.T()
		product := s.registerProduct(10000)
		customerID := uuid.New()
		token := s.jwt.GenerateToken(t, customerID, user.RoleCustomer)
		artisanToken := s.jwt.GenerateToken(t, product.SellerID, user.RoleArtisan)

		accepted := s.createQuote(t, token, product, 8000)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			quotesURL+"/"+accepted.ID.String()+"/respond",
			reqdto.RespondToQuoteRequest{Action: "accept"}, artisanToken)
		require.Equal(t, http.StatusOK, w.Code)

		s.createQuote(t, token, s.registerProduct(11000), 8000)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, quotesURL+"?status=accepted", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var listing resdto.QuoteListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &listing))
		require.Len(t, listing.Quotes, 1)
		require.Equal(t, accepted.ID, listing.Quotes[0].ID)
	})

	s.Run("stats aggregate the caller's scope", func() {
		t := s.T()
		product := s.registerProduct(10000)
		customerID := uuid.New()
		token := s.jwt.GenerateToken(t, customerID, user.RoleCustomer)
		artisanToken := s.jwt.GenerateToken(t, product.SellerID, user.RoleArtisan)

		accepted := s.createQuote(t, token, product, 8000)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			quotesURL+"/"+accepted.ID.String()+"/respond",
			reqdto.RespondToQuoteRequest{Action: "accept"}, artisanToken)
		require.Equal(t, http.StatusOK, w.Code)

		s.createQuote(t, token, s.registerProduct(11000), 8000)

		// Another customer's quote must not leak into the scope
		otherToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)
		s.createQuote(t, otherToken, s.registerProduct(12000), 9000)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, quotesURL+"/stats", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var stats resdto.QuoteStatsResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &stats))
		require.Equal(t, int64(2), stats.TotalQuotes)
		require.Equal(t, int64(1), stats.PendingQuotes)
		require.Equal(t, int64(1), stats.AcceptedQuotes)
		require.InDelta(t, 50.0, stats.ConversionRatePercent, 0.01)

		// Admin sees the whole marketplace
		adminToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleAdmin)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, quotesURL+"/stats", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &stats))
		require.Equal(t, int64(3), stats.TotalQuotes)
	})

	s.Run("aggregate accepts customer and artisan filters together", func() {
		t := s.T()
		product := s.registerProduct(10000)
		customerID := uuid.New()
		token := s.jwt.GenerateToken(t, customerID, user.RoleCustomer)

		s.createQuote(t, token, product, 8000)
		s.createQuote(t, token, s.registerProduct(11000), 8000)

		row, err := readstore.NewStatsReadStore(s.DB).Aggregate(t.Context(), queries.StatsFilter{
			CustomerID: &customerID,
			ArtisanID:  &product.SellerID,
		})
		require.NoError(t, err)
		require.Equal(t, int64(1), row.Total)
		require.Equal(t, int64(1), row.Pending)
	})
}
