//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"artisan-quotes/internal/domain/quote"
	"artisan-quotes/internal/domain/user"
	"artisan-quotes/internal/handler/api"
	resdto "artisan-quotes/internal/handler/dto/response"
	"artisan-quotes/internal/usecase/commands"
	"artisan-quotes/internal/usecase/queries"
	"artisan-quotes/tests/common/builder"
	"artisan-quotes/tests/common/httptest"
	"artisan-quotes/tests/common/testutil"
	commandsmock "artisan-quotes/tests/mock/commands"
	queriesmock "artisan-quotes/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type QuoteHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockQuoteCommands
	mockQueries  *queriesmock.MockQuoteQueries
	mockStats    *queriesmock.MockStatsQueries
	handler      *api.QuoteHandler

	userID   uuid.UUID
	userRole user.Role
}

func (s *QuoteHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockQuoteCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockQuoteQueries(s.mockCtrl)
	s.mockStats = queriesmock.NewMockStatsQueries(s.mockCtrl)
	s.handler = api.NewQuoteHandler(s.mockCommands, s.mockQueries, s.mockStats)

	s.userID = uuid.New()
	s.userRole = user.RoleCustomer

	// Mock authentication middleware for testing; identity is taken from
	// the suite fields so each test can pick the caller.
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", s.userRole)
		c.Next()
	}

	// Setup routes
	quotes := s.router.Group("/quotes", authMiddleware)
	quotes.POST("", s.handler.Create)
	quotes.GET("", s.handler.List)
	quotes.GET("/stats", s.handler.Stats)
	quotes.GET("/:id", s.handler.Get)
	quotes.GET("/:id/history", s.handler.History)
	quotes.POST("/:id/respond", s.handler.Respond)
	quotes.POST("/:id/messages", s.handler.AddMessage)
	quotes.POST("/:id/cancel", s.handler.Cancel)
	quotes.POST("/:id/complete", s.handler.Complete)
}

func (s *QuoteHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestQuoteHandlerSuite(t *testing.T) {
	suite.Run(t, new(QuoteHandlerTestSuite))
}

type testCaseQuote struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *QuoteHandlerTestSuite) TestCreate() {
	url := "/quotes"

	reqBody := builder.NewQuoteBuilder().BuildCreateRequestDTO()
	returnView := builder.NewQuoteBuilder().BuildViewQuery()
	expectedResult := &commands.CreateQuoteResult{QuoteID: returnView.ID}

	validation := []testCaseQuote{
		{name: "missing field: product_id (required)", mutate: testutil.Field("product_id", nil), expectCode: http.StatusBadRequest},
		{name: "invalid product_id", mutate: testutil.Field("product_id", "not-a-uuid"), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().CreateQuote(gomock.Any(), gomock.Any(), s.userID).
			Return(expectedResult, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, s.userRole, returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var resp resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(returnView.ID, resp.ID)
		s.Equal("pending", resp.Status)
	})

	s.Run("validation", func() {
		for _, tc := range validation {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				s.Equal(tc.expectCode, rec.Code)
			})
		}
	})

	s.Run("error: 401 without authorization", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 404 when product does not exist", func() {
		s.mockCommands.EXPECT().CreateQuote(gomock.Any(), gomock.Any(), s.userID).
			Return(nil, commands.ErrProductNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("error: 409 when an active quote already exists", func() {
		s.mockCommands.EXPECT().CreateQuote(gomock.Any(), gomock.Any(), s.userID).
			Return(nil, commands.ErrDuplicateActiveQuote).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 422 when requested price is below the floor", func() {
		s.mockCommands.EXPECT().CreateQuote(gomock.Any(), gomock.Any(), s.userID).
			Return(nil, quote.ErrPriceBelowFloor).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})
}

// ================================================================================
// TestRespond
// ================================================================================

func (s *QuoteHandlerTestSuite) TestRespond() {
	quoteID := uuid.New()
	url := "/quotes/" + quoteID.String() + "/respond"

	reqBody := builder.NewQuoteBuilder().BuildRespondRequestDTO("accept")

	s.Run("success: returns 200 with the updated quote", func() {
		s.userRole = user.RoleArtisan
		returnView := builder.NewQuoteBuilder().With(func(b *builder.QuoteBuilder) {
			b.Status = "accepted"
		}).BuildViewQuery()

		s.mockCommands.EXPECT().RespondToQuote(gomock.Any(), quoteID, s.userID, gomock.Any()).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, s.userRole, quoteID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var resp resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("accepted", resp.Status)
	})

	s.Run("error: 400 for unknown action", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("action", "approve"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 for malformed quote id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/quotes/nope/respond", reqBody, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 403 when the caller is not the assigned artisan", func() {
		s.mockCommands.EXPECT().RespondToQuote(gomock.Any(), quoteID, s.userID, gomock.Any()).
			Return(commands.ErrNotAssignedArtisan).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})

	s.Run("error: 409 when the quote is already settled", func() {
		s.mockCommands.EXPECT().RespondToQuote(gomock.Any(), quoteID, s.userID, gomock.Any()).
			Return(commands.ErrInvalidQuoteState).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 410 when the quote has expired", func() {
		s.mockCommands.EXPECT().RespondToQuote(gomock.Any(), quoteID, s.userID, gomock.Any()).
			Return(quote.ErrQuoteExpired).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusGone, "expired")
	})
}

// ================================================================================
// TestAddMessage
// ================================================================================

func (s *QuoteHandlerTestSuite) TestAddMessage() {
	quoteID := uuid.New()
	url := "/quotes/" + quoteID.String() + "/messages"
	reqBody := map[string]any{"message": "any progress on this?"}

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().AddMessage(gomock.Any(), quoteID, s.userID, "any progress on this?").
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 when message is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 403 when the caller is not a party", func() {
		s.mockCommands.EXPECT().AddMessage(gomock.Any(), quoteID, s.userID, gomock.Any()).
			Return(quote.ErrNotQuoteParty).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *QuoteHandlerTestSuite) TestCancel() {
	quoteID := uuid.New()
	url := "/quotes/" + quoteID.String() + "/cancel"

	s.Run("success: returns 204 without a body", func() {
		s.mockCommands.EXPECT().CancelQuote(gomock.Any(), quoteID, s.userID, gomock.Nil()).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("success: returns 204 with a reason", func() {
		s.mockCommands.EXPECT().CancelQuote(gomock.Any(), quoteID, s.userID, gomock.Not(gomock.Nil())).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"reason": "found it elsewhere"}, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 on a settled quote", func() {
		s.mockCommands.EXPECT().CancelQuote(gomock.Any(), quoteID, s.userID, gomock.Any()).
			Return(commands.ErrInvalidQuoteState).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

// ================================================================================
// TestComplete
// ================================================================================

func (s *QuoteHandlerTestSuite) TestComplete() {
	quoteID := uuid.New()
	url := "/quotes/" + quoteID.String() + "/complete"

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().CompleteQuote(gomock.Any(), quoteID).Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 when the quote was never accepted", func() {
		s.mockCommands.EXPECT().CompleteQuote(gomock.Any(), quoteID).
			Return(commands.ErrInvalidQuoteState).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

// ================================================================================
// TestGet / TestHistory
// ================================================================================

func (s *QuoteHandlerTestSuite) TestGet() {
	returnView := builder.NewQuoteBuilder().BuildViewQuery()
	url := "/quotes/" + returnView.ID.String()

	s.Run("success: returns 200 with the quote", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, s.userRole, returnView.ID).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(returnView.ID, resp.ID)
	})

	s.Run("error: 404 when the quote does not exist", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, s.userRole, returnView.ID).
			Return(nil, queries.ErrQuoteNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("error: 403 when the caller is not a party", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, s.userRole, returnView.ID).
			Return(nil, queries.ErrNotQuoteParty).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})
}

func (s *QuoteHandlerTestSuite) TestHistory() {
	quoteID := uuid.New()
	url := "/quotes/" + quoteID.String() + "/history"

	s.Run("success: returns entries in order", func() {
		b := builder.NewQuoteBuilder()
		entries := []*queries.NegotiationEntryView{
			b.BuildEntryViewQuery(quoteID, "request"),
			b.BuildEntryViewQuery(quoteID, "counter"),
		}
		s.mockQueries.EXPECT().History(gomock.Any(), s.userID, s.userRole, quoteID).
			Return(entries, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.QuoteHistoryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(quoteID, resp.QuoteID)
		s.Len(resp.Entries, 2)
		s.Equal("request", resp.Entries[0].Action)
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *QuoteHandlerTestSuite) TestList() {
	url := "/quotes"

	s.Run("success: customer listing is pinned to the caller", func() {
		items := []*queries.QuoteListItem{builder.NewQuoteBuilder().BuildListItemQuery()}
		next := &queries.Cursor{After: "opaque"}
		s.mockQueries.EXPECT().ListForCustomer(gomock.Any(), s.userID, gomock.Any(), gomock.Nil(), 0).
			Return(items, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.QuoteListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp.Quotes, 1)
		s.Require().NotNil(resp.NextCursor)
		s.Equal("opaque", *resp.NextCursor)
	})

	s.Run("success: artisan listing uses the artisan scope", func() {
		s.userRole = user.RoleArtisan
		s.mockQueries.EXPECT().ListForArtisan(gomock.Any(), s.userID, gomock.Any(), gomock.Nil(), 0).
			Return(nil, nil, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("success: admin sees everything", func() {
		s.userRole = user.RoleAdmin
		s.mockQueries.EXPECT().ListAll(gomock.Any(), gomock.Any(), gomock.Nil(), 0).
			Return(nil, nil, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("success: filters and pagination params are forwarded", func() {
		s.userRole = user.RoleCustomer
		s.mockQueries.EXPECT().
			ListForCustomer(gomock.Any(), s.userID, gomock.Any(), gomock.Not(gomock.Nil()), 50).
			DoAndReturn(func(_ any, _ uuid.UUID, filter queries.ListFilter, after *queries.Cursor, _ int) ([]*queries.QuoteListItem, *queries.Cursor, error) {
				s.Require().NotNil(filter.Status)
				s.Equal("pending", *filter.Status)
				s.Equal("abc", after.After)
				return nil, nil, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			url+"?status=pending&cursor=abc&limit=50", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 for an unknown status filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?status=open", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
	})

	s.Run("error: 400 for a malformed time bound", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?from=yesterday", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 500 when the read side fails", func() {
		s.userRole = user.RoleCustomer
		s.mockQueries.EXPECT().ListForCustomer(gomock.Any(), s.userID, gomock.Any(), gomock.Nil(), 0).
			Return(nil, nil, errors.New("connection refused")).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}

// ================================================================================
// TestStats
// ================================================================================

func (s *QuoteHandlerTestSuite) TestStats() {
	url := "/quotes/stats"
	returnView := builder.NewQuoteBuilder().BuildStatsViewQuery()

	s.Run("success: non-admin stats are scoped to the caller", func() {
		s.mockStats.EXPECT().Stats(gomock.Any(), gomock.Not(gomock.Nil()), s.userRole).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.QuoteStatsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(int64(10), resp.TotalQuotes)
		s.InDelta(40.0, resp.ConversionRatePercent, 0.001)
	})

	s.Run("success: admin stats are unscoped", func() {
		s.userRole = user.RoleAdmin
		s.mockStats.EXPECT().Stats(gomock.Any(), gomock.Nil(), user.RoleAdmin).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})
}
