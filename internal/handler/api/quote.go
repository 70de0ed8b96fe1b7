package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"artisan-quotes/internal/domain/quote"
	"artisan-quotes/internal/domain/user"
	reqdto "artisan-quotes/internal/handler/dto/request"
	resdto "artisan-quotes/internal/handler/dto/response"
	"artisan-quotes/internal/handler/httperr"
	"artisan-quotes/internal/handler/middleware"
	"artisan-quotes/internal/usecase/commands"
	"artisan-quotes/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuoteHandler struct {
	cmds  commands.QuoteCommands
	q     queries.QuoteQueries
	stats queries.StatsQueries
}

func NewQuoteHandler(cmds commands.QuoteCommands, q queries.QuoteQueries, stats queries.StatsQueries) *QuoteHandler {
	return &QuoteHandler{cmds: cmds, q: q, stats: stats}
}

// @Summary Request a quote
// @Description Create a custom quote request on an artisan's product
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateQuoteRequest true "Create quote request"
// @Success 201 {object} resdto.QuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req reqdto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.CreateQuote(c.Request.Context(), req.ToInput(), userID)
	if err != nil {
		abortQuoteError(c, err, "Create quote failed")
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), userID, role, result.QuoteID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load quote", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromQuoteView(view))
}

// @Summary Respond to a quote
// @Description Accept, reject or counter a pending quote as the assigned artisan
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Param request body reqdto.RespondToQuoteRequest true "Response"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /quotes/{id}/respond [post]
func (h *QuoteHandler) Respond(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req reqdto.RespondToQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.RespondToQuote(c.Request.Context(), quoteID, userID, req.ToInput()); err != nil {
		abortQuoteError(c, err, "Respond failed")
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), userID, role, quoteID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load quote", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteView(view))
}

// @Summary Add a message
// @Description Append a negotiation message as either party
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Param request body reqdto.AddMessageRequest true "Message"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /quotes/{id}/messages [post]
func (h *QuoteHandler) AddMessage(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	userID, _, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req reqdto.AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.AddMessage(c.Request.Context(), quoteID, userID, req.Message); err != nil {
		abortQuoteError(c, err, "Add message failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel a quote
// @Description Withdraw an active quote as either party
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Param request body reqdto.CancelQuoteRequest false "Optional reason"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /quotes/{id}/cancel [post]
func (h *QuoteHandler) Cancel(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	userID, _, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req reqdto.CancelQuoteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	if err := h.cmds.CancelQuote(c.Request.Context(), quoteID, userID, req.GetReason()); err != nil {
		abortQuoteError(c, err, "Cancel failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Complete a quote
// @Description Mark an accepted quote as converted to an order
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /quotes/{id}/complete [post]
func (h *QuoteHandler) Complete(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	if err := h.cmds.CompleteQuote(c.Request.Context(), quoteID); err != nil {
		abortQuoteError(c, err, "Complete failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get a quote
// @Description Get a quote by ID; restricted to its parties and admins
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /quotes/{id} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), userID, role, quoteID)
	if err != nil {
		abortQuoteError(c, err, "Get quote failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteView(view))
}

// @Summary Get negotiation history
// @Description List every negotiation entry of a quote in order
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 200 {object} resdto.QuoteHistoryResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /quotes/{id}/history [get]
func (h *QuoteHandler) History(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	entries, err := h.q.History(c.Request.Context(), userID, role, quoteID)
	if err != nil {
		abortQuoteError(c, err, "Get history failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromNegotiationEntries(quoteID, entries))
}

// @Summary List quotes
// @Description List quotes scoped by role; customers and artisans see their own
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param product_id query string false "Product filter"
// @Param from query string false "Created-at lower bound (RFC3339)"
// @Param to query string false "Created-at upper bound (RFC3339)"
// @Param cursor query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.QuoteListResponse
// @Failure 400 {object} map[string]string
// @Router /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	filter, after, limit, err := parseListParams(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	var (
		items []*queries.QuoteListItem
		next  *queries.Cursor
	)
	switch role {
	case user.RoleCustomer:
		items, next, err = h.q.ListForCustomer(c.Request.Context(), userID, filter, after, limit)
	case user.RoleArtisan:
		items, next, err = h.q.ListForArtisan(c.Request.Context(), userID, filter, after, limit)
	case user.RoleAdmin:
		items, next, err = h.q.ListAll(c.Request.Context(), filter, after, limit)
	}
	if err != nil {
		abortQuoteError(c, err, "List quotes failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteList(items, next))
}

// @Summary Quote statistics
// @Description Aggregate quote counts and negotiation outcomes for the caller's scope
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.QuoteStatsResponse
// @Router /quotes/stats [get]
func (h *QuoteHandler) Stats(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	scope := &userID
	if role == user.RoleAdmin {
		scope = nil
	}
	view, err := h.stats.Stats(c.Request.Context(), scope, role)
	if err != nil {
		abortQuoteError(c, err, "Stats failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromStatsView(view))
}

func requireIdentity(c *gin.Context) (uuid.UUID, user.Role, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing identity"), "Unauthorized", nil)
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing role"), "Unauthorized", nil)
		return uuid.Nil, "", false
	}
	return userID, role, true
}

func parseQuoteID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid quote id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func parseListParams(c *gin.Context) (queries.ListFilter, *queries.Cursor, int, error) {
	var filter queries.ListFilter

	if status := c.Query("status"); status != "" {
		if !quote.Status(status).IsValid() {
			return filter, nil, 0, errors.New("unknown status: " + status)
		}
		filter.Status = &status
	}
	if productID := c.Query("product_id"); productID != "" {
		id, err := uuid.Parse(productID)
		if err != nil {
			return filter, nil, 0, err
		}
		filter.ProductID = &id
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return filter, nil, 0, err
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return filter, nil, 0, err
		}
		filter.To = &t
	}

	var after *queries.Cursor
	if cursor := c.Query("cursor"); cursor != "" {
		after = &queries.Cursor{After: cursor}
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return filter, nil, 0, err
		}
		limit = parsed
	}

	return filter, after, limit, nil
}

func abortQuoteError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, queries.ErrQuoteNotFound),
		errors.Is(err, commands.ErrQuoteNotFoundWrite),
		errors.Is(err, commands.ErrProductNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)

	case errors.Is(err, queries.ErrNotQuoteParty),
		errors.Is(err, quote.ErrNotQuoteParty),
		errors.Is(err, commands.ErrNotAssignedArtisan):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)

	case errors.Is(err, quote.ErrQuoteExpired):
		httperr.AbortWithError(c, http.StatusGone, err, "Quote has expired", nil)

	case errors.Is(err, commands.ErrInvalidQuoteState),
		errors.Is(err, commands.ErrDuplicateActiveQuote):
		httperr.AbortWithError(c, http.StatusConflict, err, err.Error(), nil)

	case errors.Is(err, quote.ErrNonPositivePrice),
		errors.Is(err, quote.ErrPriceBelowFloor),
		errors.Is(err, quote.ErrSelfQuote),
		errors.Is(err, quote.ErrProductNotAvailable),
		errors.Is(err, quote.ErrProductNotCustomizable),
		errors.Is(err, quote.ErrSpecificationsTooLong),
		errors.Is(err, quote.ErrEmptyMessage),
		errors.Is(err, quote.ErrMessageTooLong),
		errors.Is(err, quote.ErrInvalidExpiryDays),
		errors.Is(err, commands.ErrInvalidCounterOffer),
		errors.Is(err, commands.ErrInvalidResponseAction):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)

	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}
