package api

import (
	"net/http"
	"strconv"
	"strings"

	"facility-booking/internal/domain/operator"
	reqdto "facility-booking/internal/handler/dto/request"
	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/handler/httperr"
	"facility-booking/internal/handler/middleware"
	"facility-booking/internal/pkg/session"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

type DraftHandler struct {
	cmds commands.DraftCommands
	q    queries.DraftQueries
}

func NewDraftHandler(cmds commands.DraftCommands, q queries.DraftQueries) *DraftHandler {
	return &DraftHandler{cmds: cmds, q: q}
}

// @Summary Start booking draft
// @Description Create a draft and load the facility, slots and booking rule its context allows
// @Tags drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.StartDraftRequest true "Initial draft context"
// @Success 201 {object} queries.DraftView
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /drafts [post]
func (h *DraftHandler) Start(c *gin.Context) {
	op, sess, ok := identity(c)
	if !ok {
		return
	}
	var req reqdto.StartDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	params, err := req.ToParams()
	if err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}

	view, err := h.cmds.StartDraft(c.Request.Context(), sess, op, params)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// @Summary Get booking draft
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Success 200 {object} queries.DraftView
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /drafts/{id} [get]
func (h *DraftHandler) Get(c *gin.Context) {
	op, sess, ok := identity(c)
	if !ok {
		return
	}
	id, ok := draftID(c)
	if !ok {
		return
	}

	view, err := h.q.GetDraft(c.Request.Context(), sess, op, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Update draft context
// @Description Change user, facility, date or entity. Dependent selections are reset and reference data reloaded.
// @Tags drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Param request body reqdto.UpdateContextRequest true "Context fields to change"
// @Success 200 {object} queries.DraftView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /drafts/{id}/context [patch]
func (h *DraftHandler) UpdateContext(c *gin.Context) {
	op, sess, ok := identity(c)
	if !ok {
		return
	}
	id, ok := draftID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}

	current, err := h.q.GetDraft(c.Request.Context(), sess, op, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	bc, err := req.ToDomain(current)
	if err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}

	view, err := h.cmds.UpdateContext(c.Request.Context(), sess, op, id, bc)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Toggle slot
// @Description Select the slot if unselected, otherwise deselect it
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Param slotId path int true "Slot ID"
// @Success 200 {object} queries.DraftView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /drafts/{id}/slots/{slotId} [post]
func (h *DraftHandler) ToggleSlot(c *gin.Context) {
	op, sess, ok := identity(c)
	if !ok {
		return
	}
	id, ok := draftID(c)
	if !ok {
		return
	}
	slotID, err := strconv.ParseInt(c.Param("slotId"), 10, 64)
	if err != nil || slotID <= 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidID, "Invalid slot id", nil)
		return
	}

	view, err := h.cmds.ToggleSlot(c.Request.Context(), sess, op, id, slotID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Update draft options
// @Description Guests, discount, payment method, comment, complementary reason and members
// @Tags drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Param request body reqdto.UpdateOptionsRequest true "Options to change"
// @Success 200 {object} queries.DraftView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /drafts/{id}/options [patch]
func (h *DraftHandler) UpdateOptions(c *gin.Context) {
	op, sess, ok := identity(c)
	if !ok {
		return
	}
	id, ok := draftID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	opts, err := req.ToDomain()
	if err != nil {
		abortBadRequest(c, err, "Invalid payment method")
		return
	}

	view, err := h.cmds.UpdateOptions(c.Request.Context(), sess, op, id, opts)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Quote draft
// @Description Cost summary for the current selection
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Success 200 {object} queries.QuoteView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /drafts/{id}/quote [get]
func (h *DraftHandler) Quote(c *gin.Context) {
	op, sess, ok := identity(c)
	if !ok {
		return
	}
	id, ok := draftID(c)
	if !ok {
		return
	}

	quote, err := h.q.Quote(c.Request.Context(), sess, op, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// @Summary Refresh reference data
// @Description Refetch facility, slots and booking rule for the draft's current context
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Success 200 {object} queries.DraftView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /drafts/{id}/refresh [post]
func (h *DraftHandler) Refresh(c *gin.Context) {
	op, sess, ok := identity(c)
	if !ok {
		return
	}
	id, ok := draftID(c)
	if !ok {
		return
	}

	view, err := h.cmds.RefreshDraft(c.Request.Context(), sess, op, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Submit draft
// @Description Create the booking in the PMS. Retries with the same Idempotency-Key replay the first result.
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Param Idempotency-Key header string true "UUID identifying this submit attempt"
// @Success 201 {object} resdto.SubmitResponse
// @Success 200 {object} resdto.SubmitResponse "Replayed result"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *gin.Context) {
	op, sess, ok := identity(c)
	if !ok {
		return
	}
	id, ok := draftID(c)
	if !ok {
		return
	}
	key, ok := idempotencyKey(c)
	if !ok {
		return
	}

	result, err := h.cmds.Submit(c.Request.Context(), sess, op, id, key)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromSubmitResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, res)
}

func identity(c *gin.Context) (*operator.Operator, session.Context, bool) {
	op, ok := middleware.GetOperator(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return nil, session.Context{}, false
	}
	sess, ok := middleware.GetSession(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return nil, session.Context{}, false
	}
	return op, sess, true
}

func draftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidID, "Invalid draft id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// idempotencyKey treats a missing header as uuid.Nil; Submit rejects it.
func idempotencyKey(c *gin.Context) (uuid.UUID, bool) {
	raw := strings.TrimSpace(c.GetHeader(idempotencyKeyHeader))
	if raw == "" {
		return uuid.Nil, true
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidIdempotencyID, "Idempotency-Key must be a UUID", nil)
		return uuid.Nil, false
	}
	return key, true
}
