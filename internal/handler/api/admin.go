package api

import (
	"net/http"
	"strconv"

	reqdto "sponsorship-api/internal/handler/dto/request"
	resdto "sponsorship-api/internal/handler/dto/response"
	"sponsorship-api/internal/handler/httperr"
	"sponsorship-api/internal/pkg/errs"
	"sponsorship-api/internal/usecase/commands"
	"sponsorship-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler is the review console surface: request triage plus direct
// grant management.
type AdminHandler struct {
	sponsorship    commands.SponsorshipCommands
	requestQueries queries.RequestQueries
	grantQueries   queries.GrantQueries
}

func NewAdminHandler(
	sponsorshipCommands commands.SponsorshipCommands,
	requestQueries queries.RequestQueries,
	grantQueries queries.GrantQueries,
) *AdminHandler {
	return &AdminHandler{
		sponsorship:    sponsorshipCommands,
		requestQueries: requestQueries,
		grantQueries:   grantQueries,
	}
}

// @Summary List sponsorship requests
// @Description List requests, optionally filtered by status
// @Tags admin
// @Produce json
// @Param status query string false "Status filter (pending, processed, rejected)"
// @Success 200 {array} resdto.RequestResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/requests [get]
func (h *AdminHandler) ListRequests(c *gin.Context) {
	var status *string
	if v := c.Query("status"); v != "" {
		status = &v
	}

	views, err := h.requestQueries.List(c.Request.Context(), status)
	if err != nil {
		if errs.Is(err, queries.ErrInvalidStatusFilter) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown status filter", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestViews(views))
}

// @Summary Get sponsorship request
// @Tags admin
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/requests/{id} [get]
func (h *AdminHandler) GetRequest(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.requestQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		abortAllocationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

// @Summary Process sponsorship request
// @Description Allocate a grant for a pending request and mark it processed
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body reqdto.ProcessRequestRequest true "Allocation decision"
// @Success 200 {object} resdto.GrantResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /admin/requests/{id}/process [post]
func (h *AdminHandler) ProcessRequest(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.ProcessRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.sponsorship.Process(c.Request.Context(), commands.ProcessParams{
		RequestID:      id,
		ProductID:      req.ProductID,
		Placement:      req.Placement,
		SlotIndex:      req.SlotIndex,
		DurationDays:   req.DurationDays,
		AmountUSDCents: req.AmountUSDCents,
		Note:           req.Note,
	})
	if err != nil {
		abortAllocationError(c, err)
		return
	}

	view, err := h.grantQueries.GetByID(c.Request.Context(), result.GrantID)
	if err != nil {
		abortAllocationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromGrantView(view))
}

// @Summary Reject sponsorship request
// @Tags admin
// @Accept json
// @Param id path string true "Request ID"
// @Param request body reqdto.RejectRequestRequest false "Rejection note"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/requests/{id}/reject [post]
func (h *AdminHandler) RejectRequest(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.RejectRequestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}

	if err := h.sponsorship.Reject(c.Request.Context(), id, req.Note); err != nil {
		abortAllocationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List grants for a slot
// @Description Full schedule for one slot, ordered by start time
// @Tags admin
// @Produce json
// @Param placement path string true "Placement"
// @Param slot path int true "Slot index"
// @Success 200 {array} resdto.GrantResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/grants/{placement}/{slot} [get]
func (h *AdminHandler) ListGrants(c *gin.Context) {
	placementValue := c.Param("placement")
	slotIndex, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid slot index", nil)
		return
	}

	views, err := h.grantQueries.ListBySlot(c.Request.Context(), placementValue, slotIndex)
	if err != nil {
		abortAllocationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromGrantViews(views))
}

// @Summary Delete grant
// @Description Remove a grant; later grants in the slot keep their windows
// @Tags admin
// @Param id path string true "Grant ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /admin/grants/{id} [delete]
func (h *AdminHandler) DeleteGrant(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.sponsorship.DeleteGrant(c.Request.Context(), id); err != nil {
		abortAllocationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
