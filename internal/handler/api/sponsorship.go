package api

import (
	"net/http"
	"strconv"

	"sponsorship-api/internal/domain/sponsorship"
	reqdto "sponsorship-api/internal/handler/dto/request"
	resdto "sponsorship-api/internal/handler/dto/response"
	"sponsorship-api/internal/handler/httperr"
	"sponsorship-api/internal/pkg/errs"
	"sponsorship-api/internal/usecase/commands"
	"sponsorship-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SponsorshipHandler struct {
	intake       commands.IntakeCommands
	allocator    commands.Allocator
	grantQueries queries.GrantQueries
}

func NewSponsorshipHandler(
	intake commands.IntakeCommands,
	allocator commands.Allocator,
	grantQueries queries.GrantQueries,
) *SponsorshipHandler {
	return &SponsorshipHandler{
		intake:       intake,
		allocator:    allocator,
		grantQueries: grantQueries,
	}
}

// @Summary Submit sponsorship request
// @Description Submit a sponsorship ask for later admin review
// @Tags sponsorships
// @Accept json
// @Produce json
// @Param request body reqdto.SubmitSponsorshipRequest true "Sponsorship ask"
// @Success 201 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Router /sponsorships/requests [post]
func (h *SponsorshipHandler) SubmitRequest(c *gin.Context) {
	var req reqdto.SubmitSponsorshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.intake.Submit(c.Request.Context(), commands.SubmitRequestParams{
		RequesterEmail: req.RequesterEmail,
		ProductRef:     req.ProductRef,
		Placement:      req.Placement,
		SlotIndex:      req.SlotIndex,
		DurationDays:   req.DurationDays,
		Note:           req.GetNote(),
	})
	if err != nil {
		abortAllocationError(c, err)
		return
	}

	c.Header("Location", "/api/admin/requests/"+id.String())
	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Current sponsor for a slot
// @Description Return the grant occupying a slot right now, if any
// @Tags sponsorships
// @Produce json
// @Param placement path string true "Placement (home_top, home_right)"
// @Param slot path int true "Slot index"
// @Success 200 {object} resdto.CurrentSponsorResponse
// @Failure 400 {object} httperr.Response
// @Router /sponsorships/current/{placement}/{slot} [get]
func (h *SponsorshipHandler) Current(c *gin.Context) {
	placementValue := c.Param("placement")
	slotIndex, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid slot index", nil)
		return
	}

	view, err := h.grantQueries.Current(c.Request.Context(), placementValue, slotIndex, nil)
	if err != nil {
		abortAllocationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.CurrentSponsorResponse{
		Placement: placementValue,
		SlotIndex: slotIndex,
		Grant:     resdto.FromGrantView(view),
	})
}

// @Summary Checkout grant allocation
// @Description Allocate a grant directly after a completed payment checkout
// @Tags checkout
// @Accept json
// @Produce json
// @Param X-Checkout-Secret header string true "Shared checkout secret"
// @Param request body reqdto.CheckoutGrantRequest true "Paid allocation"
// @Success 201 {object} resdto.GrantResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /checkout/sponsorships [post]
func (h *SponsorshipHandler) CheckoutGrant(c *gin.Context) {
	var req reqdto.CheckoutGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	amount := req.AmountUSDCents
	grantID, err := h.allocator.Allocate(c.Request.Context(), commands.AllocateParams{
		Placement:      req.Placement,
		SlotIndex:      req.SlotIndex,
		DurationDays:   req.DurationDays,
		ProductID:      req.ProductID,
		AmountUSDCents: &amount,
		Source:         sponsorship.SourceCheckout,
	})
	if err != nil {
		abortAllocationError(c, err)
		return
	}

	view, err := h.grantQueries.GetByID(c.Request.Context(), grantID)
	if err != nil {
		abortAllocationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromGrantView(view))
}

// abortAllocationError maps the scheduler error taxonomy onto HTTP statuses.
func abortAllocationError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrInvalidSlot):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid placement or slot index", nil)
	case errs.Is(err, errs.ErrInvalidDuration):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Duration must be a positive number of days", nil)
	case errs.Is(err, errs.ErrInvalidProduct):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Product reference is required", nil)
	case errs.Is(err, errs.ErrAlreadyProcessed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request has already been processed", nil)
	case errs.Is(err, errs.ErrRequestNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Request not found", nil)
	case errs.Is(err, errs.ErrGrantNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Grant not found", nil)
	case errs.Is(err, errs.ErrOverlapViolation):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Slot is contended, please retry", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
