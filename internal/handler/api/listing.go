package api

import (
	"net/http"

	reqdto "lastbite/internal/handler/dto/request"
	resdto "lastbite/internal/handler/dto/response"
	"lastbite/internal/handler/httperr"
	"lastbite/internal/handler/middleware"
	"lastbite/internal/handler/validation"
	"lastbite/internal/usecase/commands"
	"lastbite/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListingHandler struct {
	cmds commands.ListingCommands
	q    queries.ListingQueries
}

func NewListingHandler(cmds commands.ListingCommands, q queries.ListingQueries) *ListingHandler {
	return &ListingHandler{cmds: cmds, q: q}
}

// @Summary Create listing
// @Description Publish a perishable offer at a location with a quantity, a discount and an expiry
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateListingRequest true "Create listing request"
// @Success 201 {object} resdto.ListingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	producerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", validation.Describe(err))
		return
	}
	result, err := h.cmds.CreateListing(c.Request.Context(), req.ToCommand(), producerID)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	view, err := h.q.GetListing(c.Request.Context(), result.ListingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load listing", nil)
		return
	}
	c.Header("Location", "/api/listings/"+result.ListingID.String())
	c.JSON(http.StatusCreated, resdto.FromListingView(view))
}

// @Summary Search listings
// @Description Active listings within a radius ordered by distance, then earlier expiry, then higher discount
// @Tags listings
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius query number true "Radius in meters"
// @Param tags query []string false "Category preferences (any of)"
// @Param limit query int false "Max results"
// @Success 200 {object} resdto.SearchResponse
// @Failure 400 {object} httperr.Response
// @Router /api/listings/search [get]
func (h *ListingHandler) Search(c *gin.Context) {
	var query reqdto.SearchListingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid search query", validation.Describe(err))
		return
	}
	hits, err := h.q.Search(c.Request.Context(), query.ToQuery())
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSearchHits(hits))
}

// @Summary Get listing
// @Description Get a listing by ID, including listings already retired to the archive
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/listings/{id} [get]
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetListing(c.Request.Context(), id)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromListingView(view))
}

// @Summary Claim listing
// @Description Allocate units of a listing to the caller. Rejections return 409 with a reason.
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.ClaimListingRequest true "Claim request"
// @Success 200 {object} resdto.ClaimResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} resdto.ClaimResponse
// @Failure 422 {object} httperr.Response
// @Router /api/listings/{id}/claims [post]
func (h *ListingHandler) Claim(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Unauthorized", nil)
		return
	}
	var req reqdto.ClaimListingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", validation.Describe(bindErr))
		return
	}
	result, err := h.cmds.ClaimListing(c.Request.Context(), commands.ClaimListingRequest{ListingID: id, Quantity: *req.Quantity}, userID)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	status := http.StatusOK
	if !result.Committed {
		status = http.StatusConflict
	}
	c.JSON(status, resdto.FromClaimResult(result))
}

// @Summary Producer history
// @Description Archived listings of the authenticated producer, newest first
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Success 200 {array} resdto.ListingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/producers/me/history [get]
func (h *ListingHandler) History(c *gin.Context) {
	producerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Unauthorized", nil)
		return
	}
	var query reqdto.HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", validation.Describe(err))
		return
	}
	views, err := h.q.History(c.Request.Context(), producerID, query.Limit)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromListingViews(views))
}
