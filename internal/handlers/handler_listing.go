package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/carbonx_exchange/internal/core/ports/services"
	"github.com/SscSPs/carbonx_exchange/internal/dto"
	"github.com/SscSPs/carbonx_exchange/internal/middleware"
	"github.com/gin-gonic/gin"
)

// listingHandler handles HTTP requests for the listing lifecycle.
type listingHandler struct {
	listingService portssvc.ListingSvcFacade
}

func newListingHandler(ls portssvc.ListingSvcFacade) *listingHandler {
	return &listingHandler{listingService: ls}
}

// registerListingRoutes registers routes related to listings.
func registerListingRoutes(rg *gin.RouterGroup, listingService portssvc.ListingSvcFacade) {
	h := newListingHandler(listingService)

	listings := rg.Group("/listings")
	{
		listings.GET("", h.listActiveListings)
		listings.POST("", h.createListing)
		listings.GET("/:listingID", h.getListing)
		listings.DELETE("/:listingID", h.cancelListing)
	}
}

// createListing godoc
// @Summary Create a listing
// @Description Lists carbon credits for sale. The seller is the authenticated company.
// @Tags listings
// @Accept json
// @Produce json
// @Param listing body dto.CreateListingRequest true "Listing details"
// @Success 201 {object} domain.Listing
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /listings [post]
func (h *listingHandler) createListing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sellerID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), sellerID, req)
	if err != nil {
		respondError(c, err, "Failed to create listing")
		return
	}

	logger.Info("Listing created successfully", slog.String("listing_id", listing.ListingID))
	c.JSON(http.StatusCreated, listing)
}

// listActiveListings godoc
// @Summary List active listings
// @Description Returns the marketplace: active listings oldest first, optionally without one seller's own
// @Tags listings
// @Produce json
// @Param excludeSellerId query string false "Seller whose listings are left out"
// @Success 200 {object} dto.ListListingsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /listings [get]
func (h *listingHandler) listActiveListings(c *gin.Context) {
	var params dto.ListListingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadRequest(c, err)
		return
	}
	listings, err := h.listingService.ListActiveListings(c.Request.Context(), params.ExcludeSellerID)
	if err != nil {
		respondError(c, err, "Failed to list listings")
		return
	}
	c.JSON(http.StatusOK, dto.ListListingsResponse{Listings: listings})
}

// getListing godoc
// @Summary Get a listing
// @Tags listings
// @Produce json
// @Param listingID path string true "Listing ID"
// @Success 200 {object} domain.Listing
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /listings/{listingID} [get]
func (h *listingHandler) getListing(c *gin.Context) {
	listing, err := h.listingService.GetListing(c.Request.Context(), c.Param("listingID"))
	if err != nil {
		respondError(c, err, "Failed to get listing")
		return
	}
	c.JSON(http.StatusOK, listing)
}

// cancelListing godoc
// @Summary Cancel a listing
// @Description Withdraws an active listing. Only its seller may cancel it.
// @Tags listings
// @Produce json
// @Param listingID path string true "Listing ID"
// @Success 200 {object} domain.Listing
// @Failure 403 {object} dto.ErrorResponse "Listing belongs to another seller"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Listing is no longer active"
// @Security BearerAuth
// @Router /listings/{listingID} [delete]
func (h *listingHandler) cancelListing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := callerID(c)
	if !ok {
		return
	}
	listingID := c.Param("listingID")

	listing, err := h.listingService.CancelListing(c.Request.Context(), listingID, requesterID)
	if err != nil {
		respondError(c, err, "Failed to cancel listing")
		return
	}

	logger.Info("Listing cancelled successfully", slog.String("listing_id", listingID))
	c.JSON(http.StatusOK, listing)
}
