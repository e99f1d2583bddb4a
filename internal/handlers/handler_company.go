package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/carbonx_exchange/internal/core/ports/services"
	"github.com/SscSPs/carbonx_exchange/internal/dto"
	"github.com/gin-gonic/gin"
)

type companyHandler struct {
	companyService portssvc.CompanyReaderSvc
	listingService portssvc.ListingReaderSvc
}

// registerCompanyRoutes registers the company directory and the per-seller listing view.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanyReaderSvc, listingService portssvc.ListingReaderSvc) {
	h := &companyHandler{companyService: companyService, listingService: listingService}

	companies := rg.Group("/companies")
	{
		companies.GET("", h.listCompanies)
		companies.GET("/:companyID", h.getCompany)
		companies.GET("/:companyID/listings", h.listSellerListings)
	}
}

// listCompanies godoc
// @Summary List companies
// @Description Returns the marketplace's company directory
// @Tags companies
// @Produce json
// @Success 200 {object} dto.ListCompaniesResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list companies")
		return
	}
	c.JSON(http.StatusOK, dto.ListCompaniesResponse{Companies: companies})
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} domain.Company
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	company, err := h.companyService.GetCompany(c.Request.Context(), c.Param("companyID"))
	if err != nil {
		respondError(c, err, "Failed to get company")
		return
	}
	c.JSON(http.StatusOK, company)
}

// listSellerListings godoc
// @Summary List a seller's listings
// @Description Returns every listing of the seller, in any status, oldest first
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} dto.ListListingsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/listings [get]
func (h *companyHandler) listSellerListings(c *gin.Context) {
	listings, err := h.listingService.ListListingsBySeller(c.Request.Context(), c.Param("companyID"))
	if err != nil {
		respondError(c, err, "Failed to list seller listings")
		return
	}
	c.JSON(http.StatusOK, dto.ListListingsResponse{Listings: listings})
}
