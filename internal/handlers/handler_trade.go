package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/carbonx_exchange/internal/core/ports/services"
	"github.com/SscSPs/carbonx_exchange/internal/dto"
	"github.com/SscSPs/carbonx_exchange/internal/middleware"
	"github.com/gin-gonic/gin"
)

type tradeHandler struct {
	tradeService portssvc.TradeSvcFacade
}

// registerTradeRoutes registers purchase and history routes. tradeLimit
// throttles purchases per company.
func registerTradeRoutes(rg *gin.RouterGroup, tradeService portssvc.TradeSvcFacade, tradeLimit gin.HandlerFunc) {
	h := &tradeHandler{tradeService: tradeService}

	rg.POST("/listings/:listingID/purchase", tradeLimit, h.purchase)
	rg.GET("/transactions", h.listTransactions)
}

// purchase godoc
// @Summary Purchase a listing
// @Description Buys the whole listing for the authenticated company. All or nothing.
// @Tags trades
// @Produce json
// @Param listingID path string true "Listing ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 403 {object} dto.ErrorResponse "Buying your own listing"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "ALREADY_SOLD or INVALID_STATE"
// @Failure 422 {object} dto.ErrorResponse "INSUFFICIENT_FUNDS"
// @Failure 429 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /listings/{listingID}/purchase [post]
func (h *tradeHandler) purchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	buyerID, ok := callerID(c)
	if !ok {
		return
	}
	listingID := c.Param("listingID")

	settlement, err := h.tradeService.Purchase(c.Request.Context(), buyerID, listingID)
	if err != nil {
		respondError(c, err, "Failed to complete purchase")
		return
	}

	logger.Info("Purchase completed", slog.String("listing_id", listingID), slog.String("transaction_id", settlement.Transaction.TransactionID))
	c.JSON(http.StatusOK, dto.PurchaseResponse{
		Transaction:   settlement.Transaction,
		BuyerBalance:  settlement.BuyerBalance,
		SellerBalance: settlement.SellerBalance,
	})
}

// listTransactions godoc
// @Summary Trade history
// @Description Returns the authenticated company's transactions, newest first
// @Tags trades
// @Produce json
// @Param limit query int false "Maximum number of results" default(50)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *tradeHandler) listTransactions(c *gin.Context) {
	companyID, ok := callerID(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadRequest(c, err)
		return
	}

	txns, err := h.tradeService.ListTransactions(c.Request.Context(), companyID, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: txns})
}
