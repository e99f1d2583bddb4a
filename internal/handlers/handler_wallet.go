package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	portssvc "github.com/SscSPs/carbonx_exchange/internal/core/ports/services"
	"github.com/SscSPs/carbonx_exchange/internal/dto"
	"github.com/SscSPs/carbonx_exchange/internal/middleware"
	"github.com/gin-gonic/gin"
)

type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

// registerWalletRoutes registers balance, deposit and withdrawal routes.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := &walletHandler{walletService: walletService}

	wallets := rg.Group("/wallets")
	{
		wallets.POST("/deposit", h.deposit)
		wallets.POST("/withdraw", h.withdraw)
		wallets.GET("/:companyID", h.getBalance)
	}
}

// getBalance godoc
// @Summary Get a wallet balance
// @Tags wallets
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /wallets/{companyID} [get]
func (h *walletHandler) getBalance(c *gin.Context) {
	companyID := c.Param("companyID")
	balance, err := h.walletService.GetBalance(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to get balance")
		return
	}
	c.JSON(http.StatusOK, dto.WalletResponse{CompanyID: companyID, Balance: balance})
}

// deposit godoc
// @Summary Deposit funds
// @Description Credits the authenticated company's wallet
// @Tags wallets
// @Accept json
// @Produce json
// @Param request body dto.WalletOperationRequest true "Amount and payment method"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /wallets/deposit [post]
func (h *walletHandler) deposit(c *gin.Context) {
	h.operate(c, "deposit", h.walletService.Deposit)
}

// withdraw godoc
// @Summary Withdraw funds
// @Description Debits the authenticated company's wallet
// @Tags wallets
// @Accept json
// @Produce json
// @Param request body dto.WalletOperationRequest true "Amount and payment method"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "INSUFFICIENT_FUNDS"
// @Security BearerAuth
// @Router /wallets/withdraw [post]
func (h *walletHandler) withdraw(c *gin.Context) {
	h.operate(c, "withdrawal", h.walletService.Withdraw)
}

type walletOperation func(ctx context.Context, companyID string, req dto.WalletOperationRequest) (*domain.Wallet, error)

func (h *walletHandler) operate(c *gin.Context, kind string, op walletOperation) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.WalletOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	wallet, err := op(c.Request.Context(), companyID, req)
	if err != nil {
		respondError(c, err, "Failed to apply "+kind)
		return
	}

	logger.Info("Wallet updated", slog.String("kind", kind), slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, dto.WalletResponse{CompanyID: wallet.CompanyID, Balance: wallet.Balance})
}
