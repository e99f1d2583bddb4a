package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/carbonx_exchange/internal/apperrors"
	portssvc "github.com/SscSPs/carbonx_exchange/internal/core/ports/services"
	"github.com/SscSPs/carbonx_exchange/internal/dto"
	"github.com/SscSPs/carbonx_exchange/internal/middleware"
	"github.com/SscSPs/carbonx_exchange/internal/platform/config"
	"github.com/SscSPs/carbonx_exchange/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	companyService portssvc.CompanyAuthenticatorSvc
	jwtSecret      string
	jwtDuration    time.Duration
	jwtIssuer      string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cs portssvc.CompanyAuthenticatorSvc, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		companyService: cs,
		jwtSecret:      cfg.JWTSecret,
		jwtDuration:    cfg.JWTExpiryDuration,
		jwtIssuer:      cfg.JWTIssuer,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, companyService portssvc.CompanyAuthenticatorSvc, loginLimit gin.HandlerFunc) {
	h := NewAuthHandler(companyService, cfg)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", loginLimit, h.Login)
	}
}

// Login godoc
// @Summary Company login
// @Description Authenticates a company with its credentials and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	company, err := h.companyService.Authenticate(c.Request.Context(), req.CompanyID, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Warn("Login rejected", slog.String("company_id", req.CompanyID))
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid company ID or password", Code: apperrors.Code(err)})
			return
		}
		respondError(c, err, "Failed to authenticate")
		return
	}

	token, err := utils.GenerateJWT(company.CompanyID, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to generate token", Code: "INTERNAL"})
		return
	}

	logger.Info("Company logged in", slog.String("company_id", company.CompanyID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, Company: *company})
}
