package dto

import "github.com/SscSPs/carbonx_exchange/internal/core/domain"

// LoginRequest carries a company's fixture credentials.
type LoginRequest struct {
	CompanyID string `json:"companyID" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token   string         `json:"token"`
	Company domain.Company `json:"company"`
}
