package dto

import "github.com/SscSPs/carbonx_exchange/internal/core/domain"

// ListCompaniesResponse wraps the company directory.
type ListCompaniesResponse struct {
	Companies []domain.Company `json:"companies"`
}

// ErrorResponse is the body of every failed request. Code is stable and
// lets clients show a specific message per failure kind.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
