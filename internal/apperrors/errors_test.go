package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/carbonx_exchange/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "already sold", err: fmt.Errorf("purchase L1: %w", apperrors.ErrAlreadySold), want: "ALREADY_SOLD"},
		{name: "insufficient funds", err: apperrors.ErrInsufficientFunds, want: "INSUFFICIENT_FUNDS"},
		{name: "invalid state", err: apperrors.ErrInvalidState, want: "INVALID_STATE"},
		{name: "forbidden", err: apperrors.ErrForbidden, want: "FORBIDDEN"},
		{name: "not found", err: fmt.Errorf("listing L9: %w", apperrors.ErrNotFound), want: "NOT_FOUND"},
		{name: "validation", err: apperrors.ErrValidation, want: "VALIDATION"},
		{name: "unknown", err: errors.New("boom"), want: "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.Code(tt.err))
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperrors.NewAppError(500, "failed to begin transaction", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to begin transaction: connection refused", err.Error())
}
