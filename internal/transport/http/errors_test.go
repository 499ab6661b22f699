package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid argument", domain.ErrInvalidPercentage, http.StatusBadRequest, CodeInvalidArgument},
		{"currency mismatch", fmt.Errorf("%w: USD vs EUR", domain.ErrCurrencyMismatch), http.StatusBadRequest, CodeInvalidArgument},
		{"not found", domain.ErrPriceEntryNotFound, http.StatusNotFound, CodeNotFound},
		{"already exists", domain.ErrPromotionExists, http.StatusConflict, CodeAlreadyExists},
		{"version conflict", fmt.Errorf("failed to save price entry: %w", domain.ErrVersionConflict), http.StatusConflict, CodeConflict},
		{"transport error", invalidRequest("invalid request body", nil), http.StatusBadRequest, CodeInvalidArgument},
		{"unexpected", errors.New("spanner unavailable"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := mapError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}

	_, body := mapError(errors.New("password=hunter2"))
	assert.Equal(t, "internal server error", body.Message, "internal errors are not exposed")
}
