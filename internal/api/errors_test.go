package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/bazi-api/internal/api/shared"
	"github.com/phrazzld/bazi-api/internal/domain"
	"github.com/phrazzld/bazi-api/internal/domain/bazi"
	"github.com/phrazzld/bazi-api/internal/service/auth"
	"github.com/phrazzld/bazi-api/internal/store"
)

func chartInputError(t *testing.T, in bazi.ChartInput) error {
	t.Helper()
	_, err := bazi.NewDefaultEngine().Calculate(in)
	require.Error(t, err)
	return err
}

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"wrapped profile missing", fmt.Errorf("get: %w", store.ErrProfileNotFound), http.StatusNotFound},
		{"user missing", store.ErrUserNotFound, http.StatusNotFound},
		{"email taken", store.ErrEmailExists, http.StatusConflict},
		{"chart input", chartInputError(t, bazi.ChartInput{Year: 2023, Month: 2, Day: 29}), http.StatusBadRequest},
		{"domain validation", domain.NewValidationError("date", "bad", nil), http.StatusBadRequest},
		{"short password", domain.ErrPasswordTooShort, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"degenerate weights", bazi.ErrDegenerateInput, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "An unexpected error occurred",
		GetSafeErrorMessage(errors.New("pq: password authentication failed for user bazi")))
	assert.Equal(t, "Invalid credentials", GetSafeErrorMessage(auth.ErrInvalidCredentials))
	assert.Equal(t, domain.ErrPasswordTooShort.Error(),
		GetSafeErrorMessage(fmt.Errorf("register: %w", domain.ErrPasswordTooShort)))
	assert.Contains(t, GetSafeErrorMessage(store.ErrProfileNotFound), "PUT /api/profile")

	err := chartInputError(t, bazi.ChartInput{Year: 2024, Month: 1, Day: 1, Hour: 24})
	assert.Contains(t, GetSafeErrorMessage(err), "hour")
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantField  string
	}{
		{"chart field", chartInputError(t, bazi.ChartInput{Year: 2023, Month: 13, Day: 1}), http.StatusBadRequest, bazi.FieldMonth},
		{"domain field", domain.NewValidationError("date", "must be formatted YYYY-MM-DD", nil), http.StatusBadRequest, "date"},
		{"not found", store.ErrProfileNotFound, http.StatusNotFound, ""},
		{"internal", errors.New("connection refused"), http.StatusInternalServerError, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(shared.WithTraceID(req.Context(), "trace-1"))
			rec := httptest.NewRecorder()

			HandleAPIError(rec, req, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantField, body.Field)
			assert.Equal(t, "trace-1", body.TraceID)
			assert.NotContains(t, body.Error, "connection refused")
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	field, msg := SanitizeValidationError(shared.ValidateRequest(RegisterRequest{Email: "nope", Password: "long-enough-password"}))
	assert.Equal(t, "Email", field)
	assert.Equal(t, "Invalid Email: invalid email format", msg)

	field, msg = SanitizeValidationError(errors.New("other"))
	assert.Empty(t, field)
	assert.Equal(t, "Validation error", msg)
}
