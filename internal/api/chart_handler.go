package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/bazi-api/internal/api/shared"
	"github.com/phrazzld/bazi-api/internal/domain"
	"github.com/phrazzld/bazi-api/internal/service"
)

// ChartHandler serves chart computation and the caller's element profile.
type ChartHandler struct {
	charts service.ChartService
	now    func() time.Time
}

// NewChartHandler creates a ChartHandler.
func NewChartHandler(charts service.ChartService) *ChartHandler {
	return NewChartHandlerWithClock(charts, time.Now)
}

// NewChartHandlerWithClock creates a ChartHandler whose default daily date
// comes from now.
func NewChartHandlerWithClock(charts service.ChartService, now func() time.Time) *ChartHandler {
	return &ChartHandler{charts: charts, now: now}
}

// Compute handles POST /api/charts.
func (h *ChartHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req ChartRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	chart, err := h.charts.Compute(r.Context(), req.Input())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newChartResponse(chart))
}

// SaveProfile handles PUT /api/profile.
func (h *ChartHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req ChartRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	profile, err := h.charts.SaveProfile(r.Context(), userID, req.Input())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// GetProfile handles GET /api/profile.
func (h *ChartHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	profile, err := h.charts.GetProfile(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// DeleteProfile handles DELETE /api/profile.
func (h *ChartHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	if err := h.charts.DeleteProfile(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Advice handles GET /api/profile/advice.
func (h *ChartHandler) Advice(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	advice, err := h.charts.Advice(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, advice)
}

// Daily handles GET /api/profile/daily. The optional date query parameter
// is YYYY-MM-DD and defaults to today in UTC.
func (h *ChartHandler) Daily(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	date := h.now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			HandleAPIError(w, r, domain.NewValidationError("date", "must be formatted YYYY-MM-DD", err))
			return
		}
		date = parsed
	}

	daily, err := h.charts.DailyBalance(r.Context(), userID, date)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, daily)
}

// Reading handles GET /api/profile/reading.
func (h *ChartHandler) Reading(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	reading, err := h.charts.Reading(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, reading)
}

func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}
