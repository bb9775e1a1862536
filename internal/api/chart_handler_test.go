package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/bazi-api/internal/api"
	"github.com/phrazzld/bazi-api/internal/api/shared"
	"github.com/phrazzld/bazi-api/internal/domain"
	"github.com/phrazzld/bazi-api/internal/domain/bazi"
	"github.com/phrazzld/bazi-api/internal/domain/wellness"
	"github.com/phrazzld/bazi-api/internal/mocks"
	"github.com/phrazzld/bazi-api/internal/report"
	"github.com/phrazzld/bazi-api/internal/store"
)

var birth = bazi.ChartInput{Year: 1990, Month: 1, Day: 1, Hour: 0}

func birthBody() map[string]int {
	return map[string]int{"year": birth.Year, "month": birth.Month, "day": birth.Day, "hour": birth.Hour}
}

func withUser(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(shared.WithUserID(r.Context(), userID))
}

func TestChartHandler_Compute(t *testing.T) {
	t.Parallel()

	chart, err := bazi.NewDefaultEngine().Calculate(birth)
	require.NoError(t, err)
	_, invalidDay := bazi.NewDefaultEngine().Calculate(bazi.ChartInput{Year: 2023, Month: 2, Day: 29})

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		charts := &mocks.MockChartService{}
		charts.On("Compute", mock.Anything, birth).Return(chart, nil)

		rec := httptest.NewRecorder()
		api.NewChartHandler(charts).Compute(rec, jsonRequest(t, http.MethodPost, "/api/charts", birthBody()))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Pillars []struct {
				Position string `json:"position"`
				Glyphs   string `json:"glyphs"`
			} `json:"pillars"`
			Percentages map[string]float64 `json:"percentages"`
			Strength    string             `json:"strength"`
			Text        string             `json:"text"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Pillars, 4)
		assert.Equal(t, "year", resp.Pillars[0].Position)
		assert.Equal(t, "庚午", resp.Pillars[0].Glyphs)
		assert.InDelta(t, 28.6, resp.Percentages["earth"], 1e-9)
		assert.Equal(t, "strong", resp.Strength)
		assert.Contains(t, resp.Text, "Day master: 丙")
	})

	t.Run("hour zero is present, not missing", func(t *testing.T) {
		t.Parallel()
		charts := &mocks.MockChartService{}
		charts.On("Compute", mock.Anything, birth).Return(chart, nil)

		rec := httptest.NewRecorder()
		api.NewChartHandler(charts).Compute(rec,
			jsonRequest(t, http.MethodPost, "/api/charts", `{"year":1990,"month":1,"day":1,"hour":0}`))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing field", func(t *testing.T) {
		t.Parallel()
		charts := &mocks.MockChartService{}

		rec := httptest.NewRecorder()
		api.NewChartHandler(charts).Compute(rec,
			jsonRequest(t, http.MethodPost, "/api/charts", `{"year":1990,"month":1,"day":1}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Hour", decodeError(t, rec).Field)
		charts.AssertNotCalled(t, "Compute", mock.Anything, mock.Anything)
	})

	t.Run("engine rejects input", func(t *testing.T) {
		t.Parallel()
		charts := &mocks.MockChartService{}
		charts.On("Compute", mock.Anything, mock.Anything).Return(bazi.Chart{}, invalidDay)

		rec := httptest.NewRecorder()
		api.NewChartHandler(charts).Compute(rec,
			jsonRequest(t, http.MethodPost, "/api/charts", `{"year":2023,"month":2,"day":29,"hour":0}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, bazi.FieldDay, body.Field)
		assert.Contains(t, body.Error, "29")
	})
}

func TestChartHandler_Profile(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	chart, err := bazi.NewDefaultEngine().Calculate(birth)
	require.NoError(t, err)
	profile, err := domain.NewElementProfile(userID, chart)
	require.NoError(t, err)

	t.Run("save", func(t *testing.T) {
		t.Parallel()
		charts := &mocks.MockChartService{}
		charts.On("SaveProfile", mock.Anything, userID, birth).Return(profile, nil)

		rec := httptest.NewRecorder()
		req := withUser(jsonRequest(t, http.MethodPut, "/api/profile", birthBody()), userID)
		api.NewChartHandler(charts).SaveProfile(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got domain.ElementProfile
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, profile.ID, got.ID)
		assert.Equal(t, profile.Percentages, got.Percentages)
		assert.Equal(t, bazi.Fire, got.Element)
	})

	t.Run("requires user", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		api.NewChartHandler(&mocks.MockChartService{}).GetProfile(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		charts := &mocks.MockChartService{}
		charts.On("GetProfile", mock.Anything, userID).Return(nil, store.ErrProfileNotFound)

		rec := httptest.NewRecorder()
		api.NewChartHandler(charts).GetProfile(rec, withUser(httptest.NewRequest(http.MethodGet, "/api/profile", nil), userID))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		charts := &mocks.MockChartService{}
		charts.On("DeleteProfile", mock.Anything, userID).Return(nil)

		rec := httptest.NewRecorder()
		api.NewChartHandler(charts).DeleteProfile(rec, withUser(httptest.NewRequest(http.MethodDelete, "/api/profile", nil), userID))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("advice", func(t *testing.T) {
		t.Parallel()
		advice := wellness.Recommend(wellness.Classify(chart.Percentages))
		charts := &mocks.MockChartService{}
		charts.On("Advice", mock.Anything, userID).Return(advice, nil)

		rec := httptest.NewRecorder()
		api.NewChartHandler(charts).Advice(rec, withUser(httptest.NewRequest(http.MethodGet, "/api/profile/advice", nil), userID))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"nourish":"water"`)
	})

	t.Run("reading", func(t *testing.T) {
		t.Parallel()
		charts := &mocks.MockChartService{}
		charts.On("Reading", mock.Anything, userID).
			Return(report.Reading{Source: report.SourceTemplate, Text: "Chart for 1990"}, nil)

		rec := httptest.NewRecorder()
		api.NewChartHandler(charts).Reading(rec, withUser(httptest.NewRequest(http.MethodGet, "/api/profile/reading", nil), userID))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"source":"template","text":"Chart for 1990"}`, rec.Body.String())
	})
}

func TestChartHandler_Daily(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	tests := []struct {
		name       string
		query      string
		wantDate   time.Time
		wantStatus int
	}{
		{"explicit date", "?date=2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), http.StatusOK},
		{"defaults to today", "", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), http.StatusOK},
		{"bad date", "?date=01/03/2024", time.Time{}, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			charts := &mocks.MockChartService{}
			charts.On("DailyBalance", mock.Anything, userID, mock.MatchedBy(func(d time.Time) bool {
				return d.Year() == tc.wantDate.Year() && d.YearDay() == tc.wantDate.YearDay()
			})).Return(wellness.Daily{Date: tc.wantDate.Format(time.DateOnly), Score: 60, Label: wellness.LabelNeutral}, nil)

			h := api.NewChartHandlerWithClock(charts, func() time.Time {
				return time.Date(2024, 6, 15, 22, 30, 0, 0, time.UTC)
			})

			rec := httptest.NewRecorder()
			req := withUser(httptest.NewRequest(http.MethodGet, "/api/profile/daily"+tc.query, nil), userID)
			h.Daily(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus != http.StatusOK {
				assert.Equal(t, "date", decodeError(t, rec).Field)
				charts.AssertNotCalled(t, "DailyBalance", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			assert.Contains(t, rec.Body.String(), tc.wantDate.Format(time.DateOnly))
		})
	}
}
