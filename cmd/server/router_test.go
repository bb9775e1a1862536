package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/bazi-api/internal/config"
	"github.com/phrazzld/bazi-api/internal/domain/bazi"
	"github.com/phrazzld/bazi-api/internal/mocks"
	"github.com/phrazzld/bazi-api/internal/platform/logger"
	"github.com/phrazzld/bazi-api/internal/service/auth"
	"github.com/phrazzld/bazi-api/internal/store"
)

type testApp struct {
	*application
	users  *mocks.MockUserService
	charts *mocks.MockChartService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	users := &mocks.MockUserService{}
	charts := &mocks.MockChartService{}
	userID := uuid.MustParse("6f1c8a54-7f0e-4d1a-9a57-0c1d2e3f4a5b")

	return &testApp{
		application: &application{
			config: &config.Config{Server: config.ServerConfig{Port: 0, ShutdownTimeoutSeconds: 1}},
			logger: log,
			jwtService: &mocks.MockJWTService{
				ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
					if token != "valid" {
						return nil, auth.ErrInvalidToken
					}
					return &auth.Claims{UserID: userID}, nil
				},
			},
			userService:  users,
			chartService: charts,
		},
		users:  users,
		charts: charts,
	}
}

func TestRouter_PublicRoutes(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	chart, err := bazi.NewDefaultEngine().Calculate(bazi.ChartInput{Year: 2012, Month: 12, Day: 17, Hour: 14})
	require.NoError(t, err)
	app.charts.On("Compute", mock.Anything, chart.Input).Return(chart, nil)

	srv := httptest.NewServer(app.setupRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))

	body := bytes.NewBufferString(`{"year":2012,"month":12,"day":17,"hour":14}`)
	resp, err = http.Post(srv.URL+"/api/charts", "application/json", body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		DayMaster struct {
			Stem    string `json:"stem"`
			Element string `json:"element"`
		} `json:"day_master"`
		Season string `json:"season"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "ren", got.DayMaster.Stem)
	assert.Equal(t, "water", got.DayMaster.Element)
	assert.Equal(t, "late_summer", got.Season)
}

func TestRouter_ProfileRequiresToken(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	app.charts.On("GetProfile", mock.Anything, mock.Anything).Return(nil, store.ErrProfileNotFound)

	router := app.setupRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{"no token", http.MethodGet, "/api/profile", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/api/profile", "forged", http.StatusUnauthorized},
		{"valid token", http.MethodGet, "/api/profile", "valid", http.StatusNotFound},
		{"advice without token", http.MethodGet, "/api/profile/advice", "", http.StatusUnauthorized},
		{"unknown route", http.MethodGet, "/api/cards", "valid", http.StatusNotFound},
		{"wrong method", http.MethodPatch, "/api/profile", "valid", http.StatusMethodNotAllowed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestServeListener_GracefulShutdown(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serveListener(ctx, ln, app.setupRouter()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
