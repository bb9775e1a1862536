package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/bazi-api/internal/api"
	apiMiddleware "github.com/phrazzld/bazi-api/internal/api/middleware"
	"github.com/phrazzld/bazi-api/internal/api/shared"
)

const requestTimeout = 30 * time.Second

// setupRouter registers every route on a chi router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	chartHandler := api.NewChartHandler(app.chartService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/charts", chartHandler.Compute)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Route("/profile", func(r chi.Router) {
				r.Put("/", chartHandler.SaveProfile)
				r.Get("/", chartHandler.GetProfile)
				r.Delete("/", chartHandler.DeleteProfile)
				r.Get("/advice", chartHandler.Advice)
				r.Get("/daily", chartHandler.Daily)
				r.Get("/reading", chartHandler.Reading)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
