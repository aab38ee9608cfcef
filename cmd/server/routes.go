package main

import (
	"net/http"
	"slices"
	"strings"

	"github.com/kestrelworks/redline/internal/comparisons"
	"github.com/kestrelworks/redline/internal/retention"
	"github.com/kestrelworks/redline/internal/statistics"
	"github.com/kestrelworks/redline/internal/versions"
	"github.com/kestrelworks/redline/pkg/routes"
)

func (app *Application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", app.infra.Metrics.Handler())

	versionHandler := versions.NewHandler(app.versions, app.logger, app.infra.Metrics)
	comparisonHandler := comparisons.NewHandler(app.comparisons, app.logger)
	statisticsHandler := statistics.NewHandler(app.statistics, app.logger, app.config.Pagination)
	retentionHandler := retention.NewHandler(app.retention, app.logger)

	routes.Register(mux, versionHandler.Routes()...)
	routes.Register(mux, comparisonHandler.Routes()...)
	routes.Register(mux, statisticsHandler.Routes()...)
	routes.Register(mux, retentionHandler.Routes()...)

	return app.enableCORS(mux)
}

func (app *Application) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cors := app.config.CORS

		if len(cors.Origins) > 0 {
			origin := r.Header.Get("Origin")
			if slices.Contains(cors.Origins, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
		}

		if len(cors.Methods) > 0 {
			w.Header().Set("Access-Control-Allow-Methods", strings.Join(cors.Methods, ", "))
		}

		if len(cors.Headers) > 0 {
			w.Header().Set("Access-Control-Allow-Headers", strings.Join(cors.Headers, ", "))
		}

		if cors.Credentials {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
