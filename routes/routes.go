package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mbolis/care-survey/app"
	"github.com/mbolis/care-survey/httpx"
	"github.com/mbolis/care-survey/log"
	"github.com/mbolis/care-survey/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.RequestID, log.RequestLogger(), middleware.Recoverer)
	root.Use(middlewares.CORS(app.CORSOrigins))

	root.Get("/healthz", Health(app))

	root.Post("/responses", CreateResponse(app))
	root.Get("/responses", ListResponses(app))

	return root
}

func Health(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := app.Ping(r.Context())
		if err != nil {
			httpx.LogStatus(w, r, http.StatusServiceUnavailable, log.ErrorLevel, "db.ping", err)
			return
		}
		w.Write([]byte("ok"))
	}
}
