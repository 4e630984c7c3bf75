package router

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ocai-community/eventfeed/internal/api"
)

func New(h *api.Handlers, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /api/", h.Root)
	mux.HandleFunc("GET /api/env", h.Env)
	mux.HandleFunc("GET /api/events", h.Events)
	mux.HandleFunc("GET /api/events.ics", h.EventsICS)

	return withLogging(mux, logger)
}

func handleHealth(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
