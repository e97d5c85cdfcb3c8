package api

import (
	"net/http"

	"flight-meetup-service/internal/api/handlers"
	"flight-meetup-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. Handlers stay unaware of concrete adapters: they see only
// the assembled search pipeline.
func NewRouter(search *services.MeetupSearch, defaults services.SearchRequest) http.Handler {
	mux := http.NewServeMux()

	searchHandler := &handlers.SearchHandler{
		Search:   search,
		Defaults: defaults,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/search", searchHandler.Run)

	return loggingMiddleware(mux)
}
