package ingest

import (
	"net/http"

	"github.com/gorilla/mux"

	"coldwatch/internal/models"
)

// RegisterRoutes mounts the ingest surface. Only POST is accepted; any
// other method on a known path answers a JSON 405.
func RegisterRoutes(r *mux.Router, h *Handler) {
	sub := r.PathPrefix("/ingest/api/v1").Subrouter()
	sub.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		models.WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	sub.HandleFunc("/temperature", h.Ingest).Methods(http.MethodPost)
}
