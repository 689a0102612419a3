package admin

import (
	"github.com/gorilla/mux"

	"coldwatch/internal/keys"
	"coldwatch/internal/repo"
)

type Dependencies struct {
	KEYS     *keys.Service
	ASSETS   *repo.AssetStore
	READINGS *repo.ReadingStore
	ACTIONS  *repo.ActionStore
}

// Attach mounts the back-office JSON API under /admin/api/v1, guarded by
// the operator bearer token.
func Attach(r *mux.Router, token string, d Dependencies) {
	h := &Handler{d: d}
	sub := r.PathPrefix("/admin/api/v1").Subrouter()
	sub.Use(BearerAuth(token))

	sub.HandleFunc("/tenants/{tenant}/ingest-keys", h.IssueKey).Methods("POST")
	sub.HandleFunc("/tenants/{tenant}/ingest-keys/revoke", h.RevokeKeys).Methods("POST")

	sub.HandleFunc("/assets", h.CreateAsset).Methods("POST")
	sub.HandleFunc("/assets/{uuid}", h.GetAsset).Methods("GET")

	sub.HandleFunc("/readings", h.ListReadings).Methods("GET")
	sub.HandleFunc("/actions", h.ListActions).Methods("GET")
}
