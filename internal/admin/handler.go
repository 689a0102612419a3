package admin

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"coldwatch/internal/models"
	"coldwatch/internal/repo"
)

type Handler struct {
	d Dependencies
}

// ---------- Ingest keys ----------

// IssueKey mints a new active ingest key for the tenant. The secret is
// returned once in this response and never again.
func (h *Handler) IssueKey(w http.ResponseWriter, r *http.Request) {
	tenant := strings.TrimSpace(mux.Vars(r)["tenant"])
	if tenant == "" {
		models.WriteError(w, http.StatusBadRequest, "tenant required")
		return
	}
	k, err := h.d.KEYS.Issue(r.Context(), tenant)
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	models.WriteJSON(w, http.StatusCreated, map[string]any{
		"key_id":     k.KeyID,
		"tenant_id":  k.TenantID,
		"secret":     k.Secret,
		"created_at": k.CreatedAt,
	})
}

func (h *Handler) RevokeKeys(w http.ResponseWriter, r *http.Request) {
	tenant := strings.TrimSpace(mux.Vars(r)["tenant"])
	if tenant == "" {
		models.WriteError(w, http.StatusBadRequest, "tenant required")
		return
	}
	n, err := h.d.KEYS.RevokeAll(r.Context(), tenant)
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]any{"revoked": n})
}

// ---------- Assets ----------

type assetRequest struct {
	TenantID       string   `json:"tenant_id"`
	SiteID         string   `json:"site_id"`
	Name           string   `json:"name"`
	WorkingTempMin *float64 `json:"working_temp_min"`
	WorkingTempMax *float64 `json:"working_temp_max"`
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TenantID == "" || req.SiteID == "" {
		models.WriteError(w, http.StatusBadRequest, "tenant_id and site_id required")
		return
	}
	a := &models.Asset{
		UUID:           uuid.NewString(),
		TenantID:       req.TenantID,
		SiteID:         req.SiteID,
		Name:           req.Name,
		WorkingTempMin: req.WorkingTempMin,
		WorkingTempMax: req.WorkingTempMax,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	if err := h.d.ASSETS.Create(r.Context(), a); err != nil {
		models.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	models.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	a, err := h.d.ASSETS.FindAsset(r.Context(), mux.Vars(r)["uuid"])
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if a == nil {
		models.WriteError(w, http.StatusNotFound, "asset not found")
		return
	}
	models.WriteJSON(w, http.StatusOK, a)
}

// ---------- Back-office reads ----------

func (h *Handler) ListReadings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.d.READINGS.ListRecent(r.Context(), repo.ListFilter{
		TenantID: q.Get("tenant_id"),
		SiteID:   q.Get("site_id"),
		Status:   q.Get("status"),
		Limit:    atoiOr(q.Get("limit"), 0),
	})
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]any{"readings": rows})
}

func (h *Handler) ListActions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.d.ACTIONS.ListPending(r.Context(), q.Get("tenant_id"), atoiOr(q.Get("limit"), 0))
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]any{"actions": rows})
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
