package ingest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"coldwatch/internal/logs"
	"coldwatch/internal/models"
)

// Store contracts the handler needs. Satisfied by internal/repo; kept as
// interfaces so the core is testable without environment coupling.
type KeyStore interface {
	FindActiveKey(ctx context.Context, tenantID string) (*models.IngestKey, error)
}

type AssetStore interface {
	FindAsset(ctx context.Context, uuid string) (*models.Asset, error)
}

type ReadingStore interface {
	InsertReading(ctx context.Context, r *models.TemperatureReading) error
}

type ActionStore interface {
	UpsertActions(ctx context.Context, rows []models.BreachAction) error
}

type Handler struct {
	keys     KeyStore
	assets   AssetStore
	readings ReadingStore
	actions  ActionStore
	now      func() time.Time
}

func NewHandler(keys KeyStore, assets AssetStore, readings ReadingStore, actions ActionStore) *Handler {
	return &Handler{keys: keys, assets: assets, readings: readings, actions: actions, now: time.Now}
}

// Response is the 201 body: the new reading's id, its status and the full
// evaluation verdict.
type Response struct {
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	Evaluation Evaluation `json:"evaluation"`
}

// Ingest is POST /ingest/api/v1/temperature. Gates run strictly in order:
// body → JSON → required fields → key lookup → signature → bounds lookup →
// evaluate → persist → schedule → 201. Auth failures are a bare 401 with no
// hint which check failed.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rawBody, err := io.ReadAll(r.Body)
	if err != nil || len(rawBody) == 0 {
		models.WriteError(w, http.StatusBadRequest, errEmptyPayload)
		return
	}

	req, reading, msg := parseRequest(rawBody)
	if msg != "" {
		models.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	// Key lookup happens before verification on purpose: with no active
	// key there is nothing to verify against.
	key, err := h.keys.FindActiveKey(ctx, req.TenantID)
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if key == nil {
		models.WriteError(w, http.StatusUnauthorized, "No active ingest key for tenant")
		return
	}
	if !VerifySignature(key.Secret, rawBody, r.Header.Get(SignatureHeader)) {
		models.WriteError(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	recordedAt := h.now().UTC()
	if req.RecordedAt != nil {
		if t := time.Time(*req.RecordedAt); !t.IsZero() {
			recordedAt = t.UTC()
		} else {
			logs.Logger.Debugf("ingest: unparsable recorded_at, using receipt time tenant=%s site=%s",
				req.TenantID, req.SiteID)
		}
	}

	// Asset metadata is best-effort: a failed lookup must never block
	// ingestion of a safety-relevant reading.
	var asset *models.Asset
	if req.AssetID != nil && *req.AssetID != "" {
		asset, err = h.assets.FindAsset(ctx, *req.AssetID)
		if err != nil {
			logs.Logger.Warnf("ingest: asset lookup failed asset=%s: %v", *req.AssetID, err)
			asset = nil
		}
	}

	var workingMin, workingMax *float64
	if asset != nil {
		workingMin, workingMax = asset.WorkingTempMin, asset.WorkingTempMax
	}
	ev := Evaluate(reading, workingMin, workingMax)

	row := &models.TemperatureReading{
		UUID:       uuid.NewString(),
		TenantID:   req.TenantID,
		SiteID:     req.SiteID,
		AssetUUID:  req.AssetID,
		Reading:    reading,
		Unit:       req.Unit,
		Source:     req.Source,
		Status:     ev.Status,
		RecordedAt: recordedAt,
		Meta:       buildMeta(req.Meta, ev, asset),
	}
	if err := h.readings.InsertReading(ctx, row); err != nil {
		models.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if ev.Status == models.StatusBreach {
		// The reading is already durable; a scheduling failure is logged,
		// not surfaced, so it cannot mask a successful ingest.
		if err := h.scheduleBreachActions(ctx, row, ev); err != nil {
			logs.Logger.Errorf("ingest: breach action upsert failed reading=%s: %v", row.UUID, err)
		}
	}

	models.WriteJSON(w, http.StatusCreated, Response{
		ID:         row.UUID,
		Status:     row.Status,
		Evaluation: ev,
	})
}

// buildMeta merges caller metadata with the evaluation verdict and a
// snapshot of the asset bounds as they were at evaluation time.
func buildMeta(callerMeta map[string]any, ev Evaluation, asset *models.Asset) []byte {
	meta := make(map[string]any, len(callerMeta)+2)
	for k, v := range callerMeta {
		meta[k] = v
	}
	meta["evaluation"] = ev
	if asset != nil {
		meta["asset"] = map[string]any{
			"id":               asset.UUID,
			"name":             asset.Name,
			"working_temp_min": asset.WorkingTempMin,
			"working_temp_max": asset.WorkingTempMax,
		}
	} else {
		meta["asset"] = nil
	}
	b, _ := json.Marshal(meta)
	return b
}
