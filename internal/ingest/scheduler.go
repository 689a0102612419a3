package ingest

import (
	"context"
	"encoding/json"
	"time"

	"coldwatch/internal/models"
)

// Escalation due-time offsets from the reading's recorded_at.
const (
	MonitorDelay = 30 * time.Minute
	CalloutDelay = 15 * time.Minute
)

// BuildBreachActions computes the two escalation rows for a persisted
// breaching reading: a callout due first, then a monitor follow-up.
func BuildBreachActions(rd *models.TemperatureReading, ev Evaluation) []models.BreachAction {
	return []models.BreachAction{
		breachAction(rd, ev, models.ActionCallout, CalloutDelay),
		breachAction(rd, ev, models.ActionMonitor, MonitorDelay),
	}
}

func breachAction(rd *models.TemperatureReading, ev Evaluation, actionType string, delay time.Duration) models.BreachAction {
	meta, _ := json.Marshal(map[string]any{
		"evaluation":    ev,
		"reading_uuid":  rd.UUID,
		"reading_value": rd.Reading,
		"delay_minutes": int(delay / time.Minute),
	})
	return models.BreachAction{
		TenantID:   rd.TenantID,
		SiteID:     rd.SiteID,
		ReadingID:  rd.ID,
		ActionType: actionType,
		Status:     models.ActionStatusPending,
		DueAt:      rd.RecordedAt.Add(delay),
		Metadata:   meta,
	}
}

// scheduleBreachActions upserts both rows keyed by (reading_id,
// action_type); redelivery of the same breach is a no-op at the store.
func (h *Handler) scheduleBreachActions(ctx context.Context, rd *models.TemperatureReading, ev Evaluation) error {
	return h.actions.UpsertActions(ctx, BuildBreachActions(rd, ev))
}
