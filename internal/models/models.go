package models

import (
	"time"

	"gorm.io/datatypes"
)

// Reading classification statuses. Stored verbatim on the reading row and
// echoed in the ingest response.
const (
	StatusOK      = "ok"
	StatusWarning = "warning"
	StatusBreach  = "breach"
)

// Breach escalation action types.
const (
	ActionMonitor = "monitor"
	ActionCallout = "callout"
)

// BreachAction queue statuses.
const (
	ActionStatusPending = "pending"
)

// IngestKey statuses.
const (
	KeyStatusActive  = "active"
	KeyStatusRevoked = "revoked"
)

// IngestKey is a per-tenant shared secret devices sign payloads with.
// The most recently created active key is the tenant's current one.
type IngestKey struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  string    `gorm:"index;size:64;not null" json:"tenant_id"`
	KeyID     string    `gorm:"size:16;not null" json:"key_id"` // short human-readable id
	Secret    string    `gorm:"size:128;not null" json:"-"`     // raw secret; never serialized
	Status    string    `gorm:"size:16;not null;default:active;index" json:"status"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// Asset is a monitored unit (fridge, freezer, hot-hold cabinet) with its
// configured working temperature range. Bounds are optional: an asset
// without bounds falls back to the default safe range at evaluation time.
type Asset struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UUID      string    `gorm:"uniqueIndex;size:64;not null" json:"id"`
	TenantID  string    `gorm:"index;size:64;not null" json:"tenant_id"`
	SiteID    string    `gorm:"index;size:64;not null" json:"site_id"`
	Name      string    `gorm:"size:255" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	WorkingTempMin *float64 `json:"working_temp_min"`
	WorkingTempMax *float64 `json:"working_temp_max"`
}

// TemperatureReading is one sensor observation plus its evaluation
// snapshot. Created exactly once per valid ingest request, immutable after.
type TemperatureReading struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UUID       string    `gorm:"uniqueIndex;size:64;not null" json:"id"`
	TenantID   string    `gorm:"index;size:64;not null" json:"tenant_id"`
	SiteID     string    `gorm:"index;size:64;not null" json:"site_id"`
	AssetUUID  *string   `gorm:"index;size:64" json:"asset_id"`
	Reading    float64   `gorm:"not null" json:"reading"`
	Unit       string    `gorm:"size:32;not null;default:celsius" json:"unit"`
	Source     string    `gorm:"size:64;not null;default:ingest" json:"source"`
	Status     string    `gorm:"size:16;not null;index" json:"status"`
	RecordedAt time.Time `gorm:"not null;index" json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`

	// caller meta + evaluation + asset bounds snapshot at evaluation time
	Meta datatypes.JSON `gorm:"type:jsonb" json:"meta"`
}

// BreachAction is a queued escalation task. The composite unique index is
// what makes breach scheduling idempotent: the upsert keyed on
// (reading_id, action_type) can never produce duplicates.
type BreachAction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TenantID   string    `gorm:"index;size:64;not null" json:"tenant_id"`
	SiteID     string    `gorm:"size:64;not null" json:"site_id"`
	ReadingID  uint      `gorm:"not null;uniqueIndex:uniq_reading_action,priority:1" json:"reading_id"`
	ActionType string    `gorm:"size:16;not null;uniqueIndex:uniq_reading_action,priority:2" json:"action_type"`
	Status     string    `gorm:"size:16;not null;default:pending;index" json:"status"`
	DueAt      time.Time `gorm:"not null;index" json:"due_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Metadata datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
}
