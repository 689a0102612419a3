package ingest

import (
	"encoding/json"
	"math"
	"time"
)

// WireTime accepts either an RFC3339 string or unix epoch seconds; device
// firmwares send both. Unparsable values decode to the zero time, which the
// handler treats as "not supplied" (a bad optional timestamp must not
// reject a safety-relevant reading).
type WireTime time.Time

func (u *WireTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			*u = WireTime(t)
		}
		return nil
	}
	var ts int64
	if err := json.Unmarshal(b, &ts); err == nil && ts > 0 {
		*u = WireTime(time.Unix(ts, 0).UTC())
	}
	return nil
}

// request is the ingest wire schema. Pointer fields distinguish absent from
// zero-valued; reading stays raw JSON so a missing and a non-numeric value
// produce the same 400, not a generic decode error.
type request struct {
	TenantID   string          `json:"tenant_id"`
	SiteID     string          `json:"site_id"`
	AssetID    *string         `json:"asset_id"`
	Reading    json.RawMessage `json:"reading"`
	Unit       string          `json:"unit"`
	RecordedAt *WireTime       `json:"recorded_at"`
	Source     string          `json:"source"`
	Meta       map[string]any  `json:"meta"`
}

// Fixed 400-stage messages from the endpoint contract.
const (
	errInvalidJSON   = "Invalid JSON"
	errEmptyPayload  = "Empty payload"
	errMissingFields = "Missing site_id or reading"
	errNonFinite     = "Reading must be a finite number"
)

// parseRequest validates the raw body. It returns the parsed request and
// the numeric reading, or a 400-stage error message.
func parseRequest(body []byte) (*request, float64, string) {
	var req request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, 0, errInvalidJSON
	}
	if req.SiteID == "" || len(req.Reading) == 0 {
		return nil, 0, errMissingFields
	}
	var reading float64
	if err := json.Unmarshal(req.Reading, &reading); err != nil {
		return nil, 0, errMissingFields
	}
	if math.IsNaN(reading) || math.IsInf(reading, 0) {
		return nil, 0, errNonFinite
	}
	if req.Unit == "" {
		req.Unit = "celsius"
	}
	if req.Source == "" {
		req.Source = "ingest"
	}
	return &req, reading, ""
}
