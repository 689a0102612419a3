package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"tenant_id":"t1","site_id":"s1","reading":5}`, ""},
		{"not json", `{{{`, errInvalidJSON},
		{"missing site", `{"tenant_id":"t1","reading":5}`, errMissingFields},
		{"missing reading", `{"tenant_id":"t1","site_id":"s1"}`, errMissingFields},
		{"reading not numeric", `{"site_id":"s1","reading":"5"}`, errMissingFields},
		{"reading null", `{"site_id":"s1","reading":null}`, errMissingFields},
		{"reading overflows float64", `{"site_id":"s1","reading":1e999}`, errMissingFields},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, msg := parseRequest([]byte(tt.body))
			assert.Equal(t, tt.wantErr, msg)
		})
	}
}

func TestParseRequest_Defaults(t *testing.T) {
	req, reading, msg := parseRequest([]byte(`{"tenant_id":"t1","site_id":"s1","reading":-1.5}`))
	require.Empty(t, msg)
	assert.Equal(t, -1.5, reading)
	assert.Equal(t, "celsius", req.Unit)
	assert.Equal(t, "ingest", req.Source)
	assert.Nil(t, req.RecordedAt)
	assert.Nil(t, req.AssetID)
}

func TestWireTime(t *testing.T) {
	req, _, msg := parseRequest([]byte(`{"site_id":"s1","reading":1,"recorded_at":"2026-03-01T10:00:00Z"}`))
	require.Empty(t, msg)
	require.NotNil(t, req.RecordedAt)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), time.Time(*req.RecordedAt))

	// epoch seconds
	req, _, msg = parseRequest([]byte(`{"site_id":"s1","reading":1,"recorded_at":1767225600}`))
	require.Empty(t, msg)
	require.NotNil(t, req.RecordedAt)
	assert.Equal(t, int64(1767225600), time.Time(*req.RecordedAt).Unix())

	// garbage degrades to zero time (handler substitutes receipt time)
	req, _, msg = parseRequest([]byte(`{"site_id":"s1","reading":1,"recorded_at":"yesterday"}`))
	require.Empty(t, msg)
	require.NotNil(t, req.RecordedAt)
	assert.True(t, time.Time(*req.RecordedAt).IsZero())
}
