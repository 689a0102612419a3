package admin_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"coldwatch/internal/admin"
	"coldwatch/internal/ingest"
	"coldwatch/internal/keys"
	"coldwatch/internal/models"
	"coldwatch/internal/repo"
)

const adminToken = "test-admin-token"

func newAdminRouter(t *testing.T) (*mux.Router, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.IngestKey{},
		&models.Asset{},
		&models.TemperatureReading{},
		&models.BreachAction{},
	))

	ks := repo.NewKeyStore(db)
	r := mux.NewRouter()
	admin.Attach(r, adminToken, admin.Dependencies{
		KEYS:     keys.New(ks),
		ASSETS:   repo.NewAssetStore(db),
		READINGS: repo.NewReadingStore(db),
		ACTIONS:  repo.NewActionStore(db),
	})
	return r, db
}

func do(t *testing.T, r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdmin_BearerAuth(t *testing.T) {
	r, _ := newAdminRouter(t)

	assert.Equal(t, http.StatusUnauthorized,
		do(t, r, "GET", "/admin/api/v1/readings", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized,
		do(t, r, "GET", "/admin/api/v1/readings", "wrong-token", "").Code)
	assert.Equal(t, http.StatusOK,
		do(t, r, "GET", "/admin/api/v1/readings", adminToken, "").Code)
}

func TestAdmin_IssueAndRevokeKeys(t *testing.T) {
	r, db := newAdminRouter(t)

	w := do(t, r, "POST", "/admin/api/v1/tenants/t1/ingest-keys", adminToken, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var issued map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issued))
	secret, _ := issued["secret"].(string)
	assert.Len(t, secret, 64, "32 random bytes hex-encoded")
	assert.Equal(t, "t1", issued["tenant_id"])

	// the issued secret verifies an HMAC signature end to end
	body := []byte(`{"x":1}`)
	assert.True(t, ingest.VerifySignature(secret, body, ingest.Sign(secret, body)))

	// secret column must never leak through model serialization
	var k models.IngestKey
	require.NoError(t, db.Where("tenant_id = ?", "t1").First(&k).Error)
	b, err := json.Marshal(k)
	require.NoError(t, err)
	assert.NotContains(t, string(b), secret)

	w = do(t, r, "POST", "/admin/api/v1/tenants/t1/ingest-keys/revoke", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	var revoked map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &revoked))
	assert.Equal(t, float64(1), revoked["revoked"])
}

func TestAdmin_CreateAndGetAsset(t *testing.T) {
	r, _ := newAdminRouter(t)

	w := do(t, r, "POST", "/admin/api/v1/assets", adminToken,
		`{"tenant_id":"t1","site_id":"s1","name":"Freezer 2","working_temp_min":-20,"working_temp_max":-16}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Asset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.UUID)
	require.NotNil(t, created.WorkingTempMax)
	assert.Equal(t, -16.0, *created.WorkingTempMax)

	w = do(t, r, "GET", "/admin/api/v1/assets/"+created.UUID, adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, "GET", "/admin/api/v1/assets/missing", adminToken, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, "POST", "/admin/api/v1/assets", adminToken, `{"name":"no scope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdmin_ListActions(t *testing.T) {
	r, db := newAdminRouter(t)

	require.NoError(t, db.Create(&models.BreachAction{
		TenantID: "t1", SiteID: "s1", ReadingID: 7,
		ActionType: models.ActionCallout, Status: models.ActionStatusPending,
	}).Error)

	w := do(t, r, "GET", "/admin/api/v1/actions?tenant_id=t1", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Actions []models.BreachAction `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Actions, 1)
	assert.Equal(t, models.ActionCallout, resp.Actions[0].ActionType)
}
