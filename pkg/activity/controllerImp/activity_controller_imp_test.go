package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"farmwise/entities"
	activityRepoImp "farmwise/pkg/activity/repositoryImp"
	cropRepoImp "farmwise/pkg/crop/repositoryImp"
)

func newEnv(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Crop{}, &entities.Activity{}))

	h := New(activityRepoImp.New(db), cropRepoImp.New(db))
	e := echo.New()
	e.POST("/api/activities", h.Create)
	e.GET("/api/activities/:crop_id", h.ListByCrop)
	return e, db
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestActivityCreateStampsCrop(t *testing.T) {
	e, db := newEnv(t)

	cr := &entities.Crop{UserID: "u1", Name: "Rice"}
	require.NoError(t, db.Create(cr).Error)

	rec := doJSON(e, http.MethodPost, "/api/activities",
		`{"crop_id":"`+cr.ID+`","type":"watering","description":"evening round","quantity":"20 L"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var a entities.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.NotEmpty(t, a.ID)
	require.NotNil(t, a.Quantity)
	assert.Equal(t, "20 L", *a.Quantity)

	var got entities.Crop
	require.NoError(t, db.First(&got, "id = ?", cr.ID).Error)
	require.NotNil(t, got.LastActivity)
}

func TestActivityCreateUnknownCropStillSucceeds(t *testing.T) {
	e, _ := newEnv(t)

	rec := doJSON(e, http.MethodPost, "/api/activities",
		`{"crop_id":"ghost","type":"observation","description":"leaves look fine"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/activities/ghost", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out []entities.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out, 1)
}

func TestActivityCreateRejectsBadType(t *testing.T) {
	e, _ := newEnv(t)

	rec := doJSON(e, http.MethodPost, "/api/activities",
		`{"crop_id":"c1","type":"singing","description":"to the plants"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/activities", `{"crop_id":"c1","type":"watering"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestActivityCreateExplicitDate(t *testing.T) {
	e, _ := newEnv(t)

	rec := doJSON(e, http.MethodPost, "/api/activities",
		`{"crop_id":"c1","type":"planting","description":"sown","date":"2026-06-01"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var a entities.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, "2026-06-01", a.Date.Format("2006-01-02"))

	rec = doJSON(e, http.MethodPost, "/api/activities",
		`{"crop_id":"c1","type":"planting","description":"sown","date":"not-a-date"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestActivityDegradedMode(t *testing.T) {
	h := New(nil, nil)
	e := echo.New()
	e.POST("/api/activities", h.Create)

	rec := doJSON(e, http.MethodPost, "/api/activities",
		`{"crop_id":"c1","type":"watering","description":"x"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
