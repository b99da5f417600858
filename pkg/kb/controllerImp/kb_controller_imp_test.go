package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"farmwise/entities"
	kbRepoImp "farmwise/pkg/kb/repositoryImp"
	kbSvcImp "farmwise/pkg/kb/serviceImp"
)

func newEnv(t *testing.T, allowed []string) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.KBDocument{}, &entities.KBChunk{}))

	h := New(kbSvcImp.New(kbRepoImp.New(db), nil), allowed, 0)
	e := echo.New()
	e.POST("/api/kb/ingest", h.IngestText)
	e.POST("/api/kb/ingest/url", h.IngestURL)
	e.GET("/api/kb/search", h.Search)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIngestTextAndSearch(t *testing.T) {
	e := newEnv(t, nil)

	rec := do(e, http.MethodPost, "/api/kb/ingest",
		`{"title":"Rice basics","tags":"rice","text":"Paddy needs standing water during tillering."}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"chunks":1`)

	rec = do(e, http.MethodGet, "/api/kb/search?q=tillering", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out []struct {
		Text     string `json:"text"`
		DocTitle string `json:"doc_title"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Text, "standing water")
	assert.Equal(t, "Rice basics", out[0].DocTitle)
}

func TestIngestTextValidation(t *testing.T) {
	e := newEnv(t, nil)

	rec := do(e, http.MethodPost, "/api/kb/ingest", `{"text":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title is required")

	rec = do(e, http.MethodPost, "/api/kb/ingest", `{"title":"t"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "text is required")

	rec = do(e, http.MethodGet, "/api/kb/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngestURLDomainAllowList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>Banana guide</title></head>
			<body><main><h1>Banana</h1><p>Needs potassium rich soil.</p></main></body></html>`))
	}))
	defer srv.Close()
	host := mustHost(t, srv.URL)

	e := newEnv(t, []string{host})

	rec := do(e, http.MethodPost, "/api/kb/ingest/url", `{"url":"`+srv.URL+`","tags":"banana"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodGet, "/api/kb/search?q=potassium", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Banana guide")

	// a host outside the allow list is refused before any fetch
	e2 := newEnv(t, []string{"kau.in"})
	rec = do(e2, http.MethodPost, "/api/kb/ingest/url", `{"url":"`+srv.URL+`"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "domain not allowed")
}

func TestKBDegradedMode(t *testing.T) {
	h := New(nil, nil, 0)
	e := echo.New()
	e.GET("/api/kb/search", h.Search)

	rec := do(e, http.MethodGet, "/api/kb/search?q=rice", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCleanWhitespaceAndTitleGuess(t *testing.T) {
	assert.Equal(t, "a\nb", cleanWhitespace("a  \nb"))
	assert.Equal(t, "First line", guessTitleFromText("First line\nsecond line"))
}

func mustHost(t *testing.T, raw string) string {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Host
}
