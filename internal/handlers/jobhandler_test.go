package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/jobdeck/internal/dtos"
	"github.com/jobdeck/jobdeck/internal/services"
	"github.com/jobdeck/jobdeck/internal/store"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewJobHandler(services.NewJobService(store.NewMemoryStore(), nil))

	r := gin.New()
	r.GET("/api/jobs", h.ListJobs)
	r.GET("/api/jobs/:id", h.GetJob)
	r.POST("/api/jobs", h.CreateJob)
	r.PUT("/api/jobs/:id", h.UpdateJob)
	r.DELETE("/api/jobs/:id", h.DeleteJob)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAndGetJob(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/jobs", `{"title":"  SWE Intern  ","content":"notes here"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "SWE Intern", created["title"])
	assert.Equal(t, "saved", created["status"])
	assert.Equal(t, "med", created["priority"])
	// Both notes keys ride the wire with the same value.
	assert.Equal(t, "notes here", created["details"])
	assert.Equal(t, "notes here", created["content"])

	id := created["id"].(string)
	w = do(t, r, http.MethodGet, "/api/jobs/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateJobValidation(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/jobs", `{"title":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/jobs", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetJobNotFound(t *testing.T) {
	r := newTestRouter()
	w := do(t, r, http.MethodGet, "/api/jobs/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Job not found", body["message"])
}

func TestUpdateAndDeleteJob(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/jobs", `{"title":"a"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)

	w = do(t, r, http.MethodPut, "/api/jobs/"+id, `{"status":"applied"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "applied", updated["status"])

	w = do(t, r, http.MethodDelete, "/api/jobs/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodDelete, "/api/jobs/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePatchRejectsTypeMismatchedValues(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/jobs", `{"title":"a"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)

	// Whitelisted fields are all strings; a non-string value is a bind error,
	// not something to pass through into the store.
	w = do(t, r, http.MethodPut, "/api/jobs/"+id, `{"status":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The record is untouched.
	w = do(t, r, http.MethodGet, "/api/jobs/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "saved", got["status"])
}

func TestUpdateJobNotFound(t *testing.T) {
	r := newTestRouter()
	w := do(t, r, http.MethodPut, "/api/jobs/nope", `{"company":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListJobsEnvelopeAndClamping(t *testing.T) {
	r := newTestRouter()

	for _, title := range []string{"Zeta", "alpha", "Beta"} {
		w := do(t, r, http.MethodPost, "/api/jobs", `{"title":"`+title+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := do(t, r, http.MethodGet, "/api/jobs?sort=title:asc&limit=9999", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dtos.ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 200, resp.Limit)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "alpha", resp.Items[0].Title)
	assert.Equal(t, "Beta", resp.Items[1].Title)
	assert.Equal(t, "Zeta", resp.Items[2].Title)
}

func TestListJobsNoMatches(t *testing.T) {
	r := newTestRouter()
	w := do(t, r, http.MethodGet, "/api/jobs?search=nothing&status=offer", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dtos.ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Total)
	assert.Empty(t, resp.Items)
}
