package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ryotarai/sepconfig/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func handlerForTest(t *testing.T) *Handler {
	s := storage.NewMemoryStorage()
	require.NoError(t, s.PutRecord(&storage.Record{TargetID: "rq2", State: storage.StateApplying}))
	require.NoError(t, s.PutRecord(&storage.Record{TargetID: "rq1", State: storage.StateConfigured, Digest: "abc"}))
	return NewHandler(s, logrus.New())
}

func TestTargetsGet(t *testing.T) {
	h := handlerForTest(t)

	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, httptest.NewRequest("GET", "/targets", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	records := []storage.Record{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "rq1", records[0].TargetID)
	assert.Equal(t, storage.StateApplying, records[1].State)
}

func TestTargetGet(t *testing.T) {
	h := handlerForTest(t)

	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, httptest.NewRequest("GET", "/targets/rq1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	r := storage.Record{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.Equal(t, "abc", r.Digest)
}

func TestTargetGetNotFound(t *testing.T) {
	h := handlerForTest(t)

	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, httptest.NewRequest("GET", "/targets/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "target not found")
}
