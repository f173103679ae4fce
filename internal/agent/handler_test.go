package agent

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/httperr"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/idempotency"
)

func newTestRouter(t *testing.T, tools ...Tool) (*gin.Engine, *idempotency.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	store := idempotency.NewStore(rdb, time.Hour)

	h := NewHandler(NewRegistry(tools...), store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := gin.New()
	r.GET("/agent/tools", h.ListTools)
	r.POST("/agent/tools/:name", h.Execute)
	return r, store
}

func countingTool(name string, calls *atomic.Int32, fail bool) Tool {
	return Tool{
		Name:        name,
		Description: "cuenta llamadas",
		Parameters:  json.RawMessage(`{"type":"object"}`),
		Handler: func(context.Context, json.RawMessage) (any, error) {
			calls.Add(1)
			if fail {
				return nil, httperr.ConflictErr("time_conflict")
			}
			return gin.H{"ok": true}, nil
		},
	}
}

func TestHandler_ListTools(t *testing.T) {
	var calls atomic.Int32
	r, _ := newTestRouter(t, countingTool("list_services", &calls, false))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agent/tools", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"list_services"`)
	assert.Contains(t, w.Body.String(), `"parameters"`)
}

func TestHandler_Execute(t *testing.T) {
	var calls atomic.Int32
	r, _ := newTestRouter(t, countingTool("book_appointment", &calls, false))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/agent/tools/book_appointment", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tool":"book_appointment","result":{"ok":true}}`, w.Body.String())
	assert.EqualValues(t, 1, calls.Load())
}

func TestHandler_IdempotentReplay(t *testing.T) {
	var calls atomic.Int32
	r, _ := newTestRouter(t, countingTool("book_appointment", &calls, false))

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/agent/tools/book_appointment", strings.NewReader(`{}`))
		req.Header.Set("X-Idempotency-Key", "retry-abc")
		r.ServeHTTP(w, req)
		return w
	}

	first := do()
	second := do()

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.EqualValues(t, 1, calls.Load(), "the replay must not re-run the tool")
}

func TestHandler_FailuresAreNotReplayed(t *testing.T) {
	var calls atomic.Int32
	r, _ := newTestRouter(t, countingTool("book_appointment", &calls, true))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/agent/tools/book_appointment", strings.NewReader(`{}`))
		req.Header.Set("X-Idempotency-Key", "retry-abc")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusConflict, w.Code)
	}

	assert.EqualValues(t, 2, calls.Load(), "a failed call may succeed on retry")
}

func TestHandler_UnknownTool(t *testing.T) {
	var calls atomic.Int32
	r, _ := newTestRouter(t, countingTool("book_appointment", &calls, false))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/agent/tools/launch_rockets", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_InvalidArguments(t *testing.T) {
	var calls atomic.Int32
	r, _ := newTestRouter(t, countingTool("book_appointment", &calls, false))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/agent/tools/book_appointment", strings.NewReader(`{not json`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 0, calls.Load())
}
