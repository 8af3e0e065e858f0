package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/simplechat/simplechat/shared/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLog(t *testing.T) {
	var buf bytes.Buffer
	logger.InitializeWithWriter(&buf, "info", false)
	defer logger.Initialize("info", false)

	var seen string
	handler := RequestLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestId(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generates id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/threads", nil))

		id := rr.Header().Get(RequestIdHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, seen)
		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.Contains(t, buf.String(), "request_id="+id)
		assert.Contains(t, buf.String(), "status=418")
	})

	t.Run("keeps client id", func(t *testing.T) {
		clientId := uuid.NewString()
		req := httptest.NewRequest("GET", "/v1/threads", nil)
		req.Header.Set(RequestIdHeader, clientId)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, clientId, rr.Header().Get(RequestIdHeader))
		assert.Equal(t, clientId, seen)
	})

	t.Run("replaces malformed client id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/v1/threads", nil)
		req.Header.Set(RequestIdHeader, "<script>")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.NotEqual(t, "<script>", rr.Header().Get(RequestIdHeader))
	})
}
