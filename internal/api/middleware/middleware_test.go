package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/shared/id"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw...)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": GetRequestID(c)})
	})
	return router
}

func get(router http.Handler, header http.Header, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	if remote != "" {
		req.RemoteAddr = remote
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitPerClient(t *testing.T) {
	router := newRouter(RateLimit(RateLimitConfig{RequestsPerSecond: 1, Burst: 2}))

	assert.Equal(t, http.StatusOK, get(router, nil, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, get(router, nil, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(router, nil, "10.0.0.1:1000").Code)

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, get(router, nil, "10.0.0.2:1000").Code)
}

func TestGlobalRateLimit(t *testing.T) {
	router := newRouter(GlobalRateLimit(RateLimitConfig{RequestsPerSecond: 1, Burst: 1}))

	assert.Equal(t, http.StatusOK, get(router, nil, "10.0.0.1:1000").Code)
	w := get(router, nil, "10.0.0.2:1000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestRequestIDAssigned(t *testing.T) {
	router := newRouter(RequestID())

	w := get(router, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	reqID := w.Header().Get(RequestIDHeader)
	assert.True(t, id.IsValidPrefixed(reqID, id.RequestPrefix), reqID)
	assert.Contains(t, w.Body.String(), reqID)
}

func TestRequestIDPropagated(t *testing.T) {
	router := newRouter(RequestID())
	incoming := id.NewRequestID().String()

	w := get(router, http.Header{RequestIDHeader: {incoming}}, "")
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	w = get(router, http.Header{RequestIDHeader: {"<script>"}}, "")
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
	assert.True(t, id.IsValidPrefixed(w.Header().Get(RequestIDHeader), id.RequestPrefix))
}

func TestCORS(t *testing.T) {
	router := newRouter(CORS(DefaultCORSConfig()))

	w := get(router, http.Header{"Origin": {"http://example.com"}}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
