package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	snap := m.Snapshot()
	require.Equal(t, int64(3), snap.RequestCount["GET:/ok:200"])
	require.Equal(t, int64(1), snap.RequestCount["GET:/fail:500"])
	assert.Equal(t, int64(1), snap.ErrorCount["GET:/fail:500"])
	assert.Zero(t, snap.ErrorCount["GET:/ok:200"])
	assert.GreaterOrEqual(t, snap.AverageLatency["GET:/ok:200"], 0.0)

	assert.Equal(t, int64(4), snap.Summary.TotalRequests)
	assert.Equal(t, int64(1), snap.Summary.TotalErrors)
	assert.InDelta(t, 0.25, snap.Summary.ErrorRate, 1e-9)
	assert.GreaterOrEqual(t, snap.Summary.AverageLatency, 0.0)
}

func TestMetricsSummaryEmpty(t *testing.T) {
	snap := NewMetrics().Snapshot()
	assert.Zero(t, snap.Summary.TotalRequests)
	assert.Zero(t, snap.Summary.ErrorRate)
	assert.Zero(t, snap.Summary.AverageLatency)
}
