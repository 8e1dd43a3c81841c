package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollector_Exposition(t *testing.T) {
	c := NewCollector()
	c.ObserveSource("rakuten", "ok", 120*time.Millisecond)
	c.ObserveSource("serpapi", "error", time.Second)
	c.ObserveSearchResults(7)
	c.AnalyzeFallback()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	c.Handler().ServeHTTP(w, req)

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, `closet_search_source_requests_total{outcome="ok",source="rakuten"} 1`)
	assert.Contains(t, body, `closet_search_source_requests_total{outcome="error",source="serpapi"} 1`)
	assert.Contains(t, body, "closet_analyze_fallback_total 1")
	assert.Contains(t, body, "closet_search_results_count 1")
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.ObserveSource("rakuten", "ok", time.Millisecond)
		c.ObserveSearchResults(3)
		c.AnalyzeFallback()
	})
}
