package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveBuild(t *testing.T) {
	c := NewCollector()

	c.ObserveBuild("single_elimination", "generate", 7, nil, 10*time.Millisecond)
	c.ObserveBuild("single_elimination", "generate", 3, nil, time.Millisecond)
	c.ObserveBuild("single_elimination", "generate", 0, errors.New("boom"), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.buildsTotal.WithLabelValues("single_elimination", "generate", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.buildsTotal.WithLabelValues("single_elimination", "generate", StatusError)))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.matchesBuilt.WithLabelValues("single_elimination")))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveBuild("free_for_all", "preview", 3, nil, time.Second)
		c.ObserveBroadcast()
	})
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.ObserveBroadcast()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bracket_broadcasts_total 1")
}
