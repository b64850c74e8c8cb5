package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMetricsApp uses a fresh registry so tests never collide on registration.
func newMetricsApp(t *testing.T) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	pm, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(pm.Handler())
	return app, pm, reg
}

func TestPrometheusMiddleware_Counts(t *testing.T) {
	app, pm, _ := newMetricsApp(t)

	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/surveys", ok)
	app.Delete("/surveys/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Post("/surveys/import", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad request")
	})

	tests := []struct {
		method, target     string
		wantPath, wantCode string
	}{
		{"GET", "/surveys", "/surveys", "200"},
		{"DELETE", "/surveys/feedback", "/surveys/:id", "204"},
		{"POST", "/surveys/import", "/surveys/import", "400"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			app.Test(httptest.NewRequest(tt.method, tt.target, nil))

			got := testutil.ToFloat64(pm.requestCount.WithLabelValues(tt.method, tt.wantPath, tt.wantCode))
			assert.Equal(t, float64(1), got)
		})
	}
}

func TestPrometheusMiddleware_ExcludeMetrics(t *testing.T) {
	app, _, reg := newMetricsApp(t)
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	app.Test(httptest.NewRequest("GET", "/metrics", nil))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		assert.Empty(t, mf.GetMetric(), "unexpected %s series", mf.GetName())
	}
}

func TestPrometheusMiddleware_PathPattern(t *testing.T) {
	app, pm, _ := newMetricsApp(t)
	app.Get("/workflows/:id/steps/:index", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	app.Test(httptest.NewRequest("GET", "/workflows/doc-1/steps/0", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(pm.requestCount.WithLabelValues("GET", "/workflows/:id/steps/:index", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(pm.requestDuration))
}

func TestPrometheusMiddleware_UnmatchedRouteIsCounted(t *testing.T) {
	app, pm, _ := newMetricsApp(t)

	app.Test(httptest.NewRequest("GET", "/nowhere", nil))

	assert.Equal(t, 1, testutil.CollectAndCount(pm.requestCount))
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
