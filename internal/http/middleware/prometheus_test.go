package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestMiddleware(t *testing.T) *PrometheusMiddleware {
	t.Helper()
	// Fresh registry per test so repeated registration cannot collide.
	m, err := NewPrometheusMiddleware(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("failed to create middleware: %v", err)
	}
	return m
}

func TestPrometheusMiddleware(t *testing.T) {
	m := newTestMiddleware(t)

	app := fiber.New()
	app.Use(m.Handler())

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Delete("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/error", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad request")
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/test", nil))
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	if count := testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/test", "200")); count != 1 {
		t.Errorf("expected count 1, got %f", count)
	}

	app.Test(httptest.NewRequest("DELETE", "/test", nil))
	if count := testutil.ToFloat64(m.requestCount.WithLabelValues("DELETE", "/test", "200")); count != 1 {
		t.Errorf("expected count 1 for DELETE, got %f", count)
	}

	// Handler errors are counted under the error status, not 200.
	app.Test(httptest.NewRequest("GET", "/error", nil))
	if count := testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/error", "400")); count != 1 {
		t.Errorf("expected count 1 for error, got %f", count)
	}
}

func TestPrometheusMiddleware_ExcludeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	if err != nil {
		t.Fatalf("failed to create middleware: %v", err)
	}

	app := fiber.New()
	app.Use(m.Handler())

	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Test(httptest.NewRequest("GET", "/metrics", nil))

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_total" && len(mf.GetMetric()) > 0 {
			t.Errorf("expected /metrics to be excluded, got %d series", len(mf.GetMetric()))
		}
	}
}

func TestPrometheusMiddleware_PathPattern(t *testing.T) {
	m := newTestMiddleware(t)

	app := fiber.New()
	app.Use(m.Handler())

	app.Get("/datasets/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Test(httptest.NewRequest("GET", "/datasets/42", nil))

	// The route pattern is the label, not the raw path.
	if count := testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/datasets/:id", "200")); count != 1 {
		t.Errorf("expected count 1 for pattern /datasets/:id, got %f", count)
	}
	if countDur := testutil.CollectAndCount(m.requestDuration); countDur == 0 {
		t.Error("expected histogram metrics to be collected, got 0")
	}
}
