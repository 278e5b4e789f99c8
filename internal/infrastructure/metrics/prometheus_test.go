package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_Dominio(t *testing.T) {
	p := New()
	p.SequenceIssued("sale", true)
	p.SequenceIssued("sale", true)
	p.SequenceIssued("sale", false)
	p.BackupExported(true, 42, time.Second)
	p.RestoreState("deleting", "clients")
	p.RestoreState("deleting", "sales")

	assert.Equal(t, 2.0, testutil.ToFloat64(p.sequences.WithLabelValues("sale", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.sequences.WithLabelValues("sale", "error")))
	assert.Equal(t, 42.0, testutil.ToFloat64(p.backupDocs))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.restoreStates.WithLabelValues("deleting")))
}

func TestPrometheus_MiddlewareYHandler(t *testing.T) {
	p := New()
	app := fiber.New()
	app.Use(p.Middleware())
	app.Get("/metrics", p.Handler())
	app.Get("/api/clients/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest("GET", "/api/clients/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(p.httpRequests.WithLabelValues("GET", "/api/clients/:id", "204")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "taller_http_requests_total")
}
