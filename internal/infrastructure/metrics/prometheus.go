// Package metrics expone los colectores Prometheus de la API.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Taller-api/internal/application/ports"
)

const namespace = "taller"

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus implementa ports.Metrics y la instrumentación HTTP sobre un registro propio.
type Prometheus struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	sequences      *prometheus.CounterVec
	backups        *prometheus.CounterVec
	backupDocs     prometheus.Gauge
	backupDuration prometheus.Histogram
	restoreStates  *prometheus.CounterVec
}

// New crea y registra los colectores, incluidos los de proceso y runtime de Go.
func New() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Peticiones HTTP en curso.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms a ~5s
		}, []string{"method", "route"}),
		sequences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sequence",
			Name:      "issued_total",
			Help:      "Números de secuencia emitidos o fallidos.",
		}, []string{"sequence", "result"}),
		backups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backup",
			Name:      "exports_total",
			Help:      "Exports de backup ejecutados.",
		}, []string{"result"}),
		backupDocs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "backup",
			Name:      "last_export_documents",
			Help:      "Documentos del último export exitoso.",
		}),
		backupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backup",
			Name:      "export_duration_seconds",
			Help:      "Duración de los exports de backup.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		restoreStates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "restore",
			Name:      "transitions_total",
			Help:      "Transiciones de la máquina de estados del restore.",
		}, []string{"state"}),
	}
	p.registry.MustRegister(
		p.httpInFlight,
		p.httpRequests,
		p.httpDuration,
		p.sequences,
		p.backups,
		p.backupDocs,
		p.backupDuration,
		p.restoreStates,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return p
}

// Registry devuelve el registro para tests o exportadores adicionales.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) SequenceIssued(sequence string, ok bool) {
	p.sequences.WithLabelValues(sequence, result(ok)).Inc()
}

func (p *Prometheus) BackupExported(ok bool, documents int, elapsed time.Duration) {
	p.backups.WithLabelValues(result(ok)).Inc()
	p.backupDuration.Observe(elapsed.Seconds())
	if ok {
		p.backupDocs.Set(float64(documents))
	}
}

// RestoreState cuenta por estado; la colección no se usa como label para acotar la cardinalidad.
func (p *Prometheus) RestoreState(state, _ string) {
	p.restoreStates.WithLabelValues(state).Inc()
}

// Handler expone /metrics en Fiber.
func (p *Prometheus) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
}

// Middleware instrumenta las peticiones con la ruta registrada (no la URL cruda).
func (p *Prometheus) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		start := time.Now()
		p.httpInFlight.Inc()
		defer p.httpInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		route := c.Route().Path
		if route == "" || route == "/" && c.Path() != "/" {
			route = "unmatched"
		}
		method := strings.ToUpper(c.Method())
		p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		p.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
