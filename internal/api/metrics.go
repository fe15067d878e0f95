package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/planline/planline/pkg/observability"
)

var (
	// requestsTotal counts API requests by method, path and status.
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planline_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	// requestDuration tracks request latency.
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planline_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// planarityChecksTotal counts planarity queries by verdict.
	planarityChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planline_planarity_checks_total",
			Help: "Total number of planarity checks by verdict",
		},
		[]string{"planar"},
	)

	// linksTotal counts link commits and rejections.
	linksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planline_links_total",
			Help: "Total number of link commits and rejections",
		},
		[]string{"outcome"},
	)

	// optimizeCrossingsRemoved tracks crossings removed per optimizer run.
	optimizeCrossingsRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "planline_optimize_crossings_removed_total",
			Help: "Total crossings removed by sequence optimization",
		},
	)

	// generateTotal counts finished generation passes.
	generateTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planline_generate_total",
			Help: "Total number of generation passes by planarity outcome",
		},
		[]string{"planar"},
	)

	// generateDuration tracks generation pass latency.
	generateDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "planline_generate_duration_seconds",
			Help:    "Generation pass latency",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(planarityChecksTotal)
	prometheus.MustRegister(linksTotal)
	prometheus.MustRegister(optimizeCrossingsRemoved)
	prometheus.MustRegister(generateTotal)
	prometheus.MustRegister(generateDuration)
}

// RegisterMetrics installs prometheus-backed observability hooks. Call once
// at startup, before serving.
func RegisterMetrics() {
	observability.SetConstraintHooks(promConstraintHooks{})
	observability.SetGenerationHooks(promGenerationHooks{})
	observability.SetHTTPHooks(promHTTPHooks{})
}

type promConstraintHooks struct{}

func (promConstraintHooks) OnPlanarityCheck(planar bool) {
	planarityChecksTotal.WithLabelValues(strconv.FormatBool(planar)).Inc()
}

func (promConstraintHooks) OnLinkCommitted(from, to string) {
	linksTotal.WithLabelValues("committed").Inc()
}

func (promConstraintHooks) OnLinkRejected(from, to string) {
	linksTotal.WithLabelValues("rejected").Inc()
}

func (promConstraintHooks) OnOptimize(before, after, sweeps int, duration time.Duration) {
	if removed := before - after; removed > 0 {
		optimizeCrossingsRemoved.Add(float64(removed))
	}
}

type promGenerationHooks struct{}

func (promGenerationHooks) OnSelect(connector string, accepted bool) {}

func (promGenerationHooks) OnMakeLink(nonPlanar bool) {}

func (promGenerationHooks) OnGenerateComplete(points, links, crossings int, duration time.Duration) {
	generateTotal.WithLabelValues(strconv.FormatBool(crossings == 0)).Inc()
	generateDuration.Observe(duration.Seconds())
}

type promHTTPHooks struct{}

func (promHTTPHooks) OnRequest(method, path string) {}

func (promHTTPHooks) OnResponse(method, path string, statusCode int, duration time.Duration) {
	requestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
