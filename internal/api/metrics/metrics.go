// Package metrics defines the custom Prometheus metrics of the e-waste API.
// It is the single source of truth for metric names, labels and help strings.
//
// Metrics register with the default registry when the package is loaded.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ecotrace/ewaste-tracker/internal/core/ports"
)

const namespace = "ewaste"

// ── Identity ─────────────────────────────────────────────────────────────────

// RegistrationsTotal counts successful registrations.
// Label:
//   - role: "admin" or "vendor"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users registered, by role.",
	},
	[]string{"role"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled", "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Items ────────────────────────────────────────────────────────────────────

// ItemsCreatedTotal counts newly reported items.
// Label:
//   - category: Laptop, Mobile, Battery, Monitor, Other
var ItemsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_created_total",
		Help:      "Total number of e-waste items registered, by category.",
	},
	[]string{"category"},
)

// StatusTransitionsTotal counts accepted status updates.
// Label:
//   - to: the status applied
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of accepted status updates, by new status.",
	},
	[]string{"to"},
)

// LookupRequestsTotal counts lookup code resolutions.
// Label:
//   - result: "hit", "miss", "error"
var LookupRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookup_requests_total",
		Help:      "Total number of lookup code resolutions, labelled by result.",
	},
	[]string{"result"},
)

// QRRenderDuration measures how long rendering one lookup code image takes.
var QRRenderDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "qr_render_duration_seconds",
		Help:      "Duration of QR code rendering.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
	},
)

// EventsPublishedTotal counts status change notifications.
// Label:
//   - result: "ok" or "error"
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of status change events published, labelled by result.",
	},
	[]string{"result"},
)

// ── Decorators ───────────────────────────────────────────────────────────────

type timedRenderer struct {
	next ports.CodeRenderer
}

// InstrumentRenderer records QRRenderDuration around every Render call.
func InstrumentRenderer(next ports.CodeRenderer) ports.CodeRenderer {
	return timedRenderer{next: next}
}

func (r timedRenderer) Render(code string) (string, error) {
	start := time.Now()
	defer func() { QRRenderDuration.Observe(time.Since(start).Seconds()) }()
	return r.next.Render(code)
}

type countingPublisher struct {
	next ports.StatusPublisher
}

// InstrumentPublisher counts every publish attempt in EventsPublishedTotal.
func InstrumentPublisher(next ports.StatusPublisher) ports.StatusPublisher {
	return countingPublisher{next: next}
}

func (p countingPublisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	err := p.next.PublishStatusChanged(ctx, event)
	result := "ok"
	if err != nil {
		result = "error"
	}
	EventsPublishedTotal.WithLabelValues(result).Inc()
	return err
}
