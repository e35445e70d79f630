// Package analytics is the fire-and-forget event sink for ad interaction
// events. Emission never blocks rendering paths and has no response
// contract: a sink that fails simply drops the event.
package analytics

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Event names emitted by the engine and the HTTP layer.
const (
	EventImpression  = "ad_impression"
	EventCTAClicked  = "ad_cta_clicked"
	EventModalOpened = "ad_modal_opened"
	EventModalClosed = "ad_modal_closed"
)

// Sink receives named ad events. Implementations must be non-blocking and
// safe for concurrent use.
type Sink interface {
	Emit(event, adID string)
}

// PromSink counts events in a prometheus CounterVec labelled by event name
// and ad id.
type PromSink struct {
	events *prometheus.CounterVec
}

// NewPromSink registers the counter on the given registerer and returns
// the sink. Pass prometheus.DefaultRegisterer in production.
func NewPromSink(reg prometheus.Registerer) *PromSink {
	return &PromSink{
		events: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "exo_ads_events_total",
			Help: "Total ad interaction events by event name and ad id.",
		}, []string{"event", "ad_id"}),
	}
}

func (s *PromSink) Emit(event, adID string) {
	s.events.WithLabelValues(event, adID).Inc()
}

// LogSink writes events to a structured logger. Useful when no metrics
// backend is configured.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Emit(event, adID string) {
	s.Logger.Debug("ad event", slog.String("event", event), slog.String("ad_id", adID))
}

// NopSink drops everything. Used in tests.
type NopSink struct{}

func (NopSink) Emit(string, string) {}
