package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MrSnakeDoc/promptdeck/internal/domain"
)

const namespace = "promptdeck"

// Metrics holds the catalog collectors. A nil *Metrics is a valid no-op
// recorder, which keeps tests and the CLI free of registry plumbing.
type Metrics struct {
	queries  *prometheus.CounterVec
	actions  *prometheus.CounterVec
	reloads  *prometheus.CounterVec
	records  prometheus.Gauge
	registry *prometheus.Registry
}

// New builds the collectors on a dedicated registry, together with the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "queries_total",
				Help:      "Catalog list queries, by view.",
			},
			[]string{"view"},
		),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "actions_total",
				Help:      "User commands on prompts, by action and result.",
			},
			[]string{"action", "result"},
		),
		reloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "reloads_total",
				Help:      "Catalog reload attempts, by result.",
			},
			[]string{"result"},
		),
		records: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "records",
				Help:      "Number of prompts in the current catalog snapshot.",
			},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.queries,
		m.actions,
		m.reloads,
		m.records,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveQuery counts a list query.
func (m *Metrics) ObserveQuery(view string) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(view).Inc()
}

// ObserveAction counts a user command with its outcome.
func (m *Metrics) ObserveAction(action string, err error) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(action, result(err)).Inc()
}

// ObserveReload counts a reload and, on success, records the catalog size.
func (m *Metrics) ObserveReload(records int, err error) {
	if m == nil {
		return
	}
	m.reloads.WithLabelValues(result(err)).Inc()
	if err == nil {
		m.SetRecords(records)
	}
}

// SetRecords records the size of the catalog being served.
func (m *Metrics) SetRecords(records int) {
	if m == nil {
		return
	}
	m.records.Set(float64(records))
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrPromptNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidPrompt), errors.Is(err, domain.ErrCatalogLoad):
		return "invalid"
	default:
		return "error"
	}
}
