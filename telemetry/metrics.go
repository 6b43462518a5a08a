// Package telemetry exports simulation metrics to Prometheus and serves them
// over HTTP.
package telemetry

import (
	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/pong"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors, all registered on one registry.
type Metrics struct {
	Registry *prometheus.Registry

	Ticks          prometheus.Counter
	Entities       prometheus.Gauge
	Archetypes     prometheus.Gauge
	SystemDuration *prometheus.GaugeVec
	Score          *prometheus.GaugeVec
}

// NewMetrics creates the collectors on a fresh registry. sim labels every
// series so several simulations can share a scrape target.
func NewMetrics(sim string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := prometheus.Labels{"sim": sim}

	return &Metrics{
		Registry: reg,
		Ticks: factory.NewCounter(prometheus.CounterOpts{
			Name:        "heep_ticks_total",
			Help:        "Scheduler ticks completed",
			ConstLabels: labels,
		}),
		Entities: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "heep_entities",
			Help:        "Live entities in storage",
			ConstLabels: labels,
		}),
		Archetypes: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "heep_archetypes",
			Help:        "Archetypes in storage",
			ConstLabels: labels,
		}),
		SystemDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "heep_system_last_duration_seconds",
			Help:        "Duration of the most recent run of each system",
			ConstLabels: labels,
		}, []string{"system"}),
		Score: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "heep_pong_score",
			Help:        "Current pong score per side",
			ConstLabels: labels,
		}, []string{"side"}),
	}
}

// MetricsSystem copies storage, scheduler and score state into Metrics once
// per tick. Register it last so it sees the tick's final state.
type MetricsSystem struct {
	Metrics   *Metrics
	Scheduler *ecs.Scheduler
	Score     ecs.Singleton[pong.Score]

	// StatsEvery limits how often storage stats are collected, in ticks.
	// Zero means every tick.
	StatsEvery uint64
}

func (m *MetricsSystem) Execute(frame *ecs.UpdateFrame) {
	m.Metrics.Ticks.Inc()

	if m.StatsEvery == 0 || frame.Tick%m.StatsEvery == 0 {
		stats := frame.Storage.CollectStats()
		m.Metrics.Entities.Set(float64(stats.TotalEntityCount))
		m.Metrics.Archetypes.Set(float64(stats.ArchetypeCount))
	}

	if m.Scheduler != nil {
		for _, system := range m.Scheduler.GetStats().Systems {
			m.Metrics.SystemDuration.WithLabelValues(system.Name).Set(system.LastDuration.Seconds())
		}
	}

	if score := m.Score.Get(); score != nil {
		m.Metrics.Score.WithLabelValues(pong.ScorerPlayer.String()).Set(float64(score.Player))
		m.Metrics.Score.WithLabelValues(pong.ScorerAi.String()).Set(float64(score.Ai))
	}
}
