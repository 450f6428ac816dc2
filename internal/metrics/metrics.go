// Package metrics exposes Prometheus collectors for games and actions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors. Each instance owns its registry so tests
// and multiple services do not collide on the default one.
type Metrics struct {
	Registry        *prometheus.Registry
	GamesCreated    prometheus.Counter
	GamesFinished   prometheus.Counter
	ActiveGames     prometheus.Gauge
	ActionsApplied  *prometheus.CounterVec
	ActionsRejected *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		GamesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "natak",
			Name:      "games_created_total",
			Help:      "Games created.",
		}),
		GamesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "natak",
			Name:      "games_finished_total",
			Help:      "Games that reached a winner.",
		}),
		ActiveGames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "natak",
			Name:      "active_games",
			Help:      "Games held in the store cache.",
		}),
		ActionsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "natak",
			Name:      "actions_applied_total",
			Help:      "Actions accepted, by type.",
		}, []string{"type"}),
		ActionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "natak",
			Name:      "actions_rejected_total",
			Help:      "Actions rejected, by type and error code.",
		}, []string{"type", "code"}),
	}
	m.Registry.MustRegister(
		m.GamesCreated,
		m.GamesFinished,
		m.ActiveGames,
		m.ActionsApplied,
		m.ActionsRejected,
	)
	return m
}

// Applied counts an accepted action.
func (m *Metrics) Applied(actionType string) {
	m.ActionsApplied.WithLabelValues(actionType).Inc()
}

// Rejected counts a rejected action.
func (m *Metrics) Rejected(actionType, code string) {
	m.ActionsRejected.WithLabelValues(actionType, code).Inc()
}
