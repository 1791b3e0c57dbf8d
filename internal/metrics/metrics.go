// metrics — счётчики решений comment-router для Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Decisions считает исходы операций: comment_router_decisions_total{operation, outcome}.
// outcome — код причины решения (found, allowed, field_closed, ...) либо класс ошибки (not_found, ...).
// Методы безопасны для nil-получателя: метрики можно не подключать.
type Decisions struct {
	vec *prometheus.CounterVec
}

// NewDecisions создаёт и регистрирует счётчик в reg.
func NewDecisions(reg prometheus.Registerer) *Decisions {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "comment_router",
		Name:      "decisions_total",
		Help:      "Outcomes of permalink, reply and new-comments operations.",
	}, []string{"operation", "outcome"})

	if reg != nil {
		reg.MustRegister(vec)
	}

	return &Decisions{vec: vec}
}

// Observe увеличивает счётчик исхода операции.
func (d *Decisions) Observe(operation, outcome string) {
	if d == nil || d.vec == nil {
		return
	}

	d.vec.WithLabelValues(operation, outcome).Inc()
}
