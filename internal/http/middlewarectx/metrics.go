package middlewarectx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// gateDecisions считает решения гейта по исходам. Метка outcome — либо
// "allow", либо код причины отказа, либо "error" для инфраструктурных сбоев.
var gateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "access_gate",
	Name:      "gate_decisions_total",
	Help:      "Number of gate decisions by outcome.",
}, []string{"outcome"})

func observeDecision(outcome string) {
	gateDecisions.WithLabelValues(outcome).Inc()
}
