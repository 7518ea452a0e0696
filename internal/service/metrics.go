package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"org-structure-service/internal/apperror"
)

var mutations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "org_structure_mutations_total",
		Help: "Organization tree mutations by operation and outcome",
	},
	[]string{"op", "result"},
)

func recordMutation(op string, err error) {
	result := "ok"
	if err != nil {
		result = string(apperror.GetCode(err))
	}
	mutations.WithLabelValues(op, result).Inc()
}
