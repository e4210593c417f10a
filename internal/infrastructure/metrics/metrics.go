package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AuditAppendFailures cuenta las escrituras de bitácora que fallaron.
// La bitácora es best-effort: una falla no aborta la escritura primaria, así
// que este contador es la única señal de que quedó un hueco en el historial.
var AuditAppendFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "insumos",
	Subsystem: "audit",
	Name:      "append_failures_total",
	Help:      "Escrituras de DataLog que fallaron y fueron descartadas.",
})
