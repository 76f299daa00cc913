/*
metrics.go - Prometheus instrumentation

PURPOSE:
  Counters for the engine-facing endpoints and a gauge for the most recent
  risk score per label. Registered via promauto on the default registry;
  exposed at /metrics by the router.

SEE ALSO:
  - server.go: Mounts the /metrics handler
*/
package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	expansionRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compliance_recurrence_expansions_total",
		Help: "Number of recurrence expansion requests served.",
	})

	derivationRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compliance_obligation_derivations_total",
		Help: "Number of obligation derivation requests served.",
	})

	riskChecks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compliance_risk_checks_total",
		Help: "Number of risk check requests served.",
	})

	coverageRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compliance_coverage_reconciliations_total",
		Help: "Number of coverage reconciliation requests served.",
	})

	profileWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compliance_profile_writes_total",
		Help: "Number of client profile create/supersede operations.",
	})

	catalogReplacements = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compliance_catalog_replacements_total",
		Help: "Number of catalog replace-all operations.",
	})

	riskScoreGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "compliance_risk_score",
		Help: "Most recently computed risk score, partitioned by label.",
	}, []string{"label"})

	snapshotRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compliance_risk_snapshot_runs_total",
		Help: "Number of background risk snapshot refresh runs.",
	})
)
