package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "newspaperexport"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration  *prom.HistogramVec
	exportDuration prom.Histogram
	stageResults   *prom.CounterVec
	exportOutcome  *prom.CounterVec
	issues         prom.Counter
	anchorMerges   *prom.CounterVec
	lastSuccess    prom.Gauge
}

// NewPrometheusRecorder constructs the export metrics and registers them with reg.
// A nil reg uses a private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual export stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		exportDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Total export duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		exportOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Exports by final status",
		}, []string{"result"}),
		issues: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "issues_exported_total",
			Help:      "Issue documents written to the export folder",
		}),
		anchorMerges: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "anchor_merges_total",
			Help:      "Anchor updates by result",
		}, []string{"result"}),
		lastSuccess: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful export",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.exportDuration, pr.stageResults, pr.exportOutcome,
		pr.issues, pr.anchorMerges, pr.lastSuccess)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveExportDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.exportDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncExportOutcome(result ResultLabel) {
	if p == nil {
		return
	}
	p.exportOutcome.WithLabelValues(string(result)).Inc()
	if result == ResultSuccess {
		p.lastSuccess.SetToCurrentTime()
	}
}

func (p *PrometheusRecorder) AddIssuesExported(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.issues.Add(float64(n))
}

func (p *PrometheusRecorder) IncAnchorMerge(result MergeLabel) {
	if p == nil {
		return
	}
	p.anchorMerges.WithLabelValues(string(result)).Inc()
}

// WriteTextfile writes everything gathered from g to path in the text exposition
// format. The file is replaced atomically.
func WriteTextfile(path string, g prom.Gatherer) error {
	if err := prom.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
