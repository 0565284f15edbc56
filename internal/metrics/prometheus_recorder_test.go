package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func family(t *testing.T, reg *prom.Registry, name string) *dto.MetricFamily {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return nil
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("issues", 150*time.Millisecond)
	pr.ObserveExportDuration(500 * time.Millisecond)
	pr.IncStageResult("issues", ResultSuccess)
	pr.IncExportOutcome(ResultSuccess)
	pr.AddIssuesExported(3)
	pr.AddIssuesExported(0)
	pr.IncAnchorMerge(MergeMerged)
	pr.IncAnchorMerge(MergeMerged)

	issues := family(t, reg, "newspaperexport_issues_exported_total")
	assert.InDelta(t, 3, issues.GetMetric()[0].GetCounter().GetValue(), 0)

	merges := family(t, reg, "newspaperexport_anchor_merges_total")
	require.Len(t, merges.GetMetric(), 1)
	assert.InDelta(t, 2, merges.GetMetric()[0].GetCounter().GetValue(), 0)
	assert.Equal(t, "merged", merges.GetMetric()[0].GetLabel()[0].GetValue())

	last := family(t, reg, "newspaperexport_last_success_timestamp_seconds")
	assert.Positive(t, last.GetMetric()[0].GetGauge().GetValue())
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncExportOutcome(ResultFailed)
		pr.AddIssuesExported(1)
		pr.IncAnchorMerge(MergeFailed)
	})
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncExportOutcome(ResultFailed)

	path := filepath.Join(t.TempDir(), "newspaperexport.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `newspaperexport_exports_total{result="failed"} 1`))
}
