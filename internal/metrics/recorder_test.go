package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	stageResults map[string]map[ResultLabel]int
	outcomes     map[ResultLabel]int
	issues       int
	merges       map[MergeLabel]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageResults: map[string]map[ResultLabel]int{},
		outcomes:     map[ResultLabel]int{},
		merges:       map[MergeLabel]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(string, time.Duration) {}
func (t *testRecorder) ObserveExportDuration(time.Duration)        {}
func (t *testRecorder) IncStageResult(stage string, result ResultLabel) {
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}
func (t *testRecorder) IncExportOutcome(result ResultLabel)  { t.outcomes[result]++ }
func (t *testRecorder) AddIssuesExported(n int)              { t.issues += n }
func (t *testRecorder) IncAnchorMerge(result MergeLabel)     { t.merges[result]++ }

func TestRecorderInterfaces(t *testing.T) {
	var _ Recorder = NoopRecorder{}
	var _ Recorder = (*PrometheusRecorder)(nil)

	var r Recorder = newTestRecorder()
	r.IncStageResult("anchor", ResultSuccess)
	r.IncStageResult("anchor", ResultSuccess)
	r.IncAnchorMerge(MergeUnchanged)
	r.AddIssuesExported(2)

	tr := r.(*testRecorder)
	if tr.stageResults["anchor"][ResultSuccess] != 2 {
		t.Fatalf("expected 2 anchor successes, got %d", tr.stageResults["anchor"][ResultSuccess])
	}
	if tr.merges[MergeUnchanged] != 1 || tr.issues != 2 {
		t.Fatalf("unexpected recorder state: %+v", tr)
	}
}
