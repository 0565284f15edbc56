package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultSkipped ResultLabel = "skipped"
	ResultFailed  ResultLabel = "failed"
)

// MergeLabel enumerates what happened to the newspaper anchor of an export.
type MergeLabel string

const (
	// MergeCreated means no anchor existed and the new one was moved in place.
	MergeCreated MergeLabel = "created"
	// MergeMerged means the volume was added to the existing anchor.
	MergeMerged MergeLabel = "merged"
	// MergeUnchanged means the existing anchor already listed the volume.
	MergeUnchanged MergeLabel = "unchanged"
	// MergeFailed means the existing anchor could not be merged and was left alone.
	MergeFailed MergeLabel = "failed"
)

// Recorder defines observability hooks for export metrics.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveExportDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncExportOutcome(result ResultLabel)
	AddIssuesExported(n int)
	IncAnchorMerge(result MergeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveExportDuration(time.Duration)        {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncExportOutcome(ResultLabel)               {}
func (NoopRecorder) AddIssuesExported(int)                      {}
func (NoopRecorder) IncAnchorMerge(MergeLabel)                  {}
