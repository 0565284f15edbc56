// Package metrics records export metrics.
//
// Components receive a Recorder through dependency injection. NoopRecorder is the
// default so callers never check for nil:
//
//	exporter := export.NewExporter(cfg, fs).WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// The export CLI runs once per process and exits, so metrics are not scraped.
// When a textfile path is configured the registry is written in the text
// exposition format for the node_exporter textfile collector after each run.
package metrics
