package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyProcessID  = "process_id"
	KeyIdentifier = "identifier"
	KeyYear       = "year"
	KeyIssue      = "issue"
	KeyDate       = "date"
	KeyDocType    = "doc_type"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func ProcessID(id string) slog.Attr   { return slog.String(KeyProcessID, id) }
func Identifier(id string) slog.Attr  { return slog.String(KeyIdentifier, id) }
func Year(y string) slog.Attr         { return slog.String(KeyYear, y) }
func Issue(id string) slog.Attr       { return slog.String(KeyIssue, id) }
func Date(d string) slog.Attr         { return slog.String(KeyDate, d) }
func DocType(t string) slog.Attr      { return slog.String(KeyDocType, t) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
