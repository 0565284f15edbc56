package export

import (
	"time"

	"git.home.luguber.info/inful/newspaperexport/internal/foundation/errors"
	"git.home.luguber.info/inful/newspaperexport/internal/metrics"
)

// Result describes one export run.
type Result struct {
	RunID      string
	ProcessID  string
	Identifier string
	YearID     string
	Started    time.Time
	Finished   time.Time
	// Issues is the number of issue documents written.
	Issues int
	// Anchor is what happened to the newspaper anchor.
	Anchor metrics.MergeLabel
	// Files are the paths moved into the export folder.
	Files []string
	// Problems are human readable reasons the export failed.
	Problems []string
}

// OK reports whether the export finished without problems.
func (r *Result) OK() bool {
	return len(r.Problems) == 0
}

func (r *Result) addProblem(err error) {
	if ce, ok := errors.AsClassified(err); ok {
		r.Problems = append(r.Problems, ce.Message())
		return
	}
	r.Problems = append(r.Problems, err.Error())
}
