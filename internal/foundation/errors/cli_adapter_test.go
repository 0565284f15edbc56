package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"validation", ValidationError("bad date").Build(), 2},
		{"config", ConfigError("no export folder").Build(), 7},
		{"structure", StructureError("not allowed").Build(), 9},
		{"filesystem", FileSystemError("move failed").Build(), 11},
		{"mets", MetsError("parse failed").Build(), 11},
		{"journal", WrapError(errors.New("locked"), CategoryJournal, "append failed").Build(), 11},
		{"internal", InternalError("boom").Build(), 10},
		{"unclassified", errors.New("unknown"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	verbose := NewCLIErrorAdapter(true, nil)

	validation := ValidationError("Issue date 2023/01/01 has the wrong format. Expected is YYYY-MM-DD").Build()
	assert.Equal(t, "Error: Issue date 2023/01/01 has the wrong format. Expected is YYYY-MM-DD", quiet.FormatError(validation))

	resource := FileSystemError("move failed").Build()
	assert.Equal(t, "Error: move failed (use -v for details)", quiet.FormatError(resource))
	assert.Equal(t, "[filesystem:export] move failed", verbose.FormatError(resource))

	assert.Equal(t, "Error: plain", quiet.FormatError(errors.New("plain")))
	assert.Empty(t, quiet.FormatError(nil))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, stderr bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &stderr
	var code int
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ValidationError("Export aborted, newspaper has no volume").Build())
	assert.Equal(t, 2, code)
	assert.Equal(t, "Error: Export aborted, newspaper has no volume\n", stderr.String())
	assert.Empty(t, logs.String())

	stderr.Reset()
	adapter.HandleError(WrapError(errors.New("disk full"), CategoryFileSystem, "move failed").
		WithContext("path", "/export/a.xml").Build())
	assert.Equal(t, 11, code)
	assert.Contains(t, logs.String(), "path=/export/a.xml")
	assert.Contains(t, logs.String(), "error=\"disk full\"")
}
