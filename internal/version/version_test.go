package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, BuildTime)
	assert.NotEmpty(t, GitCommit)
}

func TestAgent(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "unknown"
	assert.Equal(t, "newspaperexport", Agent("newspaperexport"))

	Version = "v1.2.0"
	assert.Equal(t, "newspaperexport v1.2.0", Agent("newspaperexport"))
}
