package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldVersion, oldCommit, oldDate })

	Version = "1.2.3"
	assert.Equal(t, "1.2.3", Short())
	assert.Contains(t, String(), "lottint version 1.2.3 (")
	assert.Equal(t, "lottint/1.2.3", UserAgent())

	Commit, Date = "0123456789abcdef", "2026-01-02T03:04:05Z"
	assert.Contains(t, String(), "commit: 01234567, built: 2026-01-02T03:04:05Z")

	Commit = "abc"
	assert.Contains(t, String(), "commit: abc,")
}
