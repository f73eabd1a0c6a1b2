package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setVersion(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, Commit, Date
	t.Cleanup(func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	})
	Version, Commit, Date = version, commit, date
}

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		expected string
	}{
		{name: "development version without commit", version: "development", commit: "unknown", expected: "development"},
		{name: "release version with commit", version: "1.0.0", commit: "abc1234", expected: "1.0.0+abc1234"},
		{name: "unknown commit shows only version", version: "2.0.0", commit: "unknown", expected: "2.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setVersion(t, tt.version, tt.commit, "unknown")
			assert.Equal(t, tt.expected, String())
		})
	}
}

func TestDetailed(t *testing.T) {
	setVersion(t, "1.2.0", "abc1234", "2026-10-01")

	got := Detailed()
	assert.True(t, strings.HasPrefix(got, "contacts 1.2.0+abc1234 built 2026-10-01 ("))
	assert.Contains(t, got, runtime.GOOS+"/"+runtime.GOARCH)

	setVersion(t, "development", "unknown", "unknown")
	assert.NotContains(t, Detailed(), "built")
}
