package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionDefault(t *testing.T) {
	v := GetVersion()
	assert.NotEmpty(t, v)
}

func TestGetShortVersionLdflags(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = "1.2.3"
	GitCommit = "abcdef1234567890"
	assert.Equal(t, "1.2.3 (abcdef1)", GetShortVersion())
}

func TestBuildInfo(t *testing.T) {
	origTime := BuildTime
	defer func() { BuildTime = origTime }()

	BuildTime = "2026-08-01T12:00:00Z"
	info := GetBuildInfo()
	assert.Equal(t, 2026, info.BuildTime.Year())
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

func TestParseBuildTimeUnknown(t *testing.T) {
	origTime := BuildTime
	defer func() { BuildTime = origTime }()

	BuildTime = "unknown"
	assert.True(t, parseBuildTime().IsZero())
}
