package version

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGet_LdflagsWin(t *testing.T) {
	oldVersion, oldCommit, oldTime := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldVersion, oldCommit, oldTime })

	Version = "v1.2.3"
	GitCommit = "0123456789abcdef"
	BuildTime = "2026-01-02T03:04:05Z"

	info := Get()
	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, "0123456789abcdef", info.GitCommit)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), info.BuildTime)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.Equal(t, "v1.2.3 (0123456)", info.Short())
	assert.Contains(t, info.Detailed(), "Commit: 0123456789abcdef")
	assert.Contains(t, info.Detailed(), "Built: 2026-01-02T03:04:05Z")
}

func TestShort(t *testing.T) {
	assert.Equal(t, "dev", BuildInfo{Version: "dev", GitCommit: "unknown"}.Short())
	assert.Equal(t, "dev-abcdef1", BuildInfo{Version: "dev-abcdef1", GitCommit: "abcdef1234"}.Short())
}

func TestDetailed_OmitsUnknown(t *testing.T) {
	d := BuildInfo{Version: "dev", GitCommit: "unknown", GoVersion: "go1.24", Platform: "linux/amd64"}.Detailed()
	assert.Equal(t, "Version: dev\nGo: go1.24\nPlatform: linux/amd64", d)
	assert.False(t, strings.Contains(d, "Commit"))
}

func TestParseTime(t *testing.T) {
	assert.True(t, parseTime("unknown").IsZero())
	assert.True(t, parseTime("yesterday").IsZero())
	assert.Equal(t, 2026, parseTime("2026-03-01 10:00:00").Year())
}
