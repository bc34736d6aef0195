package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func restore(t *testing.T) {
	t.Helper()
	v, c, b, r := Version, GitCommit, BuildTime, readBuildInfo
	t.Cleanup(func() {
		Version, GitCommit, BuildTime, readBuildInfo = v, c, b, r
	})
}

func TestGet(t *testing.T) {
	t.Run("ldflags win", func(t *testing.T) {
		restore(t)
		Version = "v1.2.3"
		assert.Equal(t, "v1.2.3", Get())
	})

	t.Run("module version from build info", func(t *testing.T) {
		restore(t)
		Version = "dev"
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}}, true
		}
		assert.Equal(t, "v0.4.0", Get())
	})

	t.Run("devel build", func(t *testing.T) {
		restore(t)
		Version = "dev"
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
		}
		assert.Equal(t, "dev", Get())
	})
}

func TestFull(t *testing.T) {
	restore(t)
	Version = "v1.0.0"
	GitCommit = "abc1234567"
	BuildTime = "unknown"
	assert.Equal(t, "v1.0.0 (commit: abc1234)", Full())

	BuildTime = "2026-01-02"
	assert.Equal(t, "v1.0.0 (commit: abc1234) built 2026-01-02", Full())

	GitCommit = "unknown"
	BuildTime = "unknown"
	assert.Equal(t, "v1.0.0", Full())
}
