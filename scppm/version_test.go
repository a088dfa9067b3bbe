package scppm

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetBuildSettingOrDefault(t *testing.T) {
	bi := &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
		},
	}

	assert.Equal(t, "abc123", getBuildSettingOrDefault(bi, "vcs.revision", "UNKNOWN"))
	assert.Equal(t, "UNKNOWN", getBuildSettingOrDefault(bi, "vcs.time", "UNKNOWN"))
}
