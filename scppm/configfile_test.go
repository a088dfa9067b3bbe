package scppm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigFileParsesMinimalProfile(t *testing.T) {
	path := writeTempConfig(t, "m: 8\ncode_rate: \"1/2\"\n")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.M)
	assert.Equal(t, Rate1_2, cfg.CodeRate)
}

func TestLoadConfigFileAppliesOverrides(t *testing.T) {
	path := writeTempConfig(t, `
m: 16
code_rate: "2/3"
b_interleaver: 1260
n_interleaver: 3
use_randomizer: false
use_inner_encoder: false
max_turbo_iters: 5
csm_threshold_k: 2.5
check_timing_requirement: true
`)

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.M)
	assert.Equal(t, Rate2_3, cfg.CodeRate)
	assert.Equal(t, 1260, cfg.BInterleaver)
	assert.Equal(t, 3, cfg.NInterleaver)
	assert.False(t, cfg.UseRandomizer)
	assert.False(t, cfg.UseInnerEncoder)
	assert.Equal(t, 5, cfg.MaxTurboIters)
	assert.Equal(t, 2.5, cfg.CSMThresholdK)
	assert.True(t, cfg.CheckTimingRequirement)
}

func TestLoadConfigFileRejectsUnknownCodeRate(t *testing.T) {
	path := writeTempConfig(t, "m: 8\ncode_rate: \"3/4\"\n")
	_, err := LoadConfigFile(path)
	assert.Error(t, err)
}

func TestLoadConfigFileRejectsMissingFile(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseCodeRateDefaultsToOneThird(t *testing.T) {
	rate, err := parseCodeRate("")
	require.NoError(t, err)
	assert.Equal(t, Rate1_3, rate)
}
