package scppm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(8, Rate1_2)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.BitsPerSymbol())
	assert.Equal(t, 2, cfg.NumGuardSlots())
	assert.Equal(t, 10, cfg.SlotsPerSymbol())
	assert.Equal(t, 7560, cfg.InfoBlockBits())
	assert.Equal(t, 15120/3, cfg.SymbolsPerCodeword())
	assert.Equal(t, cfg.SymbolsPerCodeword(), cfg.InterleavedSymbolsPerCodeword())
}

func TestNewConfigRejectsUnsupportedM(t *testing.T) {
	_, err := NewConfig(7, Rate1_2)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNewConfigRejectsUnknownRate(t *testing.T) {
	_, err := NewConfig(8, CodeRate(99))
	assert.Error(t, err)
}

func TestNewConfigRejectsNonPositiveInterleaverParams(t *testing.T) {
	_, err := NewConfig(8, Rate1_2, WithBInterleaver(0))
	assert.Error(t, err)

	_, err = NewConfig(8, Rate1_2, WithNInterleaver(-1))
	assert.Error(t, err)
}

func TestNewConfigRejectsBadInterleaverProduct(t *testing.T) {
	cfg, err := NewConfig(8, Rate1_2)
	require.NoError(t, err)

	_, err = NewConfig(8, Rate1_2, WithBInterleaver(7), WithNInterleaver(1))
	if (7*1)%cfg.SymbolsPerCodeword() != 0 {
		assert.Error(t, err)
	}
}

func TestNewConfigInterleavedLengthAccountsForFlush(t *testing.T) {
	cfg, err := NewConfig(8, Rate1_2, WithBInterleaver(1680), WithNInterleaver(3))
	require.NoError(t, err)
	want := cfg.SymbolsPerCodeword() + (3-1)*1680
	assert.Equal(t, want, cfg.InterleavedSymbolsPerCodeword())
}

func TestNewConfigRejectsNonPowerOfTwoM(t *testing.T) {
	_, err := NewConfig(12, Rate1_2)
	assert.Error(t, err)
}

func TestNewConfigRejectsNonPositiveMaxTurboIters(t *testing.T) {
	_, err := NewConfig(8, Rate1_2, WithMaxTurboIters(0))
	assert.Error(t, err)
}

func TestCodeRateString(t *testing.T) {
	assert.Equal(t, "1/3", Rate1_3.String())
	assert.Equal(t, "1/2", Rate1_2.String())
	assert.Equal(t, "2/3", Rate2_3.String())
}
