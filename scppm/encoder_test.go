package scppm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeInfoBlockRejectsWrongPayloadLength(t *testing.T) {
	cfg, err := NewConfig(8, Rate1_2)
	require.NoError(t, err)

	_, err = EncodeInfoBlock(cfg, make([]byte, 10))
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestEncodeInfoBlockProducesInterleavedLength(t *testing.T) {
	cfg, err := NewConfig(8, Rate1_2, WithNInterleaver(3), WithBInterleaver(1680))
	require.NoError(t, err)

	payload := make([]byte, cfg.InfoBlockBits()-16-outerMemory)
	symbols, err := EncodeInfoBlock(cfg, payload)
	require.NoError(t, err)
	assert.Len(t, symbols, cfg.InterleavedSymbolsPerCodeword())

	for _, s := range symbols {
		assert.True(t, s == nullSymbol || (s >= 0 && s < cfg.M))
	}
}

func TestEncodeInfoBlockWithoutInnerEncoderStillFlushesChannel(t *testing.T) {
	cfg, err := NewConfig(8, Rate1_2, WithInnerEncoder(false), WithNInterleaver(2), WithBInterleaver(2520))
	require.NoError(t, err)

	payload := make([]byte, cfg.InfoBlockBits()-16-outerMemory)
	symbols, err := EncodeInfoBlock(cfg, payload)
	require.NoError(t, err)
	assert.Len(t, symbols, cfg.InterleavedSymbolsPerCodeword())
}

func TestEncodeSessionPrependsCSMPerCodeword(t *testing.T) {
	cfg, err := NewConfig(8, Rate1_2)
	require.NoError(t, err)

	payload := make([]byte, cfg.InfoBlockBits()-16-outerMemory)
	stream, err := EncodeSession(cfg, [][]byte{payload, payload})
	require.NoError(t, err)

	csm := cfg.CSM()
	wantLen := 2 * (len(csm) + cfg.InterleavedSymbolsPerCodeword())
	assert.Len(t, stream, wantLen)
	assert.Equal(t, csm, stream[:len(csm)])

	secondCSMStart := len(csm) + cfg.InterleavedSymbolsPerCodeword()
	assert.Equal(t, csm, stream[secondCSMStart:secondCSMStart+len(csm)])
}

func TestEncodeSessionWrapsPerCodewordErrors(t *testing.T) {
	cfg, err := NewConfig(8, Rate1_2)
	require.NoError(t, err)

	_, err = EncodeSession(cfg, [][]byte{make([]byte, 3)})
	require.Error(t, err)
}
