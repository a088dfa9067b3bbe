package scppm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMapSymbolsToSlotsOneHotness(t *testing.T) {
	cfg, err := NewConfig(8, Rate1_2)
	require.NoError(t, err)

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 50).Draw(rt, "n")
		symbols := make([]int, n)
		for i := range symbols {
			symbols[i] = rapid.IntRange(0, cfg.M-1).Draw(rt, "symbol")
		}

		rows := MapSymbolsToSlots(symbols, cfg)
		for i, row := range rows {
			weight := 0
			for v, bit := range row {
				if bit != 0 {
					weight++
					assert.Equal(t, symbols[i], v)
				}
			}
			assert.Equal(t, 1, weight)
			assert.Len(t, row, cfg.SlotsPerSymbol())
		}
	})
}

func TestSlotsToSymbolsInvertsMapSymbolsToSlots(t *testing.T) {
	cfg, err := NewConfig(8, Rate1_2)
	require.NoError(t, err)

	symbols := []int{0, 1, 7, 3, ErasureSymbol}
	// MapSymbolsToSlots leaves an all-zero row for values outside [0, M),
	// which is exactly how SlotsToSymbols represents an erasure.
	rows := MapSymbolsToSlots(symbols, cfg)
	got := SlotsToSymbols(rows, cfg)
	assert.Equal(t, symbols, got)
}

func TestSlotsToSymbolsErasureOnEmptyRow(t *testing.T) {
	cfg, err := NewConfig(8, Rate1_2)
	require.NoError(t, err)

	row := make(SlotRow, cfg.SlotsPerSymbol())
	got := SlotsToSymbols([]SlotRow{row}, cfg)
	assert.Equal(t, []int{ErasureSymbol}, got)
}

func TestPrependCSM(t *testing.T) {
	cfg, err := NewConfig(8, Rate1_2)
	require.NoError(t, err)

	codeword := []int{1, 2, 3}
	out := PrependCSM(cfg, codeword)
	assert.Equal(t, cfg.CSM(), out[:len(cfg.CSM())])
	assert.Equal(t, codeword, out[len(cfg.CSM()):])
}
