package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkBitsSplitsExactMultiple(t *testing.T) {
	bits := []byte{1, 0, 1, 0, 1, 1, 0, 0}
	blocks := chunkBits(bits, 4)
	assert.Equal(t, [][]byte{{1, 0, 1, 0}, {1, 1, 0, 0}}, blocks)
}

func TestChunkBitsZeroPadsFinalBlock(t *testing.T) {
	bits := []byte{1, 1, 1}
	blocks := chunkBits(bits, 4)
	assert.Equal(t, [][]byte{{1, 1, 1, 0}}, blocks)
}

func TestChunkBitsEmptyInputYieldsOneZeroBlock(t *testing.T) {
	blocks := chunkBits(nil, 4)
	assert.Equal(t, [][]byte{{0, 0, 0, 0}}, blocks)
}

func TestReadAllReadsEntireReader(t *testing.T) {
	data, err := readAll(bytes.NewReader([]byte("hello")))
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}
