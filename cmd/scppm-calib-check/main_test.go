package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSlotMatrixParsesRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slots.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 0 0\n0 1 0\n"), 0o644))

	rows, err := readSlotMatrix(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []byte{1, 0, 0}, []byte(rows[0]))
	assert.Equal(t, []byte{0, 1, 0}, []byte(rows[1]))
}

func TestReadSlotMatrixSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slots.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 0\n\n0 1\n"), 0o644))

	rows, err := readSlotMatrix(path)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestReadSlotMatrixRejectsNonNumericField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slots.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 x\n"), 0o644))

	_, err := readSlotMatrix(path)
	assert.Error(t, err)
}
