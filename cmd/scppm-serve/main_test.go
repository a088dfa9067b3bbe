package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListenPort(t *testing.T) {
	host, port, err := parseListenPort("127.0.0.1:4225")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", host)
	assert.Equal(t, 4225, port)
}

func TestParseListenPortRejectsMissingPort(t *testing.T) {
	_, _, err := parseListenPort("127.0.0.1")
	assert.Error(t, err)
}

func TestParseListenPortRejectsNonNumericPort(t *testing.T) {
	_, _, err := parseListenPort("127.0.0.1:abc")
	assert.Error(t, err)
}
