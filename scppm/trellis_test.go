package scppm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildOuterTrellisShape(t *testing.T) {
	tr := BuildOuterTrellis()
	assert.Equal(t, outerNumStates, tr.NumStates)
	assert.Equal(t, 0, tr.TermState)

	for state := 0; state < tr.NumStates; state++ {
		assert.Len(t, tr.Edges[state], 2)
		for _, e := range tr.Edges[state] {
			assert.True(t, e.NextState >= 0 && e.NextState < tr.NumStates)
			assert.Len(t, e.Output, 3)
			for _, b := range e.Output {
				assert.True(t, b == 0 || b == 1)
			}
		}
	}
}

func TestBuildOuterTrellisPredsAreReverseOfEdges(t *testing.T) {
	tr := BuildOuterTrellis()
	edgeCount := 0
	for state := range tr.Edges {
		edgeCount += len(tr.Edges[state])
	}
	predCount := 0
	for state := range tr.Preds {
		predCount += len(tr.Preds[state])
	}
	assert.Equal(t, edgeCount, predCount)

	for state, edges := range tr.Edges {
		for _, e := range edges {
			found := false
			for _, p := range tr.Preds[e.NextState] {
				if p.PrevState == state && p.Input == e.Input {
					found = true
					break
				}
			}
			assert.True(t, found, "missing reverse edge for state %d -> %d", state, e.NextState)
		}
	}
}

func TestBuildOuterTrellisAllZeroInputStaysAtState0(t *testing.T) {
	tr := BuildOuterTrellis()
	e := tr.Edges[0][0]
	assert.Equal(t, 0, e.NextState)
	for _, b := range e.Output {
		assert.Equal(t, 0, b)
	}
}

func TestBuildTrivialInnerTrellisIsIdentity(t *testing.T) {
	tr := buildTrivialInnerTrellis(3)
	assert.Equal(t, 1, tr.NumStates)
	for v, e := range tr.Edges[0] {
		assert.Equal(t, 0, e.NextState)
		assert.Equal(t, v, e.Output[0])
	}
}

func TestBuildInnerTrellisIsTwoState(t *testing.T) {
	tr := BuildInnerTrellis(3)
	assert.Equal(t, 2, tr.NumStates)
	for state := 0; state < tr.NumStates; state++ {
		assert.Len(t, tr.Edges[state], 8) // M = 2^3
	}
}

func TestBuildInnerTrellisMatchesRunningAccumulator(t *testing.T) {
	m := 3
	tr := BuildInnerTrellis(m)

	// Feeding all-zero m-bit inputs from state 0 must leave the
	// accumulator's state unchanged and emit an all-zero symbol.
	e := tr.Edges[0][0]
	assert.Equal(t, 0, e.NextState)
	assert.Equal(t, 0, e.Output[0])

	// A single-bit-set input toggles the accumulator exactly like
	// InnerEncode's running XOR.
	e = tr.Edges[0][0b001]
	assert.Equal(t, 1, e.NextState)
}
