package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignalBusIRQIsLevelTriggeredAcrossMultipleSources(t *testing.T) {
	b := NewSignalBus()
	b.Assert(LineIRQ, 1)
	b.Assert(LineIRQ, 2)
	require.True(t, b.IsAsserted(LineIRQ))

	b.Deassert(LineIRQ, 1)
	require.True(t, b.IsAsserted(LineIRQ), "source 2 still holds the line")

	b.Deassert(LineIRQ, 2)
	require.False(t, b.IsAsserted(LineIRQ))
}

func TestSignalBusNMIEdgeFiresOnceOnAssert(t *testing.T) {
	b := NewSignalBus()
	b.Assert(LineNMI, 1)
	require.True(t, b.ConsumeNMIEdge())
	require.False(t, b.ConsumeNMIEdge(), "edge is consumed exactly once")
}

func TestSignalBusNMIReassertWithoutDeassertDoesNotRequeueEdge(t *testing.T) {
	b := NewSignalBus()
	b.Assert(LineNMI, 1)
	require.True(t, b.ConsumeNMIEdge())

	b.Assert(LineNMI, 2)
	require.False(t, b.ConsumeNMIEdge(), "line was already asserted, no new edge")
}

func TestSignalBusNMIDeassertThenReassertPostsNewEdge(t *testing.T) {
	b := NewSignalBus()
	b.Assert(LineNMI, 1)
	require.True(t, b.ConsumeNMIEdge())

	b.Deassert(LineNMI, 1)
	b.Assert(LineNMI, 1)
	require.True(t, b.ConsumeNMIEdge())
}

func TestSignalBusReset(t *testing.T) {
	b := NewSignalBus()
	b.Assert(LineIRQ, 1)
	b.Assert(LineNMI, 1)
	b.Reset()

	require.False(t, b.IsAsserted(LineIRQ))
	require.False(t, b.IsAsserted(LineNMI))
	require.False(t, b.ConsumeNMIEdge())
}
