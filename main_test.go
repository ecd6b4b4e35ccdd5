package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddrs(t *testing.T) {
	addrs, err := parseAddrs([]string{"0xbfc00000", "4096", "0x1F801810"})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0xbfc00000, 4096, 0x1f801810}, addrs)

	_, err = parseAddrs([]string{"0x100000000"})
	assert.ErrorContains(t, err, "invalid address")
	_, err = parseAddrs([]string{"bios"})
	assert.Error(t, err)
}

func TestNewDebugger(t *testing.T) {
	debugger, err := newDebugger(options{})
	require.NoError(t, err)
	assert.Nil(t, debugger)

	debugger, err = newDebugger(options{
		breakpoints:      []string{"0xbfc00000"},
		readWatchpoints:  []string{"0x1f801814"},
		writeWatchpoints: []string{"0x1f801810", "0x1f8010a8"},
	})
	require.NoError(t, err)
	require.NotNil(t, debugger)
	assert.Equal(t, []uint32{0xbfc00000}, debugger.Breakpoints)
	assert.Equal(t, []uint32{0x1f801814}, debugger.ReadWatchpoints)
	assert.Equal(t, []uint32{0x1f801810, 0x1f8010a8}, debugger.WriteWatchpoints)

	_, err = newDebugger(options{writeWatchpoints: []string{"nope"}})
	assert.Error(t, err)
}
