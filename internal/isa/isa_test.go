package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownOpcodes(t *testing.T) {
	for _, name := range []string{"add", "sub", "mul", "cmplt", "call", "phi", "b", "bc", "ret"} {
		_, ok := Lookup(name)
		assert.Truef(t, ok, "expected %q to be a recognized opcode", name)
	}
}

func TestLookupUnknownOpcode(t *testing.T) {
	_, ok := Lookup("xyzzy")
	assert.False(t, ok)
}

func TestTerminators(t *testing.T) {
	for _, name := range []string{"b", "bc", "ret"} {
		info, ok := Lookup(name)
		require.True(t, ok)
		assert.True(t, info.IsTerm(), "%s should be a terminator", name)
	}

	for _, name := range []string{"add", "sub", "mul", "cmplt", "call", "phi"} {
		info, ok := Lookup(name)
		require.True(t, ok)
		assert.False(t, info.IsTerm(), "%s should not be a terminator", name)
	}
}

func TestCallIsDefDependsOnDestinationRegister(t *testing.T) {
	info, ok := Lookup("call")
	require.True(t, ok)

	assert.True(t, info.IsDef([]string{"call", "%r", "@foo"}), "call with a %%-prefixed destination defines a result")
	assert.False(t, info.IsDef([]string{"call", "@foo"}), "call without a destination does not define a result")
}

func TestMustLookupPanicsOnUnknownOpcode(t *testing.T) {
	assert.Panics(t, func() {
		MustLookup("nope")
	})
}
