package bytecode_test

import (
	"testing"

	"github.com/kegliz/qivm/bytecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S6 — Bytecode round-trip: Alloc(3), H on 0, CX on (0,1), Measure on {0,1}.
func TestRoundTripS6(t *testing.T) {
	seq := []bytecode.Instruction{
		bytecode.Alloc(3),
		bytecode.StandardGate(bytecode.OpH, nil, []uint32{0}),
		bytecode.StandardGate(bytecode.OpCX, nil, []uint32{0, 1}),
		bytecode.Measure([]uint32{0, 1}),
	}
	code := bytecode.Encode(seq)
	decoded, err := bytecode.Decode(code)
	require.NoError(t, err)
	require.Equal(t, len(seq), len(decoded))
	for i := range seq {
		assert.Equal(t, seq[i], decoded[i], "instruction %d", i)
	}
}

func TestRoundTripWithFloatParams(t *testing.T) {
	seq := []bytecode.Instruction{
		bytecode.StandardGate(bytecode.OpRZ, []bytecode.Param{bytecode.FloatParam(1.2345)}, []uint32{4}),
	}
	code := bytecode.Encode(seq)
	decoded, err := bytecode.Decode(code)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.InDelta(t, 1.2345, decoded[0].Params[0].AsFloat(), 1e-12)
}

func TestRoundTripCustomGate(t *testing.T) {
	seq := []bytecode.Instruction{
		bytecode.CustomGate("my_gate", []bytecode.Param{bytecode.IntParam(-7)}, []uint32{9}),
	}
	code := bytecode.Encode(seq)
	decoded, err := bytecode.Decode(code)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "my_gate", decoded[0].CustomName)
	assert.Equal(t, int64(-7), decoded[0].Params[0].AsInt())
}

func TestDecodeTruncatedStreamErrors(t *testing.T) {
	_, err := bytecode.Decode(bytecode.ByteCode{byte(bytecode.TagStandardGate), byte(bytecode.OpH)})
	assert.Error(t, err)
}
