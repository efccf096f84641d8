package dwarfbin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalLocationAttr_BareConstant(t *testing.T) {
	r, err := EvalLocationAttr(AttrValue{Kind: ValueUnsigned, Uint: 0x1000})
	require.NoError(t, err)
	assert.Equal(t, int64(0x1000), r.Offset)
	assert.Equal(t, NoRegister, r.InRegister)
}

// Scenario 4 from spec.md §8: DW_OP_breg5, -16 (sleb) resolves to register 5
// dereferenced with offset -16.
func TestEvalLocationAttr_Breg(t *testing.T) {
	block := []byte{byte(opBreg0 + 5), 0x70} // 0x70 sleb128 == -16
	r, err := EvalLocationAttr(AttrValue{Kind: ValueBlock, Block: block})
	require.NoError(t, err)
	assert.Equal(t, uint32(5)|RegisterDeref, r.InRegister)
	assert.Equal(t, int64(-16), r.Offset)
}

func TestEvalLocationAttr_Fbreg(t *testing.T) {
	block := []byte{opFbreg, 0x7e} // sleb128 -2
	r, err := EvalLocationAttr(AttrValue{Kind: ValueBlock, Block: block})
	require.NoError(t, err)
	assert.Equal(t, FrameRegister|RegisterDeref, r.InRegister)
	assert.Equal(t, int64(-2), r.Offset)
}

func TestEvalLocationAttr_Reg(t *testing.T) {
	block := []byte{byte(opReg0 + 3)}
	r, err := EvalLocationAttr(AttrValue{Kind: ValueBlock, Block: block})
	require.NoError(t, err)
	assert.Equal(t, uint32(3), r.InRegister)
}

func TestEvalLocationAttr_PlusUconst(t *testing.T) {
	block := []byte{opAddr, 0x00, 0x10, 0x00, 0x00, opPlusUconst, 0x04}
	r, err := EvalLocationAttr(AttrValue{Kind: ValueBlock, Block: block})
	require.NoError(t, err)
	assert.Equal(t, int64(0x1004), r.Offset)
}

func TestEvalLocationAttr_UnsupportedOpcodeIsBestEffort(t *testing.T) {
	block := []byte{opConst1u, 0x07, 0xff}
	r, err := EvalLocationAttr(AttrValue{Kind: ValueBlock, Block: block})
	assert.Error(t, err)
	assert.Equal(t, int64(7), r.Offset)
}
