package dwarfbin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitmesam/godbg/pkg/symtab"
)

// Scenario 5 from spec.md §8: line_base=-1, line_range=4, opcode_base=13,
// one file "a.c" in compile-dir ".". set_address(0x1000), copy,
// special(opcode=13+6) produces (0x1000,1,1) then (0x1000+1,1,2).
func TestParseLineProgram_Scenario5(t *testing.T) {
	stdLens := make([]byte, 12) // opcode_base=13 -> 12 standard-opcode length bytes
	copy(stdLens, []byte{0, 1, 1, 1, 1, 0, 0, 0, 1})

	fileTable := append([]byte("a.c\x00"), 0x00, 0x00, 0x00) // dir_idx, mtime, length = 0
	fileTable = append(fileTable, 0x00)                       // end of file table
	includeDirs := []byte{0x00}                               // no include directories

	headerBody := []byte{1, 1, 0xff, 4, 13} // min_instr_len=1, default_is_stmt=1, line_base=-1, line_range=4, opcode_base=13
	headerBody = append(headerBody, stdLens...)
	headerBody = append(headerBody, includeDirs...)
	headerBody = append(headerBody, fileTable...)

	program := []byte{0x00, 0x05, 0x02, 0x00, 0x10, 0x00, 0x00} // DW_LNE_set_address(0x1000)
	program = append(program, 0x01)                            // DW_LNS_copy
	program = append(program, byte(19))                        // special opcode 13+6

	body := append(u32le(uint32(len(headerBody))), headerBody...)
	body = append(body, program...)
	section := append(u16le(2), body...)
	full := append(u32le(uint32(len(section))), section...)

	db := symtab.NewDB(0)
	c := db.NewCompiland("main")
	fn := db.NewFunction(c, "f", db.NewFuncSig(nil), 0x1000, 0x2000)

	err := ParseLineProgram(db, full, 0, ".", 0)
	require.NoError(t, err)

	require.Len(t, fn.Lines, 2)
	assert.Equal(t, uint64(0), fn.Lines[0].Offset)
	assert.Equal(t, 1, fn.Lines[0].Line)
	assert.Equal(t, uint64(1), fn.Lines[1].Offset)
	assert.Equal(t, 2, fn.Lines[1].Line)
}

func TestParseLineProgram_UnsupportedVersionErrors(t *testing.T) {
	section := append(u16le(3), u32le(0)...) // version 3, header_length 0
	full := append(u32le(uint32(len(section))), section...)

	db := symtab.NewDB(0)
	err := ParseLineProgram(db, full, 0, ".", 0)
	assert.Error(t, err)
}
