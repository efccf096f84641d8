package dwarfbin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitmesam/godbg/pkg/divec"
	"github.com/gitmesam/godbg/pkg/symtab"
	"github.com/gitmesam/godbg/pkg/thunk"
)

// spec.md §4.D.1 step 4: a function object spans
// [base+low_pc, base+low_pc+(high_pc-low_pc)).
func TestBuildSubprogram_RelocatesRangeByModuleBase(t *testing.T) {
	data := []byte{0x10, 0x20} // low_pc=0x10, high_pc=0x20

	decl := &AbbrevDecl{
		Tag: TagSubprogram,
		Attrs: []AttrForm{
			{Attr: AttrLowpc, Form: FormData1},
			{Attr: AttrHighpc, Form: FormData1},
		},
	}
	die := &DIE{Offset: 0, Abbrev: decl, AttrPos: []int{0, 1}}

	const moduleBase = 0x5000
	db := symtab.NewDB(moduleBase)
	l := NewLoader(db, nil, nil, moduleBase, nil, data, nil, divec.NewSparseArray[int, *DIE](), 4, 0)
	l.compiland = db.NewCompiland("c")

	f := l.buildSubprogram(die)
	require.NotNil(t, f)
	assert.Equal(t, uint64(moduleBase+0x10), f.Low)
	assert.Equal(t, uint64(moduleBase+0x20), f.High)
}

// spec.md §4.D.1 step 1: the thunk-area test runs against the relocated PC,
// not the raw DW_AT_low_pc.
func TestBuildSubprogram_ThunkTestUsesRelocatedAddress(t *testing.T) {
	data := []byte{0x10, 0x20}

	decl := &AbbrevDecl{
		Tag: TagSubprogram,
		Attrs: []AttrForm{
			{Attr: AttrLowpc, Form: FormData1},
			{Attr: AttrHighpc, Form: FormData1},
		},
	}
	die := &DIE{Offset: 0, Abbrev: decl, AttrPos: []int{0, 1}}

	const moduleBase = 0x5000
	thunks := thunk.NewTable([]thunk.Region{{Low: moduleBase + 0x10, High: moduleBase + 0x11}})

	db := symtab.NewDB(moduleBase)
	l := NewLoader(db, nil, thunks, moduleBase, nil, data, nil, divec.NewSparseArray[int, *DIE](), 4, 0)
	l.compiland = db.NewCompiland("c")

	f := l.buildSubprogram(die)
	assert.Nil(t, f, "subprogram whose relocated low_pc falls in a thunk region must be skipped")
}

// spec.md §4.D.2: a global's address is module.base + offset.
func TestBuildVariable_GlobalAddressIncludesModuleBase(t *testing.T) {
	data := []byte{0x40} // DW_AT_location as a bare constant offset

	decl := &AbbrevDecl{
		Tag: TagVariable,
		Attrs: []AttrForm{
			{Attr: AttrLocation, Form: FormData1},
		},
	}
	die := &DIE{Offset: 0, Abbrev: decl, AttrPos: []int{0}}

	const moduleBase = 0x8000
	db := symtab.NewDB(moduleBase)
	l := NewLoader(db, nil, nil, moduleBase, nil, data, nil, divec.NewSparseArray[int, *DIE](), 4, 0)
	l.compiland = db.NewCompiland("c")

	l.buildVariable(die, nil)
	require.Len(t, l.compiland.Globals, 1)
	mem, ok := l.compiland.Globals[0].Location.(symtab.MemoryLocation)
	require.True(t, ok)
	assert.Equal(t, uint64(moduleBase+0x40), mem.Address)
}

// spec.md §4.D.2's "No register, constant offset" outcome names a global
// even when the DIE is nested inside a function (a static local).
func TestBuildFuncVariable_NoRegisterRoutesToGlobal(t *testing.T) {
	data := []byte{0x40}

	decl := &AbbrevDecl{
		Tag: TagVariable,
		Attrs: []AttrForm{
			{Attr: AttrLocation, Form: FormData1},
		},
	}
	die := &DIE{Offset: 0, Abbrev: decl, AttrPos: []int{0}}

	const moduleBase = 0x8000
	db := symtab.NewDB(moduleBase)
	l := NewLoader(db, nil, nil, moduleBase, nil, data, nil, divec.NewSparseArray[int, *DIE](), 4, 0)
	l.compiland = db.NewCompiland("c")
	f := db.NewFunction(l.compiland, "f", db.NewFuncSig(nil), moduleBase, moduleBase+0x10)

	l.buildFuncVariable(die, f, nil, false)

	assert.Empty(t, f.Locals, "a no-register location must not be attached as a func local")
	require.Len(t, l.compiland.Globals, 1)
	mem, ok := l.compiland.Globals[0].Location.(symtab.MemoryLocation)
	require.True(t, ok)
	assert.Equal(t, uint64(moduleBase+0x40), mem.Address)
}

// spec.md §4.D: a bitfield's final offset is data_member_location*8 plus the
// bit-offset component, not the bit-offset component alone.
func TestBuildMember_BitfieldAddsDataMemberLocation(t *testing.T) {
	data := append([]byte("uint32\x00"), 4, 7) // base_type uint32, size 4, encoding unsigned
	// member attrs: data_member_location(data1)=1, bit_offset(data1)=20, bit_size(data1)=4, type ref4(=0)
	data = append(data, 1, 20, 4, 0, 0, 0, 0)

	baseDecl := &AbbrevDecl{
		Tag: TagBaseType,
		Attrs: []AttrForm{
			{Attr: AttrName, Form: FormString},
			{Attr: AttrByteSize, Form: FormData1},
			{Attr: AttrEncoding, Form: FormData1},
		},
	}
	baseDie := &DIE{Offset: 0, Abbrev: baseDecl, AttrPos: []int{0, 7, 8}}

	memberDecl := &AbbrevDecl{
		Tag: TagMember,
		Attrs: []AttrForm{
			{Attr: AttrDataMemberLoc, Form: FormData1},
			{Attr: AttrBitOffset, Form: FormData1},
			{Attr: AttrBitSize, Form: FormData1},
			{Attr: AttrType, Form: FormRef4},
		},
	}
	memberDie := &DIE{Offset: 9, Abbrev: memberDecl, AttrPos: []int{9, 10, 11, 12}}

	data = append(data, 4) // struct byte_size at offset 16

	structDecl := &AbbrevDecl{Tag: TagStructureType, HasChildren: true, Attrs: []AttrForm{{Attr: AttrByteSize, Form: FormData1}}}
	structDie := &DIE{Offset: 100, Abbrev: structDecl, AttrPos: []int{16}, Children: []*DIE{memberDie}}

	dieTable := divec.NewSparseArray[int, *DIE]()
	dieTable.Add(baseDie.Offset, baseDie)
	dieTable.Add(memberDie.Offset, memberDie)
	dieTable.Add(structDie.Offset, structDie)

	db := symtab.NewDB(0)
	l := NewLoader(db, nil, nil, 0, nil, data, nil, dieTable, 4, 0)

	got := l.build(structDie).(*symtab.UDT)
	require.Len(t, got.Members, 1)
	// data_member_location*8 (=8) + (storage*8 - bit_offset - bit_size) (=8) = 16
	assert.Equal(t, int64(16), got.Members[0].BitOffset)
	assert.Equal(t, int64(4), got.Members[0].BitSize)
}
