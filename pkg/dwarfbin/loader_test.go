package dwarfbin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gitmesam/godbg/pkg/divec"
	"github.com/gitmesam/godbg/pkg/dwarfbin/godwarfmock"
	"github.com/gitmesam/godbg/pkg/symtab"
)

func TestLoader_BuildBaseType_Memoizes(t *testing.T) {
	// .debug_info bytes: name="int\0", byte_size=4 (data1), encoding=5 (data1, DW_ATE_signed)
	data := append([]byte("int\x00"), 4, 5)

	decl := &AbbrevDecl{
		Tag: TagBaseType,
		Attrs: []AttrForm{
			{Attr: AttrName, Form: FormString},
			{Attr: AttrByteSize, Form: FormData1},
			{Attr: AttrEncoding, Form: FormData1},
		},
	}
	die := &DIE{Offset: 0, Abbrev: decl, AttrPos: []int{0, 4, 5}}

	ctrl := gomock.NewController(t)
	sink := godwarfmock.NewMockSink(ctrl)
	basic := &symtab.BasicType{Name: "int", ByteSize: 4, Kind: symtab.Int}
	sink.EXPECT().NewBasic("int", int64(4), symtab.Int).Return(basic).Times(1)

	l := &Loader{Sink: sink, infoData: data, addrSize: 4}

	got1 := l.build(die)
	got2 := l.build(die)
	assert.Same(t, basic, got1)
	assert.Same(t, got1, got2, "lookup_type memoization: repeated build must return the identical object")
}

// Scenario 2 from spec.md §8: a base_type "int" (size 4, encoding signed)
// and a pointer_type referencing it.
func TestLoader_Scenario2_BaseTypeAndPointer(t *testing.T) {
	data := append([]byte("int\x00"), 4, 5) // base_type at offset 0..5
	data = append(data, 0, 0, 0, 0, 4)      // pointer_type attrs at offset 6..10: ref4(=0), byte_size=4

	baseDecl := &AbbrevDecl{
		Tag: TagBaseType,
		Attrs: []AttrForm{
			{Attr: AttrName, Form: FormString},
			{Attr: AttrByteSize, Form: FormData1},
			{Attr: AttrEncoding, Form: FormData1},
		},
	}
	baseDie := &DIE{Offset: 0, Abbrev: baseDecl, AttrPos: []int{0, 4, 5}}

	ptrDecl := &AbbrevDecl{
		Tag: TagPointerType,
		Attrs: []AttrForm{
			{Attr: AttrType, Form: FormRef4},
			{Attr: AttrByteSize, Form: FormData1},
		},
	}
	ptrDie := &DIE{Offset: 11, Abbrev: ptrDecl, AttrPos: []int{6, 10}}

	dieTable := divec.NewSparseArray[int, *DIE]()
	dieTable.Add(baseDie.Offset, baseDie)
	dieTable.Add(ptrDie.Offset, ptrDie)

	db := symtab.NewDB(0)
	l := NewLoader(db, nil, nil, 0, nil, data, nil, dieTable, 4, 0)

	got := l.build(ptrDie)
	ptr, ok := got.(*symtab.PointerType)
	require.True(t, ok)
	basic, ok := ptr.Referent.(*symtab.BasicType)
	require.True(t, ok)
	assert.Equal(t, "int", basic.Name)
	assert.Equal(t, int64(4), basic.ByteSize)
	assert.Equal(t, symtab.Int, basic.Kind)

	again := l.lookupType(ptrDie)
	assert.Same(t, basic, again, "lookup_type on the pointer_type returns its memoized referent")
	assert.Same(t, basic, l.build(baseDie), "repeated resolution of the same DIE must share identity")
}

// Scenario 3 from spec.md §8: a 4-byte storage unit with bit_offset=20 and
// bit_size=4 places the member at bit 4*8-20-4=8.
func TestLoader_Scenario3_StructBitfield(t *testing.T) {
	data := append([]byte("uint32\x00"), 4, 7) // base_type uint32, size 4, encoding unsigned
	// member attrs at offset 9: bit_offset(data1)=20, bit_size(data1)=4, type ref4(=0)
	data = append(data, 20, 4, 0, 0, 0, 0)

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
			{Attr: AttrBitOffset, Form: FormData1},
			{Attr: AttrBitSize, Form: FormData1},
			{Attr: AttrType, Form: FormRef4},
		},
	}
	memberDie := &DIE{Offset: 9, Abbrev: memberDecl, AttrPos: []int{9, 10, 11}}

	data = append(data, 4) // struct byte_size at offset 15

	structDecl := &AbbrevDecl{Tag: TagStructureType, HasChildren: true, Attrs: []AttrForm{{Attr: AttrByteSize, Form: FormData1}}}
	structDie := &DIE{Offset: 100, Abbrev: structDecl, AttrPos: []int{15}, Children: []*DIE{memberDie}}

	dieTable := divec.NewSparseArray[int, *DIE]()
	dieTable.Add(baseDie.Offset, baseDie)
	dieTable.Add(memberDie.Offset, memberDie)
	dieTable.Add(structDie.Offset, structDie)

	db := symtab.NewDB(0)
	l := NewLoader(db, nil, nil, 0, nil, data, nil, dieTable, 4, 0)

	got := l.build(structDie).(*symtab.UDT)
	require.Len(t, got.Members, 1)
	assert.Equal(t, int64(8), got.Members[0].BitOffset)
	assert.Equal(t, int64(4), got.Members[0].BitSize)
}

func TestLoader_FindName_SynthesizesWhenAbsent(t *testing.T) {
	decl := &AbbrevDecl{Tag: TagBaseType}
	die := &DIE{Offset: 0, Abbrev: decl}
	l := &Loader{}

	n1 := l.findName(die, "basic_type")
	n2 := l.findName(die, "basic_type")
	assert.NotEqual(t, n1, n2, "each call advances the per-loader synthetic counter")
	assert.Contains(t, n1, "basic_type")
}
