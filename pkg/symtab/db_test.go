package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_NewFunctionAndFindNearest(t *testing.T) {
	db := NewDB(0x400000)
	c := db.NewCompiland("main.c")

	sig := db.NewFuncSig(nil)
	f1 := db.NewFunction(c, "first", sig, 0x1000, 0x1010)
	f2 := db.NewFunction(c, "second", sig, 0x2000, 0x2020)

	assert.Same(t, f1, db.FindNearest(0x1005))
	assert.Same(t, f2, db.FindNearest(0x2000))
	assert.Nil(t, db.FindNearest(0x1800), "address between functions covers neither")
	assert.Nil(t, db.FindNearest(0x0500), "address before the first function")
}

func TestDB_SourceNewDeduplicates(t *testing.T) {
	db := NewDB(0)
	id1 := db.SourceNew("/src", "a.c")
	id2 := db.SourceNew("/src", "a.c")
	id3 := db.SourceNew("/src", "b.c")

	assert.Equal(t, id1, id2)
	assert.NotEqual(t, id1, id3)
	assert.Equal(t, "/src/a.c", db.SourcePath(id1))
}

func TestDB_OpenCloseFuncBlockNesting(t *testing.T) {
	db := NewDB(0)
	c := db.NewCompiland("main.c")
	f := db.NewFunction(c, "f", db.NewFuncSig(nil), 0, 0x100)

	outer := db.OpenFuncBlock(f, 0x10, 0x90)
	inner := db.OpenFuncBlock(f, 0x20, 0x30)
	db.CloseFuncBlock(f)
	db.CloseFuncBlock(f)

	require.Len(t, f.Blocks, 1)
	assert.Same(t, outer, f.Blocks[0])
	require.Len(t, outer.Children, 1)
	assert.Same(t, inner, outer.Children[0])
}

func TestDB_NormalizeFunctionSortsLinesAndBlocks(t *testing.T) {
	db := NewDB(0)
	c := db.NewCompiland("main.c")
	f := db.NewFunction(c, "f", db.NewFuncSig(nil), 0, 0x100)

	db.AddFuncLine(f, LineRecord{Offset: 0x20, Line: 2})
	db.AddFuncLine(f, LineRecord{Offset: 0x10, Line: 1})

	b2 := db.OpenFuncBlock(f, 0x50, 0x60)
	db.CloseFuncBlock(f)
	b1 := db.OpenFuncBlock(f, 0x10, 0x20)
	db.CloseFuncBlock(f)

	db.NormalizeFunction(f)

	require.Len(t, f.Lines, 2)
	assert.Equal(t, uint64(0x10), f.Lines[0].Offset)
	assert.Equal(t, uint64(0x20), f.Lines[1].Offset)

	require.Len(t, f.Blocks, 2)
	assert.Same(t, b1, f.Blocks[0])
	assert.Same(t, b2, f.Blocks[1])
}
