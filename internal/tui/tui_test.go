package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitmesam/godbg/internal/logging"
	"github.com/gitmesam/godbg/pkg/symtab"
)

func TestNewApp_BuildsTreeFromDB(t *testing.T) {
	db := symtab.NewDB(0)
	c := db.NewCompiland("main.c")
	f := db.NewFunction(c, "main", db.NewFuncSig(nil), 0x1000, 0x1040)
	db.AddFuncLine(f, symtab.LineRecord{Offset: 0, Line: 1})
	db.NewGlobal(c, "g_counter", db.NewBasic("int", 4, symtab.Int), 0x4000, true)

	ring := logging.NewRing(4)
	a := NewApp(db, ring, nil)
	require.NotNil(t, a.tree)
	require.NotNil(t, a.detail)

	root := a.tree.GetRoot()
	require.Len(t, root.GetChildren(), 1)
	assert.Len(t, root.GetChildren()[0].GetChildren(), 2)
}

func TestApp_ShowFunction(t *testing.T) {
	db := symtab.NewDB(0)
	c := db.NewCompiland("main.c")
	f := db.NewFunction(c, "main", db.NewFuncSig(nil), 0x1000, 0x1040)
	db.AddFuncLine(f, symtab.LineRecord{Offset: 4, Line: 2})

	a := NewApp(db, nil, nil)
	a.showFunction(f)
	assert.Contains(t, a.detail.GetText(true), "main")
}
