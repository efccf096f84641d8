package dwarfbin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalAbbrevSection builds a minimal .debug_abbrev section: one entry,
// tag=compile_unit, has_children=0, a single (name, string) attribute.
func minimalAbbrevSection() []byte {
	return []byte{
		0x01,       // abbrev code 1
		0x11,       // tag DW_TAG_compile_unit
		0x00,       // has_children = false
		0x03, 0x08, // DW_AT_name, DW_FORM_string
		0x00, 0x00, // attribute list terminator
		0x00, // abbrev table terminator
	}
}

func TestLoadAbbrevTable_Idempotent(t *testing.T) {
	data := minimalAbbrevSection()

	t1, err := LoadAbbrevTable(data, 0)
	require.NoError(t, err)
	t2, err := LoadAbbrevTable(data, 0)
	require.NoError(t, err)

	d1, ok1 := t1.Find(1)
	d2, ok2 := t2.Find(1)
	require.True(t, ok1)
	require.True(t, ok2)

	assert.Equal(t, d1.Tag, d2.Tag)
	assert.Equal(t, d1.HasChildren, d2.HasChildren)
	assert.Equal(t, d1.Attrs, d2.Attrs)
	assert.Equal(t, TagCompileUnit, d1.Tag)
	assert.False(t, d1.HasChildren)
	assert.Equal(t, []AttrForm{{Attr: AttrName, Form: FormString}}, d1.Attrs)
}

func TestAbbrevTable_FindMissing(t *testing.T) {
	table, err := LoadAbbrevTable(minimalAbbrevSection(), 0)
	require.NoError(t, err)

	_, ok := table.Find(99)
	assert.False(t, ok)
	assert.Equal(t, 1, table.Len())
}
