package dwarfbin

import (
	"fmt"

	"github.com/gitmesam/godbg/pkg/divec"
)

// DIE is one node of a compilation unit's debug-entry tree (spec.md §3
// "DIE (debug info entry)"). Offset is the byte offset of the entry code
// within .debug_info and doubles as its key in the unit's DIE table, so
// forward and backward references resolve by direct lookup.
type DIE struct {
	Offset   int
	Abbrev   *AbbrevDecl
	AttrPos  []int // absolute offset into .debug_info of each attribute value, in abbrev.Attrs order
	Children []*DIE

	// Symt is the nullable semantic-loader result. A non-nil value both
	// short-circuits reference cycles and shares results across
	// cross-references (spec.md §3, §4.D).
	Symt any
}

// dieBuilder holds the state shared across one recursive tree build: the
// section bytes, the unit's reference base, the per-unit offset table every
// DIE is registered into as it is built, and the pool every DIE node is
// allocated from — spec.md §3/§5's "per-unit pool", released as a whole at
// the unit boundary (pool_init/pool_alloc/pool_destroy, §6).
type dieBuilder struct {
	data        []byte
	addrSize    int
	unitEnd     int
	unitRefBase int
	table       *divec.SparseArray[int, *DIE]
	pool        *divec.Pool[DIE]
}

// BuildDIETree walks data (the whole .debug_info section) starting at pos,
// up to unitEnd, constructing the unit's DIE tree per spec.md §4.C. unitRefBase
// is the compilation unit's start offset, used to resolve short reference
// forms. Returns the root DIE (tag compile_unit), the populated offset
// table, and the pool every DIE node in the tree was allocated from — the
// caller destroys it once the unit has been fully translated.
func BuildDIETree(data []byte, pos, unitEnd, addrSize, unitRefBase int, abbrevs *AbbrevTable) (*DIE, *divec.SparseArray[int, *DIE], *divec.Pool[DIE], error) {
	b := &dieBuilder{
		data:        data,
		addrSize:    addrSize,
		unitEnd:     unitEnd,
		unitRefBase: unitRefBase,
		table:       divec.NewSparseArray[int, *DIE](),
		pool:        divec.NewPool[DIE](16),
	}
	root, _, err := b.buildOne(pos, abbrevs)
	if err != nil {
		return nil, nil, nil, err
	}
	if root == nil {
		return nil, nil, nil, fmt.Errorf("dwarfbin: unit at offset %d has no root DIE", unitRefBase)
	}
	return root, b.table, b.pool, nil
}

// buildOne constructs a single DIE at pos (and, if it has children, its
// whole subtree), returning the next unread position. A nil DIE with a nil
// error means the zero entry-code sentinel was read (end of a sibling
// list).
func (b *dieBuilder) buildOne(pos int, abbrevs *AbbrevTable) (*DIE, int, error) {
	offset := pos
	cur := NewCursor(b.data, pos, b.unitEnd, b.addrSize)

	code, err := cur.ReadULEB128()
	if err != nil {
		return nil, cur.Pos, fmt.Errorf("dwarfbin: reading DIE entry code at %d: %w", offset, err)
	}
	if code == 0 {
		return nil, cur.Pos, nil
	}

	decl, ok := abbrevs.Find(code)
	if !ok {
		return nil, cur.Pos, fmt.Errorf("dwarfbin: DIE at %d references unknown abbrev code %d", offset, code)
	}

	die := b.pool.Alloc()
	die.Offset = offset
	die.Abbrev = decl
	die.AttrPos = make([]int, len(decl.Attrs))
	for i, af := range decl.Attrs {
		die.AttrPos[i] = cur.Pos
		if err := skipForm(cur, af.Form); err != nil {
			return nil, cur.Pos, fmt.Errorf("dwarfbin: DIE at %d skipping attribute %d (form 0x%x): %w", offset, af.Attr, af.Form, err)
		}
	}

	b.table.Add(offset, die)

	if decl.HasChildren {
		for {
			child, next, err := b.buildOne(cur.Pos, abbrevs)
			cur.Pos = next
			if err != nil {
				return nil, cur.Pos, err
			}
			if child == nil {
				break
			}
			die.Children = append(die.Children, child)
		}
	}

	// DW_AT_sibling is purely a resync hint: if present and the cursor is
	// not already positioned there, jump to it (spec.md §4.C step 6).
	if sib, ok := findAttrPos(die, AttrSibling); ok {
		af := decl.Attrs[sib]
		v, _, err := decodeForm(b.data, nil, die.AttrPos[sib], af.Form, b.addrSize, b.unitRefBase)
		if err == nil && v.Kind == ValueReference && v.Ref != cur.Pos {
			cur.Pos = v.Ref
		}
	}

	return die, cur.Pos, nil
}

// findAttrPos returns the index into die.Abbrev.Attrs (and die.AttrPos) of
// attribute a, if present.
func findAttrPos(die *DIE, a Attr) (int, bool) {
	for i, af := range die.Abbrev.Attrs {
		if af.Attr == a {
			return i, true
		}
	}
	return 0, false
}
