package dwarfbin

import (
	"fmt"

	"github.com/gitmesam/godbg/pkg/divec"
)

// AttrForm pairs one attribute with the wire form it is encoded in, in the
// order it appears on every DIE built from this abbreviation — attribute
// order is significant (spec.md §3).
type AttrForm struct {
	Attr Attr
	Form Form
}

// AbbrevDecl is one compiled abbreviation-table record: a tag, whether DIEs
// built from it have children, and its ordered attribute list.
type AbbrevDecl struct {
	Tag         Tag
	HasChildren bool
	Attrs       []AttrForm
}

// AbbrevTable maps entry codes (non-zero, unit-local) to their declaration,
// per spec.md §4.B.
type AbbrevTable struct {
	decls *divec.SparseArray[uint64, *AbbrevDecl]
}

// LoadAbbrevTable reads records from data[abbrevOffset:] until a zero entry
// code, as described in spec.md §4.B. Lookup failure for an entry code
// referenced later by a DIE is a fatal error for that compilation unit —
// the caller is expected to check the returned table before walking DIEs
// that reference it.
func LoadAbbrevTable(data []byte, abbrevOffset int) (*AbbrevTable, error) {
	table := &AbbrevTable{decls: divec.NewSparseArray[uint64, *AbbrevDecl]()}
	cur := NewCursor(data, abbrevOffset, len(data), 0)

	for {
		code, err := cur.ReadULEB128()
		if err != nil {
			return nil, fmt.Errorf("dwarfbin: reading abbrev entry code: %w", err)
		}
		if code == 0 {
			return table, nil
		}

		tagVal, err := cur.ReadULEB128()
		if err != nil {
			return nil, fmt.Errorf("dwarfbin: reading abbrev tag for code %d: %w", code, err)
		}
		hasChildrenByte, err := cur.ReadU8()
		if err != nil {
			return nil, fmt.Errorf("dwarfbin: reading abbrev has_children for code %d: %w", code, err)
		}

		decl := &AbbrevDecl{Tag: Tag(tagVal), HasChildren: hasChildrenByte != 0}
		// A declaration's attribute list is built with the per-unit dynamic
		// vector primitive (spec.md §3/§6), not a bare slice append.
		attrs := divec.NewVector[AttrForm](4)
		for {
			attrVal, err := cur.ReadULEB128()
			if err != nil {
				return nil, fmt.Errorf("dwarfbin: reading abbrev attribute for code %d: %w", code, err)
			}
			formVal, err := cur.ReadULEB128()
			if err != nil {
				return nil, fmt.Errorf("dwarfbin: reading abbrev form for code %d: %w", code, err)
			}
			if attrVal == 0 && formVal == 0 {
				break
			}
			attrs.Add(AttrForm{Attr: Attr(attrVal), Form: Form(formVal)})
		}
		decl.Attrs = attrs.Slice()

		table.decls.Add(code, decl)
	}
}

// Find looks up the abbreviation declaration for entry code, returning
// (nil, false) if it was never declared.
func (t *AbbrevTable) Find(code uint64) (*AbbrevDecl, bool) {
	return t.decls.Find(code)
}

// Len reports how many abbreviation declarations were loaded.
func (t *AbbrevTable) Len() int { return t.decls.Length() }
