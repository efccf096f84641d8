package dwarfbin

import (
	"fmt"
	"log/slog"

	"github.com/gitmesam/godbg/pkg/regmap"
	"github.com/gitmesam/godbg/pkg/symtab"
	"github.com/gitmesam/godbg/pkg/thunk"
	"golang.org/x/sync/errgroup"
)

// Module is the per-binary descriptor spec.md §6 says Parse annotates on
// success: symbol-type tag "DIA", four-byte signature 'D','W','A','R', and
// four capability flags.
type Module struct {
	Name string
	Base uint64

	SymbolType string
	Signature  [4]byte

	HasLineNumbers   bool
	HasGlobalSymbols bool
	HasTypeInfo      bool
	HasSourceIndex   bool

	DB *symtab.DB
}

// ParseInput bundles one module's section byte ranges, the entry point's
// parameters per spec.md §6. DebugLine is nil to signal an absent
// .debug_line section — the proper nilable-slice replacement for the
// source's `NO_MAP` (void*)-1 sentinel, per spec.md's Design Notes.
type ParseInput struct {
	Name        string
	LoadOffset  uint64
	Thunks      *thunk.Table
	DebugInfo   []byte
	DebugAbbrev []byte
	DebugStr    []byte
	DebugLine   []byte
}

// Parse implements spec.md §6's entry point: it walks every compilation
// unit in in.DebugInfo, building that unit's abbreviation table, DIE tree,
// symbols and (if in.DebugLine is present) line program, and returns the
// annotated Module. A unit whose version isn't 2, or whose abbreviation or
// DIE tree can't be read, is skipped with a warning and parsing continues
// with the next unit (spec.md §7: unit failures are non-fatal). Parse only
// returns an error when not even one compilation unit could be read at
// all.
func Parse(in ParseInput, regs regmap.Map, log *slog.Logger) (*Module, error) {
	db := symtab.NewDB(in.LoadOffset)
	mod := &Module{
		Name:       in.Name,
		Base:       in.LoadOffset,
		SymbolType: "DIA",
		Signature:  [4]byte{'D', 'W', 'A', 'R'},
		DB:         db,
	}

	if len(in.DebugInfo) == 0 {
		return nil, fmt.Errorf("dwarfbin: empty debug_info section for module %q", in.Name)
	}

	pos := 0
	anyUnit := false
	for pos < len(in.DebugInfo) {
		next, ok := parseUnit(db, in, regs, log, pos)
		if !ok {
			break
		}
		anyUnit = true
		pos = next
	}
	if !anyUnit {
		return nil, fmt.Errorf("dwarfbin: no compilation unit could be read from debug_info of module %q", in.Name)
	}

	mod.HasGlobalSymbols = len(db.Compilands) > 0
	mod.HasTypeInfo = mod.HasGlobalSymbols
	mod.HasSourceIndex = len(db.SortedFunctions()) > 0
	mod.HasLineNumbers = len(in.DebugLine) > 0 && mod.HasSourceIndex

	return mod, nil
}

// parseUnit parses one compilation unit starting at pos and returns the
// byte offset of the unit following it, plus whether a unit could be read
// at all at pos (false means the section has no more readable headers and
// the caller should stop scanning).
func parseUnit(db *symtab.DB, in ParseInput, regs regmap.Map, log *slog.Logger, pos int) (int, bool) {
	unitStart := pos
	cur := NewCursor(in.DebugInfo, pos, len(in.DebugInfo), 4)

	unitLength, err := cur.ReadU32()
	if err != nil {
		return pos, false
	}
	unitEnd := cur.Pos + int(unitLength)
	if unitEnd > len(in.DebugInfo) {
		logWarn(log, "truncated-unit", unitStart, "reason", "unit_length runs past section end")
		return pos, false
	}

	version, err := cur.ReadU16()
	if err != nil {
		return pos, false
	}
	if version != 2 {
		logWarn(log, "version-unsupported", unitStart, "version", version)
		return unitEnd, true
	}

	abbrevOffset, err := cur.ReadU32()
	if err != nil {
		logWarn(log, "unknown-form", unitStart, "reason", "reading abbrev_offset", "error", err)
		return unitEnd, true
	}
	addrSize, err := cur.ReadU8()
	if err != nil {
		logWarn(log, "unknown-form", unitStart, "reason", "reading address_size", "error", err)
		return unitEnd, true
	}
	if addrSize != 4 {
		logWarn(log, "unknown-form", unitStart, "reason", "unsupported address size", "address_size", addrSize)
		return unitEnd, true
	}

	abbrevs, err := LoadAbbrevTable(in.DebugAbbrev, int(abbrevOffset))
	if err != nil {
		logWarn(log, "missing-abbreviation", unitStart, "error", err)
		return unitEnd, true
	}
	if log != nil {
		log.Debug("loaded abbreviation table", "unit_offset", unitStart, "entry_codes", abbrevs.decls.SortedKeys())
	}

	root, dieTable, diePool, err := BuildDIETree(in.DebugInfo, cur.Pos, unitEnd, int(addrSize), unitStart, abbrevs)
	if err != nil {
		logWarn(log, "missing-abbreviation", unitStart, "reason", "building DIE tree", "error", err)
		return unitEnd, true
	}
	// spec.md §3/§5: the per-unit pool is released once this unit has been
	// fully translated into symbol-database objects (which outlive it).
	defer diePool.Destroy()

	loader := NewLoader(db, regs, in.Thunks, in.LoadOffset, log, in.DebugInfo, in.DebugStr, dieTable, int(addrSize), unitStart)
	loader.LoadCompileUnit(root)

	if len(in.DebugLine) > 0 {
		if stmtList, ok := loader.findAttribute(root, AttrStmtList); ok && stmtList.Kind == ValueUnsigned {
			if err := ParseLineProgram(db, in.DebugLine, int(stmtList.Uint), loader.compDir, in.LoadOffset); err != nil {
				logWarn(log, "unsupported-opcode", unitStart, "reason", "line program", "error", err)
			}
		}
	}

	return unitEnd, true
}

// ParseModules parses several modules concurrently, one independent
// parser instance (and one DB) per module, matching spec.md §5's "multiple
// modules may be parsed in parallel by running independent parser
// instances" guarantee.
func ParseModules(inputs []ParseInput, regs regmap.Map, log *slog.Logger) ([]*Module, error) {
	mods := make([]*Module, len(inputs))
	var g errgroup.Group
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			mod, err := Parse(in, regs, log)
			if err != nil {
				return fmt.Errorf("module %q: %w", in.Name, err)
			}
			mods[i] = mod
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mods, nil
}
