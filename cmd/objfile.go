package cmd

import (
	"debug/elf"
	"fmt"

	"github.com/gitmesam/godbg/pkg/dwarfbin"
	"github.com/gitmesam/godbg/pkg/thunk"
)

// dwarfSections are the four byte ranges dwarfbin.Parse needs, extracted
// from an ELF object the way the teacher's llvm.DWARFParser opens an
// elf.File and reads its DWARF sections — except here the raw section
// bytes are handed to this module's own dwarfbin parser instead of Go's
// debug/dwarf, since dwarfbin's DWARF2 semantics are this project's own.
type dwarfSections struct {
	DebugInfo   []byte
	DebugAbbrev []byte
	DebugStr    []byte
	DebugLine   []byte
}

// loadSections opens path as an ELF object and extracts its four DWARF
// sections. A missing .debug_line is reported as a nil slice, never an
// error: spec.md treats an absent line program as optional, not malformed.
func loadSections(path string) (*dwarfSections, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	info, err := sectionBytes(f, ".debug_info")
	if err != nil {
		return nil, err
	}
	abbrev, err := sectionBytes(f, ".debug_abbrev")
	if err != nil {
		return nil, err
	}
	str, _ := sectionBytes(f, ".debug_str") // optional: absent strings just means no AttrStrp use
	line, _ := sectionBytes(f, ".debug_line")

	return &dwarfSections{DebugInfo: info, DebugAbbrev: abbrev, DebugStr: str, DebugLine: line}, nil
}

func sectionBytes(f *elf.File, name string) ([]byte, error) {
	sec := f.Section(name)
	if sec == nil {
		return nil, fmt.Errorf("object has no %s section", name)
	}
	return sec.Data()
}

// parseInputFor builds a dwarfbin.ParseInput from a loaded object and the
// given thunk regions. godbg's commands take no thunk table, so they all
// pass nil and thunk exclusion (spec.md §4.D.1 step 1) is not active from
// the command line.
func parseInputFor(name string, loadOffset uint64, sec *dwarfSections, regions []thunk.Region) dwarfbin.ParseInput {
	return dwarfbin.ParseInput{
		Name:        name,
		LoadOffset:  loadOffset,
		Thunks:      thunk.NewTable(regions),
		DebugInfo:   sec.DebugInfo,
		DebugAbbrev: sec.DebugAbbrev,
		DebugStr:    sec.DebugStr,
		DebugLine:   sec.DebugLine,
	}
}
