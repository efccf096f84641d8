// Package regmap provides the pluggable DWARF-register-number → target
// register-number lookup spec.md §6 names as an external collaborator
// surface. The loader never hardcodes a register ABI; it asks a Map.
package regmap

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Map translates a DWARF register number (0..31 for the general opcodes
// spec.md §4.D.3 supports) into a target architecture register number.
type Map interface {
	// Translate returns the target register number for a DWARF register
	// number, or ok=false if the DWARF number has no target counterpart.
	Translate(dwarfReg int) (target int, ok bool)
	// Name returns a human-readable name for a target register number,
	// for diagnostics and the TUI/CLI formatters.
	Name(target int) string
}

// entry is one row of a YAML-loaded register table.
type entry struct {
	Dwarf  int    `yaml:"dwarf"`
	Target int    `yaml:"target"`
	Name   string `yaml:"name"`
}

// tableMap is a Map backed by an explicit table, loaded from YAML (the
// file format SPEC_FULL's domain stack names for pkg/regmap).
type tableMap struct {
	byDwarf map[int]entry
	names   map[int]string
}

// LoadYAML parses a register-map file shaped as a list of {dwarf, target,
// name} rows.
func LoadYAML(data []byte) (Map, error) {
	var rows []entry
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("regmap: parsing register table: %w", err)
	}
	m := &tableMap{byDwarf: make(map[int]entry, len(rows)), names: make(map[int]string, len(rows))}
	for _, r := range rows {
		m.byDwarf[r.Dwarf] = r
		m.names[r.Target] = r.Name
	}
	return m, nil
}

func (m *tableMap) Translate(dwarfReg int) (int, bool) {
	e, ok := m.byDwarf[dwarfReg]
	if !ok {
		return 0, false
	}
	return e.Target, true
}

func (m *tableMap) Name(target int) string {
	if n, ok := m.names[target]; ok {
		return n
	}
	return fmt.Sprintf("r%d", target)
}

// CucarachaRegisters is the concrete register map grounded in the
// Cucaracha CPU's own register file (r0-r9 general purpose, r13=sp,
// r14=lr), per llvm.DWARFParser's doc comment about remapping DWARF
// register numbers onto Cucaracha registers. It is the default Map used
// when no --regmap file is given.
func CucarachaRegisters() Map {
	m := &tableMap{byDwarf: make(map[int]entry), names: make(map[int]string)}
	for i := 0; i <= 9; i++ {
		m.byDwarf[i] = entry{Dwarf: i, Target: i, Name: fmt.Sprintf("r%d", i)}
		m.names[i] = fmt.Sprintf("r%d", i)
	}
	m.byDwarf[13] = entry{Dwarf: 13, Target: 13, Name: "sp"}
	m.names[13] = "sp"
	m.byDwarf[14] = entry{Dwarf: 14, Target: 14, Name: "lr"}
	m.names[14] = "lr"
	return m
}
