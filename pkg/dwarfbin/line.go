package dwarfbin

import (
	"fmt"

	"github.com/gitmesam/godbg/pkg/symtab"
)

// DWARF 2 standard line-number opcodes (spec.md §4.E's state-machine
// table).
const (
	lnsCopy           = 1
	lnsAdvancePC      = 2
	lnsAdvanceLine    = 3
	lnsSetFile        = 4
	lnsSetColumn      = 5
	lnsNegateStmt     = 6
	lnsSetBasicBlock  = 7
	lnsConstAddPC     = 8
	lnsFixedAdvancePC = 9
)

// DWARF 2 extended line-number opcodes.
const (
	lneEndSequence = 1
	lneSetAddress  = 2
	lneDefineFile  = 3
)

// ParseLineProgram evaluates one .debug_line program starting at offset,
// per spec.md §4.E: it parses the header's include-directory and file
// tables (registering each file via sink.SourceNew), then runs the
// state-machine program, emitting a LineRecord against the function
// covering the current address at every row the spec marks as a matrix
// append point (DW_LNS_copy, a special opcode, or DW_LNE_end_sequence).
// moduleBase is added to DW_LNE_set_address's operand (spec.md §4.E) so the
// emitted addresses line up with the module.base-relocated function ranges
// FindNearest searches.
func ParseLineProgram(sink symtab.Sink, lineData []byte, offset int, compDir string, moduleBase uint64) error {
	cur := NewCursor(lineData, offset, len(lineData), 4)

	unitLength, err := cur.ReadU32()
	if err != nil {
		return fmt.Errorf("dwarfbin: reading line program unit_length: %w", err)
	}
	unitEnd := cur.Pos + int(unitLength)
	if unitEnd > len(lineData) {
		return fmt.Errorf("%w: line program length runs past section end", ErrTruncated)
	}

	version, err := cur.ReadU16()
	if err != nil {
		return err
	}
	if version != 2 {
		return fmt.Errorf("dwarfbin: line program version %d unsupported (only 2)", version)
	}

	headerLength, err := cur.ReadU32()
	if err != nil {
		return err
	}
	programStart := cur.Pos + int(headerLength)

	minInstrLen, err := cur.ReadU8()
	if err != nil {
		return err
	}
	if _, err := cur.ReadU8(); err != nil { // default_is_stmt: tracked implicitly, every row is significant here
		return err
	}
	lineBaseRaw, err := cur.ReadU8()
	if err != nil {
		return err
	}
	lineBase := int(int8(lineBaseRaw))
	lineRange, err := cur.ReadU8()
	if err != nil {
		return err
	}
	opcodeBase, err := cur.ReadU8()
	if err != nil {
		return err
	}

	stdLens := make([]uint8, 0, int(opcodeBase)-1)
	for i := 0; i < int(opcodeBase)-1; i++ {
		n, err := cur.ReadU8()
		if err != nil {
			return err
		}
		stdLens = append(stdLens, n)
	}

	var includeDirs []string
	for {
		s, err := cur.ReadString()
		if err != nil {
			return err
		}
		if s == "" {
			break
		}
		includeDirs = append(includeDirs, s)
	}

	dirFor := func(idx uint64) string {
		if idx > 0 && int(idx) <= len(includeDirs) {
			return includeDirs[idx-1]
		}
		return compDir
	}

	var fileIDs []symtab.SourceID
	for {
		name, err := cur.ReadString()
		if err != nil {
			return err
		}
		if name == "" {
			break
		}
		dirIdx, err := cur.ReadULEB128()
		if err != nil {
			return err
		}
		if _, err := cur.ReadULEB128(); err != nil { // mtime
			return err
		}
		if _, err := cur.ReadULEB128(); err != nil { // length
			return err
		}
		fileIDs = append(fileIDs, sink.SourceNew(dirFor(dirIdx), name))
	}

	resolveFile := func(idx int) symtab.SourceID {
		if idx >= 1 && idx <= len(fileIDs) {
			return fileIDs[idx-1]
		}
		return 0
	}

	cur.Pos = programStart

	var address uint64
	file := 1
	line := 1

	emit := func() {
		fn := sink.FindNearest(address)
		if fn == nil {
			return
		}
		sink.AddFuncLine(fn, symtab.LineRecord{Offset: address - fn.Low, File: resolveFile(file), Line: line})
	}

	for cur.Pos < unitEnd {
		opcode, err := cur.ReadU8()
		if err != nil {
			return err
		}

		switch {
		case opcode == 0:
			length, err := cur.ReadULEB128()
			if err != nil {
				return err
			}
			next := cur.Pos + int(length)
			sub, err := cur.ReadU8()
			if err != nil {
				return err
			}
			switch sub {
			case lneEndSequence:
				emit()
				address = 0
				file = 1
				line = 1
			case lneSetAddress:
				addr, err := cur.ReadAddress()
				if err != nil {
					return err
				}
				address = moduleBase + addr
			case lneDefineFile:
				name, err := cur.ReadString()
				if err != nil {
					return err
				}
				dirIdx, err := cur.ReadULEB128()
				if err != nil {
					return err
				}
				if _, err := cur.ReadULEB128(); err != nil {
					return err
				}
				if _, err := cur.ReadULEB128(); err != nil {
					return err
				}
				fileIDs = append(fileIDs, sink.SourceNew(dirFor(dirIdx), name))
			}
			cur.Pos = next

		case opcode < opcodeBase:
			switch opcode {
			case lnsCopy:
				emit()
			case lnsAdvancePC:
				adv, err := cur.ReadULEB128()
				if err != nil {
					return err
				}
				address += adv * uint64(minInstrLen)
			case lnsAdvanceLine:
				adv, err := cur.ReadSLEB128()
				if err != nil {
					return err
				}
				line += int(adv)
			case lnsSetFile:
				f, err := cur.ReadULEB128()
				if err != nil {
					return err
				}
				file = int(f)
			case lnsSetColumn:
				if _, err := cur.ReadULEB128(); err != nil {
					return err
				}
			case lnsNegateStmt, lnsSetBasicBlock:
				// Tracked by the spec's state machine but not surfaced in
				// LineRecord; nothing to consume.
			case lnsConstAddPC:
				adjusted := 255 - int(opcodeBase)
				address += uint64(adjusted/int(lineRange)) * uint64(minInstrLen)
			case lnsFixedAdvancePC:
				adv, err := cur.ReadU16()
				if err != nil {
					return err
				}
				address += uint64(adv)
			default:
				// Vendor-extended standard opcode: skip its declared
				// operand count per the header's opcode-length table.
				n := int(stdLens[opcode-1])
				for i := 0; i < n; i++ {
					if _, err := cur.ReadULEB128(); err != nil {
						return err
					}
				}
			}

		default:
			adjusted := int(opcode) - int(opcodeBase)
			address += uint64(adjusted/int(lineRange)) * uint64(minInstrLen)
			line += lineBase + adjusted%int(lineRange)
			emit()
		}
	}

	return nil
}
