package dwarfbin

import "github.com/gitmesam/godbg/pkg/symtab"

// buildSubprogram implements spec.md §4.D.1: skip thunk-area and
// declaration-only entries, build the signature, register the function,
// resolve its frame base, walk its children, and normalize before
// returning. A skipped subprogram returns nil and leaves die.Symt nil.
func (l *Loader) buildSubprogram(die *DIE) *symtab.Function {
	var low, high uint64
	if v, ok := l.findAttribute(die, AttrLowpc); ok {
		low = v.Uint
	}
	if v, ok := l.findAttribute(die, AttrHighpc); ok {
		high = v.Uint
	}
	// Relocate to the runtime range [base+low_pc, base+low_pc+(high_pc-low_pc))
	// per spec.md §4.D.1 before the thunk-area test and NewFunction, so every
	// address stored against this function is the address a caller actually
	// queries with, not the file-relative DWARF value.
	relocLow := l.ModuleBase + low
	relocHigh := l.ModuleBase + low + (high - low)

	if l.Thunks != nil && l.Thunks.Contains(relocLow) >= 0 {
		l.warn("thunk-skip", die.Offset, "low_pc", relocLow)
		return nil
	}
	if v, ok := l.findAttribute(die, AttrDeclaration); ok && valueAsInt(v) != 0 {
		return nil
	}

	name := l.findName(die, "subprogram")
	sig := l.Sink.NewFuncSig(l.lookupType(die))
	for _, child := range die.Children {
		if child.Abbrev.Tag == TagFormalParameter {
			l.Sink.AddFuncSigParam(sig, l.lookupType(child))
		}
	}

	f := l.Sink.NewFunction(l.compiland, name, sig, relocLow, relocHigh)

	if v, ok := l.findAttribute(die, AttrFrameBase); ok {
		if loc, err := EvalLocationAttr(v); err == nil {
			f.FrameRegister, f.FrameOffset = l.translateFrameBase(loc)
		} else {
			l.warn("unknown-form", die.Offset, "reason", "DW_AT_frame_base did not evaluate", "error", err)
		}
	}

	l.buildFuncChildren(die.Children, f, nil)
	l.Sink.NormalizeFunction(f)
	return f
}

// buildFuncChildren walks one DIE's children in the context of an enclosing
// function and (if not nil) the innermost currently-open lexical block,
// per spec.md §4.D.1's child-tag table. Inlined-subroutine bodies are not
// reconstructed and DW_TAG_unspecified_parameters is not modeled, matching
// spec.md's non-goals; both tags are simply skipped here rather than
// recursed into.
func (l *Loader) buildFuncChildren(children []*DIE, f *symtab.Function, block *symtab.Block) {
	for _, child := range children {
		switch child.Abbrev.Tag {
		case TagFormalParameter:
			l.buildFuncVariable(child, f, block, true)
		case TagVariable:
			l.buildFuncVariable(child, f, block, false)
		case TagLexicalBlock:
			var low, high uint64
			if v, ok := l.findAttribute(child, AttrLowpc); ok {
				low = v.Uint
			}
			if v, ok := l.findAttribute(child, AttrHighpc); ok {
				high = v.Uint
			}
			// spec.md §4.D.1: "[base+low_pc, base+low_pc+(high_pc-low_pc))",
			// same relocation as the enclosing function's range.
			relocLow := l.ModuleBase + low
			relocHigh := l.ModuleBase + low + (high - low)
			nested := l.Sink.OpenFuncBlock(f, relocLow, relocHigh)
			l.buildFuncChildren(child.Children, f, nested)
			l.Sink.CloseFuncBlock(f)
		case TagLabel:
			name := l.findName(child, "label")
			var addr uint64
			if v, ok := l.findAttribute(child, AttrLowpc); ok {
				addr = v.Uint
			}
			l.Sink.AddFunctionLabel(f, name, l.ModuleBase+addr)
		default:
			// Nested subprogram, inlined_subroutine, unspecified_parameters
			// and anything else fall through unhandled here; they are
			// either out of scope or have no representation in Function.
		}
	}
}

// buildFuncVariable implements spec.md §4.D.2's three-way dispatch: a
// location that resolves to no register and a constant offset names a
// *global* (a static local), regardless of lexical nesting — module.base
// relocation and all, same as a compile_unit-level variable. Any register
// disposition (including the frame register) instead becomes a local or
// parameter attached to the innermost open block, or the function directly.
func (l *Loader) buildFuncVariable(die *DIE, f *symtab.Function, block *symtab.Block, isParam bool) {
	name := l.findName(die, "variable")
	typ := l.lookupType(die)

	var result LocResult
	if v, ok := l.findAttribute(die, AttrLocation); ok {
		var err error
		result, err = EvalLocationAttr(v)
		if err != nil {
			l.warn("unknown-form", die.Offset, "reason", "DW_AT_location did not fully evaluate", "error", err)
		}
	}

	if result.InRegister == NoRegister {
		l.Sink.NewGlobal(l.compiland, name, typ, l.ModuleBase+uint64(result.Offset), false)
		return
	}

	loc := l.translateLocation(result)
	v := &symtab.Variable{Name: name, Type: typ, Location: loc, IsParam: isParam}
	if block != nil {
		block.Locals = append(block.Locals, v)
		return
	}
	l.Sink.AddFuncLocal(f, v)
}

// buildVariable implements the top-level (compile_unit child) half of
// spec.md §4.D.2: a global's location attribute must resolve to a pure
// memory address.
func (l *Loader) buildVariable(die *DIE, _ *symtab.Function) {
	name := l.findName(die, "variable")
	typ := l.lookupType(die)
	external := false
	if v, ok := l.findAttribute(die, AttrExternal); ok {
		external = valueAsInt(v) != 0
	}

	var addr uint64
	if v, ok := l.findAttribute(die, AttrLocation); ok {
		if result, err := EvalLocationAttr(v); err == nil {
			// spec.md §4.D.2: "Its address is module.base + offset."
			addr = l.ModuleBase + uint64(result.Offset)
		} else {
			l.warn("unknown-form", die.Offset, "reason", "global DW_AT_location did not evaluate", "error", err)
		}
	}

	l.Sink.NewGlobal(l.compiland, name, typ, addr, external)
}

// translateLocation turns a wire-level LocResult into the symtab.Location
// sum type, the one place DWARF's register sentinels cross into the
// database's own vocabulary (spec.md's Design Notes).
func (l *Loader) translateLocation(r LocResult) symtab.Location {
	switch {
	case r.InRegister == NoRegister:
		return symtab.MemoryLocation{Address: uint64(r.Offset)}
	case r.InRegister == FrameRegister|RegisterDeref:
		return symtab.FrameLocation{Offset: r.Offset}
	case r.InRegister&RegisterDeref != 0:
		dwarfReg := int(r.InRegister &^ RegisterDeref)
		target := l.translateReg(dwarfReg)
		return symtab.RegisterLocation{Register: target, Deref: true, Offset: r.Offset}
	default:
		target := l.translateReg(int(r.InRegister))
		return symtab.RegisterLocation{Register: target, Deref: false}
	}
}

// translateFrameBase resolves a subprogram's DW_AT_frame_base into the
// (register, offset) pair spec.md §4.D.1 stores directly on Function,
// rather than as a Location — a frame base is a basis other locations are
// computed relative to, not a location itself.
func (l *Loader) translateFrameBase(r LocResult) (int, int64) {
	switch {
	case r.InRegister == NoRegister, r.InRegister == FrameRegister:
		return 0, r.Offset
	default:
		dwarfReg := int(r.InRegister &^ RegisterDeref)
		return l.translateReg(dwarfReg), r.Offset
	}
}

func (l *Loader) translateReg(dwarfReg int) int {
	if l.RegMap == nil {
		return dwarfReg
	}
	target, ok := l.RegMap.Translate(dwarfReg)
	if !ok {
		return dwarfReg
	}
	return target
}
