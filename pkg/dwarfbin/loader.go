package dwarfbin

import (
	"fmt"
	"log/slog"

	"github.com/gitmesam/godbg/pkg/divec"
	"github.com/gitmesam/godbg/pkg/regmap"
	"github.com/gitmesam/godbg/pkg/symtab"
	"github.com/gitmesam/godbg/pkg/thunk"
)

// Loader is the semantic loader of spec.md §4.D: it walks a unit's DIE
// tree and populates the symbol database, memoizing every DIE's result in
// die.Symt so cycles and repeated cross-references resolve to the same
// object.
type Loader struct {
	Sink       symtab.Sink
	RegMap     regmap.Map
	Thunks     *thunk.Table
	ModuleBase uint64
	Log        *slog.Logger

	dieTable    *divec.SparseArray[int, *DIE]
	strData     []byte
	infoData    []byte
	addrSize    int
	unitRefBase int
	compDir     string

	compiland *symtab.Compiland

	// syntheticCounter is scoped to this Loader instance (one per
	// compilation unit), per spec.md's Design Notes: "a language-agnostic
	// version should scope it per parser instance to keep parses
	// reproducible and independent."
	syntheticCounter int
}

// NewLoader builds a Loader for one compilation unit's worth of DIEs.
// infoData/strData are the whole .debug_info/.debug_str sections; dieTable
// and unitRefBase come from the DIE tree build that preceded this unit's
// semantic pass.
func NewLoader(sink symtab.Sink, regs regmap.Map, thunks *thunk.Table, moduleBase uint64, log *slog.Logger, infoData, strData []byte, dieTable *divec.SparseArray[int, *DIE], addrSize, unitRefBase int) *Loader {
	return &Loader{
		Sink:        sink,
		RegMap:      regs,
		Thunks:      thunks,
		ModuleBase:  moduleBase,
		Log:         log,
		dieTable:    dieTable,
		strData:     strData,
		infoData:    infoData,
		addrSize:    addrSize,
		unitRefBase: unitRefBase,
	}
}

// LoadCompileUnit processes one unit's root DIE (tag compile_unit): it
// registers the compiland and walks the root's direct children, building
// each top-level subprogram, global variable and type, per spec.md §4.D.
func (l *Loader) LoadCompileUnit(root *DIE) *symtab.Compiland {
	name := l.findName(root, "compile_unit")
	if v, ok := l.findAttribute(root, AttrCompDir); ok && v.Kind == ValueString {
		l.compDir = v.Str
	}
	l.compiland = l.Sink.NewCompiland(name)
	for _, child := range root.Children {
		l.build(child)
	}
	return l.compiland
}

// findAttribute walks die's abbreviation attribute list in lockstep with
// die.AttrPos, decoding the i-th value against its form, per spec.md §4.D.
func (l *Loader) findAttribute(die *DIE, at Attr) (AttrValue, bool) {
	for i, af := range die.Abbrev.Attrs {
		if af.Attr != at {
			continue
		}
		v, _, err := decodeForm(l.infoData, l.strData, die.AttrPos[i], af.Form, l.addrSize, l.unitRefBase)
		if err != nil {
			l.warn("unknown-form", die.Offset, "attribute", at, "error", err)
			return AttrValue{}, false
		}
		if af.Form == FormData8 || af.Form == FormRef8 {
			l.warn("64-bit-unsupported", die.Offset, "attribute", at, "reason", "Unhandled 64-bit support")
		}
		return v, true
	}
	return AttrValue{}, false
}

// findName returns DW_AT_name if present, or otherwise a synthetic name
// built from prefix and this Loader's running counter, angle brackets
// included (e.g. "<basic_type_1>").
func (l *Loader) findName(die *DIE, prefix string) string {
	if v, ok := l.findAttribute(die, AttrName); ok && v.Kind == ValueString {
		return v.Str
	}
	l.syntheticCounter++
	return fmt.Sprintf("<%s_%d>", prefix, l.syntheticCounter)
}

func (l *Loader) warn(category string, offset int, args ...any) {
	logWarn(l.Log, category, offset, args...)
}

// findDIE looks up a DIE by its byte offset in this unit's table.
func (l *Loader) findDIE(offset int) (*DIE, bool) {
	return l.dieTable.Find(offset)
}

// lookupType reads DW_AT_type (a reference form), resolves the target DIE
// by offset, forces its semantic build if not already done, and returns
// the resulting type. Absent DW_AT_type yields nil (void), per spec.md
// §4.D.
func (l *Loader) lookupType(die *DIE) symtab.Type {
	v, ok := l.findAttribute(die, AttrType)
	if !ok {
		return nil
	}
	if v.Kind != ValueReference {
		l.warn("unknown-form", die.Offset, "reason", "DW_AT_type not a reference form")
		return nil
	}
	target, ok := l.findDIE(v.Ref)
	if !ok {
		l.warn("missing-abbreviation", die.Offset, "reason", "DW_AT_type target not found", "ref", v.Ref)
		return nil
	}
	sym := l.build(target)
	t, _ := sym.(symtab.Type)
	return t
}

// build materializes die into a symbol-database object if not already
// built, memoizing the result in die.Symt. It dispatches on tag per
// spec.md §4.D's ordered tag handler list; unhandled tags log a warning
// and leave Symt nil.
func (l *Loader) build(die *DIE) any {
	if die.Symt != nil {
		return die.Symt
	}

	switch die.Abbrev.Tag {
	case TagBaseType:
		die.Symt = l.buildBaseType(die)
	case TagTypedef:
		die.Symt = l.Sink.NewTypedef(l.findName(die, "typedef"), l.lookupType(die))
	case TagPointerType, TagReferenceType:
		die.Symt = l.Sink.NewPointer(l.lookupType(die))
	case TagConstType, TagVolatileType:
		die.Symt = l.lookupType(die)
	case TagArrayType:
		die.Symt = l.buildArrayType(die)
	case TagEnumerationType:
		die.Symt = l.buildEnumType(die)
	case TagClassType, TagStructureType, TagUnionType:
		die.Symt = l.buildUDT(die)
	case TagSubroutineType:
		die.Symt = l.buildSubroutineType(die)
	case TagSubprogram:
		if f := l.buildSubprogram(die); f != nil {
			die.Symt = f
		}
	case TagVariable:
		// Top-level `variable` dispatches into the subprogram variable
		// path with a null enclosing function (spec.md §4.D).
		l.buildVariable(die, nil)
	default:
		l.warn("unknown-tag", die.Offset, "tag", die.Abbrev.Tag)
	}

	return die.Symt
}

func (l *Loader) buildBaseType(die *DIE) *symtab.BasicType {
	name := l.findName(die, "basic_type")
	byteSize := int64(0)
	if v, ok := l.findAttribute(die, AttrByteSize); ok {
		byteSize = valueAsInt(v)
	}
	kind := symtab.NoType
	if v, ok := l.findAttribute(die, AttrEncoding); ok {
		kind = encodingToKind(Encoding(valueAsInt(v)))
	}
	return l.Sink.NewBasic(name, byteSize, kind)
}

func encodingToKind(e Encoding) symtab.BasicKind {
	switch e {
	case 0:
		return symtab.Void
	case EncAddress:
		return symtab.ULong
	case EncBoolean:
		return symtab.Bool
	case EncComplexFloat:
		return symtab.Complex
	case EncFloat:
		return symtab.Float
	case EncSigned:
		return symtab.Int
	case EncUnsigned:
		return symtab.UInt
	case EncSignedChar, EncUnsignedChar:
		return symtab.Char
	default:
		return symtab.NoType
	}
}

func (l *Loader) buildArrayType(die *DIE) *symtab.ArrayType {
	elem := l.lookupType(die)
	var index symtab.Type
	var lower, upper int64

	for _, child := range die.Children {
		if child.Abbrev.Tag != TagSubrangeType {
			continue
		}
		if v, ok := l.findAttribute(child, AttrLowerBound); ok {
			lower = valueAsInt(v)
		}
		if v, ok := l.findAttribute(child, AttrUpperBound); ok {
			upper = valueAsInt(v)
		}
		if v, ok := l.findAttribute(child, AttrCount); ok {
			upper = lower + valueAsInt(v)
		}
		index = l.lookupType(child)
		break // DWARF 2 practice: a single subrange per array dimension here
	}

	return l.Sink.NewArray(elem, index, lower, upper)
}

func (l *Loader) buildEnumType(die *DIE) *symtab.EnumType {
	e := l.Sink.NewEnum(l.findName(die, "enum"))
	for _, child := range die.Children {
		if child.Abbrev.Tag != TagEnumerator {
			continue
		}
		name := l.findName(child, "enumerator")
		var val int64
		if v, ok := l.findAttribute(child, AttrConstValue); ok {
			val = valueAsInt(v)
		}
		l.Sink.AddEnumElement(e, name, val)
	}
	return e
}

func (l *Loader) buildUDT(die *DIE) *symtab.UDT {
	kind := symtab.UDTStruct
	switch die.Abbrev.Tag {
	case TagClassType:
		kind = symtab.UDTClass
	case TagUnionType:
		kind = symtab.UDTUnion
	}
	name := l.findName(die, "udt")
	var byteSize int64
	if v, ok := l.findAttribute(die, AttrByteSize); ok {
		byteSize = valueAsInt(v)
	}
	u := l.Sink.NewUDT(kind, name, byteSize)
	for _, child := range die.Children {
		if child.Abbrev.Tag != TagMember {
			continue
		}
		l.buildMember(u, child)
	}
	return u
}

// buildMember computes a member's bit offset per spec.md §4.D's bitfield
// rule: the byte offset from DW_AT_data_member_location is left-shifted by
// 3 and added to the bit-offset component. For a bitfield that component is
// storage_byte_size*8 - DW_AT_bit_offset - DW_AT_bit_size (the worked
// example: a 4-byte storage unit, a declared bit_offset of 20 and a
// bit_size of 4 places the field at bit 8, relative to its containing
// byte). A non-bitfield member's offset is just DW_AT_data_member_location
// converted from bytes to bits.
func (l *Loader) buildMember(u *symtab.UDT, die *DIE) {
	name := l.findName(die, "member")
	typ := l.lookupType(die)

	var byteOffset int64
	if v, ok := l.findAttribute(die, AttrDataMemberLoc); ok {
		if loc, err := EvalLocationAttr(v); err == nil {
			byteOffset = loc.Offset
		}
	}

	var bitSize int64
	hasBitSize := false
	if v, ok := l.findAttribute(die, AttrBitSize); ok {
		bitSize = valueAsInt(v)
		hasBitSize = true
	}

	bitOffset := byteOffset * 8
	if hasBitSize {
		var declaredOffset int64
		if v, ok := l.findAttribute(die, AttrBitOffset); ok {
			declaredOffset = valueAsInt(v)
		}
		storageSize := typeByteSize(typ)
		if v, ok := l.findAttribute(die, AttrByteSize); ok {
			storageSize = valueAsInt(v)
		}
		bitOffset += storageSize*8 - declaredOffset - bitSize
	}

	l.Sink.AddUDTMember(u, name, typ, bitOffset, bitSize)
}

// typeByteSize returns a resolved type's storage size in bytes, used as the
// bitfield storage-unit fallback when a member DIE has no DW_AT_byte_size of
// its own.
func typeByteSize(t symtab.Type) int64 {
	switch v := t.(type) {
	case *symtab.BasicType:
		return v.ByteSize
	case *symtab.PointerType:
		return 4
	case *symtab.Typedef:
		return typeByteSize(v.Underlying)
	default:
		return 0
	}
}

func (l *Loader) buildSubroutineType(die *DIE) *symtab.FuncSigType {
	sig := l.Sink.NewFuncSig(l.lookupType(die))
	for _, child := range die.Children {
		if child.Abbrev.Tag != TagFormalParameter {
			continue
		}
		l.Sink.AddFuncSigParam(sig, l.lookupType(child))
	}
	return sig
}

// valueAsInt normalizes an AttrValue's numeric variants to a signed
// integer for the many spec.md attributes that are read as plain numbers
// regardless of whether their form decoded as signed or unsigned.
func valueAsInt(v AttrValue) int64 {
	switch v.Kind {
	case ValueUnsigned:
		return int64(v.Uint)
	case ValueSigned:
		return v.Int
	default:
		return 0
	}
}
