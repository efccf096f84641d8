// Package symtab is the symbol-database collaborator spec.md §3 and §6
// treat as an opaque, already-existing component: compilands, types,
// functions, variables and line records, built once by the DWARF loader
// and owned by the database afterward. Everything here is pure data plus
// the constructors the loader calls; it has no notion of DWARF wire
// formats.
package symtab

// Type is the marker interface every symbol-database type kind implements.
type Type interface {
	typeNode()
}

// BasicKind is the symbol-database's own basic-type taxonomy, the target
// of the DW_AT_encoding mapping in spec.md §4.D.
type BasicKind int

const (
	NoType BasicKind = iota
	Void
	Bool
	Char
	Int
	UInt
	Float
	Complex
	ULong
)

// BasicType is a fundamental, named, fixed-size type (int, float, void...).
type BasicType struct {
	Name     string
	ByteSize int64
	Kind     BasicKind
}

func (*BasicType) typeNode() {}

// PointerType is a pointer or reference to another type; DWARF's
// pointer_type and reference_type collapse to this single shape per
// spec.md §4.D.
type PointerType struct {
	Referent Type
}

func (*PointerType) typeNode() {}

// ArrayType is a (possibly multi-dimensioned, though DWARF 2 practice is
// single-dimension) array, described by one subrange per dimension; this
// loader keeps the single bound pair spec.md §4.D models.
type ArrayType struct {
	Element    Type
	IndexType  Type
	LowerBound int64
	UpperBound int64
}

func (*ArrayType) typeNode() {}

// Typedef aliases a name to an underlying type.
type Typedef struct {
	Name       string
	Underlying Type
}

func (*Typedef) typeNode() {}

// EnumElement is one (name, value) pair of an enumeration_type.
type EnumElement struct {
	Name  string
	Value int64
}

// EnumType is an enumeration and its ordered elements.
type EnumType struct {
	Name     string
	Elements []EnumElement
}

func (*EnumType) typeNode() {}

// UDTKind distinguishes struct/class/union user-defined types.
type UDTKind int

const (
	UDTStruct UDTKind = iota
	UDTClass
	UDTUnion
)

// UDTMember is one field of a struct/class/union, placed at BitOffset
// (computed per spec.md §4.D's member bit-offset rules). BitSize is zero
// for a non-bitfield member.
type UDTMember struct {
	Name      string
	Type      Type
	BitOffset int64
	BitSize   int64
}

// UDT is a struct, class or union type and its ordered members.
type UDT struct {
	Kind     UDTKind
	Name     string
	ByteSize int64
	Members  []UDTMember
}

func (*UDT) typeNode() {}

// FuncSigType is a function-signature type: a return type plus ordered
// parameter types, shared by subroutine_type DIEs and by subprogram DIEs
// (spec.md §4.D / §4.D.1).
type FuncSigType struct {
	Return Type
	Params []Type
}

func (*FuncSigType) typeNode() {}
