package symtab

// Location is the sum type spec.md's Design Notes recommend in place of
// sentinel-encoded integers: a variable lives in memory, in a register
// (optionally dereferenced), or frame-base relative. The DWARF-side
// sentinels (NoRegister/FrameRegister/RegisterDeref) are translated into
// one of these three shapes at the loader/database boundary and never
// cross it.
type Location interface {
	locationNode()
}

// MemoryLocation is a fixed runtime address (a global, or a local whose
// location expression resolved to a pure constant).
type MemoryLocation struct {
	Address uint64
}

func (MemoryLocation) locationNode() {}

// RegisterLocation is a value held in (or, if Deref, pointed to by) a
// target register, after DWARF→target register translation.
type RegisterLocation struct {
	Register int
	Deref    bool
	Offset   int64 // additional displacement, e.g. from DW_OP_bregN / DW_OP_fbreg
}

func (RegisterLocation) locationNode() {}

// FrameLocation is frame-base relative: Offset bytes from the enclosing
// function's resolved frame register.
type FrameLocation struct {
	Offset int64
}

func (FrameLocation) locationNode() {}
