package symtab

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
)

// SourceID identifies a registered source file (directory + name composed
// once via DB.SourceNew, spec.md §4.E).
type SourceID int

// Sink is the collaborator surface spec.md §6 lists as "Collaborator
// surfaces consumed": the constructors the semantic loader and line
// evaluator call to populate the database. It is an interface so loader
// tests can substitute a mock (see godwarfmock) instead of a real DB.
type Sink interface {
	NewBasic(name string, byteSize int64, kind BasicKind) *BasicType
	NewPointer(referent Type) *PointerType
	NewArray(elem, index Type, lower, upper int64) *ArrayType
	NewTypedef(name string, underlying Type) *Typedef
	NewEnum(name string) *EnumType
	AddEnumElement(e *EnumType, name string, value int64)
	NewUDT(kind UDTKind, name string, byteSize int64) *UDT
	AddUDTMember(u *UDT, name string, typ Type, bitOffset, bitSize int64)
	NewFuncSig(ret Type) *FuncSigType
	AddFuncSigParam(sig *FuncSigType, t Type)
	NewCompiland(name string) *Compiland
	NewFunction(c *Compiland, name string, sig *FuncSigType, low, high uint64) *Function
	AddFuncLocal(f *Function, v *Variable)
	AddFuncLine(f *Function, rec LineRecord)
	AddFunctionLabel(f *Function, name string, addr uint64)
	OpenFuncBlock(f *Function, low, high uint64) *Block
	CloseFuncBlock(f *Function)
	NormalizeFunction(f *Function)
	NewGlobal(c *Compiland, name string, typ Type, addr uint64, external bool) *Variable
	SourceNew(dir, name string) SourceID
	FindNearest(addr uint64) *Function
}

// DB is the concrete symbol database. One DB is built per module; its
// contents outlive the parser that populated it (spec.md §3 "Ownership and
// lifecycle").
type DB struct {
	ModuleBase uint64

	Compilands []*Compiland
	allFuncs   []*Function // flattened, kept address-sorted lazily
	sorted     bool

	sources     []string // index 0 unused; SourceID values are 1-based like DWARF file indices
	sourceIndex map[string]SourceID

	sourceFiles map[string][]string // lazily loaded, see TryLoadSourceFiles
}

// NewDB creates an empty database for a module loaded at moduleBase.
func NewDB(moduleBase uint64) *DB {
	return &DB{
		ModuleBase:  moduleBase,
		sourceIndex: make(map[string]SourceID),
		sourceFiles: make(map[string][]string),
	}
}

func (db *DB) NewBasic(name string, byteSize int64, kind BasicKind) *BasicType {
	return &BasicType{Name: name, ByteSize: byteSize, Kind: kind}
}

func (db *DB) NewPointer(referent Type) *PointerType {
	return &PointerType{Referent: referent}
}

func (db *DB) NewArray(elem, index Type, lower, upper int64) *ArrayType {
	return &ArrayType{Element: elem, IndexType: index, LowerBound: lower, UpperBound: upper}
}

func (db *DB) NewTypedef(name string, underlying Type) *Typedef {
	return &Typedef{Name: name, Underlying: underlying}
}

func (db *DB) NewEnum(name string) *EnumType {
	return &EnumType{Name: name}
}

func (db *DB) AddEnumElement(e *EnumType, name string, value int64) {
	e.Elements = append(e.Elements, EnumElement{Name: name, Value: value})
}

func (db *DB) NewUDT(kind UDTKind, name string, byteSize int64) *UDT {
	return &UDT{Kind: kind, Name: name, ByteSize: byteSize}
}

func (db *DB) AddUDTMember(u *UDT, name string, typ Type, bitOffset, bitSize int64) {
	u.Members = append(u.Members, UDTMember{Name: name, Type: typ, BitOffset: bitOffset, BitSize: bitSize})
}

func (db *DB) NewFuncSig(ret Type) *FuncSigType {
	return &FuncSigType{Return: ret}
}

func (db *DB) AddFuncSigParam(sig *FuncSigType, t Type) {
	sig.Params = append(sig.Params, t)
}

func (db *DB) NewCompiland(name string) *Compiland {
	c := &Compiland{Name: name}
	db.Compilands = append(db.Compilands, c)
	return c
}

func (db *DB) NewFunction(c *Compiland, name string, sig *FuncSigType, low, high uint64) *Function {
	f := &Function{Name: name, Sig: sig, Low: low, High: high}
	c.Functions = append(c.Functions, f)
	db.allFuncs = append(db.allFuncs, f)
	db.sorted = false
	return f
}

func (db *DB) AddFuncLocal(f *Function, v *Variable) {
	f.Locals = append(f.Locals, v)
}

func (db *DB) AddFuncLine(f *Function, rec LineRecord) {
	f.Lines = append(f.Lines, rec)
}

func (db *DB) AddFunctionLabel(f *Function, name string, addr uint64) {
	f.Labels = append(f.Labels, &Label{Name: name, Address: addr})
}

func (db *DB) OpenFuncBlock(f *Function, low, high uint64) *Block {
	b := &Block{Low: low, High: high}
	if len(f.openBlocks) == 0 {
		f.Blocks = append(f.Blocks, b)
	} else {
		top := f.openBlocks[len(f.openBlocks)-1]
		top.Children = append(top.Children, b)
	}
	f.openBlocks = append(f.openBlocks, b)
	return b
}

func (db *DB) CloseFuncBlock(f *Function) {
	if len(f.openBlocks) > 0 {
		f.openBlocks = f.openBlocks[:len(f.openBlocks)-1]
	}
}

// NormalizeFunction sorts a function's blocks and line table by address,
// the "normalize" step spec.md §4.D.1 calls out after a subprogram's
// children have all been processed.
func (db *DB) NormalizeFunction(f *Function) {
	var sortBlocks func([]*Block)
	sortBlocks = func(bs []*Block) {
		sort.Slice(bs, func(i, j int) bool { return bs[i].Low < bs[j].Low })
		for _, b := range bs {
			sortBlocks(b.Children)
		}
	}
	sortBlocks(f.Blocks)
	sort.Slice(f.Lines, func(i, j int) bool { return f.Lines[i].Offset < f.Lines[j].Offset })
}

func (db *DB) NewGlobal(c *Compiland, name string, typ Type, addr uint64, external bool) *Variable {
	v := &Variable{Name: name, Type: typ, Location: MemoryLocation{Address: addr}, External: external}
	c.Globals = append(c.Globals, v)
	return v
}

// SourceNew registers (or returns the existing id for) a composed source
// path: dir joined with name, or name alone when dir is empty or name is
// already absolute. Mirrors spec.md §4.E's file-table
// composition rule and the `source_new(module, dir, name)` collaborator
// surface named in §6.
func (db *DB) SourceNew(dir, name string) SourceID {
	path := name
	if dir != "" {
		if filepath.IsAbs(name) {
			path = name
		} else {
			path = filepath.Join(dir, name)
		}
	}
	if id, ok := db.sourceIndex[path]; ok {
		return id
	}
	db.sources = append(db.sources, path)
	id := SourceID(len(db.sources))
	db.sourceIndex[path] = id
	return id
}

// SourcePath resolves a SourceID back to its composed path.
func (db *DB) SourcePath(id SourceID) string {
	if int(id) < 1 || int(id) > len(db.sources) {
		return ""
	}
	return db.sources[id-1]
}

func (db *DB) ensureSorted() {
	if db.sorted {
		return
	}
	sort.Slice(db.allFuncs, func(i, j int) bool { return db.allFuncs[i].Low < db.allFuncs[j].Low })
	db.sorted = true
}

// FindNearest performs the nearest-less-or-equal lookup spec.md §4.E's
// "Emission" step needs: the function whose address range covers addr, or
// nil if none does.
func (db *DB) FindNearest(addr uint64) *Function {
	db.ensureSorted()
	i := sort.Search(len(db.allFuncs), func(i int) bool { return db.allFuncs[i].Low > addr })
	if i == 0 {
		return nil
	}
	f := db.allFuncs[i-1]
	if !f.Covers(addr) {
		return nil
	}
	return f
}

// SortedFunctions returns every function across every compiland, ordered
// by start address. Supplemented convenience (SPEC_FULL §4), grounded on
// the teacher's DebugInfo.SortedSourceLocations.
func (db *DB) SortedFunctions() []*Function {
	db.ensureSorted()
	out := make([]*Function, len(db.allFuncs))
	copy(out, db.allFuncs)
	return out
}

// TryLoadSourceFiles best-effort loads every registered source file's text
// so a backtrace formatter can display it next to a resolved line. Errors
// are silently ignored, matching the teacher's mc.DebugInfo.TryLoadSourceFiles.
func (db *DB) TryLoadSourceFiles() {
	for _, path := range db.sources {
		if _, ok := db.sourceFiles[path]; ok {
			continue
		}
		lines, err := readLines(path)
		if err != nil {
			continue
		}
		db.sourceFiles[path] = lines
	}
}

// SourceLine returns line n (1-indexed) of a previously loaded source
// file, or "" if unavailable.
func (db *DB) SourceLine(path string, line int) string {
	lines, ok := db.sourceFiles[path]
	if !ok || line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		f, err = os.Open(filepath.Base(path))
		if err != nil {
			return nil, err
		}
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
