// Package godwarfmock is a hand-written gomock-shaped mock of
// symtab.Sink, following the same Controller/EXPECT()/Call layout
// mockgen would produce, for loader unit tests that need to assert which
// collaborator constructors a DIE tree drives without standing up a real
// symtab.DB.
package godwarfmock

import (
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/gitmesam/godbg/pkg/symtab"
)

// MockSink is a mock of the symtab.Sink interface.
type MockSink struct {
	ctrl     *gomock.Controller
	recorder *MockSinkMockRecorder
}

// MockSinkMockRecorder records expected calls on a MockSink.
type MockSinkMockRecorder struct {
	mock *MockSink
}

// NewMockSink creates a new mock instance bound to ctrl.
func NewMockSink(ctrl *gomock.Controller) *MockSink {
	mock := &MockSink{ctrl: ctrl}
	mock.recorder = &MockSinkMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSink) EXPECT() *MockSinkMockRecorder {
	return m.recorder
}

func (m *MockSink) NewBasic(name string, byteSize int64, kind symtab.BasicKind) *symtab.BasicType {
	ret := m.ctrl.Call(m, "NewBasic", name, byteSize, kind)
	v, _ := ret[0].(*symtab.BasicType)
	return v
}

func (mr *MockSinkMockRecorder) NewBasic(name, byteSize, kind any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NewBasic", reflect.TypeOf((*MockSink)(nil).NewBasic), name, byteSize, kind)
}

func (m *MockSink) NewPointer(referent symtab.Type) *symtab.PointerType {
	ret := m.ctrl.Call(m, "NewPointer", referent)
	v, _ := ret[0].(*symtab.PointerType)
	return v
}

func (mr *MockSinkMockRecorder) NewPointer(referent any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NewPointer", reflect.TypeOf((*MockSink)(nil).NewPointer), referent)
}

func (m *MockSink) NewArray(elem, index symtab.Type, lower, upper int64) *symtab.ArrayType {
	ret := m.ctrl.Call(m, "NewArray", elem, index, lower, upper)
	v, _ := ret[0].(*symtab.ArrayType)
	return v
}

func (mr *MockSinkMockRecorder) NewArray(elem, index, lower, upper any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NewArray", reflect.TypeOf((*MockSink)(nil).NewArray), elem, index, lower, upper)
}

func (m *MockSink) NewTypedef(name string, underlying symtab.Type) *symtab.Typedef {
	ret := m.ctrl.Call(m, "NewTypedef", name, underlying)
	v, _ := ret[0].(*symtab.Typedef)
	return v
}

func (mr *MockSinkMockRecorder) NewTypedef(name, underlying any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NewTypedef", reflect.TypeOf((*MockSink)(nil).NewTypedef), name, underlying)
}

func (m *MockSink) NewEnum(name string) *symtab.EnumType {
	ret := m.ctrl.Call(m, "NewEnum", name)
	v, _ := ret[0].(*symtab.EnumType)
	return v
}

func (mr *MockSinkMockRecorder) NewEnum(name any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NewEnum", reflect.TypeOf((*MockSink)(nil).NewEnum), name)
}

func (m *MockSink) AddEnumElement(e *symtab.EnumType, name string, value int64) {
	m.ctrl.Call(m, "AddEnumElement", e, name, value)
}

func (mr *MockSinkMockRecorder) AddEnumElement(e, name, value any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddEnumElement", reflect.TypeOf((*MockSink)(nil).AddEnumElement), e, name, value)
}

func (m *MockSink) NewUDT(kind symtab.UDTKind, name string, byteSize int64) *symtab.UDT {
	ret := m.ctrl.Call(m, "NewUDT", kind, name, byteSize)
	v, _ := ret[0].(*symtab.UDT)
	return v
}

func (mr *MockSinkMockRecorder) NewUDT(kind, name, byteSize any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NewUDT", reflect.TypeOf((*MockSink)(nil).NewUDT), kind, name, byteSize)
}

func (m *MockSink) AddUDTMember(u *symtab.UDT, name string, typ symtab.Type, bitOffset, bitSize int64) {
	m.ctrl.Call(m, "AddUDTMember", u, name, typ, bitOffset, bitSize)
}

func (mr *MockSinkMockRecorder) AddUDTMember(u, name, typ, bitOffset, bitSize any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddUDTMember", reflect.TypeOf((*MockSink)(nil).AddUDTMember), u, name, typ, bitOffset, bitSize)
}

func (m *MockSink) NewFuncSig(ret symtab.Type) *symtab.FuncSigType {
	r := m.ctrl.Call(m, "NewFuncSig", ret)
	v, _ := r[0].(*symtab.FuncSigType)
	return v
}

func (mr *MockSinkMockRecorder) NewFuncSig(ret any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NewFuncSig", reflect.TypeOf((*MockSink)(nil).NewFuncSig), ret)
}

func (m *MockSink) AddFuncSigParam(sig *symtab.FuncSigType, t symtab.Type) {
	m.ctrl.Call(m, "AddFuncSigParam", sig, t)
}

func (mr *MockSinkMockRecorder) AddFuncSigParam(sig, t any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddFuncSigParam", reflect.TypeOf((*MockSink)(nil).AddFuncSigParam), sig, t)
}

func (m *MockSink) NewCompiland(name string) *symtab.Compiland {
	ret := m.ctrl.Call(m, "NewCompiland", name)
	v, _ := ret[0].(*symtab.Compiland)
	return v
}

func (mr *MockSinkMockRecorder) NewCompiland(name any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NewCompiland", reflect.TypeOf((*MockSink)(nil).NewCompiland), name)
}

func (m *MockSink) NewFunction(c *symtab.Compiland, name string, sig *symtab.FuncSigType, low, high uint64) *symtab.Function {
	ret := m.ctrl.Call(m, "NewFunction", c, name, sig, low, high)
	v, _ := ret[0].(*symtab.Function)
	return v
}

func (mr *MockSinkMockRecorder) NewFunction(c, name, sig, low, high any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NewFunction", reflect.TypeOf((*MockSink)(nil).NewFunction), c, name, sig, low, high)
}

func (m *MockSink) AddFuncLocal(f *symtab.Function, v *symtab.Variable) {
	m.ctrl.Call(m, "AddFuncLocal", f, v)
}

func (mr *MockSinkMockRecorder) AddFuncLocal(f, v any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddFuncLocal", reflect.TypeOf((*MockSink)(nil).AddFuncLocal), f, v)
}

func (m *MockSink) AddFuncLine(f *symtab.Function, rec symtab.LineRecord) {
	m.ctrl.Call(m, "AddFuncLine", f, rec)
}

func (mr *MockSinkMockRecorder) AddFuncLine(f, rec any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddFuncLine", reflect.TypeOf((*MockSink)(nil).AddFuncLine), f, rec)
}

func (m *MockSink) AddFunctionLabel(f *symtab.Function, name string, addr uint64) {
	m.ctrl.Call(m, "AddFunctionLabel", f, name, addr)
}

func (mr *MockSinkMockRecorder) AddFunctionLabel(f, name, addr any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddFunctionLabel", reflect.TypeOf((*MockSink)(nil).AddFunctionLabel), f, name, addr)
}

func (m *MockSink) OpenFuncBlock(f *symtab.Function, low, high uint64) *symtab.Block {
	ret := m.ctrl.Call(m, "OpenFuncBlock", f, low, high)
	v, _ := ret[0].(*symtab.Block)
	return v
}

func (mr *MockSinkMockRecorder) OpenFuncBlock(f, low, high any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OpenFuncBlock", reflect.TypeOf((*MockSink)(nil).OpenFuncBlock), f, low, high)
}

func (m *MockSink) CloseFuncBlock(f *symtab.Function) {
	m.ctrl.Call(m, "CloseFuncBlock", f)
}

func (mr *MockSinkMockRecorder) CloseFuncBlock(f any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CloseFuncBlock", reflect.TypeOf((*MockSink)(nil).CloseFuncBlock), f)
}

func (m *MockSink) NormalizeFunction(f *symtab.Function) {
	m.ctrl.Call(m, "NormalizeFunction", f)
}

func (mr *MockSinkMockRecorder) NormalizeFunction(f any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NormalizeFunction", reflect.TypeOf((*MockSink)(nil).NormalizeFunction), f)
}

func (m *MockSink) NewGlobal(c *symtab.Compiland, name string, typ symtab.Type, addr uint64, external bool) *symtab.Variable {
	ret := m.ctrl.Call(m, "NewGlobal", c, name, typ, addr, external)
	v, _ := ret[0].(*symtab.Variable)
	return v
}

func (mr *MockSinkMockRecorder) NewGlobal(c, name, typ, addr, external any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NewGlobal", reflect.TypeOf((*MockSink)(nil).NewGlobal), c, name, typ, addr, external)
}

func (m *MockSink) SourceNew(dir, name string) symtab.SourceID {
	ret := m.ctrl.Call(m, "SourceNew", dir, name)
	v, _ := ret[0].(symtab.SourceID)
	return v
}

func (mr *MockSinkMockRecorder) SourceNew(dir, name any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SourceNew", reflect.TypeOf((*MockSink)(nil).SourceNew), dir, name)
}

func (m *MockSink) FindNearest(addr uint64) *symtab.Function {
	ret := m.ctrl.Call(m, "FindNearest", addr)
	v, _ := ret[0].(*symtab.Function)
	return v
}

func (mr *MockSinkMockRecorder) FindNearest(addr any) *gomock.Call {
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindNearest", reflect.TypeOf((*MockSink)(nil).FindNearest), addr)
}

var _ symtab.Sink = (*MockSink)(nil)
