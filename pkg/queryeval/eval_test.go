package queryeval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitmesam/godbg/pkg/symtab"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected []Token
		wantErr  bool
	}{
		{
			name: "decimal number",
			expr: "123",
			expected: []Token{
				{Type: TokenNumber, Value: "123", Num: 123},
			},
		},
		{
			name: "hex number",
			expr: "0x1a2b",
			expected: []Token{
				{Type: TokenNumber, Value: "0x1a2b", Num: 0x1a2b},
			},
		},
		{
			name: "binary number with separators",
			expr: "0b1111_0000",
			expected: []Token{
				{Type: TokenNumber, Value: "0b1111_0000", Num: 0xF0},
			},
		},
		{
			name: "symbol",
			expr: "main",
			expected: []Token{
				{Type: TokenSymbol, Value: "main"},
			},
		},
		{
			name: "arithmetic expression",
			expr: "main+4",
			expected: []Token{
				{Type: TokenSymbol, Value: "main"},
				{Type: TokenPlus, Value: "+"},
				{Type: TokenNumber, Value: "4", Num: 4},
			},
		},
		{
			name: "shift operators",
			expr: "1<<2>>1",
			expected: []Token{
				{Type: TokenNumber, Value: "1", Num: 1},
				{Type: TokenShiftLeft, Value: "<<"},
				{Type: TokenNumber, Value: "2", Num: 2},
				{Type: TokenShiftRight, Value: ">>"},
				{Type: TokenNumber, Value: "1", Num: 1},
			},
		},
		{
			name:    "invalid character",
			expr:    "main@4",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func testDB(t *testing.T) *symtab.DB {
	t.Helper()
	db := symtab.NewDB(0)
	c := db.NewCompiland("main.c")
	db.NewFunction(c, "main", db.NewFuncSig(nil), 0x1000, 0x1040)
	db.NewGlobal(c, "g_counter", db.NewBasic("int", 4, symtab.Int), 0x4000, true)
	return db
}

func TestEval_Arithmetic(t *testing.T) {
	e := NewEvaluator(testDB(t))

	tests := []struct {
		expr string
		want uint64
	}{
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"10-4/2", 8},
		{"7%3", 1},
		{"1<<4", 16},
		{"0xf0>>4", 0xf},
		{"0b1010|0b0101", 0xf},
		{"0xff^0x0f", 0xf0},
		{"0xff&0x0f", 0x0f},
		{"-5+10", 5},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := e.Eval(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEval_SymbolResolution(t *testing.T) {
	e := NewEvaluator(testDB(t))

	got, err := e.Eval("main")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1000), got)

	got, err = e.Eval("main+4")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1004), got)

	got, err = e.Eval("g_counter")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x4000), got)

	_, err = e.Eval("unknown_symbol")
	assert.Error(t, err)
}

func TestEval_BracketWithoutMemoryErrors(t *testing.T) {
	e := NewEvaluator(testDB(t))
	_, err := e.Eval("[main]")
	assert.Error(t, err)
}

type fakeMemory struct {
	words map[uint64]uint32
}

func (m fakeMemory) ReadUint32(addr uint64) (uint32, error) {
	return m.words[addr], nil
}

func TestEval_BracketDereferencesWithMemory(t *testing.T) {
	e := NewEvaluator(testDB(t))
	e.Mem = fakeMemory{words: map[uint64]uint32{0x4000: 42}}

	got, err := e.Eval("[g_counter]")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got)
}

func TestEval_DivisionByZero(t *testing.T) {
	e := NewEvaluator(testDB(t))
	_, err := e.Eval("1/0")
	assert.Error(t, err)
}

func TestEval_MissingParen(t *testing.T) {
	e := NewEvaluator(testDB(t))
	_, err := e.Eval("(1+2")
	assert.Error(t, err)
}
