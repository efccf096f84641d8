// Package cliformat renders symtab.DB contents for terminal output, reusing
// the teacher's cmd/cpu/debug.go role-based fatih/color palette: one color
// per semantic role (address, type name, variable name...) rather than one
// color per literal string, so the same role always looks the same
// regardless of which command printed it.
package cliformat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fatih/color"

	"github.com/gitmesam/godbg/pkg/symtab"
)

var (
	colorAddr     = color.New(color.FgCyan)
	colorHex      = color.New(color.FgMagenta)
	colorValue    = color.New(color.FgWhite, color.Bold)
	colorHeader   = color.New(color.FgWhite, color.Bold, color.Underline)
	colorError    = color.New(color.FgRed, color.Bold)
	colorSuccess  = color.New(color.FgGreen)
	colorWarning  = color.New(color.FgYellow)
	colorSource   = color.New(color.FgHiWhite)
	colorFile     = color.New(color.FgHiBlue)
	colorLine     = color.New(color.FgHiCyan)
	colorVarName  = color.New(color.FgHiGreen)
	colorVarType  = color.New(color.FgHiYellow)
	colorFuncName = color.New(color.FgGreen, color.Bold)
)

// Address formats a memory address the way debug.go colors PC/breakpoint
// addresses: cyan, fixed-width hex.
func Address(addr uint64) string {
	return colorAddr.Sprintf("0x%08x", addr)
}

// Hex formats a bare numeric value in the teacher's colorHex role.
func Hex(v int64) string {
	if v < 0 {
		return colorHex.Sprintf("-0x%x", -v)
	}
	return colorHex.Sprintf("0x%x", v)
}

// Header renders a section title the way debug.go's colorHeader underlines
// a block of debugger output.
func Header(s string) string {
	return colorHeader.Sprint(s)
}

// Error, Warning and Success wrap a message in the matching role color.
func Error(format string, args ...any) string   { return colorError.Sprintf(format, args...) }
func Warning(format string, args ...any) string { return colorWarning.Sprintf(format, args...) }
func Success(format string, args ...any) string { return colorSuccess.Sprintf(format, args...) }

// SourceLocation formats a "file:line" reference the way debug.go colors
// source file and line number separately.
func SourceLocation(file string, line int) string {
	return fmt.Sprintf("%s:%s", colorFile.Sprint(file), colorLine.Sprint(line))
}

// TypeName renders a symtab.Type as a short C-like spelling, colored in the
// teacher's colorVarType role.
func TypeName(t symtab.Type) string {
	return colorVarType.Sprint(typeString(t))
}

func typeString(t symtab.Type) string {
	switch v := t.(type) {
	case nil:
		return "void"
	case *symtab.BasicType:
		return v.Name
	case *symtab.PointerType:
		return typeString(v.Referent) + "*"
	case *symtab.ArrayType:
		return fmt.Sprintf("%s[%d]", typeString(v.Element), v.UpperBound-v.LowerBound+1)
	case *symtab.Typedef:
		return v.Name
	case *symtab.EnumType:
		return "enum " + v.Name
	case *symtab.UDT:
		return udtKindWord(v.Kind) + " " + v.Name
	case *symtab.FuncSigType:
		var params []string
		for _, p := range v.Params {
			params = append(params, typeString(p))
		}
		return fmt.Sprintf("%s(%s)", typeString(v.Return), strings.Join(params, ", "))
	default:
		return "?"
	}
}

func udtKindWord(k symtab.UDTKind) string {
	switch k {
	case symtab.UDTClass:
		return "class"
	case symtab.UDTUnion:
		return "union"
	default:
		return "struct"
	}
}

// Variable renders one variable/parameter line: "name : type" with name in
// colorVarName and type in colorVarType.
func Variable(v *symtab.Variable) string {
	return fmt.Sprintf("%s : %s", colorVarName.Sprint(v.Name), TypeName(v.Type))
}

// FunctionSummary renders one function's header line: address range, name
// and signature, the way debug.go lists breakpoints and the call stack.
func FunctionSummary(f *symtab.Function) string {
	return fmt.Sprintf("%s-%s %s %s",
		Address(f.Low), Address(f.High),
		colorFuncName.Sprint(f.Name),
		TypeName(f.Sig))
}

// numberPattern matches a bare decimal or hex literal inside a formatted
// expression echo, mirroring debug.go's debugImmPattern for query results.
var numberPattern = regexp.MustCompile(`0[xX][0-9a-fA-F]+|-?\b[0-9]+\b`)

// ColorizeExpression highlights numeric literals within an echoed query
// expression, the way colorizeInstructionDebug highlights immediates inside
// a disassembled instruction.
func ColorizeExpression(expr string) string {
	return numberPattern.ReplaceAllStringFunc(expr, func(m string) string {
		return colorValue.Sprint(m)
	})
}
