package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestDeclarationShapes(t *testing.T) {
	ast, l := parseProgram("int a; int b = 3; int c[4]; void f() { }")
	be.True(t, !l.Errors.HasErrors())
	a, b, c, f := ast.Children[0], ast.Children[1], ast.Children[2], ast.Children[3]

	be.True(t, !isFunDecl(a) && !isArrayDecl(a) && !isDeclWithInit(a))
	be.True(t, !isFunDecl(b) && !isArrayDecl(b) && isDeclWithInit(b))
	be.True(t, !isFunDecl(c) && isArrayDecl(c) && !isDeclWithInit(c))
	be.True(t, isFunDecl(f))

	be.Equal(t, initValue(b), int64(3))
	be.Equal(t, varKind(a), VarInt)
	be.Equal(t, varKind(c), VarIntArray)
	be.Equal(t, funName(f), "f")
}

func TestStatementShapes(t *testing.T) {
	ret, _ := parseStmt("return;")
	be.True(t, isVoidReturn(ret))
	ret, _ = parseStmt("return 1;")
	be.True(t, !isVoidReturn(ret))

	stmt, _ := parseStmt("if (a) b = 1;")
	be.True(t, !hasElse(stmt))
	stmt, _ = parseStmt("if (a) b = 1; else b = 2;")
	be.True(t, hasElse(stmt))
}

func TestTypeCode(t *testing.T) {
	code, ok := typeCode("int")
	be.True(t, ok)
	be.Equal(t, code, "I")

	code, ok = typeCode("void")
	be.True(t, ok)
	be.Equal(t, code, "V")

	_, ok = typeCode("char")
	be.True(t, !ok)
}

func TestParamTypeCodes(t *testing.T) {
	tests := []struct {
		source  string
		codes   string
		wantErr string
	}{
		{"void f() { }", "", ""},
		{"void f(void) { }", "", ""},
		{"int f(int a) { }", "I", ""},
		{"int f(int a, int b, int c) { }", "III", ""},
		{"int f(int a, int v[]) { }", "", "array parameter 'v' of function 'f' is not supported"},
		{"int f(void x) { }", "", "parameter 'x' of function 'f' must be int"},
	}

	for _, tt := range tests {
		ast, _ := parseProgram(tt.source)
		codes, err := paramTypeCodes(ast.Children[0])
		if tt.wantErr != "" {
			be.Err(t, err, ErrMalformedNode)
			be.Err(t, err, tt.wantErr)
			continue
		}
		be.Err(t, err, nil)
		be.Equal(t, codes, tt.codes)
	}
}

func TestEndsWithReturn(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{"{ }", false},
		{"{ return; }", true},
		{"{ f(); return 1; }", true},
		{"{ return 1; f(); }", false},
		{"{ if (a) return 1; }", false},
		{"{ { return 1; } }", false},
	}

	for _, tt := range tests {
		block, _ := parseStmt(tt.body)
		be.Equal(t, endsWithReturn(block), tt.want)
	}
}

func TestFuncProlog(t *testing.T) {
	be.Equal(t, funcProlog("Test"),
		".class public Test\n"+
			".super java/lang/Object\n"+
			".method public <init>()V\n"+
			"\taload_0\n"+
			"\tinvokenonvirtual java/lang/Object/<init>()V\n"+
			"\treturn\n"+
			".end method\n")
}

func TestDeleteEmptyLines(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"\n\n\n", ""},
		{"a\n\nb\n", "a\nb\n"},
		{"a\n \t\nb", "a\nb\n"},
		{"\n\tldc 0\n\n\tireturn\n\n", "\tldc 0\n\tireturn\n"},
	}

	for _, tt := range tests {
		be.Equal(t, deleteEmptyLines(tt.input), tt.want)
	}
}

func TestInstructionFormatting(t *testing.T) {
	be.Equal(t, instr(OpIAdd), "\tiadd\n")
	be.Equal(t, instr(OpGoto, "label3"), "\tgoto label3\n")
	be.Equal(t, labelLine("label3"), "\tlabel3:\n")
	be.Equal(t, pushInt(-5), "\tldc -5\n")
	be.Equal(t, pushInt(2147483647), "\tldc 2147483647\n")
}

func TestLocalSlotInstructions(t *testing.T) {
	tests := []struct {
		slot  int
		load  string
		store string
	}{
		{0, "\tiload_0\n", "\tistore_0\n"},
		{1, "\tiload_1\n", "\tistore_1\n"},
		{3, "\tiload_3\n", "\tistore_3\n"},
		{4, "\tiload 4\n", "\tistore 4\n"},
		{31, "\tiload 31\n", "\tistore 31\n"},
	}

	for _, tt := range tests {
		be.Equal(t, loadLocal(tt.slot), tt.load)
		be.Equal(t, storeLocal(tt.slot), tt.store)
	}
}

func TestOpcodeTables(t *testing.T) {
	arithmetic := map[string]string{"*": "imul", "/": "idiv", "%": "irem", "+": "iadd", "-": "isub"}
	for op, want := range arithmetic {
		got, ok := getArithmeticOpcode(op)
		be.True(t, ok)
		be.Equal(t, got, want)
	}

	branches := map[string]string{"==": "ifeq", "!=": "ifne", "<=": "ifle", "<": "iflt", ">=": "ifge", ">": "ifgt"}
	for op, want := range branches {
		got, ok := getConditionBranch(op)
		be.True(t, ok)
		be.Equal(t, got, want)
	}

	_, ok := getArithmeticOpcode("<")
	be.True(t, !ok)
	_, ok = getConditionBranch("+")
	be.True(t, !ok)
	be.True(t, isLogicalOp("and") && isLogicalOp("or") && !isLogicalOp("&&"))
}
