package main

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestGlobalInitializers(t *testing.T) {
	tests := []struct {
		source string
		text   string
	}{
		{"int x = 5;", "\tputfield x\n"},
		{"int x = 0;", "\tputfield x\n"},
		{"int x;", ""},
		{"int a[3];", ""},
		{"int x = 1; int y; int z = 2;", "\tputfield x\n\tputfield z\n"},
	}

	for _, tt := range tests {
		asm := mustCompile(t, tt.source)
		be.Equal(t, asm, testProlog+tt.text)
	}
}

func TestGlobalInitializerIsRecorded(t *testing.T) {
	ast, _ := parseProgram("int x = 42; int a[3];")
	gen := NewGenerator(DefaultOptions())
	_, err := gen.GenerateProgram(ast)
	be.Err(t, err, nil)

	x := gen.Symbols().LookupVariable("x")
	be.Equal(t, *x, VariableBinding{Name: "x", Kind: VarInt, Slot: 0, InitValue: 42})
	a := gen.Symbols().LookupVariable("a")
	be.Equal(t, a.Kind, VarIntArray)
	be.Equal(t, a.Slot, 1)
}

func TestLocalInitializers(t *testing.T) {
	tests := []struct {
		decls string
		body  string
	}{
		{"int x = 5;", "\tldc 5\n\tistore_0\n"},
		{"int x;", ""},
		{"int v[8];", ""},
		{"int x; int y = 3;", "\tldc 3\n\tistore_1\n"},
		{"int a; int b; int c; int d; int e = 2147483647;", "\tldc 2147483647\n\tistore 4\n"},
	}

	for _, tt := range tests {
		asm := mustCompile(t, "void f() { "+tt.decls+" }")
		be.Equal(t, methodBody(t, asm, "f"), tt.body+"\treturn\n")
	}
}

func TestLocalInitializersRunBeforeStatements(t *testing.T) {
	asm := mustCompile(t, `
void main() {
    int a = 1;
    int b = 2;
    _print(a + b);
}
`)
	body := methodBody(t, asm, "main")
	be.True(t, strings.HasPrefix(body, "\tldc 1\n\tistore_1\n\tldc 2\n\tistore_2\n"))
}
