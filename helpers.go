package main

import (
	"fmt"
	"strings"
)

// Shape predicates and extractors used by the code generator.

func isFunDecl(decl *ASTNode) bool {
	return decl.Kind == NodeFunc
}

// var_decl : type_spec IDENT '[' LITERAL ']' ';'
func isArrayDecl(decl *ASTNode) bool {
	return decl.IsArray
}

// var_decl : type_spec IDENT '=' LITERAL ';'
func isDeclWithInit(decl *ASTNode) bool {
	return !decl.IsArray && decl.HasInit
}

// return_stmt : RETURN ';'
func isVoidReturn(stmt *ASTNode) bool {
	return len(stmt.Children) == 0
}

// if_stmt : IF '(' expr ')' stmt ELSE stmt
func hasElse(stmt *ASTNode) bool {
	return len(stmt.Children) == 3
}

func initValue(decl *ASTNode) int64 {
	return decl.Integer
}

func funName(node *ASTNode) string {
	return node.String
}

func paramName(param *ASTNode) string {
	return param.String
}

func varKind(decl *ASTNode) VarKind {
	if decl.IsArray {
		return VarIntArray
	}
	return VarInt
}

// typeCode maps a type keyword to its descriptor letter.
func typeCode(typeName string) (string, bool) {
	switch typeName {
	case TypeInt:
		return "I", true
	case TypeVoid:
		return "V", true
	default:
		return "", false
	}
}

// paramTypeCodes builds the parameter part of a method descriptor. Array
// parameters have no descriptor encoding.
func paramTypeCodes(fn *ASTNode) (string, error) {
	var codes strings.Builder
	for _, param := range fn.Params {
		if param == nil {
			return "", malformedNode(fn, "nil parameter of function '%s'", funName(fn))
		}
		if param.IsArray {
			return "", malformedNode(param, "array parameter '%s' of function '%s' is not supported", paramName(param), funName(fn))
		}
		if param.TypeName != TypeInt {
			return "", malformedNode(param, "parameter '%s' of function '%s' must be int", paramName(param), funName(fn))
		}
		code, _ := typeCode(param.TypeName)
		codes.WriteString(code)
	}
	return codes.String(), nil
}

// endsWithReturn reports whether the last statement of a function body is a
// return statement.
func endsWithReturn(body *ASTNode) bool {
	if len(body.Children) == 0 {
		return false
	}
	return body.Children[len(body.Children)-1].Kind == NodeReturn
}

// funcProlog is the class header and trivial constructor every program
// starts with.
func funcProlog(className string) string {
	return fmt.Sprintf(".class public %s\n", className) +
		".super java/lang/Object\n" +
		".method public <init>()V\n" +
		"\taload_0\n" +
		"\tinvokenonvirtual java/lang/Object/<init>()V\n" +
		"\treturn\n" +
		".end method\n"
}

// deleteEmptyLines drops blank lines and terminates every kept line with a
// newline.
func deleteEmptyLines(program string) string {
	var sb strings.Builder
	for _, line := range strings.Split(program, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
