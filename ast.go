package main

import (
	"strconv"
	"strings"
)

// NodeKind represents different types of AST nodes
type NodeKind string

const (
	NodeProgram     NodeKind = "NodeProgram"
	NodeVar         NodeKind = "NodeVar"
	NodeFunc        NodeKind = "NodeFunc"
	NodeParam       NodeKind = "NodeParam"
	NodeBlock       NodeKind = "NodeBlock"
	NodeExprStmt    NodeKind = "NodeExprStmt"
	NodeIf          NodeKind = "NodeIf"
	NodeWhile       NodeKind = "NodeWhile"
	NodeReturn      NodeKind = "NodeReturn"
	NodeInteger     NodeKind = "NodeInteger"
	NodeIdent       NodeKind = "NodeIdent"
	NodeParen       NodeKind = "NodeParen"
	NodeAssign      NodeKind = "NodeAssign"
	NodeUnary       NodeKind = "NodeUnary"
	NodeBinary      NodeKind = "NodeBinary"
	NodeCall        NodeKind = "NodeCall"
	NodeIndex       NodeKind = "NodeIndex"
	NodeIndexAssign NodeKind = "NodeIndexAssign"
)

// Type keywords as they appear in source.
const (
	TypeInt  = "int"
	TypeVoid = "void"
)

// ASTNode represents a node in the Abstract Syntax Tree
type ASTNode struct {
	Kind NodeKind
	// NodeIdent, NodeAssign, NodeCall, NodeIndex, NodeIndexAssign: the name
	// being referenced. NodeVar, NodeFunc, NodeParam: the declared name.
	String string
	// NodeInteger: the literal. NodeVar: the initializer (HasInit) or the
	// array length (IsArray).
	Integer int64
	// NodeUnary, NodeBinary:
	Op string
	// NodeVar, NodeParam: element type. NodeFunc: return type.
	TypeName string
	IsArray  bool
	HasInit  bool
	// NodeFunc:
	Params []*ASTNode
	// NodeBlock: local declarations, which precede Children (the statements).
	Locals   []*ASTNode
	Children []*ASTNode

	Line   int
	Column int
}

// ToSExpr converts an AST node to s-expression string representation
func ToSExpr(node *ASTNode) string {
	if node == nil {
		return "nil"
	}
	switch node.Kind {
	case NodeProgram:
		return "(program" + joinSExpr(node.Children) + ")"
	case NodeVar:
		if node.IsArray {
			return "(array " + strconv.Quote(node.String) + " " + node.TypeName + " " + strconv.FormatInt(node.Integer, 10) + ")"
		}
		if node.HasInit {
			return "(var " + strconv.Quote(node.String) + " " + node.TypeName + " (integer " + strconv.FormatInt(node.Integer, 10) + "))"
		}
		return "(var " + strconv.Quote(node.String) + " " + node.TypeName + ")"
	case NodeFunc:
		return "(func " + strconv.Quote(node.String) + " " + node.TypeName + " (" + strings.TrimPrefix(joinSExpr(node.Params), " ") + ")" + joinSExpr(node.Children) + ")"
	case NodeParam:
		if node.IsArray {
			return "(param " + strconv.Quote(node.String) + " " + node.TypeName + " [])"
		}
		return "(param " + strconv.Quote(node.String) + " " + node.TypeName + ")"
	case NodeBlock:
		return "(block" + joinSExpr(node.Locals) + joinSExpr(node.Children) + ")"
	case NodeExprStmt:
		return "(expr" + joinSExpr(node.Children) + ")"
	case NodeIf:
		return "(if" + joinSExpr(node.Children) + ")"
	case NodeWhile:
		return "(while" + joinSExpr(node.Children) + ")"
	case NodeReturn:
		return "(return" + joinSExpr(node.Children) + ")"
	case NodeInteger:
		return "(integer " + strconv.FormatInt(node.Integer, 10) + ")"
	case NodeIdent:
		return "(ident " + strconv.Quote(node.String) + ")"
	case NodeParen:
		return "(paren" + joinSExpr(node.Children) + ")"
	case NodeAssign:
		return "(assign " + strconv.Quote(node.String) + joinSExpr(node.Children) + ")"
	case NodeUnary:
		return "(unary " + strconv.Quote(node.Op) + joinSExpr(node.Children) + ")"
	case NodeBinary:
		return "(binary " + strconv.Quote(node.Op) + joinSExpr(node.Children) + ")"
	case NodeCall:
		return "(call " + strconv.Quote(node.String) + joinSExpr(node.Children) + ")"
	case NodeIndex:
		return "(idx " + strconv.Quote(node.String) + joinSExpr(node.Children) + ")"
	case NodeIndexAssign:
		return "(idx-assign " + strconv.Quote(node.String) + joinSExpr(node.Children) + ")"
	default:
		return ""
	}
}

// joinSExpr renders each node with a leading space.
func joinSExpr(nodes []*ASTNode) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(" ")
		sb.WriteString(ToSExpr(n))
	}
	return sb.String()
}
