package main

import (
	"strconv"
	"strings"
)

// Generator lowers a MiniC AST to Jasmin assembler text in a single
// post-order pass. It owns the symbol table for the whole compilation.
type Generator struct {
	opts    Options
	symbols *SymbolTable
}

func NewGenerator(opts Options) *Generator {
	return &Generator{
		opts:    opts,
		symbols: NewSymbolTable(),
	}
}

// Symbols exposes the generator's symbol table.
func (g *Generator) Symbols() *SymbolTable {
	return g.symbols
}

// CompileToJasmin generates the assembler text for a whole program.
func CompileToJasmin(program *ASTNode, opts Options) (string, error) {
	return NewGenerator(opts).GenerateProgram(program)
}

// GenerateProgram emits the prologue, then the text of every global variable
// declaration, then every function, each group in source order. No text is
// returned if any construct fails to generate.
func (g *Generator) GenerateProgram(program *ASTNode) (string, error) {
	if program == nil || program.Kind != NodeProgram {
		return "", malformedNode(program, "expected a program")
	}
	if err := g.registerFunctions(program); err != nil {
		return "", err
	}

	var varDecls, funDecls strings.Builder
	for _, decl := range program.Children {
		text, err := g.generateDecl(decl)
		if err != nil {
			return "", err
		}
		if isFunDecl(decl) {
			funDecls.WriteString(text)
		} else {
			varDecls.WriteString(text)
		}
	}

	return deleteEmptyLines(funcProlog(g.opts.ClassName) + varDecls.String() + funDecls.String()), nil
}

// registerFunctions records every function's descriptor before any body is
// generated, so a call may precede the callee's declaration.
func (g *Generator) registerFunctions(program *ASTNode) error {
	seenMain := false
	for _, decl := range program.Children {
		if decl == nil {
			return malformedNode(program, "nil declaration")
		}
		if !isFunDecl(decl) {
			continue
		}
		name := funName(decl)
		if name == MainFunctionName {
			if seenMain {
				return duplicateDeclaration("function", name)
			}
			seenMain = true
			continue
		}
		params, err := paramTypeCodes(decl)
		if err != nil {
			return err
		}
		ret, ok := typeCode(decl.TypeName)
		if !ok {
			return malformedNode(decl, "unknown return type '%s' of function '%s'", decl.TypeName, name)
		}
		if _, err := g.symbols.RegisterFunctionSignature(name, params, ret); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateDecl(decl *ASTNode) (string, error) {
	switch decl.Kind {
	case NodeVar:
		return g.generateGlobalVar(decl)
	case NodeFunc:
		return g.generateFunction(decl)
	default:
		return "", malformedNode(decl, "unexpected top-level %s", decl.Kind)
	}
}

// generateGlobalVar declares the global. Only initialized globals produce
// text; real field initialization is not implemented yet.
func (g *Generator) generateGlobalVar(decl *ASTNode) (string, error) {
	if _, err := g.symbols.DeclareGlobal(decl.String, varKind(decl), initValue(decl)); err != nil {
		return "", err
	}
	if isDeclWithInit(decl) {
		return instr(OpPutField, decl.String), nil
	}
	return "", nil
}

func (g *Generator) generateFunction(fn *ASTNode) (string, error) {
	name := funName(fn)
	if len(fn.Children) != 1 || fn.Children[0] == nil || fn.Children[0].Kind != NodeBlock {
		return "", malformedNode(fn, "function '%s' has no body", name)
	}

	g.symbols.ResetForNewFunction()
	if name == MainFunctionName {
		// main(String[] args)
		if _, err := g.symbols.DeclareLocal("args", VarIntArray, 0); err != nil {
			return "", err
		}
	} else if err := g.symbols.DeclareParameters(fn.Params); err != nil {
		return "", err
	}

	signature, err := g.symbols.LookupSignature(name)
	if err != nil {
		return "", err
	}
	body, err := g.generateBlock(fn.Children[0])
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(".method public static " + signature + "\n")
	sb.WriteString("\t.limit stack " + strconv.Itoa(g.opts.StackLimit) + "\n")
	sb.WriteString("\t.limit locals " + strconv.Itoa(g.opts.LocalsLimit) + "\n")
	sb.WriteString(body)
	if !endsWithReturn(fn.Children[0]) {
		sb.WriteString(instr(OpReturn))
	}
	sb.WriteString(".end method\n")
	return sb.String(), nil
}

func (g *Generator) generateLocalVar(decl *ASTNode) (string, error) {
	binding, err := g.symbols.DeclareLocal(decl.String, varKind(decl), initValue(decl))
	if err != nil {
		return "", err
	}
	if isArrayDecl(decl) || !isDeclWithInit(decl) {
		return "", nil
	}
	return pushInt(initValue(decl)) + storeLocal(binding.Slot), nil
}

// generateBlock emits the local declarations, then the statements, each
// newline-terminated.
func (g *Generator) generateBlock(block *ASTNode) (string, error) {
	var sb strings.Builder
	for _, local := range block.Locals {
		if local == nil {
			return "", malformedNode(block, "nil local declaration")
		}
		text, err := g.generateLocalVar(local)
		if err != nil {
			return "", err
		}
		sb.WriteString(text + "\n")
	}
	for _, stmt := range block.Children {
		text, err := g.generateStatement(stmt)
		if err != nil {
			return "", err
		}
		sb.WriteString(text + "\n")
	}
	return sb.String(), nil
}

func (g *Generator) generateStatement(stmt *ASTNode) (string, error) {
	if stmt == nil {
		return "", malformedNode(nil, "nil statement")
	}
	switch stmt.Kind {
	case NodeExprStmt:
		if err := expectChildren(stmt, 1, 1); err != nil {
			return "", err
		}
		// The expression's value, if any, stays on the operand stack.
		return g.generateExpression(stmt.Children[0])
	case NodeBlock:
		return g.generateBlock(stmt)
	case NodeIf:
		return g.generateIf(stmt)
	case NodeWhile:
		return g.generateWhile(stmt)
	case NodeReturn:
		if err := expectChildren(stmt, 0, 1); err != nil {
			return "", err
		}
		if isVoidReturn(stmt) {
			return instr(OpReturn), nil
		}
		value, err := g.generateExpression(stmt.Children[0])
		if err != nil {
			return "", err
		}
		return value + instr(OpIReturn), nil
	default:
		return "", malformedNode(stmt, "unexpected statement %s", stmt.Kind)
	}
}

func (g *Generator) generateIf(stmt *ASTNode) (string, error) {
	if err := expectChildren(stmt, 2, 3); err != nil {
		return "", err
	}
	cond, err := g.generateExpression(stmt.Children[0])
	if err != nil {
		return "", err
	}
	then, err := g.generateStatement(stmt.Children[1])
	if err != nil {
		return "", err
	}

	if !hasElse(stmt) {
		lend := g.symbols.NewLabel()
		return cond + "\n" +
			instr(OpIfEq, lend) +
			then + "\n" +
			labelLine(lend), nil
	}

	els, err := g.generateStatement(stmt.Children[2])
	if err != nil {
		return "", err
	}
	lend := g.symbols.NewLabel()
	lelse := g.symbols.NewLabel()
	return cond + "\n" +
		instr(OpIfEq, lelse) +
		then + "\n" +
		instr(OpGoto, lend) +
		labelLine(lelse) +
		els + "\n" +
		labelLine(lend), nil
}

func (g *Generator) generateWhile(stmt *ASTNode) (string, error) {
	if err := expectChildren(stmt, 2, 2); err != nil {
		return "", err
	}
	cond, err := g.generateExpression(stmt.Children[0])
	if err != nil {
		return "", err
	}
	body, err := g.generateStatement(stmt.Children[1])
	if err != nil {
		return "", err
	}

	lwhile := g.symbols.NewLabel()
	lend := g.symbols.NewLabel()
	// The condition leaves 0 on the stack when false.
	return labelLine(lwhile) +
		cond + "\n" +
		instr(OpIfEq, lend) +
		body + "\n" +
		instr(OpGoto, lwhile) +
		labelLine(lend), nil
}

func (g *Generator) generateExpression(expr *ASTNode) (string, error) {
	if expr == nil {
		return "", malformedNode(nil, "nil expression")
	}
	switch expr.Kind {
	case NodeInteger:
		return pushInt(expr.Integer), nil

	case NodeIdent:
		binding := g.symbols.LookupVariable(expr.String)
		if binding == nil {
			return "", unknownVariable(expr.String)
		}
		if binding.Kind != VarInt {
			return "", malformedNode(expr, "array '%s' used as a value", expr.String)
		}
		return loadLocal(binding.Slot), nil

	case NodeParen:
		if err := expectChildren(expr, 1, 1); err != nil {
			return "", err
		}
		return g.generateExpression(expr.Children[0])

	case NodeAssign:
		if err := expectChildren(expr, 1, 1); err != nil {
			return "", err
		}
		value, err := g.generateExpression(expr.Children[0])
		if err != nil {
			return "", err
		}
		binding := g.symbols.LookupVariable(expr.String)
		if binding == nil {
			return "", unknownVariable(expr.String)
		}
		if binding.Kind != VarInt {
			return "", malformedNode(expr, "cannot assign to array '%s'", expr.String)
		}
		return value + storeLocal(binding.Slot), nil

	case NodeUnary:
		return g.generateUnary(expr)

	case NodeBinary:
		return g.generateBinary(expr)

	case NodeCall:
		return g.generateCall(expr)

	case NodeIndex, NodeIndexAssign:
		return "", malformedNode(expr, "array element access '%s[...]' is not supported", expr.String)

	default:
		return "", malformedNode(expr, "unexpected expression %s", expr.Kind)
	}
}

func (g *Generator) generateUnary(expr *ASTNode) (string, error) {
	if err := expectChildren(expr, 1, 1); err != nil {
		return "", err
	}
	operand, err := g.generateExpression(expr.Children[0])
	if err != nil {
		return "", err
	}

	switch expr.Op {
	case "-":
		return operand + instr(OpINeg), nil
	case "+":
		return operand, nil
	case "++", "--":
		target := expr.Children[0]
		if target.Kind != NodeIdent {
			return "", malformedNode(expr, "operand of '%s' must be a variable", expr.Op)
		}
		slot, err := g.symbols.LookupSlot(target.String)
		if err != nil {
			return "", err
		}
		op := OpIAdd
		if expr.Op == "--" {
			op = OpISub
		}
		return operand +
			pushInt(1) +
			instr(op) +
			storeLocal(slot), nil
	case "!":
		ltrue := g.symbols.NewLabel()
		lend := g.symbols.NewLabel()
		return operand +
			instr(OpIfEq, ltrue) +
			pushInt(0) +
			instr(OpGoto, lend) +
			labelLine(ltrue) +
			pushInt(1) +
			labelLine(lend), nil
	default:
		return "", malformedNode(expr, "unknown unary operator '%s'", expr.Op)
	}
}

func (g *Generator) generateBinary(expr *ASTNode) (string, error) {
	if err := expectChildren(expr, 2, 2); err != nil {
		return "", err
	}
	left, err := g.generateExpression(expr.Children[0])
	if err != nil {
		return "", err
	}
	right, err := g.generateExpression(expr.Children[1])
	if err != nil {
		return "", err
	}
	operands := left + right

	if opcode, ok := getArithmeticOpcode(expr.Op); ok {
		return operands + instr(opcode), nil
	}

	if branch, ok := getConditionBranch(expr.Op); ok {
		ltrue := g.symbols.NewLabel()
		lend := g.symbols.NewLabel()
		return operands +
			instr(OpISub) +
			instr(branch, ltrue) +
			pushInt(0) +
			instr(OpGoto, lend) +
			labelLine(ltrue) +
			pushInt(1) +
			labelLine(lend), nil
	}

	if isLogicalOp(expr.Op) {
		// Only the right operand is tested; see DESIGN.md.
		branch := OpIfNe
		if expr.Op == "or" {
			branch = OpIfEq
		}
		lend := g.symbols.NewLabel()
		return operands +
			instr(branch, lend) +
			instr(OpPop) +
			pushInt(0) +
			labelLine(lend), nil
	}

	return "", malformedNode(expr, "unknown binary operator '%s'", expr.Op)
}

func (g *Generator) generateCall(expr *ASTNode) (string, error) {
	name := funName(expr)
	signature, err := g.symbols.LookupSignature(name)
	if err != nil {
		return "", err
	}

	var args strings.Builder
	for _, arg := range expr.Children {
		text, err := g.generateExpression(arg)
		if err != nil {
			return "", err
		}
		args.WriteString(text)
	}

	if name == PrintFunctionName {
		return instr(OpGetStatic, systemOut) +
			args.String() +
			instr(OpInvokeVirtual, signature), nil
	}
	return args.String() +
		instr(OpInvokeStatic, g.opts.ClassName+"/"+signature), nil
}

// expectChildren fails unless node has between lo and hi children, none of
// them nil.
func expectChildren(node *ASTNode, lo, hi int) error {
	if n := len(node.Children); n < lo || n > hi {
		if lo == hi {
			return malformedNode(node, "%s needs %d children, got %d", node.Kind, lo, n)
		}
		return malformedNode(node, "%s needs %d to %d children, got %d", node.Kind, lo, hi, n)
	}
	for i, child := range node.Children {
		if child == nil {
			return malformedNode(node, "%s child %d is nil", node.Kind, i)
		}
	}
	return nil
}
