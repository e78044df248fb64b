package main

import (
	"strconv"
	"strings"
)

// Jasmin mnemonics
const (
	OpLdc           = "ldc"
	OpILoad         = "iload"
	OpIStore        = "istore"
	OpIAdd          = "iadd"
	OpISub          = "isub"
	OpIMul          = "imul"
	OpIDiv          = "idiv"
	OpIRem          = "irem"
	OpINeg          = "ineg"
	OpIfEq          = "ifeq"
	OpIfNe          = "ifne"
	OpIfLe          = "ifle"
	OpIfLt          = "iflt"
	OpIfGe          = "ifge"
	OpIfGt          = "ifgt"
	OpGoto          = "goto"
	OpPop           = "pop"
	OpReturn        = "return"
	OpIReturn       = "ireturn"
	OpGetStatic     = "getstatic"
	OpPutField      = "putfield"
	OpInvokeStatic  = "invokestatic"
	OpInvokeVirtual = "invokevirtual"
)

const systemOut = "java/lang/System/out Ljava/io/PrintStream;"

// instr formats one tab-indented instruction line.
func instr(op string, operands ...string) string {
	if len(operands) == 0 {
		return "\t" + op + "\n"
	}
	return "\t" + op + " " + strings.Join(operands, " ") + "\n"
}

// labelLine formats a label definition.
func labelLine(label string) string {
	return "\t" + label + ":\n"
}

func pushInt(value int64) string {
	return instr(OpLdc, strconv.FormatInt(value, 10))
}

// slotInstr uses the one-byte iload_N/istore_N forms, which only exist for
// slots 0 to 3.
func slotInstr(op string, slot int) string {
	if slot <= 3 {
		return instr(op + "_" + strconv.Itoa(slot))
	}
	return instr(op, strconv.Itoa(slot))
}

func loadLocal(slot int) string {
	return slotInstr(OpILoad, slot)
}

func storeLocal(slot int) string {
	return slotInstr(OpIStore, slot)
}

func getArithmeticOpcode(op string) (string, bool) {
	switch op {
	case "*":
		return OpIMul, true
	case "/":
		return OpIDiv, true
	case "%":
		return OpIRem, true
	case "+":
		return OpIAdd, true
	case "-":
		return OpISub, true
	default:
		return "", false
	}
}

// getConditionBranch maps a relational operator to the branch taken when
// (left - right) compared against zero makes the relation true.
func getConditionBranch(op string) (string, bool) {
	switch op {
	case "==":
		return OpIfEq, true
	case "!=":
		return OpIfNe, true
	case "<=":
		return OpIfLe, true
	case "<":
		return OpIfLt, true
	case ">=":
		return OpIfGe, true
	case ">":
		return OpIfGt, true
	default:
		return "", false
	}
}

func isLogicalOp(op string) bool {
	return op == "and" || op == "or"
}
