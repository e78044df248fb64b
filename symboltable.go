package main

import "strconv"

// VarKind is the storage shape of a declared variable.
type VarKind int

const (
	VarInt VarKind = iota
	VarIntArray
)

func (k VarKind) String() string {
	switch k {
	case VarInt:
		return "INT"
	case VarIntArray:
		return "INTARRAY"
	default:
		return "VarKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// VariableBinding is one declared global or local variable.
type VariableBinding struct {
	Name      string
	Kind      VarKind
	Slot      int
	InitValue int64
}

// FunctionSignature maps a MiniC function to its JVM method descriptor,
// e.g. "add(II)I".
type FunctionSignature struct {
	Name       string
	Descriptor string
	Builtin    bool
}

// Built-in functions every program can call.
const (
	PrintFunctionName = "_print"
	MainFunctionName  = "main"

	printDescriptor = "java/io/PrintStream/println(I)V"
	mainDescriptor  = "main([Ljava/lang/String;)V"
)

// SymbolTable tracks globals, the current function's locals and every
// function signature, along with the slot and label counters.
//
// Locals and labels are scoped to one function: ResetForNewFunction must be
// called before each function's parameters are declared.
type SymbolTable struct {
	globals   map[string]*VariableBinding
	locals    map[string]*VariableBinding
	functions map[string]*FunctionSignature

	nextGlobalSlot int
	nextLocalSlot  int
	nextLabelID    int
}

// NewSymbolTable creates a table with the built-in functions registered.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{
		globals:   make(map[string]*VariableBinding),
		locals:    make(map[string]*VariableBinding),
		functions: make(map[string]*FunctionSignature),
	}
	st.functions[PrintFunctionName] = &FunctionSignature{
		Name:       PrintFunctionName,
		Descriptor: printDescriptor,
		Builtin:    true,
	}
	st.functions[MainFunctionName] = &FunctionSignature{
		Name:       MainFunctionName,
		Descriptor: mainDescriptor,
		Builtin:    true,
	}
	return st
}

// ResetForNewFunction discards all locals and restarts local slot and label
// numbering at 0.
func (st *SymbolTable) ResetForNewFunction() {
	st.locals = make(map[string]*VariableBinding)
	st.nextLocalSlot = 0
	st.nextLabelID = 0
}

// DeclareGlobal adds a global variable in the next global slot.
func (st *SymbolTable) DeclareGlobal(name string, kind VarKind, initValue int64) (*VariableBinding, error) {
	if _, exists := st.globals[name]; exists {
		return nil, duplicateDeclaration("global variable", name)
	}
	binding := &VariableBinding{Name: name, Kind: kind, Slot: st.nextGlobalSlot, InitValue: initValue}
	st.globals[name] = binding
	st.nextGlobalSlot++
	return binding, nil
}

// DeclareLocal adds a local variable in the next local slot. A local may
// shadow a global of the same name.
func (st *SymbolTable) DeclareLocal(name string, kind VarKind, initValue int64) (*VariableBinding, error) {
	if _, exists := st.locals[name]; exists {
		return nil, duplicateDeclaration("local variable", name)
	}
	binding := &VariableBinding{Name: name, Kind: kind, Slot: st.nextLocalSlot, InitValue: initValue}
	st.locals[name] = binding
	st.nextLocalSlot++
	return binding, nil
}

// DeclareParameters declares each parameter as a local, left to right, so
// parameters occupy the lowest slots as the JVM calling convention expects.
func (st *SymbolTable) DeclareParameters(params []*ASTNode) error {
	for _, param := range params {
		kind := VarInt
		if param.IsArray {
			kind = VarIntArray
		}
		if _, err := st.DeclareLocal(paramName(param), kind, 0); err != nil {
			return err
		}
	}
	return nil
}

// RegisterFunctionSignature records name(paramTypeCodes)returnTypeCode and
// returns the descriptor.
func (st *SymbolTable) RegisterFunctionSignature(name, paramTypeCodes, returnTypeCode string) (string, error) {
	if existing, exists := st.functions[name]; exists {
		if existing.Builtin {
			return "", duplicateDeclaration("built-in function", name)
		}
		return "", duplicateDeclaration("function", name)
	}
	descriptor := name + "(" + paramTypeCodes + ")" + returnTypeCode
	st.functions[name] = &FunctionSignature{Name: name, Descriptor: descriptor}
	return descriptor, nil
}

// LookupSignature returns the method descriptor of a function.
func (st *SymbolTable) LookupSignature(name string) (string, error) {
	fn, ok := st.functions[name]
	if !ok {
		return "", unknownFunction(name)
	}
	return fn.Descriptor, nil
}

// LookupVariable resolves a name in the local scope, then the global scope.
// It returns nil if neither scope has it.
func (st *SymbolTable) LookupVariable(name string) *VariableBinding {
	if binding, ok := st.locals[name]; ok {
		return binding
	}
	if binding, ok := st.globals[name]; ok {
		return binding
	}
	return nil
}

// LookupSlot returns the slot of a variable, local first.
func (st *SymbolTable) LookupSlot(name string) (int, error) {
	binding := st.LookupVariable(name)
	if binding == nil {
		return 0, unknownVariable(name)
	}
	return binding.Slot, nil
}

// LookupType returns the kind of a variable, local first.
func (st *SymbolTable) LookupType(name string) (VarKind, error) {
	binding := st.LookupVariable(name)
	if binding == nil {
		return 0, unknownVariable(name)
	}
	return binding.Kind, nil
}

// NewLabel returns a label unique within the current function.
func (st *SymbolTable) NewLabel() string {
	label := "label" + strconv.Itoa(st.nextLabelID)
	st.nextLabelID++
	return label
}

// LocalCount is the number of local slots handed out in the current function.
func (st *SymbolTable) LocalCount() int {
	return st.nextLocalSlot
}

// GlobalCount is the number of global slots handed out so far.
func (st *SymbolTable) GlobalCount() int {
	return st.nextGlobalSlot
}
