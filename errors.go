package main

import (
	"errors"
	"fmt"
	"strings"
)

// Code generation errors. Generation stops at the first one.
var (
	ErrUnknownVariable      = errors.New("unknown variable")
	ErrUnknownFunction      = errors.New("unknown function")
	ErrMalformedNode        = errors.New("malformed node")
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
)

func unknownVariable(name string) error {
	return fmt.Errorf("%w '%s'", ErrUnknownVariable, name)
}

func unknownFunction(name string) error {
	return fmt.Errorf("%w '%s'", ErrUnknownFunction, name)
}

func malformedNode(node *ASTNode, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if node != nil && node.Line > 0 {
		return fmt.Errorf("%w at line %d: %s", ErrMalformedNode, node.Line, msg)
	}
	return fmt.Errorf("%w: %s", ErrMalformedNode, msg)
}

func duplicateDeclaration(what, name string) error {
	return fmt.Errorf("%w: %s '%s' already declared", ErrDuplicateDeclaration, what, name)
}

// CompileError is a diagnostic reported by the front end.
type CompileError struct {
	Line    int
	Column  int
	Message string
}

func (e CompileError) String() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// ErrorCollection accumulates front-end diagnostics so that parsing can
// continue after the first problem.
type ErrorCollection struct {
	errors []CompileError
}

func NewErrorCollection() *ErrorCollection {
	return &ErrorCollection{}
}

func (ec *ErrorCollection) Add(line, column int, format string, args ...any) {
	ec.errors = append(ec.errors, CompileError{
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	})
}

func (ec *ErrorCollection) HasErrors() bool {
	return len(ec.errors) > 0
}

func (ec *ErrorCollection) Count() int {
	return len(ec.errors)
}

func (ec *ErrorCollection) Errors() []CompileError {
	return ec.errors
}

func (ec *ErrorCollection) String() string {
	lines := make([]string, 0, len(ec.errors))
	for _, e := range ec.errors {
		lines = append(lines, "error: "+e.String())
	}
	return strings.Join(lines, "\n")
}
