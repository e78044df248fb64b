package main

import (
	"fmt"
	"strings"
)

// Options controls the parts of the output that are not derived from the
// program itself.
type Options struct {
	// ClassName names the generated class and qualifies invokestatic calls.
	ClassName string
	// StackLimit and LocalsLimit are emitted as .limit directives in every
	// method.
	StackLimit  int
	LocalsLimit int
}

func DefaultOptions() Options {
	return Options{
		ClassName:   "Test",
		StackLimit:  32,
		LocalsLimit: 32,
	}
}

func (o Options) Validate() error {
	if o.ClassName == "" {
		return fmt.Errorf("class name must not be empty")
	}
	if strings.ContainsAny(o.ClassName, " \t\n/.;[") {
		return fmt.Errorf("invalid class name %q", o.ClassName)
	}
	if o.StackLimit <= 0 {
		return fmt.Errorf("stack limit must be positive, got %d", o.StackLimit)
	}
	if o.LocalsLimit <= 0 {
		return fmt.Errorf("locals limit must be positive, got %d", o.LocalsLimit)
	}
	return nil
}
