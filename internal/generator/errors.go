package generator

import (
	"errors"
	"fmt"

	"bennypowers.dev/stylevars/internal/dialect"
)

// ErrGenerate indicates a tree the generator cannot render
var ErrGenerate = errors.New("generate error")

// GenerateError reports a node of a kind the generator does not know.
// Trees built by the parser never contain one.
type GenerateError struct {
	Name string
	Node any
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("cannot generate %q: unexpected node %T", e.Name, e.Node)
}

func (e *GenerateError) Unwrap() error {
	return ErrGenerate
}

// NewGenerateError creates a GenerateError for node inside binding name
func NewGenerateError(name string, node any) error {
	return &GenerateError{Name: name, Node: node}
}

// UnresolvedReferenceError reports a hash reference that could not be
// inlined: the hash is declared after its use, or it appears inside a
// larger expression rather than as the whole value.
type UnresolvedReferenceError struct {
	Name      string
	Reference string
	Dialect   dialect.Dialect
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("cannot generate %q for %s: hash %q can only be inlined as the whole value of a binding declared after it",
		e.Name, e.Dialect, e.Reference)
}

func (e *UnresolvedReferenceError) Unwrap() error {
	return ErrGenerate
}
