// Package ast defines the syntax tree shared by the parser, resolver and
// generator.
package ast

// Subtype distinguishes the three shapes of a Define
type Subtype int

const (
	// Plain binds a name to an expression list
	Plain Subtype = iota
	// Hash binds a name to an ordered list of entries
	Hash
	// NestedHash is a hash entry (or alias) whose body was copied from a
	// previously declared hash. Reference keeps that hash's name.
	NestedHash
)

func (s Subtype) String() string {
	switch s {
	case Plain:
		return "Plain"
	case Hash:
		return "Hash"
	case NestedHash:
		return "NestedHash"
	default:
		return "Subtype(?)"
	}
}

// Define is a single variable binding or a hash literal.
//
// Plain defines use Expr. Hash and NestedHash defines use Body, which keeps
// declaration order; duplicate keys are kept as written.
type Define struct {
	Name      string
	Expr      *ExpressionList
	Body      []*Define
	Subtype   Subtype
	Reference string
}

// IsHash reports whether d carries a body instead of an expression
func (d *Define) IsHash() bool {
	return d.Subtype == Hash || d.Subtype == NestedHash
}

// ExpressionList is the right-hand side of a plain binding
type ExpressionList struct {
	Items []Item
}

// Append adds an item to the list
func (l *ExpressionList) Append(item Item) {
	l.Items = append(l.Items, item)
}

// Item is one element of an ExpressionList. The set of implementations is
// closed: *Variable, *Literal, *Operator and *HashRef.
type Item interface {
	item()
}

// Variable references another binding by name, without its sigil.
// Dots separate hash path segments. Negated marks a leading minus written
// against the name, as in `-$gutter`.
type Variable struct {
	Name    string
	Negated bool
}

// Literal is a number, color, quoted string or bare word, emitted verbatim
type Literal struct {
	Text string
}

// Operator is a comma or arithmetic operator, emitted verbatim
type Operator struct {
	Symbol string
}

// HashRef references a hash declared earlier in the same file
type HashRef struct {
	Name string
}

func (*Variable) item() {}
func (*Literal) item()  {}
func (*Operator) item() {}
func (*HashRef) item()  {}

// SoleHashRef returns the referenced name when l consists of exactly one
// HashRef.
func (l *ExpressionList) SoleHashRef() (string, bool) {
	if l == nil || len(l.Items) != 1 {
		return "", false
	}
	ref, ok := l.Items[0].(*HashRef)
	if !ok {
		return "", false
	}
	return ref.Name, true
}

// Walk calls fn for every define in defs, depth first, entries after their
// enclosing hash. Walking stops descending into a define when fn returns false.
func Walk(defs []*Define, fn func(d *Define) bool) {
	for _, d := range defs {
		if fn(d) && d.IsHash() {
			Walk(d.Body, fn)
		}
	}
}
