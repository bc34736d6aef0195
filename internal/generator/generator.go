// Package generator renders resolved syntax trees as variable declarations
// in a target dialect.
package generator

import (
	"strings"

	"bennypowers.dev/stylevars/internal/ast"
	"bennypowers.dev/stylevars/internal/dialect"
	"bennypowers.dev/stylevars/internal/log"
)

const indentUnit = "    "

// Generate renders defs in dialect d, one binding per line, with no trailing
// newline. Dialects without native hashes receive hashes flattened into one
// binding per leaf.
func Generate(defs []*ast.Define, d dialect.Dialect) (string, error) {
	g := &generator{dialect: d, syntax: d.Syntax()}

	var lines []string
	for _, def := range defs {
		var (
			out []string
			err error
		)
		if g.syntax.NativeHash {
			out, err = g.native(def)
		} else {
			out, err = g.flatten(def, "")
		}
		if err != nil {
			return "", err
		}
		lines = append(lines, out...)
	}

	return strings.Join(lines, "\n"), nil
}

type generator struct {
	dialect dialect.Dialect
	syntax  dialect.Syntax
}

// native renders a top-level binding for a dialect with brace hashes
func (g *generator) native(def *ast.Define) ([]string, error) {
	head := g.syntax.Sigil + def.Name + " " + g.syntax.Assign + " "

	switch def.Subtype {
	case ast.Plain:
		expr, err := g.expression(def.Name, def.Expr)
		if err != nil {
			return nil, err
		}
		return []string{head + expr + g.syntax.Terminator}, nil
	case ast.NestedHash:
		return []string{head + g.syntax.Sigil + def.Reference + g.syntax.Terminator}, nil
	case ast.Hash:
		body, err := g.entries(def.Body, 1)
		if err != nil {
			return nil, err
		}
		lines := append([]string{head + "{"}, body...)
		return append(lines, "}"), nil
	default:
		return nil, NewGenerateError(def.Name, def.Subtype)
	}
}

// entries renders the body of a native hash at the given depth. Every entry
// but the last ends with a comma.
func (g *generator) entries(body []*ast.Define, depth int) ([]string, error) {
	indent := strings.Repeat(indentUnit, depth)

	var lines []string
	for i, entry := range body {
		head := indent + entry.Name + " " + g.syntax.EntryAssign + " "

		var block []string
		switch entry.Subtype {
		case ast.Plain:
			expr, err := g.expression(entry.Name, entry.Expr)
			if err != nil {
				return nil, err
			}
			block = []string{head + expr}
		case ast.NestedHash:
			block = []string{head + g.syntax.Sigil + entry.Reference}
		case ast.Hash:
			inner, err := g.entries(entry.Body, depth+1)
			if err != nil {
				return nil, err
			}
			block = append([]string{head + "{"}, inner...)
			block = append(block, indent+"}")
		default:
			return nil, NewGenerateError(entry.Name, entry.Subtype)
		}

		if i < len(body)-1 {
			block[len(block)-1] += ","
		}
		lines = append(lines, block...)
	}

	return lines, nil
}

// flatten renders def and, for hashes, every leaf below it as standalone
// bindings whose names join the enclosing hash names.
func (g *generator) flatten(def *ast.Define, namespace string) ([]string, error) {
	name := namespace + def.Name

	switch def.Subtype {
	case ast.Plain:
		expr, err := g.expression(name, def.Expr)
		if err != nil {
			return nil, err
		}
		return []string{g.syntax.Sigil + name + " " + g.syntax.Assign + " " + expr + g.syntax.Terminator}, nil
	case ast.Hash, ast.NestedHash:
		var lines []string
		for _, entry := range def.Body {
			out, err := g.flatten(entry, name+g.syntax.NamespaceJoin)
			if err != nil {
				return nil, err
			}
			lines = append(lines, out...)
		}
		return lines, nil
	default:
		return nil, NewGenerateError(name, def.Subtype)
	}
}

// expression renders items separated by spaces, with commas attached to the
// item before them.
func (g *generator) expression(name string, expr *ast.ExpressionList) (string, error) {
	if expr == nil {
		return "", nil
	}

	var b strings.Builder
	for i, item := range expr.Items {
		var text string
		switch it := item.(type) {
		case *ast.Variable:
			text = g.syntax.Sigil + strings.ReplaceAll(it.Name, ".", g.syntax.NamespaceJoin)
			if it.Negated {
				text = "-" + text
			}
		case *ast.Literal:
			text = it.Text
		case *ast.Operator:
			text = it.Symbol
		case *ast.HashRef:
			if !g.syntax.NativeHash {
				return "", &UnresolvedReferenceError{Name: name, Reference: it.Name, Dialect: g.dialect}
			}
			log.Debug("emitting unresolved hash reference %q in %q", it.Name, name)
			text = g.syntax.Sigil + it.Name
		default:
			return "", NewGenerateError(name, item)
		}

		if i > 0 && text != "," {
			b.WriteByte(' ')
		}
		b.WriteString(text)
	}

	return b.String(), nil
}
