// Package resolver links hash references to the hashes they name so the
// generator can flatten hashes of hashes.
package resolver

import (
	"bennypowers.dev/stylevars/internal/ast"
	"bennypowers.dev/stylevars/internal/collections"
)

// Resolve rewrites, in place, every hash entry whose whole value is a
// reference to an earlier top-level hash into a NestedHash carrying that
// hash's body. A top-level alias (`$alias = $base`) resolves the same way
// and becomes referable itself.
//
// Only hashes declared earlier in the file are resolved. A reference to a
// hash declared later is marked as a HashRef and left for the generator to
// reject where it would flatten.
func Resolve(defs []*ast.Define) []*ast.Define {
	r := &resolution{
		table:    make(map[string]*ast.Define),
		declared: collections.NewSet[string](),
		later:    topLevelHashes(defs),
	}

	for _, d := range defs {
		switch d.Subtype {
		case ast.Hash:
			r.resolveBody(d.Body)
			r.table[d.Name] = d
		case ast.Plain:
			r.markHashRefs(d.Expr)
			if r.nest(d) {
				r.table[d.Name] = d
			}
		}
		r.declared.Add(d.Name)
	}

	return defs
}

// Unresolved returns the names of hash references still present in defs,
// in order of first appearance.
func Unresolved(defs []*ast.Define) []string {
	var names []string
	seen := collections.NewSet[string]()

	ast.Walk(defs, func(d *ast.Define) bool {
		if d.Subtype != ast.Plain || d.Expr == nil {
			return true
		}
		for _, item := range d.Expr.Items {
			if ref, ok := item.(*ast.HashRef); ok && !seen.Has(ref.Name) {
				seen.Add(ref.Name)
				names = append(names, ref.Name)
			}
		}
		return true
	})

	return names
}

type resolution struct {
	table    map[string]*ast.Define
	declared collections.Set[string]
	later    collections.Set[string]
}

func (r *resolution) resolveBody(body []*ast.Define) {
	for _, entry := range body {
		switch entry.Subtype {
		case ast.Hash:
			r.resolveBody(entry.Body)
		case ast.Plain:
			r.markHashRefs(entry.Expr)
			r.nest(entry)
		}
	}
}

// nest turns d into a NestedHash when its value is a single reference to a
// resolved hash.
func (r *resolution) nest(d *ast.Define) bool {
	name, ok := d.Expr.SoleHashRef()
	if !ok {
		return false
	}
	target, ok := r.table[name]
	if !ok {
		return false
	}

	d.Subtype = ast.NestedHash
	d.Body = target.Body
	d.Reference = name
	d.Expr = nil
	return true
}

// markHashRefs turns variable references to hashes into HashRefs. Aliases
// are only known to be hashes once resolved, and hashes declared further
// down the file are marked so they are reported instead of emitted as plain
// names.
func (r *resolution) markHashRefs(expr *ast.ExpressionList) {
	if expr == nil {
		return
	}
	for i, item := range expr.Items {
		v, ok := item.(*ast.Variable)
		if !ok {
			continue
		}
		_, known := r.table[v.Name]
		if known || (r.later.Has(v.Name) && !r.declared.Has(v.Name)) {
			expr.Items[i] = &ast.HashRef{Name: v.Name}
		}
	}
}

func topLevelHashes(defs []*ast.Define) collections.Set[string] {
	names := collections.NewSet[string]()
	for _, d := range defs {
		if d.Subtype == ast.Hash {
			names.Add(d.Name)
		}
	}
	return names
}
