// Package parser builds syntax trees from lexer token streams.
//
// The source dialects have no declarations or types, so the parser infers
// whether a bare word on a right-hand side is a variable reference or a
// literal: names bound earlier in the same scope (or already used once) are
// variables, sigil-prefixed names always are, hash names become hash
// references, and anything else is a literal on first use.
package parser

import (
	"fmt"
	"strings"

	"bennypowers.dev/stylevars/internal/ast"
	"bennypowers.dev/stylevars/internal/collections"
	"bennypowers.dev/stylevars/internal/dialect"
	"bennypowers.dev/stylevars/internal/lexer"
)

// scope is the parse state for one file or one hash body
type scope struct {
	dialect dialect.Dialect
	vars    collections.Set[string]
	hashes  collections.Set[string]
	inHash  bool
}

// Parse turns tokens lexed with dialect d into top-level bindings.
func Parse(tokens []lexer.Token, d dialect.Dialect) ([]*ast.Define, error) {
	s := &scope{
		dialect: d,
		vars:    collections.NewSet[string](),
		hashes:  collections.NewSet[string](),
	}
	return s.parse(tokens)
}

// child returns the scope for a hash body. Names bound inside the body stay
// inside it.
func (s *scope) child() *scope {
	return &scope{
		dialect: s.dialect,
		vars:    s.vars.Clone(),
		hashes:  s.hashes.Clone(),
		inHash:  true,
	}
}

func (s *scope) parse(tokens []lexer.Token) ([]*ast.Define, error) {
	var defs []*ast.Define
	var current *ast.Define
	expectName := true
	named := false

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch tok.Kind {
		case lexer.Newline:
			if err := closeStatement(current, tok, named, expectName); err != nil {
				return nil, err
			}
			expectName = true
			named = false

		case lexer.HashStart:
			if current == nil || expectName || current.IsHash() || len(current.Expr.Items) > 0 {
				return nil, NewParseError(tok, "hash literal must directly follow an assignment")
			}
			end, err := matchingHashEnd(tokens, i)
			if err != nil {
				return nil, err
			}
			body, err := s.child().parse(tokens[i+1 : end])
			if err != nil {
				return nil, err
			}
			current.Subtype = ast.Hash
			current.Body = body
			current.Expr = nil
			s.hashes.Add(current.Name)
			expectName = true
			named = false
			i = end

		case lexer.HashEnd:
			return nil, NewParseError(tok, "unbalanced hash terminator")

		case lexer.Operator:
			if tok.Text == "," && endsStatement(tokens, i) {
				if s.continuesList(tokens, i) && current != nil && !current.IsHash() {
					current.Expr.Append(&ast.Operator{Symbol: tok.Text})
					for i+1 < len(tokens) && tokens[i+1].Kind == lexer.Newline && !strings.Contains(tokens[i+1].Text, ";") {
						i++
					}
				}
				continue
			}
			if current == nil || (expectName && !named) {
				return nil, NewParseError(tok, "operator outside of a binding")
			}
			if expectName {
				if !isAssignment(tok.Text) {
					return nil, NewParseError(tok, "expected an assignment operator")
				}
				expectName = false
				continue
			}
			if isAssignment(tok.Text) {
				next, ok := s.splitEntry(current, tokens, i)
				if !ok {
					return nil, NewParseError(tok, "assignment operator inside a value")
				}
				current = next
				defs = append(defs, current)
				continue
			}
			if current.IsHash() {
				return nil, NewParseError(tok, "operator after hash literal")
			}
			current.Expr.Append(&ast.Operator{Symbol: tok.Text})

		case lexer.Variable, lexer.String:
			if expectName {
				if named {
					return nil, NewParseError(tok, "expected an assignment operator")
				}
				name := tok.Text
				if tok.Kind == lexer.String {
					if !s.inHash {
						return nil, NewParseError(tok, "quoted names are only allowed as hash keys")
					}
					name = unquote(name)
				} else {
					name, _ = s.stripSigil(name)
				}
				current = &ast.Define{Name: name, Expr: &ast.ExpressionList{}}
				defs = append(defs, current)
				s.vars.Add(name)
				named = true
				continue
			}
			if err := s.appendValue(current, tok); err != nil {
				return nil, err
			}

		case lexer.Unit, lexer.Color:
			if expectName {
				return nil, NewParseError(tok, "expected a variable name")
			}
			if err := s.appendValue(current, tok); err != nil {
				return nil, err
			}

		default:
			return nil, NewParseError(tok, "unknown token kind")
		}
	}

	if err := closeStatement(current, lexer.Token{}, named, expectName); err != nil {
		return nil, err
	}
	return defs, nil
}

// closeStatement checks the binding that ends at tok (the zero Token at end
// of input) has both an assignment operator and a value.
func closeStatement(current *ast.Define, tok lexer.Token, named, expectName bool) error {
	switch {
	case named && expectName:
		return NewParseError(tok, fmt.Sprintf("binding %q has no assignment operator", current.Name))
	case named && !current.IsHash() && len(current.Expr.Items) == 0:
		return NewParseError(tok, fmt.Sprintf("binding %q has no value", current.Name))
	}
	return nil
}

// splitEntry starts a new hash entry when an assignment follows `, name`,
// as in the one-line hash `{ a: 1, b: 2 }`. The comma and name already
// appended to current are moved to the new entry.
func (s *scope) splitEntry(current *ast.Define, tokens []lexer.Token, i int) (*ast.Define, bool) {
	items := current.Expr.Items
	if !s.inHash || i < 2 || len(items) < 3 {
		return nil, false
	}
	key, comma := tokens[i-1], tokens[i-2]
	if (key.Kind != lexer.Variable && key.Kind != lexer.String) || comma.Kind != lexer.Operator || comma.Text != "," {
		return nil, false
	}

	current.Expr.Items = items[:len(items)-2]

	name := unquote(key.Text)
	if key.Kind == lexer.Variable {
		name, _ = s.stripSigil(key.Text)
	}
	s.vars.Add(name)
	return &ast.Define{Name: name, Expr: &ast.ExpressionList{}}, true
}

func (s *scope) appendValue(current *ast.Define, tok lexer.Token) error {
	if current == nil {
		return NewParseError(tok, "value outside of a binding")
	}
	if current.IsHash() {
		return NewParseError(tok, "value after hash literal")
	}

	switch tok.Kind {
	case lexer.Variable:
		current.Expr.Append(s.reference(tok.Text))
	default:
		current.Expr.Append(&ast.Literal{Text: tok.Text})
	}
	return nil
}

// reference classifies a right-hand identifier. An unknown bare word is a
// literal, and from then on a known variable.
func (s *scope) reference(text string) ast.Item {
	if negated, ok := strings.CutPrefix(text, "-"); ok {
		if v, ok := s.knownVariable(negated); ok {
			v.Negated = true
			return v
		}
	}

	name, hasSigil := s.stripSigil(text)
	root, _, dotted := strings.Cut(name, ".")

	switch {
	case s.hashes.Has(name):
		return &ast.HashRef{Name: name}
	case hasSigil || s.vars.Has(name):
		return &ast.Variable{Name: name}
	case dotted && (s.hashes.Has(root) || s.vars.Has(root)):
		return &ast.Variable{Name: name}
	default:
		s.vars.Add(name)
		return &ast.Literal{Text: text}
	}
}

// knownVariable returns the variable text names when it carries a sigil or
// is already bound. Hash names do not qualify.
func (s *scope) knownVariable(text string) (*ast.Variable, bool) {
	name, hasSigil := s.stripSigil(text)
	if name == "" || s.hashes.Has(name) {
		return nil, false
	}
	root, _, dotted := strings.Cut(name, ".")
	if hasSigil || s.vars.Has(name) || (dotted && (s.hashes.Has(root) || s.vars.Has(root))) {
		return &ast.Variable{Name: name}, true
	}
	return nil, false
}

func (s *scope) stripSigil(text string) (string, bool) {
	if text != "" && strings.ContainsRune(s.dialect.Sigils(), rune(text[0])) {
		return text[1:], true
	}
	return text, false
}

// continuesList reports whether the comma at i is followed by a bare newline
// that keeps the statement open. Only semicolon dialects continue lists.
func (s *scope) continuesList(tokens []lexer.Token, i int) bool {
	if s.dialect.NewlineTerminated() || i+1 >= len(tokens) {
		return false
	}
	return !strings.Contains(tokens[i+1].Text, ";")
}

// endsStatement reports whether the token after i terminates the statement
func endsStatement(tokens []lexer.Token, i int) bool {
	return i+1 == len(tokens) || tokens[i+1].Kind == lexer.Newline
}

func isAssignment(op string) bool {
	return op == ":" || strings.HasSuffix(op, "=")
}

func matchingHashEnd(tokens []lexer.Token, start int) (int, error) {
	depth := 0
	for i := start; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case lexer.HashStart:
			depth++
		case lexer.HashEnd:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, NewParseError(tokens[start], "unterminated hash literal")
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
