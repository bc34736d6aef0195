package lexer

import (
	"fmt"

	"bennypowers.dev/stylevars/internal/dialect"
	plex "github.com/alecthomas/participle/v2/lexer"
)

// Rule names double as token kinds. Rules named in elided produce no token.
const (
	ruleWhitespace   = "Whitespace"
	ruleLineComment  = "LineComment"
	ruleBlockComment = "BlockComment"
)

var elided = map[string]bool{
	ruleWhitespace:   true,
	ruleLineComment:  true,
	ruleBlockComment: true,
}

var kindByRule = map[string]Kind{
	"Variable":  Variable,
	"Operator":  Operator,
	"HashStart": HashStart,
	"HashEnd":   HashEnd,
	"Newline":   Newline,
	"Unit":      Unit,
	"Color":     Color,
	"String":    String,
}

// Patterns shared by every dialect.
const (
	whitespacePattern   = `[ \t\r]+`
	lineCommentPattern  = `//[^\n]*`
	blockCommentPattern = `/\*[\s\S]*?\*/`
	unitPattern         = `[-+]?(?:\d+\.\d+|\d+|\.\d+)(?:%|[a-zA-Z]+)?`
	colorPattern        = `#[a-fA-F0-9]{1,6}`
	stringPattern       = `"[^"]*"|'[^']*'`
	arithmeticPattern   = `[-+*/%]=?`

	// foldingTerminator folds a semicolon and any following blank lines
	// into one token; runs of bare newlines fold the same way.
	foldingTerminator = `;(?:[ \t\r]*\n)*|(?:[ \t\r]*\n)+`
	// lineTerminator takes a semicolon with at most one newline; every
	// other newline is a token of its own.
	lineTerminator = `;[ \t\r]*\n?|\n`
)

// grammar holds the dialect-specific patterns.
type grammar struct {
	identifier string
	operator   string
	terminator string
	hashes     bool
}

func grammarFor(d dialect.Dialect) (grammar, error) {
	switch d {
	case dialect.Stylus:
		return grammar{
			// dots allow hash member references such as $theme.primary
			identifier: `-*[_a-zA-Z$][-\w$]*(?:\.[_a-zA-Z$][-\w$]*)*`,
			operator:   `:=|\?=|` + arithmeticPattern + `|=|:|,`,
			terminator: `\n`,
			hashes:     true,
		}, nil
	case dialect.Less:
		return grammar{
			identifier: `@?-*[_a-zA-Z][-\w]*`,
			operator:   arithmeticPattern + `|:|,`,
			terminator: foldingTerminator,
		}, nil
	case dialect.SCSS:
		return grammar{
			identifier: `[$!]?-*[_a-zA-Z][-\w]*`,
			operator:   arithmeticPattern + `|:|=|,`,
			terminator: lineTerminator,
		}, nil
	default:
		return grammar{}, fmt.Errorf("no lexer grammar for dialect %s", d)
	}
}

// rules lists the grammar in recognition order. The order is significant:
// the stateful lexer takes the first rule that matches.
func (g grammar) rules() []plex.Rule {
	rules := []plex.Rule{
		{Name: "Variable", Pattern: g.identifier},
		{Name: ruleWhitespace, Pattern: whitespacePattern},
		{Name: ruleLineComment, Pattern: lineCommentPattern},
		{Name: ruleBlockComment, Pattern: blockCommentPattern},
	}
	if g.hashes {
		rules = append(rules,
			plex.Rule{Name: "HashStart", Pattern: `\{`},
			plex.Rule{Name: "HashEnd", Pattern: `\}`},
		)
	}
	return append(rules,
		plex.Rule{Name: "Newline", Pattern: g.terminator},
		plex.Rule{Name: "Operator", Pattern: g.operator},
		plex.Rule{Name: "Unit", Pattern: unitPattern},
		plex.Rule{Name: "Color", Pattern: colorPattern},
		plex.Rule{Name: "String", Pattern: stringPattern},
	)
}

// definition is a compiled dialect grammar
type definition struct {
	def   *plex.StatefulDefinition
	kinds map[plex.TokenType]Kind
	skip  map[plex.TokenType]bool
}

var definitions = buildDefinitions()

func buildDefinitions() map[dialect.Dialect]*definition {
	defs := make(map[dialect.Dialect]*definition, len(dialect.All()))
	for _, d := range dialect.All() {
		g, err := grammarFor(d)
		if err != nil {
			panic(err)
		}
		def := plex.MustStateful(plex.Rules{"Root": g.rules()})

		compiled := &definition{
			def:   def,
			kinds: make(map[plex.TokenType]Kind),
			skip:  make(map[plex.TokenType]bool),
		}
		for name, tt := range def.Symbols() {
			if elided[name] {
				compiled.skip[tt] = true
			}
			if kind, ok := kindByRule[name]; ok {
				compiled.kinds[tt] = kind
			}
		}
		defs[d] = compiled
	}
	return defs
}
