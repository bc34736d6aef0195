// Package lexer turns preprocessor variable files into token streams.
//
// Each dialect has its own ordered rule table; whitespace and comments are
// recognised but never emitted. Tokens carry no positions.
package lexer

import (
	"fmt"

	"bennypowers.dev/stylevars/internal/color"
	"bennypowers.dev/stylevars/internal/dialect"
	"bennypowers.dev/stylevars/internal/log"
)

// Tokenize lexes the whole of text using d's grammar. The first position
// that no rule matches yields a *LexError.
func Tokenize(text string, d dialect.Dialect) ([]Token, error) {
	compiled, ok := definitions[d]
	if !ok {
		return nil, fmt.Errorf("tokenize: unsupported dialect %s", d)
	}

	lex, err := compiled.def.LexString("", text)
	if err != nil {
		return nil, NewLexError(d, text, 0)
	}

	var tokens []Token
	offset := 0
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, NewLexError(d, text, offset)
		}
		if tok.EOF() {
			break
		}
		offset = tok.Pos.Offset + len(tok.Value)

		if compiled.skip[tok.Type] {
			continue
		}
		kind, ok := compiled.kinds[tok.Type]
		if !ok {
			return nil, NewLexError(d, text, tok.Pos.Offset)
		}
		if kind == Color {
			checkColor(tok.Value)
		}
		tokens = append(tokens, Token{Kind: kind, Text: tok.Value})
	}

	return tokens, nil
}

// checkColor warns about hex colors browsers will reject. The token is kept
// as-is; hex digit counts are not validated by the grammar.
func checkColor(text string) {
	if err := color.Check(text); err != nil {
		log.Warn("suspicious color literal: %v", err)
	}
}
