// Package translator converts variable files between dialects, memoizing
// token streams and generated output by content fingerprint.
package translator

import (
	"fmt"
	"sync"
	"sync/atomic"

	"bennypowers.dev/stylevars/internal/dialect"
	"bennypowers.dev/stylevars/internal/generator"
	"bennypowers.dev/stylevars/internal/lexer"
	"bennypowers.dev/stylevars/internal/log"
	"bennypowers.dev/stylevars/internal/parser"
	"bennypowers.dev/stylevars/internal/resolver"
	"github.com/zeebo/xxh3"
)

// fingerprint identifies a text together with a dialect
type fingerprint = xxh3.Uint128

func fingerprintOf(text string, d dialect.Dialect) fingerprint {
	return xxh3.HashString128(d.String() + "\x00" + text)
}

// Stats counts pipeline work, for instrumentation and tests
type Stats struct {
	Tokenized  int64
	Parsed     int64
	TokenHits  int64
	OutputHits int64
}

// Option configures a Translator
type Option func(*Translator)

// WithoutCache disables both caches; every call runs the whole pipeline.
func WithoutCache() Option {
	return func(t *Translator) {
		t.cacheDisabled = true
	}
}

// Translator is safe for concurrent use. Concurrent misses on the same
// fingerprint may both compute; they store identical values.
type Translator struct {
	mu      sync.RWMutex
	tokens  map[fingerprint][]lexer.Token
	outputs map[fingerprint]string

	cacheDisabled bool

	tokenized  atomic.Int64
	parsed     atomic.Int64
	tokenHits  atomic.Int64
	outputHits atomic.Int64
}

// New creates a Translator with empty caches
func New(opts ...Option) *Translator {
	t := &Translator{
		tokens:  make(map[fingerprint][]lexer.Token),
		outputs: make(map[fingerprint]string),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate renders text, written in dialect from, in dialect to.
// Same-dialect requests return text unchanged without lexing it.
func (t *Translator) Translate(text string, from, to dialect.Dialect) (string, error) {
	if from == to {
		return text, nil
	}
	if to == dialect.Unknown {
		return "", fmt.Errorf("translate: unsupported target dialect %s", to)
	}

	outKey := fingerprintOf(text, to)
	if out, ok := t.output(outKey); ok {
		t.outputHits.Add(1)
		log.Debug("output cache hit (%s -> %s)", from, to)
		return out, nil
	}

	tokens, err := t.tokenize(text, from)
	if err != nil {
		return "", err
	}

	t.parsed.Add(1)
	defs, err := parser.Parse(tokens, from)
	if err != nil {
		return "", fmt.Errorf("translate %s -> %s: %w", from, to, err)
	}
	defs = resolver.Resolve(defs)
	if refs := resolver.Unresolved(defs); len(refs) > 0 {
		log.Debug("unresolved hash references: %v", refs)
	}

	out, err := generator.Generate(defs, to)
	if err != nil {
		return "", fmt.Errorf("translate %s -> %s: %w", from, to, err)
	}

	if !t.cacheDisabled {
		t.mu.Lock()
		t.outputs[outKey] = out
		t.mu.Unlock()
	}

	return out, nil
}

func (t *Translator) output(key fingerprint) (string, bool) {
	if t.cacheDisabled {
		return "", false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out, ok := t.outputs[key]
	return out, ok
}

// tokenize returns the cached token stream for text or lexes it
func (t *Translator) tokenize(text string, from dialect.Dialect) ([]lexer.Token, error) {
	key := fingerprintOf(text, from)

	if !t.cacheDisabled {
		t.mu.RLock()
		tokens, ok := t.tokens[key]
		t.mu.RUnlock()
		if ok {
			t.tokenHits.Add(1)
			log.Debug("token cache hit (%s)", from)
			return tokens, nil
		}
	}

	t.tokenized.Add(1)
	tokens, err := lexer.Tokenize(text, from)
	if err != nil {
		return nil, fmt.Errorf("translate from %s: %w", from, err)
	}

	if !t.cacheDisabled {
		t.mu.Lock()
		t.tokens[key] = tokens
		t.mu.Unlock()
	}
	return tokens, nil
}

// Stats returns a snapshot of the work counters
func (t *Translator) Stats() Stats {
	return Stats{
		Tokenized:  t.tokenized.Load(),
		Parsed:     t.parsed.Load(),
		TokenHits:  t.tokenHits.Load(),
		OutputHits: t.outputHits.Load(),
	}
}

// Purge empties both caches. Counters are kept.
func (t *Translator) Purge() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.tokens)
	clear(t.outputs)
}
