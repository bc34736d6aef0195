// Package dialect enumerates the CSS preprocessor dialects stylevars
// translates between and the punctuation each one uses for variables.
package dialect

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Dialect identifies a preprocessor variable syntax
type Dialect int

const (
	// Unknown is the zero value, for files and blocks stylevars does not handle
	Unknown Dialect = iota
	// Stylus uses `$name = value`, newline terminators and native hashes
	Stylus
	// Less uses `@name: value;`
	Less
	// SCSS uses `$name: value;` (also `!name = value;`)
	SCSS
)

// All returns every known dialect in declaration order
func All() []Dialect {
	return []Dialect{Stylus, Less, SCSS}
}

func (d Dialect) String() string {
	switch d {
	case Stylus:
		return "stylus"
	case Less:
		return "less"
	case SCSS:
		return "scss"
	default:
		return "unknown"
	}
}

// extensions maps file extensions (with leading dot) to dialects
var extensions = map[string]Dialect{
	".styl":   Stylus,
	".stylus": Stylus,
	".less":   Less,
	".scss":   SCSS,
	".sass":   SCSS,
}

// langs maps <style lang="..."> attribute values to dialects
var langs = map[string]Dialect{
	"styl":   Stylus,
	"stylus": Stylus,
	"less":   Less,
	"scss":   SCSS,
	"sass":   SCSS,
}

// FromExtension returns the dialect for a file extension such as ".less".
func FromExtension(ext string) Dialect {
	return extensions[strings.ToLower(ext)]
}

// FromPath returns the dialect implied by a file path's extension.
func FromPath(path string) Dialect {
	return FromExtension(filepath.Ext(path))
}

// FromLang returns the dialect declared by a style block's lang attribute.
func FromLang(lang string) Dialect {
	return langs[strings.ToLower(strings.TrimSpace(lang))]
}

// Parse accepts a dialect name or any lang alias ("styl", "sass", ...).
func Parse(name string) (Dialect, error) {
	if d := FromLang(name); d != Unknown {
		return d, nil
	}
	return Unknown, fmt.Errorf("unknown dialect %q (want one of stylus, less, scss)", name)
}

// Syntax is the punctuation the generator emits for a dialect.
type Syntax struct {
	// Sigil prefixes every emitted variable name
	Sigil string
	// Assign separates a top-level name from its value
	Assign string
	// EntryAssign separates a key from its value inside a native hash
	EntryAssign string
	// Terminator ends a top-level binding
	Terminator string
	// NamespaceJoin joins hash path segments into one identifier
	NamespaceJoin string
	// NativeHash reports whether hashes are emitted as brace blocks
	// instead of being flattened
	NativeHash bool
}

// Syntax returns the generator punctuation for d. Unknown yields the zero Syntax.
func (d Dialect) Syntax() Syntax {
	switch d {
	case Stylus:
		return Syntax{
			Sigil:         "$",
			Assign:        ":=",
			EntryAssign:   ":",
			NamespaceJoin: ".",
			NativeHash:    true,
		}
	case Less:
		return Syntax{
			Sigil:         "@",
			Assign:        ":",
			EntryAssign:   ":",
			Terminator:    ";",
			NamespaceJoin: "-",
		}
	case SCSS:
		return Syntax{
			Sigil:         "$",
			Assign:        ":",
			EntryAssign:   ":",
			Terminator:    ";",
			NamespaceJoin: "-",
		}
	default:
		return Syntax{}
	}
}

// NewlineTerminated reports whether a bare newline ends a statement.
// The semicolon dialects may continue a statement across lines.
func (d Dialect) NewlineTerminated() bool {
	return d == Stylus
}

// Sigils are the characters that may prefix a variable name in d's source.
func (d Dialect) Sigils() string {
	switch d {
	case Stylus:
		return "$"
	case Less:
		return "@"
	case SCSS:
		return "$!"
	default:
		return ""
	}
}
