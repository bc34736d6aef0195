// Package css extracts @import targets from stylesheets with tree-sitter.
// The CSS grammar recovers well enough from preprocessor syntax to find
// import statements in less, scss and stylus sources too.
package css

import (
	"fmt"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser handles parsing CSS with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

var parserPool = sync.Pool{
	New: func() any {
		return NewParser()
	},
}

// NewParser creates a new CSS parser
func NewParser() *Parser {
	parser := sitter.NewParser()
	if err := parser.SetLanguage(cssLang); err != nil {
		panic(fmt.Sprintf("failed to set CSS language: %v", err))
	}
	return &Parser{parser: parser}
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close releases the parser's tree-sitter resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// Imports returns the @import statements of source in order
func (p *Parser) Imports(source string) ([]Import, error) {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	var imports []Import
	p.walkTree(tree.RootNode(), sourceBytes, &imports)
	return imports, nil
}

func (p *Parser) walkTree(node *sitter.Node, source []byte, imports *[]Import) {
	if node == nil {
		return
	}

	if node.Kind() == "import_statement" {
		statement := node.Utf8Text(source)
		target := importTarget(node, source)
		if target == "" {
			target = quoted(statement)
		}
		if target != "" {
			*imports = append(*imports, Import{Statement: statement, Target: target})
		}
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		p.walkTree(node.Child(i), source, imports)
	}
}

// importTarget finds the first string or url() argument below an import
func importTarget(node *sitter.Node, source []byte) string {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "string_value":
			return strings.Trim(child.Utf8Text(source), `"'`)
		case "plain_value":
			return strings.TrimSpace(child.Utf8Text(source))
		case "call_expression", "arguments":
			if target := importTarget(child, source); target != "" {
				return target
			}
		}
	}
	return ""
}

// ImportTarget returns the path referenced by a single import statement.
// Statements the grammar cannot place fall back to their first quoted string.
func ImportTarget(statement string) (string, bool) {
	p := AcquireParser()
	defer ReleaseParser(p)

	imports, err := p.Imports(statement)
	if err == nil && len(imports) > 0 {
		return imports[0].Target, true
	}

	target := quoted(statement)
	return target, target != ""
}

// quoted returns the contents of the first single- or double-quoted string
func quoted(s string) string {
	start := strings.IndexAny(s, `"'`)
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(s[start+1:], s[start])
	if end < 0 {
		return ""
	}
	return s[start+1 : start+1+end]
}
