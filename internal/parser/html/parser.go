// Package html locates <style> blocks in single-file components and plain
// HTML documents.
package html

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// Parser finds style blocks using tree-sitter
type Parser struct {
	parser     *sitter.Parser
	styleQuery *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool is a pool of reusable HTML parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		styleQuery, qerr := sitter.NewQuery(htmlLang, `(style_element) @style`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile style query: %v", qerr))
		}

		return &Parser{
			parser:     parser,
			styleQuery: styleQuery,
		}
	},
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
	if p.styleQuery != nil {
		p.styleQuery.Close()
	}
}

// StyleBlocks returns every <style> element in source, in document order
func (p *Parser) StyleBlocks(source string) []StyleBlock {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var blocks []StyleBlock
	matches := cursor.Matches(p.styleQuery, tree.RootNode(), sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			if block, ok := styleBlock(&capture.Node, sourceBytes); ok {
				blocks = append(blocks, block)
			}
		}
	}

	slices.SortStableFunc(blocks, func(a, b StyleBlock) int {
		return a.Start - b.Start
	})
	return blocks
}

// StyleBlocks is a convenience wrapper that borrows a pooled parser
func StyleBlocks(source string) []StyleBlock {
	p := AcquireParser()
	defer ReleaseParser(p)
	return p.StyleBlocks(source)
}

func styleBlock(node *sitter.Node, source []byte) (StyleBlock, bool) {
	var startTag, endTag *sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "start_tag":
			startTag = child
		case "end_tag":
			endTag = child
		}
	}
	if startTag == nil {
		return StyleBlock{}, false
	}

	start := int(startTag.EndByte()) //nolint:gosec // G115: byte offsets are bounded by the source length
	end := len(source)
	if endTag != nil {
		end = int(endTag.StartByte()) //nolint:gosec // G115: byte offsets are bounded by the source length
	}
	if end < start {
		end = start
	}

	return StyleBlock{
		Lang:    attribute(startTag, source, "lang"),
		Content: string(source[start:end]),
		Start:   start,
		End:     end,
	}, true
}

// attribute returns the value of the named attribute on a start tag
func attribute(tag *sitter.Node, source []byte, name string) string {
	for i := uint(0); i < tag.NamedChildCount(); i++ {
		attr := tag.NamedChild(i)
		if attr.Kind() != "attribute" {
			continue
		}

		var attrName, value string
		for j := uint(0); j < attr.NamedChildCount(); j++ {
			part := attr.NamedChild(j)
			switch part.Kind() {
			case "attribute_name":
				attrName = part.Utf8Text(source)
			case "attribute_value":
				value = part.Utf8Text(source)
			case "quoted_attribute_value":
				value = strings.Trim(part.Utf8Text(source), `"'`)
			}
		}
		if strings.EqualFold(attrName, name) {
			return value
		}
	}
	return ""
}
