// Package convertor injects translated variable files into the <style>
// blocks of a document.
//
// Variable files are read once per cache version and kept in read order.
// Each file's rendering per dialect is memoized on its entry, so a document
// with several blocks of the same dialect translates each file once.
package convertor

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"bennypowers.dev/stylevars/internal/dialect"
	"bennypowers.dev/stylevars/internal/log"
	"bennypowers.dev/stylevars/internal/parser/css"
	"bennypowers.dev/stylevars/internal/parser/html"
	"bennypowers.dev/stylevars/internal/translator"
	"golang.org/x/sync/errgroup"
)

// DefaultCacheVersion is the version used until SetCacheVersion is called
const DefaultCacheVersion = "default-cache-version"

// Entry is one cached variables file
type Entry struct {
	Filename string
	Dialect  dialect.Dialect
	// raw holds the file text per dialect; the source dialect is set on read
	raw map[dialect.Dialect]string
}

// Option configures a Convertor
type Option func(*Convertor)

// WithReader replaces the filesystem reader
func WithReader(r FileReader) Option {
	return func(c *Convertor) {
		c.reader = r
	}
}

// WithCacheVersion sets the initial cache version
func WithCacheVersion(version string) Option {
	return func(c *Convertor) {
		c.version = version
	}
}

// Convertor caches variable files and splices them into documents.
// It is safe for concurrent use.
type Convertor struct {
	translator *translator.Translator
	reader     FileReader

	mu      sync.Mutex
	version string
	entries []*Entry
	index   map[string]*Entry
}

// New creates a Convertor that renders through tr
func New(tr *translator.Translator, opts ...Option) *Convertor {
	c := &Convertor{
		translator: tr,
		reader:     OSReader{},
		version:    DefaultCacheVersion,
		index:      make(map[string]*Entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetCacheVersion switches the cache to version. Files read under another
// version are forgotten.
func (c *Convertor) SetCacheVersion(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version == c.version {
		return
	}
	log.Debug("cache version %q -> %q, dropping %d files", c.version, version, len(c.entries))
	c.version = version
	c.entries = nil
	c.index = make(map[string]*Entry)
}

// CacheVersion returns the current cache version
func (c *Convertor) CacheVersion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Read caches filename. Reading a file already cached under the current
// version does nothing.
func (c *Convertor) Read(ctx context.Context, filename string) error {
	return c.ReadAll(ctx, filename)
}

// ReadAll reads every uncached file concurrently and caches them in
// argument order once all reads have finished. Nothing is cached when any
// read fails.
func (c *Convertor) ReadAll(ctx context.Context, filenames ...string) error {
	for _, name := range filenames {
		if dialect.FromPath(name) == dialect.Unknown {
			return fmt.Errorf("%w: %s", ErrUnsupportedFile, name)
		}
	}

	c.mu.Lock()
	version := c.version
	var pending []string
	for _, name := range filenames {
		if _, ok := c.index[name]; !ok && !slices.Contains(pending, name) {
			pending = append(pending, name)
		}
	}
	c.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	contents := make([][]byte, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range pending {
		g.Go(func() error {
			data, err := c.reader.ReadFile(gctx, name)
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version != version {
		log.Debug("cache version changed while reading, discarding %d files", len(pending))
		return nil
	}
	for i, name := range pending {
		if _, ok := c.index[name]; ok {
			continue
		}
		d := dialect.FromPath(name)
		entry := &Entry{
			Filename: name,
			Dialect:  d,
			raw:      map[dialect.Dialect]string{d: string(contents[i])},
		}
		c.entries = append(c.entries, entry)
		c.index[name] = entry
		log.Info("read %s (%s)", name, d)
	}
	return nil
}

// Entries returns the cached files of the current version in read order
func (c *Convertor) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = Entry{Filename: e.Filename, Dialect: e.Dialect}
	}
	return out
}

// Convert returns document with every cached file, and the imports that
// target the same dialect, inserted at the top of each <style> block.
// Blocks without a recognised lang attribute are left untouched.
func (c *Convertor) Convert(document string, imports []string) (string, error) {
	blocks := html.StyleBlocks(document)
	if len(blocks) == 0 {
		return document, nil
	}

	grouped := GroupImports(imports)
	entries := c.snapshot()

	var b strings.Builder
	last := 0
	for _, block := range blocks {
		d := dialect.FromLang(block.Lang)
		if d == dialect.Unknown {
			if block.Lang != "" {
				log.Warn("skipping <style> block with lang %q", block.Lang)
			}
			continue
		}

		parts := append([]string(nil), grouped[d]...)
		for _, entry := range entries {
			text, err := c.render(entry, d)
			if err != nil {
				return "", fmt.Errorf("convert %s to %s: %w", entry.Filename, d, err)
			}
			if text = strings.TrimSpace(text); text != "" {
				parts = append(parts, text)
			}
		}
		if len(parts) == 0 {
			continue
		}

		b.WriteString(document[last:block.Start])
		b.WriteString("\n" + strings.Join(parts, "\n"))
		last = block.Start
	}
	b.WriteString(document[last:])

	return b.String(), nil
}

func (c *Convertor) snapshot() []*Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Entry(nil), c.entries...)
}

// render returns entry's text in d, translating and memoizing on first use
func (c *Convertor) render(entry *Entry, d dialect.Dialect) (string, error) {
	c.mu.Lock()
	text, ok := entry.raw[d]
	source := entry.raw[entry.Dialect]
	c.mu.Unlock()
	if ok {
		return text, nil
	}

	text, err := c.translator.Translate(source, entry.Dialect, d)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	entry.raw[d] = text
	c.mu.Unlock()
	return text, nil
}

// GroupImports groups import statements by the dialect of the file each one
// imports. Statements whose target has no known extension are dropped.
func GroupImports(imports []string) map[dialect.Dialect][]string {
	grouped := make(map[dialect.Dialect][]string)
	for _, statement := range imports {
		target, ok := css.ImportTarget(statement)
		d := dialect.FromPath(target)
		if !ok || d == dialect.Unknown {
			log.Warn("dropping import %q: cannot tell its dialect", statement)
			continue
		}
		grouped[d] = append(grouped[d], strings.TrimSpace(statement))
	}
	return grouped
}
