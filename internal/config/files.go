package config

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var skipDirs = []string{"node_modules", "dist", "build"}

// ExpandFiles resolves VariablesFiles against rootDir. Plain paths are kept
// even when missing so reading them reports the error; glob patterns expand
// to the matching files in lexical order. Duplicates keep their first
// position.
func (c *Config) ExpandFiles(rootDir string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range c.VariablesFiles {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid variables file pattern %q", pattern)
		}

		if !hasMeta(pattern) {
			if filepath.IsAbs(pattern) {
				add(filepath.Clean(pattern))
			} else {
				add(filepath.Join(rootDir, pattern))
			}
			continue
		}

		matches, err := glob(rootDir, filepath.ToSlash(pattern))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			add(m)
		}
	}

	return files, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// glob walks rootDir, skipping hidden and build directories, and returns
// the files whose root-relative path matches pattern.
func glob(rootDir, pattern string) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != rootDir && (strings.HasPrefix(d.Name(), ".") || slices.Contains(skipDirs, d.Name())) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return nil
		}
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", rootDir, err)
	}
	return matches, nil
}
