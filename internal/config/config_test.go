package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/stylevars/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("no configuration", func(t *testing.T) {
		cfg, err := config.Load(t.TempDir())
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("empty root", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("yaml file", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, ".config/stylevars.yaml", `
variablesFiles:
  - src/styles/variables.styl
importStatements:
  - "@import '~lib/mixins.styl'"
cacheVersion: v2
`)
		cfg, err := config.Load(root)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, []string{"src/styles/variables.styl"}, cfg.VariablesFiles)
		assert.Equal(t, []string{"@import '~lib/mixins.styl'"}, cfg.ImportStatements)
		assert.Equal(t, "v2", cfg.CacheVersion)
	})

	t.Run("yml extension", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, ".config/stylevars.yml", "variablesFiles: [a.less]\n")
		cfg, err := config.Load(root)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.less"}, cfg.VariablesFiles)
	})

	t.Run("yaml wins over package.json", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, ".config/stylevars.yaml", "variablesFiles: [from-yaml.styl]\n")
		write(t, root, "package.json", `{"styleVariablesLoader": {"variablesFiles": ["from-json.styl"]}}`)
		cfg, err := config.Load(root)
		require.NoError(t, err)
		assert.Equal(t, []string{"from-yaml.styl"}, cfg.VariablesFiles)
	})

	t.Run("package.json with comments", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, "package.json", `{
  // loader options
  "name": "app",
  "styleVariablesLoader": {
    "variablesFiles": ["vars.styl", "theme.less"],
    "importStatements": ["@import \"mixins.less\";"],
  }
}`)
		cfg, err := config.Load(root)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, []string{"vars.styl", "theme.less"}, cfg.VariablesFiles)
		assert.Equal(t, []string{`@import "mixins.less";`}, cfg.ImportStatements)
	})

	t.Run("package.json without the field", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, "package.json", `{"name": "app"}`)
		cfg, err := config.Load(root)
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("malformed inputs", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, ".config/stylevars.yaml", "variablesFiles: {not: [a list\n")
		_, err := config.Load(root)
		assert.Error(t, err)

		root = t.TempDir()
		write(t, root, "package.json", `{"styleVariablesLoader": "nope"}`)
		_, err = config.Load(root)
		assert.Error(t, err)
	})
}

func TestExpandFiles(t *testing.T) {
	root := t.TempDir()
	write(t, root, "styles/a.styl", "")
	write(t, root, "styles/nested/b.styl", "")
	write(t, root, "styles/c.less", "")
	write(t, root, "node_modules/lib/d.styl", "")
	write(t, root, ".cache/e.styl", "")

	t.Run("globs expand in lexical order", func(t *testing.T) {
		cfg := &config.Config{VariablesFiles: []string{"**/*.styl"}}
		files, err := cfg.ExpandFiles(root)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "styles", "a.styl"),
			filepath.Join(root, "styles", "nested", "b.styl"),
		}, files)
	})

	t.Run("declaration order and de-duplication", func(t *testing.T) {
		cfg := &config.Config{VariablesFiles: []string{
			"styles/c.less",
			"styles/*.styl",
			"styles/a.styl",
			"missing.scss",
		}}
		files, err := cfg.ExpandFiles(root)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "styles", "c.less"),
			filepath.Join(root, "styles", "a.styl"),
			filepath.Join(root, "missing.scss"),
		}, files)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		cfg := &config.Config{VariablesFiles: []string{"styles/[a.styl"}}
		_, err := cfg.ExpandFiles(root)
		assert.Error(t, err)
	})
}
