package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bennypowers.dev/stylevars/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	original := log.GetLevel()
	t.Cleanup(func() { log.SetLevel(original) })

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.Reader = strings.NewReader(stdin)
	err := app.Run(context.Background(), append([]string{"stylevars"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTranslateCommand(t *testing.T) {
	dir := t.TempDir()
	vars := writeFile(t, dir, "vars.styl", "$base-color = green\n")

	out, err := run(t, "", "translate", "--to", "less", vars)
	require.NoError(t, err)
	assert.Equal(t, "@base-color : green;\n", out)

	t.Run("stdin needs an explicit source dialect", func(t *testing.T) {
		_, err := run(t, "@a: 1;", "translate", "--to", "scss", "-")
		assert.Error(t, err)

		out, err := run(t, "@a: 1;", "translate", "--from", "less", "--to", "scss", "-")
		require.NoError(t, err)
		assert.Equal(t, "$a : 1;\n", out)
	})

	t.Run("unknown dialect", func(t *testing.T) {
		_, err := run(t, "", "translate", "--to", "css", vars)
		assert.Error(t, err)
	})
}

func TestInjectCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "styles/a.styl", "$a = 1\n")
	writeFile(t, dir, "styles/b.less", "@b: 2;\n")
	writeFile(t, dir, ".config/stylevars.yaml", `
variablesFiles:
  - styles/*.styl
importStatements:
  - '@import "mixins.less";'
`)
	doc := writeFile(t, dir, "App.vue", "<template><i/></template>\n<style lang=\"less\">\n.a {}\n</style>\n")

	out, err := run(t, "", "inject", "--config", dir, "--var", filepath.Join(dir, "styles", "b.less"), doc)
	require.NoError(t, err)
	assert.Equal(t, "<template><i/></template>\n<style lang=\"less\">\n@import \"mixins.less\";\n@a : 1;\n@b: 2;\n.a {}\n</style>\n", out)

	t.Run("unsupported variables file", func(t *testing.T) {
		_, err := run(t, "", "inject", "--var", filepath.Join(dir, "App.vue"), doc)
		assert.Error(t, err)
	})
}

func TestTokensCommand(t *testing.T) {
	out, err := run(t, "$a = 1px", "tokens", "--dialect", "stylus", "-")
	require.NoError(t, err)
	assert.Equal(t, "VARIABLE($a)\nOPERATOR(=)\nUNIT(1px)\n", out)
}

func TestVerboseFlag(t *testing.T) {
	_, err := run(t, "$a = 1", "--verbose", "tokens", "--dialect", "stylus", "-")
	require.NoError(t, err)
	assert.Equal(t, log.LevelDebug, log.GetLevel())

	_, err = run(t, "", "--log-level", "loud", "tokens", "-")
	assert.Error(t, err)
}
