package taulcfg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/taul/internal/taulerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_EnablesSkipCutting(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Lex.CutSkipTokens)
	assert.Empty(t, cfg.Cache.Dir)
}

func TestLoad_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taul.toml")
	writeFile(t, path, `
grammar = "grammars/foo.taul"

[cache]
dir = "cache"

[lex]
cut_skip_tokens = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "grammars/foo.taul"), cfg.Grammar)
	assert.Equal(t, filepath.Join(dir, "cache"), cfg.Cache.Dir)
	assert.False(t, cfg.Lex.CutSkipTokens)
}

func TestLoad_AbsolutePathsUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taul.toml")
	writeFile(t, path, `grammar = "/abs/grammar.taul"`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/abs/grammar.taul", cfg.Grammar)
}

func TestLoad_MissingFile_WrapsErrConfig(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, taulerr.ErrConfig))
}

func TestLoad_MalformedToml_WrapsErrConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taul.toml")
	writeFile(t, path, `not = [valid toml`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, taulerr.ErrConfig))
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}
