package taulcache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/taul/internal/taul/llspec"
	"github.com/dekarrin/taul/internal/taulerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSpec() llspec.Spec {
	w := llspec.NewWriter()
	w.LprDecl("A")
	w.Lpr("A", llspec.QualifierNone).StringOp("a").Close()
	return w.Spec()
}

func TestCache_MissThenPutThenHit(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	_, ok, err := c.Get("source text")
	require.NoError(t, err)
	assert.False(t, ok)

	spec := sampleSpec()
	require.NoError(t, c.Put("source text", spec))

	got, ok, err := c.Get("source text")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, spec, got)
}

func TestCache_DifferentSourceDifferentKey(t *testing.T) {
	assert.NotEqual(t, Key("a"), Key("b"))
}

func TestCache_Evict_RemovesEntry(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	spec := sampleSpec()
	require.NoError(t, c.Put("x", spec))
	require.NoError(t, c.Evict("x"))

	_, ok, err := c.Get("x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Evict_MissingEntryIsNotAnError(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, c.Evict("never-put"))
}

func TestCache_Get_CorruptEntryWrapsErrCacheCorrupt(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	require.NoError(t, err)

	key := Key("bad")
	require.NoError(t, os.WriteFile(filepath.Join(dir, key+".rezi"), []byte("not valid rezi data"), 0o644))

	_, _, err = c.Get("bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, taulerr.ErrCacheCorrupt))
}
