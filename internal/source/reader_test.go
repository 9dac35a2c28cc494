package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_AddStr_Concatenates(t *testing.T) {
	b := New()
	b.AddStr("abc")
	b.AddStr("def")
	assert.Equal(t, 6, b.Len())
	assert.Equal(t, "abcdef", b.String(0, b.Len()))
}

func TestBuffer_At_AndSlice(t *testing.T) {
	b := New()
	b.AddStr("hello")
	assert.Equal(t, 'h', b.At(0))
	assert.Equal(t, 'o', b.At(4))
	assert.Equal(t, []rune("ell"), b.Slice(1, 4))
}

func TestBuffer_NFCNormalizes(t *testing.T) {
	// "e" + combining acute (NFD) should normalize to the single precomposed
	// code point (NFC), shortening the buffer by one.
	decomposed := "é"
	b := New()
	b.AddStr(decomposed)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, "é", b.String(0, 1))
}

func TestBuffer_MarkAndRestore(t *testing.T) {
	b := New()
	b.AddStr("abcdef")
	idx := b.Mark(3)
	assert.Equal(t, 3, b.Restore(idx))
}

func TestBuffer_ChangeInput_ResetsBuffer(t *testing.T) {
	b := New()
	b.AddStr("first")
	b.Mark(0)
	b.ChangeInput("second")
	assert.Equal(t, "second", b.String(0, b.Len()))
}

func TestBuffer_FromReader(t *testing.T) {
	b, err := FromReader(strings.NewReader("hi there"))
	require.NoError(t, err)
	assert.Equal(t, "hi there", b.String(0, b.Len()))
}
