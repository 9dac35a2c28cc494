package replio

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirect_ReadLine_SplitsOnNewlines(t *testing.T) {
	r := NewDirect(strings.NewReader("one\ntwo\nthree"))

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "one", line)

	line, err = r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "two", line)

	line, err = r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "three", line)

	_, err = r.ReadLine()
	assert.Equal(t, io.EOF, err)
}

func TestDirect_ReadLine_StripsCarriageReturn(t *testing.T) {
	r := NewDirect(strings.NewReader("crlf\r\n"))
	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "crlf", line)
}

func TestDirect_Close_IsNoOp(t *testing.T) {
	r := NewDirect(strings.NewReader(""))
	assert.NoError(t, r.Close())
}
