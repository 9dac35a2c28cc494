package taulerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_MessageOnly(t *testing.T) {
	e := New("something went wrong")
	assert.Equal(t, "something went wrong", e.Error())
	assert.Nil(t, e.Unwrap())
}

func TestError_MessageWithCause(t *testing.T) {
	e := New("loading grammar", ErrNotFound)
	assert.Equal(t, "loading grammar: not found", e.Error())
	assert.True(t, errors.Is(e, ErrNotFound))
}

func TestWrap_PassesThroughSentinel(t *testing.T) {
	underlying := errors.New("disk full")
	e := Wrap(underlying, ErrConfig)
	assert.True(t, errors.Is(e, ErrConfig))
	assert.True(t, errors.Is(e, underlying))
	assert.Equal(t, "disk full", e.Error())
}

func TestError_IsNotConfusedWithUnrelatedSentinel(t *testing.T) {
	e := Wrap(errors.New("bad token"), ErrParse)
	assert.False(t, errors.Is(e, ErrCompile))
}
