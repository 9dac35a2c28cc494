package taulver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrent_IsSet(t *testing.T) {
	assert.NotEmpty(t, Current)
}
