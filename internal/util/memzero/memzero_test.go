package memzero_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sessionbridge/internal/util/memzero"
)

func TestZero(t *testing.T) {
	a := []byte{1, 2, 3}
	b := []byte{0xff}
	memzero.Zero(a, nil, b)
	assert.Equal(t, []byte{0, 0, 0}, a)
	assert.Equal(t, []byte{0}, b)
}
