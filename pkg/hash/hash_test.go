package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSecret_HashAndCheck(t *testing.T) {
	t.Parallel()

	s := Secret{Cost: bcrypt.MinCost}

	h, err := s.Hash("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", h)

	assert.True(t, s.Check(h, "hunter22"))
	assert.False(t, s.Check(h, "hunter23"))
	assert.False(t, s.Check("", "hunter22"))
}

func TestSecret_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Secret{}.Hash("")
	require.Error(t, err)
}
