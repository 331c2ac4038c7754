package service

import (
	"testing"

	"github.com/lshigami/edugress/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeLines(t *testing.T) {
	out, err := mergeLines([]dto.CartLineDTO{{ID: 3, Amount: 1}, {ID: 1, Amount: 2}, {ID: 3, Amount: 4}})
	require.NoError(t, err)
	assert.Equal(t, []dto.CartLineDTO{{ID: 3, Amount: 5}, {ID: 1, Amount: 2}}, out)

	_, err = mergeLines([]dto.CartLineDTO{{ID: 1, Amount: 0}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	out, err = mergeLines(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
