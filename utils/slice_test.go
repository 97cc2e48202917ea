package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueUint(t *testing.T) {
	assert.Equal(t, []uint{}, UniqueUint(nil))
	assert.Equal(t, []uint{1, 2, 3}, UniqueUint([]uint{1, 2, 3}))
	assert.Equal(t, []uint{3, 1, 2}, UniqueUint([]uint{3, 1, 3, 2, 1}))
}

func TestChunkUint(t *testing.T) {
	assert.Nil(t, ChunkUint(nil, 100))

	ids := make([]uint, 250)
	for i := range ids {
		ids[i] = uint(i + 1)
	}
	chunks := ChunkUint(ids, 100)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 100)
	assert.Len(t, chunks[2], 50)
	assert.Equal(t, uint(1), chunks[0][0])
	assert.Equal(t, uint(101), chunks[1][0])
	assert.Equal(t, uint(250), chunks[2][49])

	// Exact multiple leaves no short tail.
	chunks = ChunkUint(ids[:200], 100)
	require.Len(t, chunks, 2)

	// Non-positive size must not loop forever.
	chunks = ChunkUint([]uint{1, 2}, 0)
	require.Len(t, chunks, 2)
}
