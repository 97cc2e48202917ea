package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idRange(from, to uint) []uint {
	ids := make([]uint, 0, to-from+1)
	for i := from; i <= to; i++ {
		ids = append(ids, i)
	}
	return ids
}

func TestBulkApplyAllChunksSucceed(t *testing.T) {
	var seen [][]uint
	result, err := bulkApply(idRange(1, 250), func(chunk []uint) error {
		seen = append(seen, chunk)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, seen, 3)
	assert.Len(t, seen[0], 100)
	assert.Len(t, seen[1], 100)
	assert.Len(t, seen[2], 50)
	assert.Equal(t, idRange(1, 250), result.AppliedIDs)
	assert.Empty(t, result.FailedIDs)
	assert.Empty(t, result.SkippedIDs)
}

func TestBulkApplyPartialFailure(t *testing.T) {
	// Second chunk fails: ids 1-100 stay applied, 101-200 are the failed
	// chunk, 201-250 are never attempted.
	call := 0
	result, err := bulkApply(idRange(1, 250), func(chunk []uint) error {
		call++
		if call == 2 {
			return errors.New("deadlock detected")
		}
		return nil
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "bulk chunk 2/3")
	require.NotNil(t, result)
	assert.Equal(t, idRange(1, 100), result.AppliedIDs)
	assert.Equal(t, idRange(101, 200), result.FailedIDs)
	assert.Equal(t, idRange(201, 250), result.SkippedIDs)
	assert.Equal(t, 2, call, "chunks after the failure must not be attempted")
}

func TestBulkApplyFirstChunkFailure(t *testing.T) {
	result, err := bulkApply(idRange(1, 150), func(chunk []uint) error {
		return fmt.Errorf("boom")
	})
	require.Error(t, err)
	assert.Empty(t, result.AppliedIDs)
	assert.Equal(t, idRange(1, 100), result.FailedIDs)
	assert.Equal(t, idRange(101, 150), result.SkippedIDs)
}

func TestBulkApplyDeduplicatesIDs(t *testing.T) {
	result, err := bulkApply([]uint{7, 7, 8, 7, 9}, func(chunk []uint) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{7, 8, 9}, result.AppliedIDs)
}

func TestBulkApplyEmpty(t *testing.T) {
	result, err := bulkApply(nil, func(chunk []uint) error {
		t.Fatal("apply must not be called for an empty id set")
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, result.AppliedIDs)
}
