package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkip(t *testing.T) {
	assert.Equal(t, 0, Skip(1, 10, 0))
	assert.Equal(t, 10, Skip(2, 10, 0))
	assert.Equal(t, 8, Skip(2, 10, 2))
	assert.Equal(t, 0, Skip(1, 10, 3))
	assert.Equal(t, 0, Skip(0, 5, 0))
	assert.Equal(t, 5, Skip(2, 5, -1))
}

func TestMergeAppendsAndResets(t *testing.T) {
	s := Merge[string](nil, 1, []string{"a", "b"}, 3)
	assert.Equal(t, []string{"a", "b"}, s.Results)
	assert.Equal(t, int64(3), s.TotalDocs)
	assert.True(t, s.HasMore())
	assert.Equal(t, 2, s.NextPage())

	s = Merge(s, 2, []string{"c"}, 0)
	assert.Equal(t, []string{"a", "b", "c"}, s.Results)
	assert.Equal(t, int64(3), s.TotalDocs)
	assert.False(t, s.HasMore())

	s = Merge(s, 1, []string{"z"}, 1)
	assert.Equal(t, []string{"z"}, s.Results)
	assert.Equal(t, 0, s.DeletedDocCount)
}

func TestRemoveAdjustsOffsetWithoutDuplicates(t *testing.T) {
	server := []int{1, 2, 3, 4, 5, 6}
	const pageSize = 2

	s := Merge[int](nil, 1, server[:2], int64(len(server)))

	// item 1 deleted on the server and locally
	server = server[1:]
	require.False(t, s.Remove(0))
	assert.Equal(t, []int{2}, s.Results)
	assert.Equal(t, int64(5), s.TotalDocs)
	assert.Equal(t, 1, s.DeletedDocCount)

	skip := Skip(s.NextPage(), pageSize, s.DeletedDocCount)
	s = Merge(s, s.NextPage(), server[skip:skip+pageSize], 0)
	assert.Equal(t, []int{2, 3, 4}, s.Results)
	assert.Equal(t, 1, s.DeletedDocCount)
}

func TestRemoveLastAsksForRefetch(t *testing.T) {
	s := Merge[int](nil, 1, []int{7}, 4)
	assert.True(t, s.Remove(0))
	assert.Empty(t, s.Results)

	s = Merge[int](nil, 1, []int{7}, 1)
	assert.False(t, s.Remove(0))
	assert.False(t, s.Remove(5))
}
