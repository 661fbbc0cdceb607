package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ignitedb/ignitedb/pkg/logger"
)

func TestIndexSetGetRemove(t *testing.T) {
	idx := New(logger.NewNop())

	_, ok := idx.Get("missing")
	require.False(t, ok)

	pos := Position{SegmentID: 1, Offset: 0, Length: 10}
	old, existed := idx.Set("a", pos)
	require.False(t, existed)
	require.Equal(t, Position{}, old)

	got, ok := idx.Get("a")
	require.True(t, ok)
	require.Equal(t, pos, got)

	newPos := Position{SegmentID: 1, Offset: 10, Length: 5}
	old, existed = idx.Set("a", newPos)
	require.True(t, existed)
	require.Equal(t, pos, old)

	require.Equal(t, 1, idx.Len())

	old, existed = idx.Remove("a")
	require.True(t, existed)
	require.Equal(t, newPos, old)
	require.Equal(t, 0, idx.Len())

	_, existed = idx.Remove("a")
	require.False(t, existed)
}

func TestIndexCompactRewritesInOrder(t *testing.T) {
	idx := New(logger.NewNop())

	idx.Set("b", Position{SegmentID: 1, Offset: 0, Length: 4})
	idx.Set("a", Position{SegmentID: 1, Offset: 4, Length: 4})
	idx.Set("c", Position{SegmentID: 1, Offset: 8, Length: 4})

	var seen []string
	err := idx.Compact(func(key string, old Position) (Position, error) {
		seen = append(seen, key)
		return Position{SegmentID: 2, Offset: old.Offset, Length: old.Length}, nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, seen)

	pos, ok := idx.Get("a")
	require.True(t, ok)
	require.Equal(t, uint64(2), pos.SegmentID)
}
