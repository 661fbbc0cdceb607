package seginfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateNameAndParseSegmentID(t *testing.T) {
	name := GenerateName(41)
	require.Equal(t, "41.db", name)

	id, ok := ParseSegmentID(name)
	require.True(t, ok)
	require.Equal(t, uint64(41), id)

	_, ok = ParseSegmentID("not-a-segment.txt")
	require.False(t, ok)
}

func TestListSegmentIDsSortsNumerically(t *testing.T) {
	dir := t.TempDir()

	for _, id := range []uint64{2, 41, 1} {
		f, err := os.Create(Path(dir, id))
		require.NoError(t, err)
		f.Close()
	}

	ids, err := ListSegmentIDs(dir)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2, 41}, ids)
}

func TestGetLastSegmentID(t *testing.T) {
	dir := t.TempDir()

	_, ok, err := GetLastSegmentID(dir)
	require.NoError(t, err)
	require.False(t, ok)

	for _, id := range []uint64{1, 2, 3} {
		f, err := os.Create(filepath.Join(dir, GenerateName(id)))
		require.NoError(t, err)
		f.Close()
	}

	last, ok, err := GetLastSegmentID(dir)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(3), last)
}
