package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := NewDefaultOptions()
	require.Equal(t, DefaultDataDir, opts.DataDir)
	require.Equal(t, DefaultCompactInterval, opts.CompactInterval)
	require.Equal(t, DefaultCompactionThreshold, opts.CompactionThreshold)
	require.Equal(t, DefaultSegmentDirectory, opts.SegmentOptions.Directory)
}

func TestWithDataDirIgnoresBlank(t *testing.T) {
	opts := NewDefaultOptions()
	WithDataDir("  ")(&opts)
	require.Equal(t, DefaultDataDir, opts.DataDir)

	WithDataDir("/tmp/ignitedb-test")(&opts)
	require.Equal(t, "/tmp/ignitedb-test", opts.DataDir)
}

func TestWithCompactionThreshold(t *testing.T) {
	opts := NewDefaultOptions()
	WithCompactionThreshold(0)(&opts)
	require.Equal(t, DefaultCompactionThreshold, opts.CompactionThreshold)

	WithCompactionThreshold(2048)(&opts)
	require.Equal(t, uint64(2048), opts.CompactionThreshold)
}

func TestWithCompactIntervalRejectsNonPositive(t *testing.T) {
	opts := NewDefaultOptions()
	WithCompactInterval(0)(&opts)
	require.Equal(t, DefaultCompactInterval, opts.CompactInterval)

	WithCompactInterval(time.Minute)(&opts)
	require.Equal(t, time.Minute, opts.CompactInterval)
}
