package engine

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ignitedb/ignitedb/pkg/errors"
	"github.com/ignitedb/ignitedb/pkg/filesys"
	"github.com/ignitedb/ignitedb/pkg/logger"
	"github.com/ignitedb/ignitedb/pkg/options"
	"github.com/ignitedb/ignitedb/pkg/seginfo"
)

func newTestEngine(t *testing.T, optFuncs ...options.OptionFunc) *Engine {
	t.Helper()

	opts := options.NewDefaultOptions()
	options.WithDataDir(t.TempDir())(&opts)
	for _, fn := range optFuncs {
		fn(&opts)
	}

	e, err := New(&Config{Options: &opts, Logger: logger.NewNop()})
	require.NoError(t, err)

	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestSetGetOverwrite(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.Set("a", []byte("1")))

	val, ok, err := e.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("1"), val)

	require.NoError(t, e.Set("a", []byte("2")))
	val, ok, err = e.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("2"), val)
}

func TestGetMissingKeyIsNotAnError(t *testing.T) {
	e := newTestEngine(t)

	val, ok, err := e.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, val)
}

func TestRemoveMissingKeyReturnsNotFound(t *testing.T) {
	e := newTestEngine(t)

	err := e.Remove("missing")
	require.Error(t, err)
	require.True(t, errors.IsEngineError(err))

	ee, ok := errors.AsEngineError(err)
	require.True(t, ok)
	require.Equal(t, errors.ErrorCodeNotFound, ee.Code())
}

func TestRemoveThenDoubleRemoveFails(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.Set("a", []byte("1")))
	require.NoError(t, e.Remove("a"))

	_, ok, err := e.Get("a")
	require.NoError(t, err)
	require.False(t, ok)

	err = e.Remove("a")
	require.Error(t, err)
	ee, ok := errors.AsEngineError(err)
	require.True(t, ok)
	require.Equal(t, errors.ErrorCodeNotFound, ee.Code())
}

func TestReopenReplaysSegments(t *testing.T) {
	dataDir := t.TempDir()
	opts := options.NewDefaultOptions()
	options.WithDataDir(dataDir)(&opts)

	e, err := New(&Config{Options: &opts, Logger: logger.NewNop()})
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("key-%d", i)
		require.NoError(t, e.Set(key, []byte(fmt.Sprintf("value-%d", i))))
	}
	require.NoError(t, e.Remove("key-5"))
	require.NoError(t, e.Set("key-10", []byte("updated")))
	require.NoError(t, e.Close())

	reopened, err := New(&Config{Options: &opts, Logger: logger.NewNop()})
	require.NoError(t, err)
	defer reopened.Close()

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("key-%d", i)
		val, ok, err := reopened.Get(key)
		require.NoError(t, err)

		switch key {
		case "key-5":
			require.False(t, ok)
		case "key-10":
			require.True(t, ok)
			require.Equal(t, []byte("updated"), val)
		default:
			require.True(t, ok)
			require.Equal(t, []byte(fmt.Sprintf("value-%d", i)), val)
		}
	}
}

func TestCompactionReclaimsStaleSegmentsAndPreservesData(t *testing.T) {
	dataDir := t.TempDir()
	opts := options.NewDefaultOptions()
	options.WithDataDir(dataDir)(&opts)
	options.WithCompactionThreshold(256)(&opts)

	e, err := New(&Config{Options: &opts, Logger: logger.NewNop()})
	require.NoError(t, err)
	defer e.Close()

	for round := 0; round < 5; round++ {
		for i := 0; i < 20; i++ {
			key := fmt.Sprintf("key-%d", i)
			require.NoError(t, e.Set(key, []byte(fmt.Sprintf("round-%d-value-%d", round, i))))
		}
	}
	require.NoError(t, e.Remove("key-0"))

	for i := 1; i < 20; i++ {
		key := fmt.Sprintf("key-%d", i)
		val, ok, err := e.Get(key)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []byte(fmt.Sprintf("round-4-value-%d", i)), val)
	}

	_, ok, err := e.Get("key-0")
	require.NoError(t, err)
	require.False(t, ok)

	segmentDir := filepath.Join(dataDir, opts.SegmentOptions.Directory)
	ids, err := seginfo.ListSegmentIDs(segmentDir)
	require.NoError(t, err)
	require.NotEmpty(t, ids)
}

func TestClonesShareStateAndIndependentlyClose(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.Set("shared", []byte("v1")))

	clone := e.Clone()
	val, ok, err := clone.Get("shared")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v1"), val)

	require.NoError(t, clone.Set("from-clone", []byte("v2")))
	val, ok, err = e.Get("from-clone")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v2"), val)

	require.NoError(t, clone.Close())

	val, ok, err = e.Get("shared")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v1"), val)
}

func TestOperationsFailAfterClose(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Close())

	require.ErrorIs(t, e.Set("a", []byte("1")), ErrEngineClosed)

	_, _, err := e.Get("a")
	require.ErrorIs(t, err, ErrEngineClosed)

	require.ErrorIs(t, e.Remove("a"), ErrEngineClosed)
	require.ErrorIs(t, e.Close(), ErrEngineClosed)
}

func TestBackendMarkerRejectsForeignDirectory(t *testing.T) {
	dataDir := t.TempDir()
	opts := options.NewDefaultOptions()
	options.WithDataDir(dataDir)(&opts)

	e, err := New(&Config{Options: &opts, Logger: logger.NewNop()})
	require.NoError(t, err)
	require.NoError(t, e.Close())

	markerPath := filepath.Join(dataDir, backendMarkerFile)
	require.NoError(t, filesys.WriteFile(markerPath, 0644, []byte("some-other-backend")))

	_, err = New(&Config{Options: &opts, Logger: logger.NewNop()})
	require.Error(t, err)

	ee, ok := errors.AsEngineError(err)
	require.True(t, ok)
	require.Equal(t, errors.ErrorCodeConfiguration, ee.Code())
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	opts := options.NewDefaultOptions()
	opts.DataDir = "   "

	_, err := New(&Config{Options: &opts, Logger: logger.NewNop()})
	require.Error(t, err)
	require.True(t, errors.IsValidationError(err))
}
