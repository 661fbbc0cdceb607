// Package engine provides the core database engine implementation for the
// IgniteDB storage system.
//
// The engine serves as the central coordinator and entry point for all
// database operations. It orchestrates the interaction between these
// subsystems:
//   - Index: in-memory key -> log-position map for fast lookups.
//   - Segment/Reader/Writer: the append-only log itself, its single writer,
//     and the per-handle read cache.
//   - Compaction: reclaims space from stale records; Gets wait on the index
//     lock while live records are copied.
//
// Writes through any handle are serialized by the shared writer. Each
// handle's read cache is unsynchronized, so concurrent readers use separate
// handles obtained from Clone.
package engine

import (
	stdErrors "errors"
	"path/filepath"
	"strings"

	"github.com/ignitedb/ignitedb/internal/compaction"
	"github.com/ignitedb/ignitedb/internal/index"
	"github.com/ignitedb/ignitedb/internal/reader"
	"github.com/ignitedb/ignitedb/internal/segment"
	"github.com/ignitedb/ignitedb/internal/writer"
	"github.com/ignitedb/ignitedb/pkg/errors"
	"github.com/ignitedb/ignitedb/pkg/filesys"
	"github.com/ignitedb/ignitedb/pkg/options"
	"github.com/ignitedb/ignitedb/pkg/seginfo"
)

// ErrEngineClosed is returned when attempting to perform operations on a closed engine.
var ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")

// backendMarkerFile sits alongside the segment directory and records which
// storage backend wrote it, so opening a directory whose marker names a
// different backend fails loudly instead of silently misreading its segment
// files. A directory with no marker is accepted and given one.
const backendMarkerFile = ".ignitedb-backend"
const backendMarkerContents = "ignitedb-bitcask-v1"

// New opens (or creates) a data directory and returns the root Engine
// handle for it. Every existing generation file is replayed to rebuild the
// index before the engine accepts its first write.
func New(config *Config) (*Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, errors.NewConfigurationError("engine configuration is required")
	}

	if err := validateOptions(config.Options); err != nil {
		return nil, err
	}

	dataDir := config.Options.DataDir
	if err := filesys.CreateDir(dataDir, 0755, true); err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to create data directory").
			WithPath(dataDir)
	}

	if err := checkBackendMarker(dataDir); err != nil {
		return nil, err
	}

	segmentDir := filepath.Join(dataDir, config.Options.SegmentOptions.Directory)
	if err := filesys.CreateDir(segmentDir, 0755, true); err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to create segment directory").
			WithPath(segmentDir)
	}

	ids, err := seginfo.ListSegmentIDs(segmentDir)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to list segment files").
			WithPath(segmentDir)
	}

	idx := index.New(config.Logger)
	uncompacted, err := replaySegments(segmentDir, ids, idx)
	if err != nil {
		return nil, err
	}

	activeID := uint64(1)
	if len(ids) > 0 {
		activeID = ids[len(ids)-1] + 1
	}

	root := reader.New(segmentDir, config.Logger)
	comp := compaction.New(config.Logger)

	w, err := writer.New(&writer.Config{
		Dir:                 segmentDir,
		ActiveSegmentID:     activeID,
		UncompactedBytes:    uncompacted,
		CompactionThreshold: config.Options.CompactionThreshold,
		Index:               idx,
		Readers:             root.Clone(),
		Compaction:          comp,
		Logger:              config.Logger,
	})
	if err != nil {
		return nil, err
	}

	config.Logger.Infow("engine opened",
		"dataDir", dataDir, "segments", len(ids), "activeSegment", activeID, "keys", idx.Len())

	return &Engine{
		options:    config.Options,
		log:        config.Logger,
		segmentDir: segmentDir,
		idx:        idx,
		readers:    root,
		writer:     w,
		compaction: comp,
		isRoot:     true,
	}, nil
}

// validateOptions rejects configurations that would otherwise fail deep
// inside segment bootstrap with a less specific error.
func validateOptions(opts *options.Options) error {
	if strings.TrimSpace(opts.DataDir) == "" {
		return errors.NewRequiredFieldError("dataDir")
	}

	if opts.SegmentOptions == nil || strings.TrimSpace(opts.SegmentOptions.Directory) == "" {
		return errors.NewConfigurationValidationError("segmentOptions.directory", "must be set")
	}

	if opts.CompactionThreshold == 0 {
		return errors.NewFieldRangeError("compactionThreshold", opts.CompactionThreshold, 1, nil)
	}

	return nil
}

func checkBackendMarker(dataDir string) error {
	markerPath := filepath.Join(dataDir, backendMarkerFile)

	exists, err := filesys.Exists(markerPath)
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to check backend marker").
			WithPath(markerPath)
	}

	if !exists {
		return filesys.WriteFile(markerPath, 0644, []byte(backendMarkerContents))
	}

	contents, err := filesys.ReadFile(markerPath)
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read backend marker").
			WithPath(markerPath)
	}

	if string(contents) != backendMarkerContents {
		return errors.NewConfigurationError(
			"data directory was written by a different storage backend",
		)
	}

	return nil
}

// Set stores value under key, overwriting any existing value.
func (e *Engine) Set(key string, value []byte) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	return e.writer.Write(segment.NewSetRecord(key, value))
}

// Get returns the value stored under key. The second return value is false
// if the key has no live entry.
func (e *Engine) Get(key string) ([]byte, bool, error) {
	if e.closed.Load() {
		return nil, false, ErrEngineClosed
	}

	pos, ok := e.idx.Get(key)
	if !ok {
		return nil, false, nil
	}

	rec, err := e.readers.Read(pos)
	if err != nil {
		return nil, false, err
	}

	if rec.Kind != segment.KindSet {
		return nil, false, errors.NewUnexpectedRecordError(key, pos.SegmentID, pos.Offset)
	}

	return rec.Value, true, nil
}

// Remove deletes key. It returns a NOT_FOUND EngineError if key has no live
// entry; removing an absent key is never silently accepted, matching the
// wire protocol's requirement that Rm report failure in that case. The
// liveness check and the tombstone append happen atomically under the
// writer's lock, so two concurrent Remove(key) calls on the same key can
// never both succeed.
func (e *Engine) Remove(key string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	return e.writer.Remove(key)
}

// Clone returns a new Engine handle sharing this one's index and writer
// but with its own reader handle cache, so concurrent callers never block
// each other's reads. The clone must still be closed independently, but
// only the root handle returned by New actually closes the shared writer.
func (e *Engine) Clone() *Engine {
	return &Engine{
		options:    e.options,
		log:        e.log,
		segmentDir: e.segmentDir,
		idx:        e.idx,
		readers:    e.readers.Clone(),
		writer:     e.writer,
		compaction: e.compaction,
		isRoot:     false,
	}
}

// Close releases this handle's resources. Called on the root handle, it
// also closes the shared writer; cloned handles only release their own
// reader cache.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	var firstErr error

	if e.isRoot {
		if err := e.writer.Close(); err != nil {
			firstErr = err
		}
	}

	if err := e.readers.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}
