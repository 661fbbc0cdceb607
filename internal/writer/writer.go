// Package writer implements the single exclusive append path for an
// IgniteDB data directory. Exactly one *Writer exists per open engine no
// matter how many Engine handles are cloned from it; every Set and Rm
// funnels through its lock, which is what lets the index, the
// uncompacted-byte counter, and the active generation file all move
// together without ever tearing.
package writer

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/ignitedb/ignitedb/internal/compaction"
	"github.com/ignitedb/ignitedb/internal/index"
	"github.com/ignitedb/ignitedb/internal/reader"
	"github.com/ignitedb/ignitedb/internal/segment"
	"github.com/ignitedb/ignitedb/pkg/errors"
	"github.com/ignitedb/ignitedb/pkg/seginfo"

	"os"
	"sync"
)

// Config bundles everything New needs to take ownership of the active
// generation file and begin accepting writes.
type Config struct {
	Dir                 string
	ActiveSegmentID     uint64
	UncompactedBytes    uint64
	CompactionThreshold uint64
	Index               *index.Index
	Readers             *reader.Pool
	Compaction          *compaction.Compaction
	Logger              *zap.SugaredLogger
}

// Writer owns the active generation file and performs every mutation to
// the on-disk log and the in-memory index.
type Writer struct {
	mu sync.Mutex

	dir              string
	file             *os.File
	activeID         uint64
	cursor           int64
	uncompactedBytes uint64
	threshold        uint64

	idx     *index.Index
	readers *reader.Pool
	comp    *compaction.Compaction
	log     *zap.SugaredLogger
}

// New opens the active generation file named by config.ActiveSegmentID and
// returns a Writer ready to accept Write calls. config.UncompactedBytes
// should be the stale-byte count recovered from replaying the existing log
// at startup, so that a reopened store resumes its compaction schedule
// rather than restarting it.
func New(config *Config) (*Writer, error) {
	path := seginfo.Path(config.Dir, config.ActiveSegmentID)

	f, err := segment.OpenAppend(path)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to open active segment").
			WithSegmentID(int(config.ActiveSegmentID)).WithPath(path)
	}

	return &Writer{
		dir:              config.Dir,
		file:             f,
		activeID:         config.ActiveSegmentID,
		uncompactedBytes: config.UncompactedBytes,
		threshold:        config.CompactionThreshold,
		idx:              config.Index,
		readers:          config.Readers,
		comp:             config.Compaction,
		log:              config.Logger,
	}, nil
}

// Write appends rec to the active generation file and applies it to the
// index, triggering a compaction pass if the uncompacted-byte threshold
// has been crossed. The record is durable on return in the sense that it
// has been handed to the OS; Write does not fsync, matching the log's
// general no-fsync durability posture.
func (w *Writer) Write(rec segment.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.appendAndIndex(rec)
}

// Remove appends a tombstone for key, but only if key currently has a live
// index entry. The existence check and the append happen under the same
// writer-lock acquisition, so two goroutines racing Remove(key) on the same
// key can never both observe it as live: whichever one takes the lock
// second sees the first one's deletion and returns NotFound instead of
// appending a second, orphaned tombstone.
func (w *Writer) Remove(key string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, existed := w.idx.Get(key); !existed {
		return errors.NewNotFoundError(key)
	}

	return w.appendAndIndex(segment.NewRmRecord(key))
}

// appendAndIndex serializes rec, appends it to the active generation file,
// updates the index and uncompacted-byte counter, and triggers compaction
// if the threshold has been crossed. Callers must hold w.mu.
func (w *Writer) appendAndIndex(rec segment.Record) error {
	buf, err := json.Marshal(rec)
	if err != nil {
		return errors.NewCodecError(err, w.activeID, w.cursor)
	}

	start := w.cursor
	n, err := w.file.Write(buf)
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to append record").
			WithSegmentID(int(w.activeID)).WithOffset(int(start))
	}
	w.cursor += int64(n)

	pos := index.Position{SegmentID: w.activeID, Offset: start, Length: int64(n)}

	switch rec.Kind {
	case segment.KindSet:
		if old, existed := w.idx.Set(rec.Key, pos); existed {
			w.uncompactedBytes += uint64(old.Length)
		}
	case segment.KindRm:
		// Both the superseded Set's bytes and the tombstone's own bytes
		// become dead once compaction drops the key from the index.
		if old, existed := w.idx.Remove(rec.Key); existed {
			w.uncompactedBytes += uint64(old.Length)
		}
		w.uncompactedBytes += uint64(n)
	}

	if w.uncompactedBytes > w.threshold {
		if err := w.runCompaction(); err != nil {
			w.log.Errorw("compaction pass failed", "error", err)
			return err
		}
	}

	return nil
}

func (w *Writer) runCompaction() error {
	return w.comp.Run(w.rotate, w.copyLive, w.retire)
}

// rotate allocates the compaction generation (activeID+1) and the next
// active generation (activeID+2), then swaps the writer onto a fresh
// active file. Mirroring the gap between the two numbers keeps the
// compaction generation's number lower than the new active generation's,
// so a reader's safe point check treats them correctly during the window
// where both exist.
func (w *Writer) rotate() (compactionID, activeID uint64, err error) {
	compactionID = w.activeID + 1
	activeID = w.activeID + 2

	newFile, err := segment.OpenAppend(seginfo.Path(w.dir, activeID))
	if err != nil {
		return 0, 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to open new active segment").
			WithSegmentID(int(activeID))
	}

	w.file.Close()
	w.file = newFile
	w.activeID = activeID
	w.cursor = 0

	return compactionID, activeID, nil
}

func (w *Writer) copyLive(compactionID uint64) error {
	compPath := seginfo.Path(w.dir, compactionID)
	compFile, err := segment.OpenAppend(compPath)
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to open compaction segment").
			WithSegmentID(int(compactionID))
	}
	defer compFile.Close()

	var pos int64
	err = w.idx.Compact(func(key string, old index.Position) (index.Position, error) {
		n, err := w.readers.CopyInto(old, compFile)
		if err != nil {
			return index.Position{}, err
		}

		newPos := index.Position{SegmentID: compactionID, Offset: pos, Length: n}
		pos += n
		return newPos, nil
	})

	return err
}

func (w *Writer) retire(compactionID uint64) error {
	w.readers.UpdateSafePoint(compactionID)
	w.uncompactedBytes = 0
	return w.readers.EvictStale()
}

// Close releases the active generation file handle.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
