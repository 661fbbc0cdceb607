package index

import (
	"sync"

	"go.uber.org/zap"
)

// Position identifies the exact location of one record within the segment
// log: the generation file it was appended to, the byte offset at which
// its encoded form begins, and how many bytes it occupies. A reader seeks
// to Offset, reads Length bytes, and decodes exactly one record — no
// scanning, no boundary guessing.
//
// Position replaces the earlier RecordPointer's timestamp and size-split
// fields; ordering between competing writes is implicit in map-insertion
// order under the writer's exclusive lock, so no wall-clock timestamp is
// needed to resolve it.
type Position struct {
	// SegmentID names the generation file holding this record.
	SegmentID uint64

	// Offset is the byte position within that file where the record's
	// encoded bytes begin.
	Offset int64

	// Length is the number of bytes the encoded record occupies, letting a
	// reader issue a single bounded read rather than decoding until EOF.
	Length int64
}

// Index is the in-memory map from key to its current Position in the
// segment log. Every live key in the store has exactly one entry here;
// removing a key deletes its entry outright rather than tombstoning it in
// memory (the tombstone only exists on disk, as an Rm record).
//
// All mutation goes through the single writer, which serializes appends,
// index updates, and compaction under one lock. Readers only need mu to
// protect concurrent Get calls against that writer.
type Index struct {
	log *zap.SugaredLogger

	mu        sync.RWMutex
	positions map[string]Position
}

// New creates an empty Index ready to be populated during log replay.
func New(log *zap.SugaredLogger) *Index {
	return &Index{log: log, positions: make(map[string]Position, 1024)}
}
