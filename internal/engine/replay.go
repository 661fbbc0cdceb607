package engine

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ignitedb/ignitedb/internal/index"
	"github.com/ignitedb/ignitedb/internal/segment"
	"github.com/ignitedb/ignitedb/pkg/errors"
	"github.com/ignitedb/ignitedb/pkg/seginfo"
)

// replaySegments rebuilds idx by streaming every record out of every
// existing generation file, in ascending generation order, and returns the
// total bytes made stale by overwrites and tombstones encountered along
// the way. This total seeds the writer's uncompacted-byte counter so a
// reopened store resumes its compaction schedule instead of restarting it.
func replaySegments(segmentDir string, ids []uint64, idx *index.Index) (uint64, error) {
	var uncompacted uint64

	for _, id := range ids {
		n, err := replaySegment(segmentDir, id, idx)
		if err != nil {
			return 0, err
		}
		uncompacted += n
	}

	return uncompacted, nil
}

func replaySegment(segmentDir string, id uint64, idx *index.Index) (uint64, error) {
	path := seginfo.Path(segmentDir, id)

	f, err := segment.OpenRead(path)
	if err != nil {
		return 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to open segment for replay").
			WithSegmentID(int(id)).WithPath(path)
	}
	defer f.Close()

	return decodeSegment(f, id, idx)
}

func decodeSegment(f *os.File, id uint64, idx *index.Index) (uint64, error) {
	dec := json.NewDecoder(f)

	var uncompacted uint64
	var pos int64

	for {
		var rec segment.Record
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				break
			}
			return 0, errors.NewCodecError(err, id, pos)
		}

		newPos := dec.InputOffset()
		recPos := index.Position{SegmentID: id, Offset: pos, Length: newPos - pos}

		switch rec.Kind {
		case segment.KindSet:
			if old, existed := idx.Set(rec.Key, recPos); existed {
				uncompacted += uint64(old.Length)
			}
		case segment.KindRm:
			if old, existed := idx.Remove(rec.Key); existed {
				uncompacted += uint64(old.Length)
			}
			uncompacted += uint64(recPos.Length)
		}

		pos = newPos
	}

	return uncompacted, nil
}
