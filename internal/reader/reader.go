// Package reader implements the per-handle segment file cache that backs
// every Get and every compaction copy. Each Engine clone owns its own
// *Pool so that concurrent readers never contend on a shared mutex for
// file handle lookups; the only state they share is the safe point that
// tells them which generation files have been retired by compaction.
package reader

import (
	"encoding/json"
	"io"
	"os"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ignitedb/ignitedb/internal/index"
	"github.com/ignitedb/ignitedb/internal/segment"
	"github.com/ignitedb/ignitedb/pkg/errors"
	"github.com/ignitedb/ignitedb/pkg/filesys"
	"github.com/ignitedb/ignitedb/pkg/seginfo"
)

// Pool caches open *os.File handles for a single engine handle's reads. It
// is not safe for concurrent use by multiple goroutines, and Engine takes
// no lock around it, so concurrent readers each need their own Engine
// clone. Every Pool descended from the
// same root shares safePoint, so compaction on one handle's writer is
// visible to every clone's next read.
type Pool struct {
	dir string
	log *zap.SugaredLogger

	safePoint *atomic.Uint64
	handles   map[uint64]*os.File
}

// New creates the root Pool for a freshly opened engine. safePoint starts
// at zero, meaning every generation file discovered at open time is
// considered live until compaction says otherwise.
func New(dir string, log *zap.SugaredLogger) *Pool {
	return &Pool{
		dir:       dir,
		log:       log,
		safePoint: &atomic.Uint64{},
		handles:   make(map[uint64]*os.File),
	}
}

// Clone returns a new Pool sharing this one's safe point but with its own,
// empty handle cache. Each Engine clone gets one of these so that one
// clone's reads never block another's.
func (p *Pool) Clone() *Pool {
	return &Pool{
		dir:       p.dir,
		log:       p.log,
		safePoint: p.safePoint,
		handles:   make(map[uint64]*os.File),
	}
}

// UpdateSafePoint records that every generation below segmentID has been
// folded into compaction output. Each Pool closes its own cached handle to
// such a file and deletes the file on its next EvictStale, whether or not
// another Pool still has it open.
func (p *Pool) UpdateSafePoint(segmentID uint64) {
	p.safePoint.Store(segmentID)
}

// EvictStale closes and deletes this Pool's cached handles for any
// generation file below the current safe point. It is called on every read
// so that retired files are cleaned up lazily, without the writer needing
// to coordinate directly with any reader.
func (p *Pool) EvictStale() error {
	sp := p.safePoint.Load()

	for id, f := range p.handles {
		if id >= sp {
			continue
		}

		f.Close()
		delete(p.handles, id)

		if err := filesys.DeleteFile(seginfo.Path(p.dir, id)); err != nil {
			return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to delete retired segment").
				WithSegmentID(int(id))
		}
	}

	return nil
}

func (p *Pool) handle(segmentID uint64) (*os.File, error) {
	if err := p.EvictStale(); err != nil {
		return nil, err
	}

	if f, ok := p.handles[segmentID]; ok {
		return f, nil
	}

	f, err := segment.OpenRead(seginfo.Path(p.dir, segmentID))
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to open segment for reading").
			WithSegmentID(int(segmentID))
	}

	p.handles[segmentID] = f
	return f, nil
}

// Read decodes the single record located at pos.
func (p *Pool) Read(pos index.Position) (segment.Record, error) {
	f, err := p.handle(pos.SegmentID)
	if err != nil {
		return segment.Record{}, err
	}

	if _, err := f.Seek(pos.Offset, io.SeekStart); err != nil {
		return segment.Record{}, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to seek segment").
			WithSegmentID(int(pos.SegmentID)).WithOffset(int(pos.Offset))
	}

	var rec segment.Record
	dec := json.NewDecoder(io.LimitReader(f, pos.Length))
	if err := dec.Decode(&rec); err != nil {
		return segment.Record{}, errors.NewCodecError(err, pos.SegmentID, pos.Offset)
	}

	return rec, nil
}

// CopyInto streams the raw encoded bytes of the record located at pos into
// dst, returning how many bytes were copied. It is used by compaction to
// relocate a live record without decoding and re-encoding it.
func (p *Pool) CopyInto(pos index.Position, dst io.Writer) (int64, error) {
	f, err := p.handle(pos.SegmentID)
	if err != nil {
		return 0, err
	}

	if _, err := f.Seek(pos.Offset, io.SeekStart); err != nil {
		return 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to seek segment").
			WithSegmentID(int(pos.SegmentID)).WithOffset(int(pos.Offset))
	}

	n, err := io.CopyN(dst, f, pos.Length)
	if err != nil {
		return 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to copy record during compaction").
			WithSegmentID(int(pos.SegmentID)).WithOffset(int(pos.Offset))
	}

	return n, nil
}

// Close releases every handle this Pool has open. It does not delete any
// files — eviction-driven deletion only ever removes files already below
// the safe point.
func (p *Pool) Close() error {
	for id, f := range p.handles {
		f.Close()
		delete(p.handles, id)
	}
	return nil
}
