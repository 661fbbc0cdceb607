package engine

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ignitedb/ignitedb/internal/compaction"
	"github.com/ignitedb/ignitedb/internal/index"
	"github.com/ignitedb/ignitedb/internal/reader"
	"github.com/ignitedb/ignitedb/internal/writer"
	"github.com/ignitedb/ignitedb/pkg/options"
)

// Engine represents the main database engine that coordinates all
// subsystems. It acts as the primary interface for database operations and
// manages the lifecycle of all internal components. Set and Remove may be
// called concurrently from any handles; a single handle's Get is not safe
// for concurrent use, since its reader.Pool is unsynchronized.
//
// A single *Writer and *index.Index are shared by an Engine and every
// handle produced by its Clone method; only the reader.Pool is per-handle,
// so concurrent Get calls across clones never block each other outside of
// a compaction pass.
type Engine struct {
	options *options.Options
	log     *zap.SugaredLogger
	closed  atomic.Bool

	segmentDir string
	idx        *index.Index
	readers    *reader.Pool
	writer     *writer.Writer
	compaction *compaction.Compaction

	// isRoot marks the handle returned by New, which owns the writer and
	// closes it on Close. Cloned handles share the writer but never close
	// it, since other clones may still be using it.
	isRoot bool
}

// Config holds all the parameters needed to initialize a new Engine instance.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}
