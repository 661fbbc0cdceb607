// Package compaction drives the state machine that reclaims space from
// stale records. Gets wait on the index lock while live records are being
// copied, since the copy rewrites index positions in place. A pass moves
// through three states — Rotating, Copying, Retiring — and the writer
// supplies the callback for each: allocate new generation numbers, copy
// live records into the compaction generation, then advance the safe
// point so readers can lazily delete what is left behind.
package compaction

import (
	"fmt"

	"go.uber.org/zap"
)

// State names where a compaction pass currently stands. It exists mainly
// for logging and introspection; the writer holds its own lock for the
// pass's duration, so State is never read concurrently with a transition.
type State int

const (
	// StateIdle means no compaction pass is in progress.
	StateIdle State = iota

	// StateRotating means new generation numbers have been requested and
	// the active segment is about to be swapped.
	StateRotating

	// StateCopying means live records are being streamed from old
	// generations into the new compaction generation.
	StateCopying

	// StateRetiring means the copy finished and the safe point is being
	// advanced so stale generations can be deleted.
	StateRetiring
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRotating:
		return "rotating"
	case StateCopying:
		return "copying"
	case StateRetiring:
		return "retiring"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Compaction tracks the current phase of the owning writer's compaction
// passes. It holds no data of its own beyond that phase — segment
// allocation, record copying, and safe-point advancement all live in the
// callbacks Run is given, since those operations need access to the
// writer's file handles and the index.
type Compaction struct {
	log   *zap.SugaredLogger
	state State
}

// New creates a Compaction tracker in the idle state.
func New(log *zap.SugaredLogger) *Compaction {
	return &Compaction{log: log, state: StateIdle}
}

// State reports the current phase.
func (c *Compaction) State() State {
	return c.state
}

// Run executes one full compaction pass, transitioning Rotating -> Copying
// -> Retiring -> Idle. Each step's callback is supplied by the writer:
//
//   - rotate allocates the compaction generation and new active generation
//     numbers and swaps the active segment, returning both numbers.
//   - copyLive streams every still-live record into the compaction
//     generation and rewrites the index in place.
//   - retire advances the reader safe point past the old generations and
//     triggers their lazy deletion.
//
// If any step fails, Run returns that error immediately and leaves state
// at StateIdle. Run never touches the caller's uncompacted-byte counter;
// the writer resets it in retire, so a failed rotate or copyLive leaves it
// above the threshold and the next write tries compaction again.
func (c *Compaction) Run(
	rotate func() (compactionID, activeID uint64, err error),
	copyLive func(compactionID uint64) error,
	retire func(compactionID uint64) error,
) error {
	c.state = StateRotating
	compactionID, activeID, err := rotate()
	if err != nil {
		c.state = StateIdle
		return err
	}
	c.log.Infow("compaction rotating segments", "compactionSegment", compactionID, "activeSegment", activeID)

	c.state = StateCopying
	if err := copyLive(compactionID); err != nil {
		c.state = StateIdle
		return err
	}

	c.state = StateRetiring
	if err := retire(compactionID); err != nil {
		c.state = StateIdle
		return err
	}

	c.state = StateIdle
	c.log.Infow("compaction finished", "compactionSegment", compactionID)
	return nil
}
