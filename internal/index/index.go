// Package index provides the in-memory hash table implementation for the
// IgniteDB key-value store. This package embodies the core Bitcask
// architectural principle: maintain all keys in memory with minimal
// metadata while storing actual values on disk.
//
// The index enables O(1) key lookups through an in-memory hash table while
// keeping storage overhead minimal. This allows the system to handle
// datasets significantly larger than available RAM while maintaining
// excellent read performance characteristics.
package index

import (
	"sort"

	"github.com/ignitedb/ignitedb/pkg/errors"
)

// Get returns the current Position of key, if it is live.
func (idx *Index) Get(key string) (Position, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	pos, ok := idx.positions[key]
	return pos, ok
}

// Set records a new Position for key, returning the Position it replaced
// (if any) so the caller can account for the bytes that just went stale.
func (idx *Index) Set(key string, pos Position) (old Position, existed bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	old, existed = idx.positions[key]
	idx.positions[key] = pos
	return old, existed
}

// Remove deletes key's entry, returning the Position it held so the caller
// can account for the bytes its tombstone just invalidated.
func (idx *Index) Remove(key string) (old Position, existed bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	old, existed = idx.positions[key]
	if existed {
		delete(idx.positions, key)
	}
	return old, existed
}

// Len reports how many live keys the index currently holds.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.positions)
}

// Compact rewrites every entry's Position by calling relocate for each key
// in ascending order, replacing the stored Position with whatever relocate
// returns. It holds the index locked for its entire duration, mirroring the
// single-pass compaction a bitcask log performs: relocate is expected to
// copy the record's bytes into the new generation file and report where
// they landed. If relocate fails partway through, the index is left with a
// mix of old and new positions for keys already processed — the caller is
// responsible for treating that as a fatal compaction failure rather than
// retrying at the index layer.
func (idx *Index) Compact(relocate func(key string, old Position) (Position, error)) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	keys := make([]string, 0, len(idx.positions))
	for key := range idx.positions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		newPos, err := relocate(key, idx.positions[key])
		if err != nil {
			return errors.NewIndexError(err, errors.ErrorCodeInternal, "compaction failed to relocate key").
				WithKey(key)
		}
		idx.positions[key] = newPos
	}

	return nil
}
