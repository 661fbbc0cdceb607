// Package ignitedb provides a high-performance key/value data store
// designed for fast read and write operations, inspired by Bitcask.
// It combines an in-memory hash table (index) with an append-only log
// structure on disk to achieve high throughput. It is designed for
// applications requiring fast read and write operations, such as caching,
// session management, and real-time data processing, aiming to provide a
// simple, efficient, and reliable solution for in-memory data storage in
// Go applications.
package ignitedb

import (
	"github.com/ignitedb/ignitedb/internal/engine"
	"github.com/ignitedb/ignitedb/pkg/logger"
	"github.com/ignitedb/ignitedb/pkg/options"
)

// Instance represents an instance of the IgniteDB key/value data store.
// It encapsulates the core engine responsible for data handling and the
// configuration options for this specific database instance.
//
// Instance is the primary entry point for interacting with IgniteDB as an
// embedded library, providing methods for setting, getting, and deleting
// key-value pairs.
type Instance struct {
	engine  *engine.Engine   // The underlying database engine handling read/write operations.
	options *options.Options // Configuration options applied to this DB instance.
}

// NewInstance creates and initializes a new IgniteDB instance, opening (or
// creating) its data directory and replaying any existing log.
func NewInstance(service string, opts ...options.OptionFunc) (*Instance, error) {
	log := logger.New(service)

	defaultOpts := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&defaultOpts)
	}

	eng, err := engine.New(&engine.Config{Logger: log, Options: &defaultOpts})
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, options: &defaultOpts}, nil
}

// Set stores a key-value pair in the database. If the key already exists,
// its value is overwritten. The operation is written to the append-only
// log before Set returns.
func (i *Instance) Set(key string, value []byte) error {
	return i.engine.Set(key, value)
}

// Get retrieves the value associated with the given key. The second
// return value is false if the key has no live value.
func (i *Instance) Get(key string) ([]byte, bool, error) {
	return i.engine.Get(key)
}

// Delete removes a key-value pair from the database. It returns a
// NOT_FOUND error (see pkg/errors.IsEngineError) if the key does not
// currently exist; the entry is fully removed during the next compaction.
func (i *Instance) Delete(key string) error {
	return i.engine.Remove(key)
}

// Clone returns a new Instance handle that shares this one's index and
// writer but keeps its own read cache, suitable for handing to a separate
// goroutine that will issue concurrent Get calls.
func (i *Instance) Clone() *Instance {
	return &Instance{engine: i.engine.Clone(), options: i.options}
}

// Close gracefully shuts down the IgniteDB instance, releasing all
// associated resources and closing open file handles in the engine.
func (i *Instance) Close() error {
	return i.engine.Close()
}
