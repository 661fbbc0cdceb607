// Package segment defines the on-disk record format written to each
// generation file and the low-level file handles used to read and write
// them. A generation file holds a sequence of JSON-encoded records with no
// framing between them; a decoder that tracks its own input offset is what
// lets readers recover the byte range each record occupied.
package segment

import (
	"os"
)

// Kind distinguishes the two record variants IgniteDB ever appends to a
// generation file. There is no third "Get" variant on disk — lookups never
// touch the log.
type Kind string

const (
	KindSet Kind = "set"
	KindRm  Kind = "rm"
)

// Record is the self-delimiting unit appended to a generation file. Value
// is omitted from the JSON encoding of an Rm record since removals carry no
// payload.
type Record struct {
	Kind  Kind   `json:"kind"`
	Key   string `json:"key"`
	Value []byte `json:"value,omitempty"`
}

// NewSetRecord builds the record written when a key is inserted or updated.
func NewSetRecord(key string, value []byte) Record {
	return Record{Kind: KindSet, Key: key, Value: value}
}

// NewRmRecord builds the tombstone record written when a key is removed.
func NewRmRecord(key string) Record {
	return Record{Kind: KindRm, Key: key}
}

// OpenAppend opens a generation file for exclusive sequential writes,
// creating it if it does not already exist.
func OpenAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// OpenRead opens a generation file for random-access reads.
func OpenRead(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDONLY, 0644)
}
