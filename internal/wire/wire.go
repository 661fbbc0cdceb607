// Package wire defines the JSON request/response pair exchanged over a
// single TCP connection between an IgniteDB client and server. Each
// connection carries exactly one Command: the client writes it, half-closes
// its write side, then reads back exactly one Response before the
// connection is torn down.
package wire

import (
	"encoding/json"
	"io"
)

// Op names which operation a Command requests.
type Op string

const (
	OpGet Op = "get"
	OpSet Op = "set"
	OpRm  Op = "rm"
)

// Command is the single self-contained request a client sends per
// connection. Value is only meaningful for OpSet.
type Command struct {
	Op    Op     `json:"op"`
	Key   string `json:"key"`
	Value []byte `json:"value,omitempty"`
}

// NewGet builds a Get command.
func NewGet(key string) Command { return Command{Op: OpGet, Key: key} }

// NewSet builds a Set command.
func NewSet(key string, value []byte) Command { return Command{Op: OpSet, Key: key, Value: value} }

// NewRm builds an Rm command.
func NewRm(key string) Command { return Command{Op: OpRm, Key: key} }

// Response is the single reply the server writes back. Found distinguishes
// a successful Get that matched no key (Found=false, Value=nil, Err="")
// from one that did; Set and Rm responses always report Found=true when
// they succeed, since Value carries no meaning for those operations.
type Response struct {
	Found bool   `json:"found"`
	Value []byte `json:"value,omitempty"`
	Err   string `json:"err,omitempty"`
}

// OK builds a successful response carrying value (nil for Set/Rm, or the
// looked-up bytes for a Get that found its key).
func OK(value []byte, found bool) Response {
	return Response{Found: found, Value: value}
}

// Failed builds a response reporting the given error message.
func Failed(msg string) Response {
	return Response{Err: msg}
}

// Encode writes a single JSON value to w.
func Encode(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// Decode reads a single JSON value from r.
func Decode(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
