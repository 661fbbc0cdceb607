// Package client implements the minimal TCP client counterpart to
// internal/server: connect, send one Command, half-close the write side,
// and read back one Response.
package client

import (
	"net"

	"github.com/ignitedb/ignitedb/internal/wire"
	"github.com/ignitedb/ignitedb/pkg/errors"
)

// Client holds the server address. Every command dials a fresh TCP
// connection, mirroring the one-command-per-connection protocol, so one
// Client can be used for any number of commands.
type Client struct {
	addr string
}

// New returns a Client configured to dial addr on each call.
func New(addr string) *Client {
	return &Client{addr: addr}
}

type halfCloser interface {
	CloseWrite() error
}

// Send dials addr, writes cmd, half-closes the write side of the
// connection, and waits for the single Response the server writes back.
func (c *Client) Send(cmd wire.Command) (wire.Response, error) {
	conn, err := net.Dial("tcp", c.addr)
	if err != nil {
		return wire.Response{}, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to connect").
			WithPath(c.addr)
	}
	defer conn.Close()

	if err := wire.Encode(conn, cmd); err != nil {
		return wire.Response{}, err
	}

	if hc, ok := conn.(halfCloser); ok {
		if err := hc.CloseWrite(); err != nil {
			return wire.Response{}, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to half-close connection")
		}
	}

	var res wire.Response
	if err := wire.Decode(conn, &res); err != nil {
		return wire.Response{}, err
	}

	return res, nil
}

// Get sends a Get command for key.
func (c *Client) Get(key string) ([]byte, bool, error) {
	res, err := c.Send(wire.NewGet(key))
	if err != nil {
		return nil, false, err
	}
	if res.Err != "" {
		return nil, false, errors.NewEngineError(nil, errors.ErrorCodeInternal, res.Err)
	}
	return res.Value, res.Found, nil
}

// Set sends a Set command for key/value.
func (c *Client) Set(key string, value []byte) error {
	res, err := c.Send(wire.NewSet(key, value))
	if err != nil {
		return err
	}
	if res.Err != "" {
		return errors.NewEngineError(nil, errors.ErrorCodeInternal, res.Err)
	}
	return nil
}

// Remove sends an Rm command for key.
func (c *Client) Remove(key string) error {
	res, err := c.Send(wire.NewRm(key))
	if err != nil {
		return err
	}
	if res.Err != "" {
		return errors.NewEngineError(nil, errors.ErrorCodeInternal, res.Err)
	}
	return nil
}
