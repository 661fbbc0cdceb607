// Package server implements the IgniteDB TCP front door: an accept loop
// that hands each connection to a worker pool, decodes the single Command
// it carries, applies it to the engine, and writes back one Response.
package server

import (
	"net"

	"go.uber.org/zap"

	"github.com/ignitedb/ignitedb/internal/engine"
	"github.com/ignitedb/ignitedb/internal/wire"
	"github.com/ignitedb/ignitedb/internal/workerpool"
	"github.com/ignitedb/ignitedb/pkg/errors"
)

// Server listens on a single TCP address and dispatches connections to a
// worker pool. Each accepted connection is handled against its own cloned
// Engine handle, so concurrent requests never contend on a single reader
// cache.
type Server struct {
	addr   string
	log    *zap.SugaredLogger
	engine *engine.Engine
	pool   workerpool.Pool
}

// New creates a Server bound to addr, serving requests against engine
// through pool.
func New(addr string, eng *engine.Engine, pool workerpool.Pool, log *zap.SugaredLogger) *Server {
	return &Server{addr: addr, log: log, engine: eng, pool: pool}
}

// ListenAndServe binds addr and accepts connections until the listener is
// closed or Accept returns an error, at which point it returns that error.
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to bind listener").WithPath(s.addr)
	}
	defer listener.Close()

	s.log.Infow("server listening", "addr", s.addr)

	for {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}

		s.log.Infow("accepted connection", "remote", conn.RemoteAddr().String())

		handle := s.engine.Clone()
		s.pool.Spawn(func() {
			defer handle.Close()
			if err := handleConnection(handle, s.log, conn); err != nil {
				s.log.Errorw("connection handling failed", "error", err)
			}
		})
	}
}

func handleConnection(eng *engine.Engine, log *zap.SugaredLogger, conn net.Conn) error {
	defer conn.Close()

	var cmd wire.Command
	if err := wire.Decode(conn, &cmd); err != nil {
		return err
	}

	res := dispatch(eng, log, cmd)
	return wire.Encode(conn, res)
}

func dispatch(eng *engine.Engine, log *zap.SugaredLogger, cmd wire.Command) wire.Response {
	switch cmd.Op {
	case wire.OpGet:
		log.Debugw("get", "key", cmd.Key)
		value, found, err := eng.Get(cmd.Key)
		if err != nil {
			return wire.Failed(err.Error())
		}
		return wire.OK(value, found)

	case wire.OpSet:
		log.Debugw("set", "key", cmd.Key, "bytes", len(cmd.Value))
		if err := eng.Set(cmd.Key, cmd.Value); err != nil {
			return wire.Failed(err.Error())
		}
		return wire.OK(nil, true)

	case wire.OpRm:
		log.Debugw("rm", "key", cmd.Key)
		if err := eng.Remove(cmd.Key); err != nil {
			return wire.Failed(err.Error())
		}
		return wire.OK(nil, true)

	default:
		return wire.Failed("unknown command")
	}
}
