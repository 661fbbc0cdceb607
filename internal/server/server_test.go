package server_test

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ignitedb/ignitedb/internal/client"
	"github.com/ignitedb/ignitedb/internal/engine"
	"github.com/ignitedb/ignitedb/internal/server"
	"github.com/ignitedb/ignitedb/internal/workerpool"
	"github.com/ignitedb/ignitedb/pkg/errors"
	"github.com/ignitedb/ignitedb/pkg/logger"
	"github.com/ignitedb/ignitedb/pkg/options"
)

// startTestServer reserves a free loopback port, then starts a Server bound
// to that exact address in the background and returns it.
func startTestServer(t *testing.T) string {
	t.Helper()

	opts := options.NewDefaultOptions()
	options.WithDataDir(t.TempDir())(&opts)

	eng, err := engine.New(&engine.Config{Options: &opts, Logger: logger.NewNop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })

	probe, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := probe.Addr().String()
	require.NoError(t, probe.Close())

	pool := workerpool.NewFixed(4)
	t.Cleanup(pool.Close)

	srv := server.New(addr, eng, pool, logger.NewNop())
	ready := make(chan struct{})
	go func() {
		close(ready)
		_ = srv.ListenAndServe()
	}()
	<-ready

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	return addr
}

func TestServerClientRoundTrip(t *testing.T) {
	addr := startTestServer(t)
	c := client.New(addr)

	require.NoError(t, c.Set("a", []byte("1")))

	val, found, err := c.Get("a")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("1"), val)

	_, found, err = c.Get("missing")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, c.Remove("a"))

	err = c.Remove("a")
	require.Error(t, err)
	require.True(t, errors.IsEngineError(err))
}
