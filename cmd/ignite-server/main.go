// Command ignite-server runs the IgniteDB TCP server: it opens a data
// directory, replays its log, and serves Get/Set/Rm requests over a plain
// TCP listener using the one-command-per-connection wire protocol.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ignitedb/ignitedb/internal/engine"
	"github.com/ignitedb/ignitedb/internal/server"
	"github.com/ignitedb/ignitedb/internal/workerpool"
	"github.com/ignitedb/ignitedb/pkg/logger"
	"github.com/ignitedb/ignitedb/pkg/options"
)

func main() {
	var (
		addr      = flag.String("addr", "127.0.0.1:4000", "address to listen on")
		dataDir   = flag.String("data-dir", options.DefaultDataDir, "directory to store segment files in")
		poolKind  = flag.String("pool", "fixed", "connection worker pool: \"fixed\" or \"naive\"")
		poolSize  = flag.Int("pool-size", 8, "number of workers for the fixed pool")
		threshold = flag.Uint64("compaction-threshold", options.DefaultCompactionThreshold, "stale bytes tolerated before compaction")
	)
	flag.Parse()

	log := logger.New("ignite-server")
	defer log.Sync()

	opts := options.NewDefaultOptions()
	options.WithDataDir(*dataDir)(&opts)
	options.WithCompactionThreshold(*threshold)(&opts)

	eng, err := engine.New(&engine.Config{Options: &opts, Logger: log})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open engine:", err)
		os.Exit(1)
	}
	defer eng.Close()

	var pool workerpool.Pool
	switch *poolKind {
	case "naive":
		pool = workerpool.NewNaive(*poolSize)
	default:
		pool = workerpool.NewFixed(*poolSize)
	}
	defer pool.Close()

	srv := server.New(*addr, eng, pool, log)
	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintln(os.Stderr, "server stopped:", err)
		os.Exit(1)
	}
}
