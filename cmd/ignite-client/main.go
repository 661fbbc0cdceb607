// Command ignite-client sends a single Get, Set, or Rm request to an
// ignite-server instance and prints the result.
//
// Usage:
//
//	ignite-client -addr 127.0.0.1:4000 get mykey
//	ignite-client -addr 127.0.0.1:4000 set mykey myvalue
//	ignite-client -addr 127.0.0.1:4000 rm mykey
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ignitedb/ignitedb/internal/client"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:4000", "server address")
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: ignite-client -addr host:port <get|set|rm> key [value]")
		os.Exit(2)
	}

	c := client.New(*addr)
	op, key := args[0], args[1]

	var err error
	switch op {
	case "get":
		var value []byte
		var found bool
		value, found, err = c.Get(key)
		if err == nil {
			if !found {
				fmt.Println("Key not found")
			} else {
				fmt.Println(string(value))
			}
		}

	case "set":
		if len(args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: ignite-client -addr host:port set key value")
			os.Exit(2)
		}
		err = c.Set(key, []byte(args[2]))

	case "rm":
		err = c.Remove(key)
		if err != nil && strings.Contains(err.Error(), "key not found") {
			fmt.Fprintln(os.Stderr, "Key not found")
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, "unknown command:", op)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
