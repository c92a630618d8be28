// Command cachesim replays a memory access trace through a set-associative
// cache model and reports hit, miss, and cycle statistics.
package main

import (
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cachesim/cmd"
)

func main() {
	cmd.Execute()
	atexit.Exit(0)
}
