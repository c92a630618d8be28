package cmd

import (
	"errors"
	"strconv"
)

// config is the validated cache configuration decoded from the six
// positional command-line arguments.
type config struct {
	numSets         int
	blocksPerSet    int
	blockSize       int
	writeAllocate   bool
	writeThrough    bool
	replaceStrategy string
}

func parseConfig(args []string) (config, error) {
	cfg := config{}

	var ok bool
	if cfg.numSets, ok = parsePowerOfTwo(args[0]); !ok {
		return config{}, errors.New(
			"number of sets in cache must be a power of 2")
	}

	if cfg.blocksPerSet, ok = parsePowerOfTwo(args[1]); !ok {
		return config{}, errors.New(
			"number of blocks in each set must be a power of 2")
	}

	if cfg.blockSize, ok = parsePowerOfTwo(args[2]); !ok ||
		cfg.blockSize < 4 {
		return config{}, errors.New("number of bytes in each block " +
			"must be a positive power-of-2, at least 4")
	}

	switch args[3] {
	case "write-allocate":
		cfg.writeAllocate = true
	case "no-write-allocate":
	default:
		return config{}, errors.New("cache miss parameter must be " +
			"write-allocate or no-write-allocate")
	}

	switch args[4] {
	case "write-through":
		cfg.writeThrough = true
	case "write-back":
	default:
		return config{}, errors.New("store write parameter must be " +
			"write-through or write-back")
	}

	switch args[5] {
	case "lru", "fifo":
		cfg.replaceStrategy = args[5]
	default:
		return config{}, errors.New(
			"eviction parameter must be lru or fifo")
	}

	if !cfg.writeAllocate && !cfg.writeThrough {
		return config{}, errors.New(
			"no-write-allocate and write-back is an invalid combination")
	}

	return cfg, nil
}

func parsePowerOfTwo(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n&(n-1) != 0 {
		return 0, false
	}

	return n, true
}
