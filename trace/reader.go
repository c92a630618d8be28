// Package trace reads and records memory access traces.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/cachesim/cache"
)

// An Access is one decoded record of a trace.
type Access struct {
	Op      cache.Op
	Address uint32
}

// A Reader decodes accesses from a text trace. Each record is one line of
// three whitespace-separated fields: an operation code, a hexadecimal
// address, and an access size. The operation code "l" is a load; every
// other code is a store. The size field is validated but otherwise unused.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a Reader that decodes the trace in r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Read returns the next access in the trace, skipping blank lines. It
// returns io.EOF after the last record.
func (r *Reader) Read() (Access, error) {
	for r.scanner.Scan() {
		r.line++

		fields := strings.Fields(r.scanner.Text())
		if len(fields) == 0 {
			continue
		}

		access, err := parseRecord(fields)
		if err != nil {
			return Access{}, fmt.Errorf("line %d: %w", r.line, err)
		}

		return access, nil
	}

	if err := r.scanner.Err(); err != nil {
		return Access{}, err
	}

	return Access{}, io.EOF
}

func parseRecord(fields []string) (Access, error) {
	if len(fields) != 3 {
		return Access{}, fmt.Errorf(
			"expected 3 fields, got %d", len(fields))
	}

	op := cache.OpStore
	if fields[0] == "l" {
		op = cache.OpLoad
	}

	addrStr := strings.TrimPrefix(strings.ToLower(fields[1]), "0x")
	addr, err := strconv.ParseUint(addrStr, 16, 32)
	if err != nil {
		return Access{}, fmt.Errorf("bad address %q", fields[1])
	}

	if _, err := strconv.Atoi(fields[2]); err != nil {
		return Access{}, fmt.Errorf("bad access size %q", fields[2])
	}

	return Access{Op: op, Address: uint32(addr)}, nil
}
