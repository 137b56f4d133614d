/*
Package order reads and writes tile orderings.

The text form holds one tile index per line. The binary form, used when
storing orderings in the catalog, is a uvarint count followed by uvarint
indices, compressed with zstd.
*/
package order

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Ordering is a sequence of tile indices, see package tile for the meaning
// of each value.
type Ordering []int

// Read parses an ordering from r. Surrounding whitespace is ignored, as are
// blank lines.
func Read(r io.Reader) (Ordering, error) {
	var o Ordering
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		t := strings.TrimSpace(s.Text())
		if t == "" {
			continue
		}
		i, err := strconv.Atoi(t)
		if err != nil {
			return nil, fmt.Errorf("order: line %d: %w", line, err)
		}
		o = append(o, i)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return o, nil
}

// ReadFile parses the ordering stored in file.
func ReadFile(file string) (Ordering, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// Write writes o to w, one index per line.
func Write(w io.Writer, o Ordering) error {
	bw := bufio.NewWriter(w)
	for _, i := range o {
		if _, err := bw.WriteString(strconv.Itoa(i) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes o to file, creating or truncating it.
func WriteFile(file string, o Ordering) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := Write(f, o); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
