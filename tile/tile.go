/*
Package tile validates and reverses a tile-based scrambling of an image.

An image is split into equally sized tiles numbered 0 to N-1 in row-major
order, top to bottom and left to right within each row. An ordering names,
for each output position i, the source tile placed there:

	out[i] = in[ordering[i]]

This is a direct lookup, not the inverse permutation. If an image A was
scrambled into B with ordering P, so that B's tile i is A's tile P[i], then
rearranging B with Inverse(P) reconstructs A.
*/
package tile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidConfiguration is returned when the tile size does not
	// evenly divide the image or the ordering is not a permutation of the
	// tiles.
	ErrInvalidConfiguration = errors.New("The tile size or ordering are not valid for the given image")

	// ErrNotPermutation is returned when an ordering does not use each
	// index from 0 to N-1 exactly once.
	ErrNotPermutation = errors.New("tile: ordering is not a permutation")
)

// Size is the height and width of a tile in pixels.
type Size struct {
	Height int
	Width  int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Height, s.Width)
}

// ParseSize parses a tile size written as "HxW", or "N" for a square tile.
func ParseSize(s string) (Size, error) {
	h, w := s, s
	if i := strings.IndexAny(s, "xX"); i >= 0 {
		h, w = s[:i], s[i+1:]
	}

	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height <= 0 {
		return Size{}, fmt.Errorf("tile: invalid size %q", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width <= 0 {
		return Size{}, fmt.Errorf("tile: invalid size %q", s)
	}

	return Size{Height: height, Width: width}, nil
}
