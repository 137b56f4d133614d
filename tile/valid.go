package tile

import "image"

// Count returns the number of tiles an image of the given height and width
// decomposes into, or zero if the tile size does not evenly divide it.
func Count(height, width int, size Size) int {
	if height <= 0 || width <= 0 || size.Height <= 0 || size.Width <= 0 {
		return 0
	}
	if height%size.Height != 0 || width%size.Width != 0 {
		return 0
	}
	return (height / size.Height) * (width / size.Width)
}

func isPermutation(ordering []int) bool {
	seen := make([]bool, len(ordering))
	for _, o := range ordering {
		if o < 0 || o >= len(ordering) || seen[o] {
			return false
		}
		seen[o] = true
	}
	return true
}

// Valid reports whether an image of the given height and width can be
// rearranged using size and ordering. The tile size must divide both
// dimensions without remainder and ordering must use each of the resulting
// tiles exactly once.
func Valid(height, width int, size Size, ordering []int) bool {
	n := Count(height, width, size)
	if n == 0 || n != len(ordering) {
		return false
	}
	return isPermutation(ordering)
}

// ValidImage is like Valid but takes the dimensions from m.
func ValidImage(m image.Image, size Size, ordering []int) bool {
	b := m.Bounds()
	return Valid(b.Dy(), b.Dx(), size, ordering)
}
