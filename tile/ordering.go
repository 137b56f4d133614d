package tile

import "math/rand"

// Identity returns the ordering that leaves all n tiles in place.
func Identity(n int) []int {
	o := make([]int, n)
	for i := range o {
		o[i] = i
	}
	return o
}

// Inverse returns the ordering that undoes ordering, such that rearranging
// with one and then the other restores the original image.
func Inverse(ordering []int) ([]int, error) {
	if !isPermutation(ordering) {
		return nil, ErrNotPermutation
	}
	inv := make([]int, len(ordering))
	for i, o := range ordering {
		inv[o] = i
	}
	return inv, nil
}

// Shuffle returns a random ordering of n tiles drawn from r.
func Shuffle(n int, r *rand.Rand) []int {
	o := Identity(n)
	r.Shuffle(n, func(i, j int) {
		o[i], o[j] = o[j], o[i]
	})
	return o
}
