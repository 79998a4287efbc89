package mcts

import (
	"github.com/chewxy/math32"

	"github.com/gokigo/kigo/coords"
)

// argmax returns the index of the largest element, breaking ties toward
// the smallest index (the iteration only replaces on a strict increase).
func argmax(a []float32) int {
	var retVal int
	max := math32.Inf(-1)
	for i := range a {
		if a[i] > max {
			max = a[i]
			retVal = i
		}
	}
	return retVal
}

// flatToPoint converts a flattened action index (including the trailing
// Pass index) back to a coords.Point for a board of the given size.
func flatToPoint(n, flat int) coords.Point {
	return coords.Unflatten(n, flat)
}
